package testbed

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/spaghettifunk/ember/engine/renderer"
)

const (
	generatedTextureSize = 256
	generatedTileCount   = 8
)

// generatedTexture draws a plank-like checkerboard. The specular variant is a
// grayscale mask with dull seams between tiles.
func generatedTexture(kind renderer.TextureKind) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, generatedTextureSize, generatedTextureSize))
	tile := generatedTextureSize / generatedTileCount

	light := color.RGBA{R: 164, G: 116, B: 73, A: 255}
	dark := color.RGBA{R: 120, G: 82, B: 50, A: 255}
	if kind == renderer.TextureKindSpecular {
		light = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		dark = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	}
	seam := color.RGBA{R: 20, G: 20, B: 20, A: 255}

	for y := 0; y < generatedTextureSize; y++ {
		for x := 0; x < generatedTextureSize; x++ {
			c := light
			if (x/tile+y/tile)%2 == 1 {
				c = dark
			}
			if x%tile == 0 || y%tile == 0 {
				c = seam
			}
			img.SetRGBA(x, y, c)
		}
	}
	return blur.Box(img, 1)
}
