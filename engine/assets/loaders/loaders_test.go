package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/rendertest"
	"github.com/spaghettifunk/ember/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// writePNG writes a 1x2 image, red on top and blue below.
func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)

	path := filepath.Join(dir, "stripe.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImageFlipsRows(t *testing.T) {
	path := writePNG(t, t.TempDir())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, core.ErrAssetNotFound), err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	assert.True(t, errors.Is(err, core.ErrImageDecode), err)
	assert.Contains(t, err.Error(), garbage)
}

func TestImageLoaderResource(t *testing.T) {
	path := writePNG(t, t.TempDir())

	loader := &ImageLoader{}
	res, err := loader.Load("stripe.png", path)
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeImage, res.Type)
	assert.Equal(t, "stripe.png", res.Name)
	assert.NotZero(t, res.DataSize)
	assert.IsType(t, &image.RGBA{}, res.Data)

	require.NoError(t, loader.Unload(res))
	assert.Nil(t, res.Data)
}

func TestTextureFromResource(t *testing.T) {
	path := writePNG(t, t.TempDir())
	dev := rendertest.NewDevice()

	res, err := (&ImageLoader{}).Load("stripe.png", path)
	require.NoError(t, err)
	tex, err := TextureFromResource(dev, res, renderer.TextureKindSpecular)
	require.NoError(t, err)
	assert.Equal(t, renderer.TextureKindSpecular, tex.Kind())
	assert.Equal(t, "stripe.png", tex.Name)
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, dev.TexturePixels(1))

	require.NoError(t, (&ImageLoader{}).Unload(res))
	_, err = TextureFromResource(dev, res, renderer.TextureKindDiffuse)
	assert.Error(t, err)
	assert.Equal(t, 1, dev.Live(rendertest.ObjectTexture))
}

func TestShaderFromResources(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "a.vert")
	frag := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(vert, []byte("#version 410 core\nvoid main() {}\n"), 0o644))

	loader := &ShaderLoader{}
	_, err := loader.Load("a.frag", frag)
	assert.True(t, errors.Is(err, core.ErrAssetNotFound))

	require.NoError(t, os.WriteFile(frag, []byte("#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"), 0o644))
	vertex, err := loader.Load("a.vert", vert)
	require.NoError(t, err)
	fragment, err := loader.Load("a.frag", frag)
	require.NoError(t, err)
	assert.Contains(t, fragment.Data.(string), "vec4(1.0)")

	dev := rendertest.NewDevice()
	shader, err := ShaderFromResources(dev, vertex, fragment)
	require.NoError(t, err)
	shader.Destroy()

	_, err = ShaderFromResources(dev, vertex, &resources.Resource{Name: "floor.png", Type: resources.ResourceTypeImage})
	assert.Error(t, err)
	assert.Zero(t, dev.Live(rendertest.ObjectProgram))
}
