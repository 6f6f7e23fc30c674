package renderer

import (
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/spaghettifunk/ember/engine/core"
)

/** @brief The semantic role of a texture, which selects its texture unit. */
type TextureKind int

const (
	/** @brief No particular role. Bound to unit 0. */
	TextureKindNone TextureKind = iota
	/** @brief The texture is used as a diffuse map. Bound to unit 0. */
	TextureKindDiffuse
	/** @brief The texture is used as a specular map. Bound to unit 1. */
	TextureKindSpecular
)

func (k TextureKind) String() string {
	switch k {
	case TextureKindDiffuse:
		return "diffuse"
	case TextureKindSpecular:
		return "specular"
	default:
		return "none"
	}
}

// Unit returns the texture unit a texture of this kind is bound to.
func (k TextureKind) Unit() uint32 {
	if k == TextureKindSpecular {
		return 1
	}
	return 0
}

// Texture owns one device 2D texture tagged with a kind. Two textures of the
// same kind must not be bound at the same time.
type Texture struct {
	device Device
	id     uint32
	kind   TextureKind
	width  int
	height int
	/** @brief The texture Name, used in logs. */
	Name string
}

// NewTexture uploads img as an RGBA8 texture with mipmaps. The image is
// expected to already be in bottom-left origin order (see loaders.LoadImage).
func NewTexture(device Device, img *image.RGBA, kind TextureKind) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := img.Pix
	if img.Stride != 4*w || len(pix) != 4*w*h {
		pix = make([]uint8, 0, 4*w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := img.PixOffset(b.Min.X, y)
			pix = append(pix, img.Pix[off:off+4*w]...)
		}
	}

	t := &Texture{
		device: device,
		id:     device.CreateTexture2D(w, h, pix),
		kind:   kind,
		width:  w,
		height: h,
		Name:   uuid.NewString(),
	}
	core.LogDebug("created %s texture %d (%dx%d)", kind, t.id, w, h)
	return t
}

// Bind activates the unit implied by the texture kind and binds the texture to it.
func (t *Texture) Bind() {
	if t.id == 0 {
		panic(fmt.Sprintf("renderer: use of destroyed texture %s", t.Name))
	}
	t.device.ActiveTexture(t.kind.Unit())
	t.device.BindTexture2D(t.id)
}

// Unbind clears the 2D binding of the unit the texture was bound to.
func (t *Texture) Unbind() {
	t.device.ActiveTexture(t.kind.Unit())
	t.device.BindTexture2D(0)
}

func (t *Texture) Kind() TextureKind {
	return t.kind
}

func (t *Texture) Size() image.Point {
	return image.Pt(t.width, t.height)
}

// Destroy releases the device texture. Further calls are no-ops.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	core.LogDebug("destroying texture %d (%s)", t.id, t.Name)
	t.device.DeleteTexture(t.id)
	t.id = 0
}
