package loaders

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/resources"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type ImageLoader struct{}

// DecodeImage decodes any registered format into RGBA8 with the first row at
// the bottom, the order texture uploads expect.
func DecodeImage(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(core.ErrImageDecode, err.Error())
	}
	return transform.FlipV(clone.AsRGBA(img)), format, nil
}

// LoadImage opens and decodes the image at path. See DecodeImage.
func LoadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	img, format, err := DecodeImage(file)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	b := img.Bounds()
	core.LogDebug("decoded %s image %s (%dx%d)", format, path, b.Dx(), b.Dy())
	return img, nil
}

func (il *ImageLoader) Load(name, path string) (*resources.Resource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, openError(path, err)
	}
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     name,
		FullPath: path,
		Type:     resources.ResourceTypeImage,
		DataSize: uint64(info.Size()),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	return nil
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(core.ErrAssetNotFound, path)
	}
	return errors.Wrapf(err, "failed to open %s", path)
}
