package loaders

import (
	"image"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/resources"
)

// TextureFromResource uploads a loaded image resource as a texture of the
// given kind. The texture is named after the resource.
func TextureFromResource(device renderer.Device, resource *resources.Resource, kind renderer.TextureKind) (*renderer.Texture, error) {
	img, ok := resource.Data.(*image.RGBA)
	if resource.Type != resources.ResourceTypeImage || !ok {
		return nil, errors.Errorf("resource %s is not a loaded image", resource.Name)
	}
	texture := renderer.NewTexture(device, img, kind)
	texture.Name = resource.Name
	return texture, nil
}

// ShaderSource returns the GLSL text held by a loaded shader resource.
func ShaderSource(resource *resources.Resource) (string, error) {
	source, ok := resource.Data.(string)
	if resource.Type != resources.ResourceTypeShader || !ok {
		return "", errors.Errorf("resource %s is not a loaded shader", resource.Name)
	}
	return source, nil
}

// ShaderFromResources builds a program from two loaded shader stage resources.
func ShaderFromResources(device renderer.Device, vertex, fragment *resources.Resource) (*renderer.Shader, error) {
	vertexSource, err := ShaderSource(vertex)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := ShaderSource(fragment)
	if err != nil {
		return nil, err
	}
	shader, err := renderer.NewShader(device, vertexSource, fragmentSource)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s + %s", vertex.Name, fragment.Name)
	}
	return shader, nil
}
