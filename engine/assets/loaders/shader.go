package loaders

import (
	"os"

	"github.com/spaghettifunk/ember/engine/resources"
)

// ShaderLoader reads GLSL source as text. No preprocessing is done.
type ShaderLoader struct{}

func LoadShaderSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", openError(path, err)
	}
	return string(data), nil
}

func (sl *ShaderLoader) Load(name, path string) (*resources.Resource, error) {
	source, err := LoadShaderSource(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     name,
		FullPath: path,
		Type:     resources.ResourceTypeShader,
		DataSize: uint64(len(source)),
		Data:     source,
	}, nil
}

func (sl *ShaderLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	return nil
}
