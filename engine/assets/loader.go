package assets

import "github.com/spaghettifunk/ember/engine/resources"

// Loader turns one file into a resource. name is the logical asset name, path
// the file it resolved to.
type Loader interface {
	Load(name, path string) (*resources.Resource, error)
	Unload(*resources.Resource) error
}
