package engine

import (
	"time"

	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/components"
	"github.com/spaghettifunk/ember/engine/systems"
)

// Context hands the game the objects the engine owns. It is valid from
// FnInitialize until FnShutdown returns.
type Context struct {
	Config *ApplicationConfig
	Device renderer.Device
	Assets *assets.AssetManager
	Camera *components.Camera
	// Jobs runs CPU work such as image decoding off the render thread.
	Jobs *systems.JobSystem
}

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(ctx *Context) error
type Update func(ctx *Context, deltaTime time.Duration) error
type Render func(ctx *Context, deltaTime time.Duration) error
type OnResize func(width, height int) error
type Shutdown func() error
