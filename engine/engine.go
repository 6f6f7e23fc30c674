package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/platform"
	"github.com/spaghettifunk/ember/engine/renderer/components"
	"github.com/spaghettifunk/ember/engine/renderer/opengl"
	"github.com/spaghettifunk/ember/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// messagePump delivers window events to the input and event systems.
type messagePump interface {
	PumpMessages() bool
	WaitMessages() bool
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	messages     messagePump
	device       *opengl.Device
	assetManager *assets.AssetManager
	jobSystem    *systems.JobSystem
	camera       *components.Camera
	clock        *core.Clock
	metrics      *core.Metrics
	context      *Context
	width        int
	height       int

	listeners   map[core.SystemEventCode]core.ListenerID
	watchCancel context.CancelFunc
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		return nil, err
	}
	level, err := config.LogLevel()
	if err != nil {
		return nil, err
	}
	core.SetLogLevel(level)

	am, err := assets.NewAssetManager(config.Assets.Root)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	js, err := systems.NewJobSystem(runtime.NumCPU(), 16)
	if err != nil {
		return nil, err
	}

	p := platform.New()
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		platform:     p,
		messages:     p,
		assetManager: am,
		jobSystem:    js,
		width:        config.Window.Width,
		height:       config.Window.Height,
		listeners:    make(map[core.SystemEventCode]core.ListenerID),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	core.InputReset()

	// register some events
	e.listeners[core.EVENT_CODE_APPLICATION_QUIT] = core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.listeners[core.EVENT_CODE_KEY_PRESSED] = core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.listeners[core.EVENT_CODE_BUTTON_PRESSED] = core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, e.onButton)
	e.listeners[core.EVENT_CODE_MOUSE_MOVED] = core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, e.onMouseMoved)
	e.listeners[core.EVENT_CODE_RESIZED] = core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.platform.Startup(config.Window.Title,
		config.Window.PosX,
		config.Window.PosY,
		config.Window.Width,
		config.Window.Height,
		config.Window.VSync); err != nil {
		return err
	}
	e.width, e.height = e.platform.FramebufferSize()

	device, err := opengl.NewDevice(config.Log.Level == "debug")
	if err != nil {
		return err
	}
	device.LogInfo()
	device.Viewport(e.width, e.height)
	device.EnableDepthTest()
	device.ClearColor(config.ClearColor())
	e.device = device

	opts, err := config.CameraOptions()
	if err != nil {
		return err
	}
	e.camera = components.NewCamera(config.Camera.FOV, config.CameraPosition(), e.width, e.height, opts...)

	if config.Assets.Watch {
		if err := e.watchAssets(); err != nil {
			core.LogWarn("asset watching disabled: %s", err)
		}
	}

	e.context = &Context{
		Config: config,
		Device: e.device,
		Assets: e.assetManager,
		Camera: e.camera,
		Jobs:   e.jobSystem,
	}
	if err := e.gameInstance.FnInitialize(e.context); err != nil {
		return errors.Wrap(err, "game initialization failed")
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.platform.Show()
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return errors.New("engine is not initialized")
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()

	for e.isRunning {
		if !e.processMessages() {
			e.isRunning = false
			break
		}
		delta := e.clock.Tick()
		if e.isSuspended {
			continue
		}
		e.recordFrame(delta)

		keys := core.InputKeyboard()
		e.camera.UpdatePosition(&keys, delta)

		if err := e.gameInstance.FnUpdate(e.context, delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		e.device.Clear()
		// Call the game's render routine.
		if err := e.gameInstance.FnRender(e.context, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
		e.platform.SwapBuffers()

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		core.InputUpdate()
	}

	return nil
}

// processMessages polls for window events, or blocks for the next one while
// the application is suspended.
func (e *Engine) processMessages() bool {
	if e.isSuspended {
		return e.messages.WaitMessages()
	}
	return e.messages.PumpMessages()
}

func (e *Engine) recordFrame(delta time.Duration) {
	if e.metrics.Update(delta) {
		core.LogInfo("FPS: %d (%s per frame)", e.metrics.FPS(), e.metrics.FrameTime())
	}
}

// Stop asks the main loop to exit after the current frame. It may be called
// from any goroutine.
func (e *Engine) Stop() {
	if e.platform.Window != nil {
		e.platform.Close()
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.watchCancel != nil {
		e.watchCancel()
	}
	if err := e.assetManager.Close(); err != nil {
		core.LogError(err.Error())
	}

	var err error
	if e.gameInstance.FnShutdown != nil && e.context != nil {
		err = e.gameInstance.FnShutdown()
	}

	if jerr := e.jobSystem.Shutdown(); jerr != nil && err == nil {
		err = jerr
	}

	for code, id := range e.listeners {
		core.EventUnregister(code, id)
	}
	core.InputReset()

	if e.platform.Window != nil {
		if perr := e.platform.Shutdown(); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (int, int) {
	return e.width, e.height
}

func (e *Engine) watchAssets() error {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := e.assetManager.Watch(ctx)
	if err != nil {
		cancel()
		return err
	}
	e.watchCancel = cancel

	go func() {
		for ev := range events {
			// Resources are uploaded once at startup.
			core.LogWarn("asset %s %s, restart to pick up the change", ev.Name, ev.Op)
		}
	}()
	return nil
}

func (e *Engine) onEvent(code core.SystemEventCode, context core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		if e.platform.Window != nil {
			e.platform.Close()
		}
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, context core.EventContext) bool {
	if context.KeyCode != core.KEY_ESCAPE {
		return false
	}
	// Escape gives a captured cursor back first, and quits otherwise.
	if e.platform.CursorCaptured() {
		e.platform.CaptureCursor(false)
		return true
	}
	// NOTE: Technically firing an event to itself, but there may be other listeners.
	core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, core.EventContext{})
	return true
}

func (e *Engine) onButton(code core.SystemEventCode, context core.EventContext) bool {
	// Left click captures the cursor, any other button releases it.
	capture := context.Button == core.BUTTON_LEFT
	if capture == e.platform.CursorCaptured() {
		return false
	}
	e.platform.CaptureCursor(capture)
	return true
}

func (e *Engine) onMouseMoved(code core.SystemEventCode, context core.EventContext) bool {
	if !e.platform.CursorCaptured() || e.camera == nil {
		return false
	}
	// The camera works in framebuffer pixels, the cursor in window coordinates.
	sx, sy := e.platform.CursorScale()
	e.camera.UpdateOrientation(context.X*sx, context.Y*sy)
	e.platform.CenterCursor()
	return true
}

func (e *Engine) onResized(code core.SystemEventCode, context core.EventContext) bool {
	width := context.Width
	height := context.Height

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	if e.device != nil {
		e.device.Viewport(width, height)
	}
	if e.camera != nil {
		e.camera.UpdateViewport(width, height)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}
