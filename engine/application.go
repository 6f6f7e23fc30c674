package engine

import (
	"bytes"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/components"
)

type WindowConfig struct {
	// The application name used as window title.
	Title string `toml:"title"`
	// Window starting width.
	Width int `toml:"width"`
	// Window starting height.
	Height int `toml:"height"`
	// Window starting position x axis.
	PosX int `toml:"pos_x"`
	// Window starting position y axis.
	PosY  int  `toml:"pos_y"`
	VSync bool `toml:"vsync"`
}

// CameraKeysConfig holds one letter per movement direction.
type CameraKeysConfig struct {
	Forward string `toml:"forward"`
	Back    string `toml:"back"`
	Left    string `toml:"left"`
	Right   string `toml:"right"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
}

type CameraConfig struct {
	// Vertical field of view in degrees.
	FOV         float32          `toml:"fov"`
	Position    [3]float32       `toml:"position"`
	Speed       float32          `toml:"speed"`
	Sensitivity float32          `toml:"sensitivity"`
	Keys        CameraKeysConfig `toml:"keys"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	Root string `toml:"root"`
	// Watch logs changes to asset files while running.
	Watch bool `toml:"watch"`
}

type SceneConfig struct {
	// Asset names of the floor textures. Empty means a generated pattern.
	DiffuseTexture  string     `toml:"diffuse_texture"`
	SpecularTexture string     `toml:"specular_texture"`
	LightPosition   [3]float32 `toml:"light_position"`
	LightColor      [3]float32 `toml:"light_color"`
	ClearColor      [3]float32 `toml:"clear_color"`
}

type ApplicationConfig struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
	Assets AssetsConfig `toml:"assets"`
	Scene  SceneConfig  `toml:"scene"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{
			Title:  "Ember 🔥",
			Width:  1280,
			Height: 720,
			PosX:   100,
			PosY:   100,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOV:         45,
			Position:    [3]float32{0, 1, 1},
			Speed:       components.DefaultCameraSpeed,
			Sensitivity: components.DefaultCameraSensitivity,
			Keys: CameraKeysConfig{
				Forward: "W",
				Back:    "S",
				Left:    "A",
				Right:   "D",
				Up:      "E",
				Down:    "Q",
			},
		},
		Log:    LogConfig{Level: "debug"},
		Assets: AssetsConfig{Root: "assets", Watch: true},
		Scene: SceneConfig{
			LightPosition: [3]float32{0, 0.3, 0},
			LightColor:    [3]float32{1, 1, 1},
			ClearColor:    [3]float32{0.2, 0.3, 0.8},
		},
	}
}

// LoadApplicationConfig overlays the TOML file at path on the defaults. A
// missing file yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		core.LogInfo("no configuration at %s, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrapf(core.ErrInvalidConfig, "%s: %s", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(core.ErrInvalidConfig, "window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return errors.Wrapf(core.ErrInvalidConfig, "camera fov %g", c.Camera.FOV)
	case c.Camera.Speed <= 0:
		return errors.Wrapf(core.ErrInvalidConfig, "camera speed %g", c.Camera.Speed)
	case c.Camera.Sensitivity <= 0:
		return errors.Wrapf(core.ErrInvalidConfig, "camera sensitivity %g", c.Camera.Sensitivity)
	}
	if _, err := c.KeyBindings(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// KeyBindings converts the configured letters to camera key bindings.
func (c *ApplicationConfig) KeyBindings() (components.KeyBindings, error) {
	var keys components.KeyBindings
	for _, b := range []struct {
		name   string
		letter string
		key    *core.KeyCode
	}{
		{"forward", c.Camera.Keys.Forward, &keys.Forward},
		{"back", c.Camera.Keys.Back, &keys.Back},
		{"left", c.Camera.Keys.Left, &keys.Left},
		{"right", c.Camera.Keys.Right, &keys.Right},
		{"up", c.Camera.Keys.Up, &keys.Up},
		{"down", c.Camera.Keys.Down, &keys.Down},
	} {
		code, ok := core.KeyCodeFromLetter(b.letter)
		if !ok {
			return keys, errors.Wrapf(core.ErrInvalidConfig, "camera key %s = %q is not a single letter", b.name, b.letter)
		}
		*b.key = code
	}
	return keys, nil
}

func (c *ApplicationConfig) LogLevel() (core.LogLevel, error) {
	level, err := core.ParseLogLevel(c.Log.Level)
	if err != nil {
		return level, errors.Wrapf(core.ErrInvalidConfig, "log level %q", c.Log.Level)
	}
	return level, nil
}

func (c *ApplicationConfig) CameraPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Camera.Position)
}

func (c *ApplicationConfig) LightPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Scene.LightPosition)
}

func (c *ApplicationConfig) LightColor() mgl32.Vec3 {
	return mgl32.Vec3(c.Scene.LightColor)
}

func (c *ApplicationConfig) ClearColor() mgl32.Vec3 {
	return mgl32.Vec3(c.Scene.ClearColor)
}

// CameraOptions returns the camera options the configuration describes.
func (c *ApplicationConfig) CameraOptions() ([]components.CameraOption, error) {
	keys, err := c.KeyBindings()
	if err != nil {
		return nil, err
	}
	return []components.CameraOption{
		components.WithSpeed(c.Camera.Speed),
		components.WithSensitivity(c.Camera.Sensitivity),
		components.WithKeyBindings(keys),
	}, nil
}
