package components

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/math"
)

const (
	/** @brief Distance to the near clipping plane. */
	CameraNear float32 = 0.1
	/** @brief Distance to the far clipping plane. */
	CameraFar float32 = 100.0
	/** @brief Pitch is kept within +/- this many degrees to avoid flipping at the poles. */
	CameraPitchLimit float32 = 89.9

	DefaultCameraSpeed       float32 = 1.0
	DefaultCameraSensitivity float32 = 0.1
)

/** @brief Maps the six movement directions of a Camera to keys. */
type KeyBindings struct {
	Forward core.KeyCode
	Back    core.KeyCode
	Left    core.KeyCode
	Right   core.KeyCode
	Up      core.KeyCode
	Down    core.KeyCode
}

// DefaultKeyBindings returns W/S/A/D for planar movement and E/Q for up/down.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward: core.KEY_W,
		Back:    core.KEY_S,
		Left:    core.KEY_A,
		Right:   core.KEY_D,
		Up:      core.KEY_E,
		Down:    core.KEY_Q,
	}
}

/**
 * @brief A free-fly perspective camera. The look direction is derived from
 * yaw and pitch (degrees) and only recomputed by UpdateOrientation. The up
 * vector is fixed to world Y.
 */
type Camera struct {
	position    mgl32.Vec3
	orientation mgl32.Vec3
	up          mgl32.Vec3
	projection  mgl32.Mat4

	yaw         float32
	pitch       float32
	fov         float32
	speed       float32
	sensitivity float32
	width       float32
	height      float32

	keys KeyBindings
}

type CameraOption func(*Camera)

// WithSpeed sets the movement speed in world units per second.
func WithSpeed(speed float32) CameraOption {
	return func(c *Camera) { c.speed = speed }
}

// WithSensitivity sets how many degrees one pixel of cursor offset rotates.
func WithSensitivity(sensitivity float32) CameraOption {
	return func(c *Camera) { c.sensitivity = sensitivity }
}

func WithKeyBindings(keys KeyBindings) CameraOption {
	return func(c *Camera) { c.keys = keys }
}

// NewCamera creates a camera at position looking down -Z, with a vertical field
// of view of fovDegrees over a width x height viewport.
func NewCamera(fovDegrees float32, position mgl32.Vec3, width, height int, opts ...CameraOption) *Camera {
	c := &Camera{
		position:    position,
		orientation: mgl32.Vec3{0, 0, -1},
		up:          mgl32.Vec3{0, 1, 0},
		yaw:         180,
		pitch:       0,
		fov:         fovDegrees,
		speed:       DefaultCameraSpeed,
		sensitivity: DefaultCameraSensitivity,
		width:       float32(width),
		height:      float32(height),
		keys:        DefaultKeyBindings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.projection = perspective(c.fov, c.width, c.height)
	return c
}

func perspective(fovDegrees, width, height float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), width/height, CameraNear, CameraFar)
}

// UpdateOrientation turns the camera by the offset of the cursor (window
// pixels) from the viewport center. Pitch is clamped, yaw accumulates freely.
func (c *Camera) UpdateOrientation(cursorX, cursorY float64) {
	deltaX := c.sensitivity * (c.width/2 - float32(cursorX))
	deltaY := c.sensitivity * (c.height/2 - float32(cursorY))

	c.yaw += deltaX
	c.pitch = math.Clamp(c.pitch+deltaY, -CameraPitchLimit, CameraPitchLimit)

	c.orientation = math.DirectionFromYawPitch(c.yaw, c.pitch)
}

// UpdatePosition moves the camera for every bound key held in keys, by
// speed * elapsed along that key's direction. Keys combine additively.
func (c *Camera) UpdatePosition(keys *core.KeyboardState, elapsed time.Duration) {
	step := c.speed * float32(elapsed.Seconds())
	right := c.orientation.Cross(c.up).Normalize()

	if keys.IsDown(c.keys.Forward) {
		c.position = c.position.Add(c.orientation.Mul(step))
	}
	if keys.IsDown(c.keys.Back) {
		c.position = c.position.Sub(c.orientation.Mul(step))
	}
	if keys.IsDown(c.keys.Left) {
		c.position = c.position.Sub(right.Mul(step))
	}
	if keys.IsDown(c.keys.Right) {
		c.position = c.position.Add(right.Mul(step))
	}
	// vertical movement is along world Y, not the camera's up
	if keys.IsDown(c.keys.Up) {
		c.position[1] += step
	}
	if keys.IsDown(c.keys.Down) {
		c.position[1] -= step
	}
}

// UpdateViewport rebuilds the projection for a new viewport size. A zero
// dimension (minimised window) leaves the camera untouched.
func (c *Camera) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = float32(width)
	c.height = float32(height)
	c.projection = perspective(c.fov, c.width, c.height)
}

// ViewProjection returns projection x view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.orientation), c.up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

func (c *Camera) Orientation() mgl32.Vec3 {
	return c.orientation
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

func (c *Camera) Yaw() float32 {
	return c.yaw
}

func (c *Camera) Pitch() float32 {
	return c.pitch
}

// FieldOfView returns the vertical field of view in degrees.
func (c *Camera) FieldOfView() float32 {
	return c.fov
}

func (c *Camera) Near() float32 {
	return CameraNear
}

func (c *Camera) Far() float32 {
	return CameraFar
}

func (c *Camera) Speed() float32 {
	return c.speed
}

func (c *Camera) Sensitivity() float32 {
	return c.sensitivity
}

func (c *Camera) KeyBindings() KeyBindings {
	return c.keys
}

// Viewport returns the viewport size the projection was built for.
func (c *Camera) Viewport() (int, int) {
	return int(c.width), int(c.height)
}
