// Package opengl implements renderer.Device on an OpenGL 4.1 core context.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer"
)

// Device issues every call straight to the current GL context. It must only
// be used from the thread the context is current on.
type Device struct {
	debug bool
}

var _ renderer.Device = (*Device)(nil)

// NewDevice loads the GL function pointers for the current context. With
// debug set, construction-time calls are followed by a glGetError drain.
func NewDevice(debug bool) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialise OpenGL")
	}
	return &Device{debug: debug}, nil
}

// LogInfo logs what the driver reports about the context.
func (d *Device) LogInfo() {
	core.LogInfo("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogInfo("OpenGL vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	core.LogInfo("OpenGL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	core.LogInfo("GLSL version: %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	var mask int32
	gl.GetIntegerv(gl.CONTEXT_PROFILE_MASK, &mask)
	profile := "unknown"
	switch {
	case mask&gl.CONTEXT_CORE_PROFILE_BIT != 0:
		profile = "core"
	case mask&gl.CONTEXT_COMPATIBILITY_PROFILE_BIT != 0:
		profile = "compatibility"
	}
	core.LogInfo("OpenGL profile: %s", profile)
}

func (d *Device) checkError(op string) {
	if !d.debug {
		return
	}
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		core.LogError("OpenGL error after %s: %s", op, errorString(code))
	}
}

func errorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return "unknown error"
	}
}

func bufferTarget(t renderer.BufferTarget) uint32 {
	if t == renderer.BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func componentType(c renderer.ComponentType) uint32 {
	switch c {
	case renderer.ComponentTypeInt32:
		return gl.INT
	case renderer.ComponentTypeUint32:
		return gl.UNSIGNED_INT
	case renderer.ComponentTypeUint8:
		return gl.UNSIGNED_BYTE
	default:
		return gl.FLOAT
	}
}

// CreateBuffer uploads through GL_ARRAY_BUFFER whatever the target, so the
// element binding of a bound vertex array is never touched. The previous
// array binding is restored.
func (d *Device) CreateBuffer(target renderer.BufferTarget, data []byte) uint32 {
	var previous int32
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &previous)

	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(&data[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(previous))
	d.checkError("CreateBuffer")
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (d *Device) BindBuffer(target renderer.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (d *Device) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	d.checkError("CreateVertexArray")
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Device) VertexAttribute(slot uint32, components int32, typ renderer.ComponentType, stride int32, offset int) {
	switch typ {
	case renderer.ComponentTypeInt32, renderer.ComponentTypeUint32:
		gl.VertexAttribIPointer(slot, components, componentType(typ), stride, gl.PtrOffset(offset))
	case renderer.ComponentTypeUint8:
		gl.VertexAttribPointer(slot, components, componentType(typ), true, stride, gl.PtrOffset(offset))
	default:
		gl.VertexAttribPointer(slot, components, componentType(typ), false, stride, gl.PtrOffset(offset))
	}
	gl.EnableVertexAttribArray(slot)
	d.checkError("VertexAttribute")
}

func (d *Device) CompileShader(stage renderer.ShaderStage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == renderer.ShaderStageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	id := gl.CreateShader(kind)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(msg))
		gl.DeleteShader(id)
		return 0, errors.New(strings.TrimRight(msg, "\x00\n"))
	}
	return id, nil
}

func (d *Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	id := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(id, s)
	}
	gl.LinkProgram(id)
	for _, s := range shaders {
		gl.DetachShader(id, s)
	}

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(id)
		return 0, errors.New(strings.TrimRight(msg, "\x00\n"))
	}
	return id, nil
}

func (d *Device) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *Device) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (d *Device) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (d *Device) Uniform3f(location int32, value mgl32.Vec3) {
	gl.Uniform3f(location, value[0], value[1], value[2])
}

func (d *Device) UniformMatrix4f(location int32, value mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

// CreateTexture2D restores the 2D binding of the active unit when done.
func (d *Device) CreateTexture2D(width, height int, pixels []uint8) uint32 {
	var previous int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &previous)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	var ptr = gl.Ptr(nil)
	if len(pixels) > 0 {
		ptr = gl.Ptr(&pixels[0])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, uint32(previous))
	d.checkError("CreateTexture2D")
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Device) BindTexture2D(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *Device) DrawTriangles(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

// The calls below belong to the frame driver rather than to any resource.

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (d *Device) ClearColor(color mgl32.Vec3) {
	gl.ClearColor(color[0], color[1], color[2], 1.0)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
