package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
)

// Shader owns one linked program and caches uniform locations by name.
//
// A name is resolved through the device once; every later set reuses the
// cached location, including -1 for uniforms the compiler optimized out.
// The program is never relinked, so the cache is never invalidated.
type Shader struct {
	device Device
	id     uint32
	/** @brief A hashtable to store uniform locations by name. */
	uniformLookup map[string]int32
}

// NewShader compiles both stages and links them. Compile and link failures are
// logged with the device diagnostic and returned; no program is kept.
func NewShader(device Device, vertexSource, fragmentSource string) (*Shader, error) {
	vert, err := compileStage(device, ShaderStageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	frag, err := compileStage(device, ShaderStageFragment, fragmentSource)
	if err != nil {
		device.DeleteShader(vert)
		return nil, err
	}

	program, err := device.LinkProgram(vert, frag)
	// stage objects are no longer needed once linked
	device.DeleteShader(vert)
	device.DeleteShader(frag)
	if err != nil {
		core.LogError("Failed to link shader program: %s", err)
		return nil, errors.Wrap(core.ErrShaderLink, err.Error())
	}

	core.LogDebug("created shader program %d", program)
	return &Shader{
		device:        device,
		id:            program,
		uniformLookup: make(map[string]int32),
	}, nil
}

func compileStage(device Device, stage ShaderStage, source string) (uint32, error) {
	id, err := device.CompileShader(stage, source)
	if err != nil {
		core.LogError("Failed to compile %s shader: %s", stage, err)
		return 0, errors.Wrapf(core.ErrShaderCompile, "%s stage: %s", stage, err)
	}
	return id, nil
}

func (s *Shader) Bind() {
	s.mustBeAlive()
	s.device.UseProgram(s.id)
}

func (s *Shader) Unbind() {
	s.device.UseProgram(0)
}

// The setters below upload to the currently bound program; call Bind first.

func (s *Shader) SetUniformInt(name string, value int32) {
	s.device.Uniform1i(s.location(name), value)
}

func (s *Shader) SetUniformFloat(name string, value float32) {
	s.device.Uniform1f(s.location(name), value)
}

func (s *Shader) SetUniformVec3(name string, value mgl32.Vec3) {
	s.device.Uniform3f(s.location(name), value)
}

func (s *Shader) SetUniformMat4(name string, value mgl32.Mat4) {
	s.device.UniformMatrix4f(s.location(name), value)
}

func (s *Shader) location(name string) int32 {
	s.mustBeAlive()
	if loc, ok := s.uniformLookup[name]; ok {
		return loc
	}
	loc := s.device.UniformLocation(s.id, name)
	if loc < 0 {
		core.LogDebug("uniform %q not active in program %d", name, s.id)
	}
	s.uniformLookup[name] = loc
	return loc
}

// Destroy releases the program. Further calls are no-ops.
func (s *Shader) Destroy() {
	if s.id == 0 {
		return
	}
	core.LogDebug("destroying shader program %d", s.id)
	s.device.DeleteProgram(s.id)
	s.id = 0
}

func (s *Shader) mustBeAlive() {
	if s.id == 0 {
		panic("renderer: use of destroyed shader program")
	}
}
