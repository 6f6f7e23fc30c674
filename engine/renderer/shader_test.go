package renderer_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVertexSource   = "#version 410 core\nvoid main() { gl_Position = vec4(0.0); }\n"
	testFragmentSource = "#version 410 core\nout vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

func TestShaderLinksAndReleasesStages(t *testing.T) {
	dev := rendertest.NewDevice()
	shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)

	assert.Equal(t, 1, dev.Live(rendertest.ObjectProgram))
	assert.Equal(t, 0, dev.Live(rendertest.ObjectShader))

	shader.Bind()
	assert.Equal(t, uint32(3), dev.Program())
	shader.Unbind()
	assert.Equal(t, uint32(0), dev.Program())
	assert.Empty(t, dev.Misuse)
}

func TestShaderUniformLocationIsCached(t *testing.T) {
	dev := rendertest.NewDevice()
	shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)

	shader.Bind()
	shader.SetUniformMat4("uModel", mgl32.Ident4())
	shader.SetUniformMat4("uModel", mgl32.Translate3D(1, 2, 3))
	shader.SetUniformVec3("uLightColor", mgl32.Vec3{1, 1, 1})
	shader.SetUniformInt("uTextureSpecular", 1)
	shader.SetUniformFloat("uShininess", 32)
	shader.Unbind()

	assert.Equal(t, 1, dev.Lookups("uModel"))
	assert.Equal(t, 1, dev.Lookups("uLightColor"))

	require.Len(t, dev.Uniforms, 5)
	loc, ok := dev.Location("uModel")
	require.True(t, ok)
	assert.Equal(t, loc, dev.Uniforms[0].Location)
	assert.Equal(t, loc, dev.Uniforms[1].Location)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), dev.Uniforms[1].Value)
	assert.Equal(t, int32(1), dev.Uniforms[3].Value)
	assert.Equal(t, float32(32), dev.Uniforms[4].Value)
	assert.Empty(t, dev.Misuse)
}

func TestShaderInactiveUniformIsCachedToo(t *testing.T) {
	dev := rendertest.NewDevice()
	dev.Inactive["uUnused"] = true
	shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)

	shader.Bind()
	shader.SetUniformInt("uUnused", 4)
	shader.SetUniformInt("uUnused", 5)

	assert.Equal(t, 1, dev.Lookups("uUnused"))
	require.Len(t, dev.Uniforms, 2)
	assert.Equal(t, int32(-1), dev.Uniforms[0].Location)
	assert.Equal(t, int32(-1), dev.Uniforms[1].Location)
}

func TestShaderCompileFailure(t *testing.T) {
	for _, stage := range []renderer.ShaderStage{renderer.ShaderStageVertex, renderer.ShaderStageFragment} {
		t.Run(stage.String(), func(t *testing.T) {
			dev := rendertest.NewDevice()
			dev.CompileErrors[stage] = "0:1(1): error: syntax error"

			shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
			require.Error(t, err)
			assert.Nil(t, shader)
			assert.True(t, errors.Is(err, core.ErrShaderCompile))
			assert.Contains(t, err.Error(), stage.String())
			assert.Contains(t, err.Error(), "syntax error")

			assert.Equal(t, 0, dev.Live(rendertest.ObjectShader))
			assert.Equal(t, 0, dev.Live(rendertest.ObjectProgram))
			assert.Empty(t, dev.Misuse)
		})
	}
}

func TestShaderLinkFailure(t *testing.T) {
	dev := rendertest.NewDevice()
	dev.LinkError = "error: vertex output not read by fragment shader"

	shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
	require.Error(t, err)
	assert.Nil(t, shader)
	assert.True(t, errors.Is(err, core.ErrShaderLink))
	assert.Contains(t, err.Error(), "vertex output")

	assert.Equal(t, 0, dev.Live(rendertest.ObjectShader))
	assert.Equal(t, 0, dev.Live(rendertest.ObjectProgram))
}

func TestShaderDestroy(t *testing.T) {
	dev := rendertest.NewDevice()
	shader, err := renderer.NewShader(dev, testVertexSource, testFragmentSource)
	require.NoError(t, err)

	shader.Destroy()
	shader.Destroy()

	assert.Equal(t, 1, dev.Deletes(3))
	assert.Equal(t, 0, dev.Live(rendertest.ObjectProgram))
	assert.Panics(t, shader.Bind)
	assert.Panics(t, func() { shader.SetUniformInt("uModel", 0) })
	assert.Empty(t, dev.Misuse)
}
