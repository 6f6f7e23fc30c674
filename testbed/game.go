package testbed

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/assets/loaders"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/components"
	"github.com/spaghettifunk/ember/engine/resources"
	"github.com/spaghettifunk/ember/engine/systems"
)

const (
	DefaultVertexShader   = "shaders/default.vert"
	DefaultFragmentShader = "shaders/default.frag"
	LightVertexShader     = "shaders/light.vert"
	LightFragmentShader   = "shaders/light.frag"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	floor  *renderer.Mesh
	shader *renderer.Shader
	light  *components.PointLight

	width  int
	height int
}

// floor is a 4x4 quad on the XZ plane facing up.
var floorVertices = []renderer.Vertex{
	{Position: mgl32.Vec3{-2, 0, -2}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 0}},
	{Position: mgl32.Vec3{2, 0, -2}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 0}},
	{Position: mgl32.Vec3{2, 0, 2}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 1}},
	{Position: mgl32.Vec3{-2, 0, 2}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 1}},
}

var floorIndices = []uint32{0, 1, 2, 2, 3, 0}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)
	scene := ctx.Config.Scene

	vertex, err := ctx.Assets.Load(DefaultVertexShader)
	if err != nil {
		return err
	}
	defer ctx.Assets.Unload(vertex)
	fragment, err := ctx.Assets.Load(DefaultFragmentShader)
	if err != nil {
		return err
	}
	defer ctx.Assets.Unload(fragment)
	shader, err := loaders.ShaderFromResources(ctx.Device, vertex, fragment)
	if err != nil {
		return errors.WithMessage(err, "default shader")
	}
	state.shader = shader

	textures, err := g.loadTextures(ctx, []textureSource{
		{name: scene.DiffuseTexture, kind: renderer.TextureKindDiffuse},
		{name: scene.SpecularTexture, kind: renderer.TextureKindSpecular},
	})
	if err != nil {
		return err
	}
	state.floor = renderer.NewMesh(ctx.Device, floorVertices, floorIndices, textures)

	lightVertex, err := g.shaderSource(ctx, LightVertexShader)
	if err != nil {
		return err
	}
	lightFragment, err := g.shaderSource(ctx, LightFragmentShader)
	if err != nil {
		return err
	}
	light, err := components.NewPointLight(ctx.Device, lightVertex, lightFragment)
	if err != nil {
		return errors.WithMessage(err, "light shader")
	}
	light.Color = ctx.Config.LightColor()
	light.SetPosition(ctx.Config.LightPosition())
	state.light = light

	shader.Bind()
	shader.SetUniformInt("uTextureDiffuse", int32(renderer.TextureKindDiffuse.Unit()))
	shader.SetUniformInt("uTextureSpecular", int32(renderer.TextureKindSpecular.Unit()))
	shader.SetUniformVec3("uLightPosition", light.Position())
	shader.SetUniformVec3("uLightColor", light.Color)
	shader.Unbind()

	return nil
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime time.Duration) error {
	if core.InputIsKeyUp(core.KEY_P) && core.InputWasKeyDown(core.KEY_P) {
		pos := ctx.Camera.Position()
		core.LogDebug("Camera Pos: [%.2f, %.2f, %.2f] Yaw: %.1f Pitch: %.1f", pos.X(), pos.Y(), pos.Z(), ctx.Camera.Yaw(), ctx.Camera.Pitch())
	}
	return nil
}

func (g *TestGame) Render(ctx *engine.Context, deltaTime time.Duration) error {
	state := g.State.(*gameState)

	state.shader.Bind()
	state.shader.SetUniformMat4("uCameraViewProjection", ctx.Camera.ViewProjection())
	state.shader.SetUniformMat4("uModel", mgl32.Ident4())
	state.shader.SetUniformVec3("uCameraPosition", ctx.Camera.Position())
	state.floor.Draw()
	state.shader.Unbind()

	state.light.Draw(ctx.Camera)
	return nil
}

func (g *TestGame) OnResize(width, height int) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.light != nil {
		state.light.Destroy()
	}
	if state.floor != nil {
		state.floor.Destroy()
	}
	if state.shader != nil {
		state.shader.Destroy()
	}
	return nil
}

type textureSource struct {
	name string
	kind renderer.TextureKind
}

// loadTextures decodes every source on the job system and uploads the results
// in order once all succeeded. An empty name generates a pattern instead.
func (g *TestGame) loadTextures(ctx *engine.Context, sources []textureSource) ([]*renderer.Texture, error) {
	loaded := make([]*resources.Resource, len(sources))
	jobs := make([]systems.Job, len(sources))
	for i, src := range sources {
		i, src := i, src
		jobs[i] = systems.Job{
			Name:    src.kind.String() + " texture",
			JobType: systems.JOB_TYPE_RESOURCE_LOAD,
			EntryPoint: func() error {
				if src.name == "" {
					loaded[i] = &resources.Resource{
						Name: "generated " + src.kind.String(),
						Type: resources.ResourceTypeImage,
						Data: generatedTexture(src.kind),
					}
					return nil
				}
				res, err := ctx.Assets.Load(src.name)
				loaded[i] = res
				return err
			},
		}
	}
	defer func() {
		for _, res := range loaded {
			if res != nil && res.FullPath != "" {
				ctx.Assets.Unload(res)
			}
		}
	}()
	if err := ctx.Jobs.RunAll(jobs...); err != nil {
		return nil, err
	}

	textures := make([]*renderer.Texture, 0, len(sources))
	for i, src := range sources {
		texture, err := loaders.TextureFromResource(ctx.Device, loaded[i], src.kind)
		if err != nil {
			for _, created := range textures {
				created.Destroy()
			}
			return nil, err
		}
		textures = append(textures, texture)
	}
	return textures, nil
}

func (g *TestGame) shaderSource(ctx *engine.Context, name string) (string, error) {
	res, err := ctx.Assets.Load(name)
	if err != nil {
		return "", err
	}
	defer ctx.Assets.Unload(res)
	return loaders.ShaderSource(res)
}
