package testbed

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/components"
	"github.com/spaghettifunk/ember/engine/renderer/rendertest"
	"github.com/spaghettifunk/ember/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (*engine.Context, *rendertest.Device) {
	return newContextAt(t, "../assets")
}

func newContextAt(t *testing.T, root string) (*engine.Context, *rendertest.Device) {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	am, err := assets.NewAssetManager(root)
	require.NoError(t, err)
	t.Cleanup(func() { am.Close() })

	jobs, err := systems.NewJobSystem(2, 2)
	require.NoError(t, err)
	t.Cleanup(func() { jobs.Shutdown() })

	device := rendertest.NewDevice()
	return &engine.Context{
		Config: config,
		Device: device,
		Assets: am,
		Camera: components.NewCamera(config.Camera.FOV, config.CameraPosition(), config.Window.Width, config.Window.Height),
		Jobs:   jobs,
	}, device
}

func TestTestGameRendersFloorAndLight(t *testing.T) {
	ctx, device := newContext(t)
	game := NewTestGame(ctx.Config)
	require.NoError(t, game.Initialize(ctx))
	require.NoError(t, game.OnResize(1280, 720))
	require.NoError(t, game.Update(ctx, 16*time.Millisecond))
	require.NoError(t, game.Render(ctx, 16*time.Millisecond))

	require.Len(t, device.Draws, 2)
	floor, light := device.Draws[0], device.Draws[1]

	assert.Equal(t, int32(len(floorIndices)), floor.Count)
	assert.Len(t, floor.Textures, 2, "diffuse and specular bound")
	assert.Contains(t, floor.Textures, renderer.TextureKindDiffuse.Unit())
	assert.Contains(t, floor.Textures, renderer.TextureKindSpecular.Unit())

	assert.Equal(t, int32(36), light.Count)
	assert.Empty(t, light.Textures)
	assert.NotEqual(t, floor.Program, light.Program)

	assert.Empty(t, device.Misuse)
	assert.Zero(t, device.Program())
	assert.Zero(t, device.VertexArray())
}

func TestTestGameUploadsSceneUniforms(t *testing.T) {
	ctx, device := newContext(t)
	game := NewTestGame(ctx.Config)
	require.NoError(t, game.Initialize(ctx))
	require.NoError(t, game.Render(ctx, 0))

	values := map[string]interface{}{}
	for _, name := range []string{"uTextureDiffuse", "uTextureSpecular", "uLightPosition", "uCameraViewProjection", "uModel"} {
		loc, ok := device.Location(name)
		require.True(t, ok, name)
		for _, u := range device.Uniforms {
			if u.Location == loc {
				values[name] = u.Value
			}
		}
	}

	assert.Equal(t, int32(0), values["uTextureDiffuse"])
	assert.Equal(t, int32(1), values["uTextureSpecular"])
	assert.Equal(t, mgl32.Vec3{0, 0.3, 0}, values["uLightPosition"])
	assert.Equal(t, ctx.Camera.ViewProjection(), values["uCameraViewProjection"])
	assert.Equal(t, mgl32.Ident4(), values["uModel"])
}

func TestTestGameShutdownReleasesEverything(t *testing.T) {
	ctx, device := newContext(t)
	game := NewTestGame(ctx.Config)
	require.NoError(t, game.Initialize(ctx))
	require.NoError(t, game.Shutdown())

	for _, kind := range []rendertest.ObjectKind{
		rendertest.ObjectBuffer,
		rendertest.ObjectVertexArray,
		rendertest.ObjectProgram,
		rendertest.ObjectTexture,
	} {
		assert.Zero(t, device.Live(kind), kind.String())
	}
	assert.Empty(t, device.Misuse)
}

func TestTestGameMissingTextureAsset(t *testing.T) {
	ctx, device := newContext(t)
	ctx.Config.Scene.DiffuseTexture = "textures/missing.png"
	game := NewTestGame(ctx.Config)
	require.Error(t, game.Initialize(ctx))
	assert.Zero(t, device.Live(rendertest.ObjectTexture))
}

func TestTestGameRejectsNonImageTexture(t *testing.T) {
	ctx, device := newContext(t)
	ctx.Config.Scene.SpecularTexture = DefaultFragmentShader
	game := NewTestGame(ctx.Config)
	err := game.Initialize(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultFragmentShader)
	assert.Zero(t, device.Live(rendertest.ObjectTexture))
	require.NoError(t, game.Shutdown())
}

func TestGeneratedTexture(t *testing.T) {
	img := generatedTexture(renderer.TextureKindSpecular)
	assert.Equal(t, generatedTextureSize, img.Bounds().Dx())
	c := img.RGBAAt(generatedTextureSize/2+4, generatedTextureSize/2+4)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}

func TestTestGameLoadsTextureAssets(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{DefaultVertexShader, DefaultFragmentShader, LightVertexShader, LightFragmentShader} {
		data, err := os.ReadFile(filepath.Join("..", "assets", name))
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.Dir(name)), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, name), data, 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0o755))
	f, err := os.Create(filepath.Join(root, "textures", "planks.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	require.NoError(t, f.Close())

	ctx, device := newContextAt(t, root)
	ctx.Config.Scene.DiffuseTexture = "textures/planks.png"
	game := NewTestGame(ctx.Config)
	require.NoError(t, game.Initialize(ctx))
	require.NoError(t, game.Render(ctx, 0))

	diffuse := device.Draws[0].Textures[renderer.TextureKindDiffuse.Unit()]
	specular := device.Draws[0].Textures[renderer.TextureKindSpecular.Unit()]
	w, h := device.TextureSize(diffuse)
	assert.Equal(t, [2]int{4, 2}, [2]int{w, h})
	w, h = device.TextureSize(specular)
	assert.Equal(t, [2]int{generatedTextureSize, generatedTextureSize}, [2]int{w, h})
}
