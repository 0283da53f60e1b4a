// Package game implements the main game loop and state management.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/breakout/internal/assets"
	"github.com/Faultbox/breakout/internal/config"
	"github.com/Faultbox/breakout/internal/engine/camera"
	"github.com/Faultbox/breakout/internal/engine/debug"
	"github.com/Faultbox/breakout/internal/engine/input"
	"github.com/Faultbox/breakout/internal/engine/mesh"
	"github.com/Faultbox/breakout/internal/engine/renderer"
	"github.com/Faultbox/breakout/internal/engine/texture"
	"github.com/Faultbox/breakout/internal/engine/window"
	"github.com/Faultbox/breakout/internal/game/states"
	"github.com/Faultbox/breakout/internal/game/world"
	"github.com/Faultbox/breakout/internal/logger"
	"github.com/Faultbox/breakout/pkg/formats"
)

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not tunnel
// the ball through the paddle.
const maxFrameTime = 0.05

const screenshotDir = "screenshots"

var (
	keysLeft  = []sdl.Scancode{sdl.SCANCODE_LEFT, sdl.SCANCODE_A}
	keysRight = []sdl.Scancode{sdl.SCANCODE_RIGHT, sdl.SCANCODE_D}
)

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.ScreenCamera
	shots    *debug.Screenshots

	assets *assets.Manager
	world  *world.World
	states *states.Manager

	gpuMeshes []*mesh.Mesh
	textures  []uint32

	// Kept to re-attach after a resize rebuilds the block wall.
	blockMesh    *mesh.Mesh
	blockTexture uint32
}

// New creates a new game instance. Meshes are parsed before the window is
// opened so a broken asset fails fast.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
		assets: assets.NewManager(),
	}

	g.log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := cfg.Assets
	meshes, err := g.assets.LoadMeshes(context.Background(),
		a.Resolve(a.Paddle.Model),
		a.Resolve(a.Ball.Model),
		a.Resolve(a.Block.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meshes: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.GetSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.camera = camera.NewScreenCamera(width, height, cfg.Camera.FOVDegrees, cfg.Camera.Near)
	g.input = input.New()
	g.shots = debug.NewScreenshots(screenshotDir, "breakout")

	g.world = world.New(float32(width), float32(height), world.Meshes{
		Paddle: meshes[0],
		Ball:   meshes[1],
		Block:  meshes[2],
	}, cfg.Layout)

	if err := g.upload(); err != nil {
		g.Close()
		return nil, err
	}

	g.states = states.NewManager()
	g.states.Change(states.NewRound(g.states, g.world))

	g.log.Info("game initialized",
		zap.Int("blocks", len(g.world.Blocks)),
		zap.Int("drawable_width", width),
		zap.Int("drawable_height", height),
	)
	return g, nil
}

// upload sends each distinct mesh to the GPU once and attaches it, with its
// texture, to every object that uses it.
func (g *Game) upload() error {
	a := g.config.Assets
	groups := []struct {
		asset   config.ModelAsset
		objects []*world.Object
	}{
		{a.Paddle, []*world.Object{g.world.Paddle}},
		{a.Ball, []*world.Object{g.world.Ball.Object}},
		{a.Block, g.world.Blocks},
	}

	meshes := []*formats.OBJMesh{g.world.Paddle.Mesh, g.world.Ball.Mesh, g.world.BlockMesh()}

	for i, grp := range groups {
		gm, err := mesh.Upload(meshes[i])
		if err != nil {
			return fmt.Errorf("uploading %s: %w", grp.asset.Model, err)
		}
		g.gpuMeshes = append(g.gpuMeshes, gm)

		tex := texture.Load(a.Resolve(grp.asset.Texture))
		g.textures = append(g.textures, tex)

		for _, obj := range grp.objects {
			obj.GPU = gm
			obj.Texture = tex
		}
	}
	g.blockMesh, g.blockTexture = g.gpuMeshes[2], g.textures[2]
	return nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				g.resize()
			case input.EventKeyDown:
				if event.Key == sdl.SCANCODE_ESCAPE {
					g.running = false
				}
			}
		}

		// 2. Update game state
		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		draws := g.render()

		if g.input.IsKeyPressed(sdl.SCANCODE_F12) {
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draw_calls", draws),
				zap.String("state", g.states.Current().Name()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize follows the drawable size rather than the event payload, which is
// in points on HiDPI displays.
func (g *Game) resize() {
	width, height := g.window.GetSize()
	g.renderer.Resize(width, height)
	g.camera.Resize(width, height)

	blocks := len(g.world.Blocks)
	g.world.Resize(float32(width), float32(height))
	if len(g.world.Blocks) != blocks {
		g.log.Debug("block wall re-laid", zap.Int("blocks", len(g.world.Blocks)))
	}
	for _, b := range g.world.Blocks {
		b.GPU = g.blockMesh
		b.Texture = g.blockTexture
	}
}

// screenshot saves the frame just rendered, before the buffers swap.
func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.SavePixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) update(dt float64) error {
	in := states.Controls{
		Axis:   g.input.Axis(keysLeft, keysRight),
		Launch: g.input.IsKeyPressed(sdl.SCANCODE_SPACE),
	}
	return g.states.Update(dt, in)
}

func (g *Game) render() int {
	g.renderer.Begin(g.camera.ViewMatrix(), g.camera.ProjectionMatrix())
	for _, obj := range g.world.Objects() {
		g.renderer.Draw(obj)
	}
	return g.renderer.End()
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	for _, gm := range g.gpuMeshes {
		gm.Delete()
	}
	g.gpuMeshes = nil
	for _, tex := range g.textures {
		texture.Delete(tex)
	}
	g.textures = nil

	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	g.assets.Close()
}
