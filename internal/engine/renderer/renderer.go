// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/breakout/internal/engine/mesh"
	"github.com/Faultbox/breakout/internal/engine/shader"
	"github.com/Faultbox/breakout/internal/engine/shader/shaders"
	"github.com/Faultbox/breakout/internal/logger"
)

// diffuseUnit is the texture unit bound to texture_diffuse1.
const diffuseUnit = 1

// ClearColor is the background colour.
var ClearColor = [4]float32{0.2, 0.3, 0.3, 1.0}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Drawable is anything the renderer can draw with the mesh shader.
type Drawable interface {
	ModelMatrix() mgl32.Mat4
	GPUMesh() *mesh.Mesh
	TextureID() uint32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program    uint32
	locModel   int32
	locView    int32
	locProj    int32
	locTexture int32

	drawCalls int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program
	r.locModel = shader.GetUniform(program, "model")
	r.locView = shader.GetUniform(program, "view")
	r.locProj = shader.GetUniform(program, "projection")
	r.locTexture = shader.GetUniform(program, "texture_diffuse1")

	r.log.Debug("mesh shader compiled", zap.Uint32("program", program))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and binds the camera matrices.
func (r *Renderer) Begin(view, projection mgl32.Mat4) {
	r.drawCalls = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.locProj, 1, false, &projection[0])
	gl.Uniform1i(r.locTexture, diffuseUnit)
}

// Draw renders one object with its model matrix and texture.
func (r *Renderer) Draw(d Drawable) {
	gm := d.GPUMesh()
	if gm == nil {
		return
	}

	model := d.ModelMatrix()
	gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])

	gl.ActiveTexture(gl.TEXTURE0 + diffuseUnit)
	gl.BindTexture(gl.TEXTURE_2D, d.TextureID())

	gm.Draw()
	r.drawCalls++
}

// ReadPixels reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// End finishes the current frame and returns the number of draw calls.
func (r *Renderer) End() int {
	gl.UseProgram(0)
	return r.drawCalls
}
