// Package world holds the playfield: the paddle, the ball and the block wall,
// all positioned in screen units on the z=0 plane.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/breakout/internal/config"
	"github.com/Faultbox/breakout/pkg/formats"
)

// Meshes are the CPU meshes the world is built from.
type Meshes struct {
	Paddle *formats.OBJMesh
	Ball   *formats.OBJMesh
	Block  *formats.OBJMesh
}

// World is the state of one game.
type World struct {
	Width  float32
	Height float32

	Paddle *Object
	Ball   *Ball
	Blocks []*Object

	layout    config.LayoutConfig
	blockMesh *formats.OBJMesh
}

// New builds a world for a screenW x screenH field.
func New(screenW, screenH float32, meshes Meshes, layout config.LayoutConfig) *World {
	w := &World{
		Width:  screenW,
		Height: screenH,
		Paddle: NewObject("paddle", meshes.Paddle, layout.Scale),
		Ball: &Ball{
			Object: NewObject("ball", meshes.Ball, layout.Scale),
			Speed:  layout.BallSpeed,
		},
		layout:    layout,
		blockMesh: meshes.Block,
	}

	w.Paddle.Position = mgl32.Vec3{screenW / 2, layout.PaddleY, 0}
	w.buildBlocks()
	w.ResetBall()
	return w
}

// BlockMesh returns the mesh shared by every block.
func (w *World) BlockMesh() *formats.OBJMesh {
	return w.blockMesh
}

func (w *World) buildBlocks() {
	m := w.blockMesh
	probe := NewObject("block", m, w.layout.Scale)
	bw, bh := probe.Footprint()

	centres := TileBlocks(w.Width, w.Height, bw, bh, Grid{
		Rows:      w.layout.BlockRows,
		Cols:      w.layout.BlockCols,
		Gap:       w.layout.BlockGap,
		TopMargin: w.layout.TopMargin,
	})

	w.Blocks = make([]*Object, 0, len(centres))
	for _, c := range centres {
		b := NewObject("block", m, w.layout.Scale)
		b.Position = mgl32.Vec3{c.X(), c.Y(), 0}
		w.Blocks = append(w.Blocks, b)
	}
}

// MovePaddle moves the paddle by axis*PaddleSpeed*dt, keeping it on screen.
// A resting ball rides along.
func (w *World) MovePaddle(axis, dt float32) {
	pw, _ := w.Paddle.Footprint()
	x := w.Paddle.Position.X() + axis*w.layout.PaddleSpeed*dt
	w.Paddle.Position[0] = ClampX(x, pw/2, 0, w.Width)

	if !w.Ball.Moving() {
		w.ResetBall()
	}
}

// ResetBall stops the ball and parks it on top of the paddle.
func (w *World) ResetBall() {
	_, ph := w.Paddle.Footprint()
	_, bh := w.Ball.Footprint()
	w.Ball.Stop()
	w.Ball.Position = mgl32.Vec3{
		w.Paddle.Position.X(),
		w.Paddle.Position.Y() + ph/2 + bh/2,
		0,
	}
}

// Step advances the ball. It reports true when the ball was lost.
func (w *World) Step(dt float32) bool {
	if !w.Ball.Moving() {
		return false
	}
	return w.Ball.Step(dt, w.Width, w.Height, w.Paddle)
}

// Resize changes the field size, re-laying the wall and keeping the paddle
// and ball inside the new bounds.
func (w *World) Resize(screenW, screenH float32) {
	w.Width, w.Height = screenW, screenH
	w.buildBlocks()
	w.MovePaddle(0, 0)
}

// Objects returns every object in draw order.
func (w *World) Objects() []*Object {
	objs := make([]*Object, 0, len(w.Blocks)+2)
	objs = append(objs, w.Blocks...)
	return append(objs, w.Paddle, w.Ball.Object)
}
