package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxBounceAngle limits how far from vertical the paddle can deflect the ball.
const maxBounceAngle = math.Pi / 3

// Ball moves at constant speed on the screen plane.
type Ball struct {
	*Object
	Velocity mgl32.Vec2
	Speed    float32
}

// Launch sends the ball straight up at its configured speed.
func (b *Ball) Launch() {
	b.Velocity = mgl32.Vec2{0, b.Speed}
}

// Moving reports whether the ball has been launched.
func (b *Ball) Moving() bool {
	return b.Velocity.Len() > 0
}

// Stop halts the ball.
func (b *Ball) Stop() {
	b.Velocity = mgl32.Vec2{}
}

// Step advances the ball by dt seconds inside a screenW x screenH field,
// reflecting off the side and top walls and the paddle. It reports true once
// the ball has fallen below the bottom edge.
func (b *Ball) Step(dt, screenW, screenH float32, paddle *Object) (lost bool) {
	pos := b.Position.Vec2().Add(b.Velocity.Mul(dt))
	w, h := b.Footprint()
	hw, hh := w/2, h/2

	switch {
	case pos.X()-hw < 0:
		pos[0] = hw
		b.Velocity[0] = abs(b.Velocity[0])
	case pos.X()+hw > screenW:
		pos[0] = screenW - hw
		b.Velocity[0] = -abs(b.Velocity[0])
	}
	if pos.Y()+hh > screenH {
		pos[1] = screenH - hh
		b.Velocity[1] = -abs(b.Velocity[1])
	}

	b.Position = mgl32.Vec3{pos.X(), pos.Y(), b.Position.Z()}

	if paddle != nil && b.Velocity.Y() < 0 {
		pr := paddle.Rect()
		if b.Rect().Overlaps(pr) {
			b.bounceOff(pr)
		}
	}

	return b.Position.Y()+hh < 0
}

// bounceOff reflects the ball upwards, angled by where it struck the paddle.
func (b *Ball) bounceOff(pr Rect) {
	_, h := b.Footprint()
	half := (pr.MaxX - pr.MinX) / 2
	centre := pr.MinX + half

	offset := float32(0)
	if half > 0 {
		offset = mgl32.Clamp((b.Position.X()-centre)/half, -1, 1)
	}
	angle := float64(offset) * maxBounceAngle
	speed := b.Velocity.Len()

	b.Velocity = mgl32.Vec2{
		speed * float32(math.Sin(angle)),
		speed * float32(math.Cos(angle)),
	}
	b.Position[1] = pr.MaxY + h/2
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
