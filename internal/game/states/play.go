package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/breakout/internal/game/world"
	"github.com/Faultbox/breakout/internal/logger"
)

// Serve holds the ball on the paddle until the player launches it.
type Serve struct {
	manager *Manager
	world   *world.World
	play    *Play
}

// Play moves the ball until it drops past the paddle.
type Play struct {
	manager *Manager
	world   *world.World
	serve   *Serve
	log     *zap.Logger

	lost int
}

// NewRound wires the serve and play states for w and returns the serve state
// to start from.
func NewRound(m *Manager, w *world.World) *Serve {
	serve := &Serve{manager: m, world: w}
	play := &Play{manager: m, world: w, serve: serve, log: logger.Named("play")}
	serve.play = play
	return serve
}

func (s *Serve) Name() string { return "serve" }

func (s *Serve) Enter() error {
	s.world.ResetBall()
	return nil
}

func (s *Serve) Exit() error { return nil }

func (s *Serve) Update(dt float64, in Controls) error {
	s.world.MovePaddle(in.Axis, float32(dt))
	if in.Launch {
		s.manager.Change(s.play)
	}
	return nil
}

func (p *Play) Name() string { return "play" }

func (p *Play) Enter() error {
	p.world.Ball.Launch()
	return nil
}

func (p *Play) Exit() error { return nil }

func (p *Play) Update(dt float64, in Controls) error {
	p.world.MovePaddle(in.Axis, float32(dt))
	if p.world.Step(float32(dt)) {
		p.lost++
		p.log.Info("ball lost", zap.Int("total", p.lost))
		p.manager.Change(p.serve)
	}
	return nil
}

// Lost returns how many balls have dropped past the paddle.
func (p *Play) Lost() int {
	return p.lost
}
