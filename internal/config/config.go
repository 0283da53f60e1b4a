// Package config handles game configuration loading and management.
package config

import "path/filepath"

// Config holds all game settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Layout  LayoutConfig  `yaml:"layout"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds projection settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
}

// ModelAsset pairs an OBJ mesh with its diffuse texture.
type ModelAsset struct {
	Model   string `yaml:"model"`
	Texture string `yaml:"texture"`
}

// AssetsConfig holds asset file locations. Relative model and texture paths
// are resolved against Dir.
type AssetsConfig struct {
	Dir    string     `yaml:"dir"`
	Paddle ModelAsset `yaml:"paddle"`
	Ball   ModelAsset `yaml:"ball"`
	Block  ModelAsset `yaml:"block"`
}

// Resolve returns p joined with the asset directory unless p is absolute.
func (a AssetsConfig) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.Dir, p)
}

// LayoutConfig holds gameplay layout settings in screen pixels.
type LayoutConfig struct {
	Scale       float32 `yaml:"scale"`
	BlockRows   int     `yaml:"block_rows"`
	BlockCols   int     `yaml:"block_cols"`
	BlockGap    float32 `yaml:"block_gap"`
	TopMargin   float32 `yaml:"top_margin"`
	PaddleY     float32 `yaml:"paddle_y"`
	PaddleSpeed float32 `yaml:"paddle_speed"` // pixels per second
	BallSpeed   float32 `yaml:"ball_speed"`   // pixels per second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Breakout",
			Width:      1600,
			Height:     1100,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOVDegrees: 90,
			Near:       0.1,
		},
		Assets: AssetsConfig{
			Dir:    "assets",
			Paddle: ModelAsset{Model: "pad.obj", Texture: "pad.png"},
			Ball:   ModelAsset{Model: "ball.obj", Texture: "ball.png"},
			Block:  ModelAsset{Model: "block.obj", Texture: "block.png"},
		},
		Layout: LayoutConfig{
			Scale:       8,
			BlockRows:   5,
			BlockCols:   10,
			BlockGap:    8,
			TopMargin:   80,
			PaddleY:     60,
			PaddleSpeed: 900,
			BallSpeed:   500,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
