// package config loads the demo's runtime settings from a YAML file. Every
// field has a sensible default so a missing or malformed file never stops the
// demo from starting.
package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig holds windowing settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TrackConfig holds the procedural ring track settings.
type TrackConfig struct {
	Radius        float32 `yaml:"radius"`
	ControlPoints int     `yaml:"control_points"`
	Width         float32 `yaml:"width"`
	Segments      int     `yaml:"segments"`
	SignCount     int     `yaml:"sign_count"`
	SignOffset    float32 `yaml:"sign_offset"`
}

// MotionConfig holds the car motion settings.
type MotionConfig struct {
	AutoSpeed   float32 `yaml:"auto_speed"`
	ManualSpeed float32 `yaml:"manual_speed"`
	SteerAngle  float32 `yaml:"steer_angle"`
	SteerDrift  float32 `yaml:"steer_drift"`
}

// CameraConfig holds the chase camera settings.
type CameraConfig struct {
	Fov            float32 `yaml:"fov"`
	FollowDistance float32 `yaml:"follow_distance"`
	FollowHeight   float32 `yaml:"follow_height"`
	Smoothing      float32 `yaml:"smoothing"`
	IdleSmoothing  float32 `yaml:"idle_smoothing"`
}

// EngineConfig holds loop timing and diagnostics settings.
type EngineConfig struct {
	TickRate   float64 `yaml:"tick_rate"`
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
}

// Config is the root of the demo's settings file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Track  TrackConfig  `yaml:"track"`
	Motion MotionConfig `yaml:"motion"`
	Camera CameraConfig `yaml:"camera"`
	Engine EngineConfig `yaml:"engine"`
}

// Default returns the built-in settings used when no file is present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "RC Car",
			Width:  1280,
			Height: 720,
		},
		Track: TrackConfig{
			Radius:        40,
			ControlPoints: 12,
			Width:         6,
			Segments:      256,
			SignCount:     4,
			SignOffset:    5,
		},
		Motion: MotionConfig{
			AutoSpeed:   0.02,
			ManualSpeed: 0.04,
			SteerAngle:  0.03,
			SteerDrift:  0.0005,
		},
		Camera: CameraConfig{
			Fov:            1.0472, // 60 degrees
			FollowDistance: 8,
			FollowHeight:   4,
			Smoothing:      0.08,
			IdleSmoothing:  0.03,
		},
		Engine: EngineConfig{
			TickRate:   60,
			FrameLimit: 0,
		},
	}
}

// Load reads the settings file at path. A missing file returns the defaults
// silently; an unreadable or malformed file logs the problem and returns the
// defaults so the demo still starts.
//
// Parameters:
//   - path: the YAML settings file path
//
// Returns:
//   - Config: the loaded configuration, or the defaults
func Load(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Config] could not read %s, using defaults: %v", path, err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("[Config] could not parse %s, using defaults: %v", path, err)
		return Default()
	}

	return cfg.sanitized()
}

// sanitized clamps out-of-range values back to their defaults so a partial or
// sloppy settings file cannot produce a degenerate demo.
func (c Config) sanitized() Config {
	def := Default()

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width = def.Window.Width
		c.Window.Height = def.Window.Height
	}
	if c.Track.Radius <= 0 {
		c.Track.Radius = def.Track.Radius
	}
	if c.Track.ControlPoints < 8 {
		c.Track.ControlPoints = def.Track.ControlPoints
	}
	if c.Track.Width <= 0 {
		c.Track.Width = def.Track.Width
	}
	if c.Track.Segments < 3 {
		c.Track.Segments = def.Track.Segments
	}
	if c.Track.SignCount < 0 {
		c.Track.SignCount = 0
	}
	if c.Motion.AutoSpeed <= 0 {
		c.Motion.AutoSpeed = def.Motion.AutoSpeed
	}
	if c.Motion.ManualSpeed <= 0 {
		c.Motion.ManualSpeed = def.Motion.ManualSpeed
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 3.1 {
		c.Camera.Fov = def.Camera.Fov
	}
	if c.Camera.FollowDistance <= 0 {
		c.Camera.FollowDistance = def.Camera.FollowDistance
	}
	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		c.Camera.Smoothing = def.Camera.Smoothing
	}
	if c.Camera.IdleSmoothing <= 0 || c.Camera.IdleSmoothing > 1 {
		c.Camera.IdleSmoothing = def.Camera.IdleSmoothing
	}
	if c.Engine.TickRate <= 0 {
		c.Engine.TickRate = def.Engine.TickRate
	}
	return c
}
