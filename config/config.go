package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration. Distances are in world units (pixels),
// times in seconds, speeds in units per second.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Player    PlayerConfig    `yaml:"player"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Debris    DebrisConfig    `yaml:"debris"`
	Collision CollisionConfig `yaml:"collision"`
	Audio     AudioConfig     `yaml:"audio"`
	Log       LogConfig       `yaml:"log"`
	Debug     DebugConfig     `yaml:"debug"`

	// Seed makes spawning reproducible. Empty means seed from the clock.
	Seed string `yaml:"seed"`
}

// WindowConfig is the desktop window
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PlayfieldConfig is the world rectangle, centered on the origin with y up
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// SpawnOffset is the distance of the spawn point above the bottom edge
	SpawnOffset  float64 `yaml:"spawn_offset"`
	FireInterval float64 `yaml:"fire_interval"`

	MaxHealth     int `yaml:"max_health"`
	NewGameHealth int `yaml:"new_game_health"`
}

type BulletConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// EnemySpeedFactor scales Speed for enemy bullets
	EnemySpeedFactor float64 `yaml:"enemy_speed_factor"`
	// Jitter is the per-axis random velocity added to enemy bullets
	Jitter        float64 `yaml:"jitter"`
	CleanupMargin float64 `yaml:"cleanup_margin"`
}

type EnemyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	SpawnInterval float64 `yaml:"spawn_interval"`
	MinPerWave    int     `yaml:"min_per_wave"`
	MaxPerWave    int     `yaml:"max_per_wave"`

	// SpeedFactor scales the player speed for the fall speed
	SpeedFactor float64 `yaml:"speed_factor"`

	VolleyInterval float64 `yaml:"volley_interval"`
	MaxShooters    int     `yaml:"max_shooters"`
	// ShooterFloor is the fraction of the playfield height below the centre
	// past which enemies stop firing
	ShooterFloor float64 `yaml:"shooter_floor"`
	// LeadTarget aims volleys at the player's predicted position
	LeadTarget bool `yaml:"lead_target"`

	CleanupMargin float64 `yaml:"cleanup_margin"`
}

type DebrisConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
	MaxPerWave    int     `yaml:"max_per_wave"`
	MinScale      float64 `yaml:"min_scale"`
	MaxScale      float64 `yaml:"max_scale"`
	BaseRadius    float64 `yaml:"base_radius"`
	MinSpeed      float64 `yaml:"min_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	Drift         float64 `yaml:"drift"`
	MaxSpin       float64 `yaml:"max_spin"`
	SpawnMargin   float64 `yaml:"spawn_margin"`
	CleanupMargin float64 `yaml:"cleanup_margin"`
}

type CollisionConfig struct {
	// Detector is "space" for the resolv space or "grid" for the parallel grid
	Detector string  `yaml:"detector"`
	CellSize float64 `yaml:"cell_size"`
	Workers  int     `yaml:"workers"`
	// AttackerPolicy is "consume" or "skip"
	AttackerPolicy string `yaml:"attacker_policy"`
	// Classifier is "index" for the spawn-time kind table or "tags" to
	// query entity tags on every lookup
	Classifier string `yaml:"classifier"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	// Path is a log file; empty writes to stderr
	Path string `yaml:"path"`
}

type DebugConfig struct {
	ShowColliders bool   `yaml:"show_colliders"`
	ProfileOnDrop bool   `yaml:"profile_on_drop"`
	ProfilesDir   string `yaml:"profiles_dir"`
	// DropFPS is the frame rate under which a profile is captured
	DropFPS float64 `yaml:"drop_fps"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     1000,
			Height:    1000,
			Title:     "Space Shooter",
			Resizable: true,
		},
		Playfield: PlayfieldConfig{
			Width:  1000,
			Height: 1000,
		},
		Player: PlayerConfig{
			Speed:         250,
			Width:         40,
			Height:        40,
			SpawnOffset:   100,
			FireInterval:  0.1,
			MaxHealth:     5,
			NewGameHealth: 10,
		},
		Bullet: BulletConfig{
			Speed:            500,
			Width:            4,
			Height:           15,
			EnemySpeedFactor: 0.6,
			Jitter:           20,
			CleanupMargin:    50,
		},
		Enemy: EnemyConfig{
			Width:          40,
			Height:         40,
			SpawnInterval:  2,
			MinPerWave:     1,
			MaxPerWave:     4,
			SpeedFactor:    0.8,
			VolleyInterval: 0.5,
			MaxShooters:    3,
			ShooterFloor:   0.8,
			CleanupMargin:  50,
		},
		Debris: DebrisConfig{
			SpawnInterval: 2,
			MaxPerWave:    3,
			MinScale:      0.5,
			MaxScale:      1.5,
			BaseRadius:    32,
			MinSpeed:      100,
			MaxSpeed:      200,
			Drift:         50,
			MaxSpin:       2,
			SpawnMargin:   50,
			CleanupMargin: 100,
		},
		Collision: CollisionConfig{
			Detector:       "space",
			CellSize:       64,
			Workers:        4,
			AttackerPolicy: "consume",
			Classifier:     "index",
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ProfilesDir: "profiles",
			DropFPS:     45,
		},
	}
}

// HalfWidth returns half the playfield width
func (p PlayfieldConfig) HalfWidth() float64 {
	return p.Width / 2
}

// HalfHeight returns half the playfield height
func (p PlayfieldConfig) HalfHeight() float64 {
	return p.Height / 2
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield must be positive, got %vx%v", c.Playfield.Width, c.Playfield.Height)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Player.Speed > 0, "player.speed must be positive")
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Player.FireInterval > 0, "player.fire_interval must be positive")
	check(c.Player.MaxHealth >= 1, "player.max_health must be at least 1, got %d", c.Player.MaxHealth)
	check(c.Player.NewGameHealth >= 1, "player.new_game_health must be at least 1, got %d", c.Player.NewGameHealth)
	check(c.Bullet.Speed > 0, "bullet.speed must be positive")
	check(c.Bullet.Width > 0 && c.Bullet.Height > 0, "bullet size must be positive")
	check(c.Enemy.Width > 0 && c.Enemy.Height > 0, "enemy size must be positive")
	check(c.Enemy.SpawnInterval > 0, "enemy.spawn_interval must be positive")
	check(c.Enemy.VolleyInterval > 0, "enemy.volley_interval must be positive")
	check(c.Enemy.MinPerWave >= 0 && c.Enemy.MinPerWave <= c.Enemy.MaxPerWave,
		"enemy wave range %d..%d is empty", c.Enemy.MinPerWave, c.Enemy.MaxPerWave)
	check(c.Enemy.MaxShooters >= 1, "enemy.max_shooters must be at least 1")
	check(c.Debris.SpawnInterval > 0, "debris.spawn_interval must be positive")
	check(c.Debris.MaxPerWave >= 0, "debris.max_per_wave must not be negative")
	check(c.Debris.MinScale > 0 && c.Debris.MinScale <= c.Debris.MaxScale,
		"debris scale range %v..%v is invalid", c.Debris.MinScale, c.Debris.MaxScale)
	check(c.Debris.MinSpeed <= c.Debris.MaxSpeed, "debris speed range is invalid")
	check(c.Collision.Detector == "space" || c.Collision.Detector == "grid",
		"collision.detector must be space or grid, got %q", c.Collision.Detector)
	check(c.Collision.CellSize > 0, "collision.cell_size must be positive")
	check(c.Collision.Workers >= 1, "collision.workers must be at least 1")
	check(c.Collision.AttackerPolicy == "consume" || c.Collision.AttackerPolicy == "skip",
		"collision.attacker_policy must be consume or skip, got %q", c.Collision.AttackerPolicy)
	check(c.Collision.Classifier == "index" || c.Collision.Classifier == "tags",
		"collision.classifier must be index or tags, got %q", c.Collision.Classifier)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0,1]")
	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive")
	_, levelErr := zapcore.ParseLevel(c.Log.Level)
	check(levelErr == nil, "log.level %q is unknown", c.Log.Level)

	return errors.Join(errs...)
}
