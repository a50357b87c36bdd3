package globetour

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the tour engine and its presentation.
//
// The zero value is not usable; start from DefaultConfig and override,
// or load a YAML file with LoadConfig.
type Config struct {
	// FPS is the render loop cadence in frames per second.
	FPS int `mapstructure:"fps"`

	// TweenDuration is how long the camera takes to frame each stop.
	TweenDuration time.Duration `mapstructure:"tween_duration"`

	// HoldDuration is the total dwell budget per stop, overlapping the
	// tween. The effective dwell is max(TweenDuration, HoldDuration)
	// unless the hold is cancelled.
	HoldDuration time.Duration `mapstructure:"hold_duration"`

	// FinaleDuration is the length of the end-of-tour pull-back tween
	// toward the neutral viewing direction.
	FinaleDuration time.Duration `mapstructure:"finale_duration"`

	// NeutralLat and NeutralLon are the fallback viewing direction the
	// camera settles on after the last stop. Not tied to any stop.
	NeutralLat float64 `mapstructure:"neutral_lat"`
	NeutralLon float64 `mapstructure:"neutral_lon"`

	// SpinRate is the idle auto-rotation rate (radians per frame) while
	// no tour is running.
	SpinRate float64 `mapstructure:"spin_rate"`

	// PausedSpinRate is the lighter auto-rotation restored when the tour
	// is paused mid-sequence.
	PausedSpinRate float64 `mapstructure:"paused_spin_rate"`

	// VisibleFraction is how much of the reference page height must be
	// on screen before the tour auto-starts.
	VisibleFraction float64 `mapstructure:"visible_fraction"`

	// CaptureDir, when non-empty, enables PNG frame capture of the tour.
	CaptureDir string `mapstructure:"capture_dir"`

	// ReportPath, when non-empty, is where the HTML itinerary report is
	// written after the program exits.
	ReportPath string `mapstructure:"report_path"`

	// LogFile receives structured logs. The terminal belongs to the UI,
	// so logging to stderr is only useful when piped.
	LogFile string `mapstructure:"log_file"`

	// Stops replaces the built-in catalog when non-empty.
	Stops []Stop `mapstructure:"stops"`
}

// DefaultConfig returns the reference tour configuration: a 30 fps loop,
// an 1800 ms framing tween inside a 2600 ms dwell per stop, and a
// 1200 ms pull-back to the mid-Atlantic neutral view.
func DefaultConfig() Config {
	return Config{
		FPS:             30,
		TweenDuration:   1800 * time.Millisecond,
		HoldDuration:    2600 * time.Millisecond,
		FinaleDuration:  1200 * time.Millisecond,
		NeutralLat:      15,
		NeutralLon:      -30,
		SpinRate:        0.0025,
		PausedSpinRate:  0.0006,
		VisibleFraction: 0.35,
		LogFile:         "globetour.log",
	}
}

// FrameInterval returns the render loop period derived from FPS.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// Catalog returns the configured stops, or the built-in catalog when the
// config carries none.
func (c Config) Catalog() Catalog {
	if len(c.Stops) > 0 {
		return Catalog(c.Stops)
	}
	return DefaultCatalog()
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults. A missing file is not an error: the defaults already
// describe a complete tour.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("fps", cfg.FPS)
	v.SetDefault("tween_duration", cfg.TweenDuration)
	v.SetDefault("hold_duration", cfg.HoldDuration)
	v.SetDefault("finale_duration", cfg.FinaleDuration)
	v.SetDefault("neutral_lat", cfg.NeutralLat)
	v.SetDefault("neutral_lon", cfg.NeutralLon)
	v.SetDefault("spin_rate", cfg.SpinRate)
	v.SetDefault("paused_spin_rate", cfg.PausedSpinRate)
	v.SetDefault("visible_fraction", cfg.VisibleFraction)
	v.SetDefault("log_file", cfg.LogFile)

	if err := v.ReadInConfig(); err != nil {
		// With an explicit file path viper surfaces a plain *fs.PathError
		// for an absent file, not its ConfigFileNotFoundError.
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}
