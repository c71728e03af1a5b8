package gesture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultClickDelay is how long a stationary tap waits for a second tap
// before it is reported as a single click.
const DefaultClickDelay = 250 * time.Millisecond

// ErrInvalidConfig is returned (wrapped) for configuration values that cannot
// be used.
var ErrInvalidConfig = errors.New("invalid gesture config")

// Config holds the options for Bind. The zero value is usable: missing
// fields are filled from DefaultConfig.
type Config struct {
	// ClickDelay is the single/double click disambiguation window.
	ClickDelay time.Duration
	// Scheduler runs the deferred single-click check. Defaults to WallClock.
	// Game loops should pass a FrameScheduler so callbacks stay on the
	// update goroutine.
	Scheduler Scheduler
	// Logger receives debug traces and recovered callback panics.
	// Defaults to a logger that discards everything, or a stderr text logger
	// at debug level when Debug is set.
	Logger *slog.Logger
	// Sink, when set, receives every recognized gesture.
	Sink EventSink
	// Debug enables verbose classification logging.
	Debug bool
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		ClickDelay: DefaultClickDelay,
		Scheduler:  WallClock{},
	}
}

func (c Config) withDefaults() Config {
	if c.ClickDelay <= 0 {
		c.ClickDelay = DefaultClickDelay
	}
	if c.Scheduler == nil {
		c.Scheduler = WallClock{}
	}
	if c.Logger == nil {
		if c.Debug {
			c.Logger, _ = NewLogger("debug", "text", os.Stderr)
		} else {
			c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return c
}

// --- TOML file support ---

type fileConfig struct {
	ClickDelayMS int           `toml:"click_delay_ms"`
	Debug        bool          `toml:"debug"`
	Log          fileLogConfig `toml:"log"`
}

type fileLogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ParseConfig decodes a TOML document such as
//
//	click_delay_ms = 300
//	debug = false
//
//	[log]
//	level = "info"
//	format = "json"
//
// Logs go to stderr. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return Config{}, fmt.Errorf("parse gesture config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if fc.ClickDelayMS < 0 {
		return Config{}, fmt.Errorf("%w: click_delay_ms must not be negative, got %d", ErrInvalidConfig, fc.ClickDelayMS)
	}

	cfg := DefaultConfig()
	if fc.ClickDelayMS > 0 {
		cfg.ClickDelay = time.Duration(fc.ClickDelayMS) * time.Millisecond
	}
	cfg.Debug = fc.Debug

	level := fc.Log.Level
	if level == "" && fc.Debug {
		level = "debug"
	}
	if level != "" || fc.Log.Format != "" {
		logger, err := NewLogger(level, fc.Log.Format, os.Stderr)
		if err != nil {
			return Config{}, err
		}
		cfg.Logger = logger
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read gesture config: %w", err)
	}
	return ParseConfig(data)
}
