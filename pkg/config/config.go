// Package config loads the carve binary's TOML settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings read from a carve TOML file. Fields missing
// from the file keep their Default values.
type Config struct {
	// EvalTimeoutMS bounds a single script evaluation, in milliseconds.
	EvalTimeoutMS int `toml:"eval_timeout_ms"`

	// CylinderSegments is the resolution used for cylinders that do not
	// give their own.
	CylinderSegments int `toml:"cylinder_segments"`

	// Palette colors are assigned to output parts in order, wrapping around.
	Palette []string `toml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EvalTimeoutMS:    5000,
		CylinderSegments: 32,
		Palette: []string{
			"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
			"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
		},
	}
}

// Load reads and validates the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: unknown keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.EvalTimeoutMS <= 0 {
		return fmt.Errorf("config: eval_timeout_ms must be positive, got %d", c.EvalTimeoutMS)
	}
	if c.CylinderSegments < 3 {
		return fmt.Errorf("config: cylinder_segments must be at least 3, got %d", c.CylinderSegments)
	}
	if len(c.Palette) == 0 {
		return errors.New("config: palette must not be empty")
	}
	for i, color := range c.Palette {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("config: palette[%d] = %q, want #RRGGBB", i, color)
		}
	}
	return nil
}

// EvalTimeout returns EvalTimeoutMS as a duration.
func (c Config) EvalTimeout() time.Duration {
	return time.Duration(c.EvalTimeoutMS) * time.Millisecond
}

// Color returns the palette entry for the i-th part.
func (c Config) Color(i int) string {
	return c.Palette[i%len(c.Palette)]
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
