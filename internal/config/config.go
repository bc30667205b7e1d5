package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is probed when no explicit config file is given; its absence
// is not an error.
const DefaultPath = "fitfix.yml"

// File holds the user-tunable cleaning thresholds. These are the only two
// knobs the cleaner exposes; a zero value means "keep the built-in default".
type File struct {
	SpeedLimitMS             float64 `yaml:"speedLimitMS" validate:"gte=0"`
	MaxConsecutiveRejections int     `yaml:"maxConsecutiveRejections" validate:"gte=0"`
}

// Load reads and validates the threshold file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &f, nil
}

// LoadDefault reads DefaultPath if it exists; a missing file yields nil
// without error.
func LoadDefault() (*File, error) {
	if _, err := os.Stat(DefaultPath); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(DefaultPath)
}
