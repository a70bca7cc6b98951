package engine

import "time"

// Config controls how a run is scheduled.
type Config struct {
	// Parallel runs independent checks concurrently
	Parallel bool `json:"parallel" yaml:"parallel" mapstructure:"parallel"`
	// MaxParallel bounds the number of checks running at once
	MaxParallel int `json:"maxParallel" yaml:"maxParallel" mapstructure:"maxParallel" validate:"min=1"`
	// FailFast stops scheduling new checks after the first failure
	FailFast bool `json:"failFast" yaml:"failFast" mapstructure:"failFast"`
	// Timeout caps the runtime of a single check and must be positive.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		MaxParallel: 4,
		Timeout:     30 * time.Second,
	}
}
