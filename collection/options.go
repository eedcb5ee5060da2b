package collection

import "go.uber.org/zap"

type Config struct {
	Logger *zap.Logger

	// MaxIterations bounds the number of collisions a single Normalize call may
	// resolve. Zero means unbounded.
	MaxIterations int
}

type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		Logger: zap.NewNop(),
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func WithMaxIterations(n int) Option {
	return func(c *Config) {
		c.MaxIterations = n
	}
}
