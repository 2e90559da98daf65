package config

import "github.com/me/schedopt/internal/solver"

// ServerConfig holds configuration for the schedopt server.
type ServerConfig struct {
	Addr       string // Listen address (default ":5057")
	LogLevel   string // Log level: debug, info, warn, error
	LogFormat  string // Log format: text, json
	Seed       int64  // Annealing seed; instances carrying "seed" override it
	Iterations int    // Annealing budget; instances carrying "max_iter" override it
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	params := solver.DefaultParams()
	return ServerConfig{
		Addr:       ":5057",
		LogLevel:   "info",
		LogFormat:  "text",
		Seed:       params.Seed,
		Iterations: params.Iterations,
	}
}

// Params returns the annealing parameters configured for the server.
func (c ServerConfig) Params() solver.Params {
	return solver.Params{Seed: c.Seed, Iterations: c.Iterations}
}
