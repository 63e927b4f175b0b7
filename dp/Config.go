package dp

import "fmt"

// Default configuration values
const (
	DefaultDiscount      float64 = 0.9
	DefaultTolerance     float64 = 1e-4
	DefaultMaxIterations int     = 1000
)

// Config represents a configuration for the dynamic programming solvers
type Config struct {
	// Discount is the discount factor, in (0, 1]
	Discount float64 `yaml:"discount" json:"discount"`

	// Tolerance is the convergence threshold: solving stops once a sweep
	// changes no state value by Tolerance or more
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// MaxIterations caps the number of sweeps (value iteration) or of
	// evaluation sweeps and improvement rounds (policy iteration)
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		Discount:      DefaultDiscount,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in (0, 1], have %v", c.Discount)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, have %v", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, have %v",
			c.MaxIterations)
	}
	return nil
}
