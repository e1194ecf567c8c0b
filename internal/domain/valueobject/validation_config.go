// Package valueobject contains domain value objects for the accounting office system.
package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValueSource selects which trial-balance figure feeds a node's raw aggregate.
type ValueSource string

const (
	ValueSourceClosing  ValueSource = "closing"
	ValueSourceMovement ValueSource = "movement"
)

// IsValid reports whether the value source is known.
func (s ValueSource) IsValid() bool {
	return s == ValueSourceClosing || s == ValueSourceMovement
}

// DefaultTolerance is the largest difference still reported as consistent.
var DefaultTolerance = decimal.RequireFromString("0.01")

// ValidationConfig contains the policy knobs of a validation run.
type ValidationConfig struct {
	// Tolerance is inclusive: a difference equal to it is consistent.
	Tolerance   decimal.Decimal
	Workers     int
	CacheTTL    time.Duration
	ValueSource ValueSource
}

// DefaultValidationConfig returns the default validation configuration.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		Tolerance:   DefaultTolerance,
		Workers:     4,
		CacheTTL:    10 * time.Minute,
		ValueSource: ValueSourceClosing,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c ValidationConfig) Validate() error {
	if c.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance must not be negative, got %s", c.Tolerance.String())
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !c.ValueSource.IsValid() {
		return fmt.Errorf("unknown value source %q", c.ValueSource)
	}
	return nil
}

// IsWithinTolerance reports whether two values agree within the tolerance.
func (c ValidationConfig) IsWithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(c.Tolerance)
}
