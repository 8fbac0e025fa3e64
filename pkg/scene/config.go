package scene

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxTiltDegrees is the full angular range used for each axis of
// the scene rotation when no other value is configured.
const DefaultMaxTiltDegrees = 45.0

// PlaneFlattening is the Y scale applied to the plane body to turn a disk
// of the configured radius into a thin ground surface.
const PlaneFlattening = 0.001

// MaxBodies is the largest MaxBodyCount a config may ask for.
const MaxBodies = 10000

// MaxExtent bounds PlaneRadius and DriftRange so rotated positions and
// transforms stay finite.
const MaxExtent = 1e12

// ErrInvalidConfig is the sentinel every ConfigError unwraps to.
var ErrInvalidConfig = errors.New("invalid placement config")

// ConfigError describes a single invalid PlacementConfig field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// PlacementConfig holds the parameters of a scene generation.
type PlacementConfig struct {
	PlaneRadius                 float64 `json:"planeRadius"`
	CenterRadius                float64 `json:"centerRadius"`
	DriftRange                  float64 `json:"driftRange"` // vertical jitter, full range centered on 0
	MinSize                     float64 `json:"minSize"`
	MaxSize                     float64 `json:"maxSize"`
	MinCenterDistanceMultiplier float64 `json:"minCenterDistanceMultiplier"`
	MinBodyCount                int     `json:"minBodyCount"`
	MaxBodyCount                int     `json:"maxBodyCount"`
	MaxTiltDegrees              float64 `json:"maxTiltDegrees"`
	Palette                     Palette `json:"palette"` // zero value selects DefaultPalette
}

// DefaultPlacementConfig returns the stock orbit visualizer settings.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		PlaneRadius:                 5,
		CenterRadius:                0.3,
		DriftRange:                  0.5,
		MinSize:                     0.05,
		MaxSize:                     0.2,
		MinCenterDistanceMultiplier: 2.5,
		MinBodyCount:                10,
		MaxBodyCount:                30,
		MaxTiltDegrees:              DefaultMaxTiltDegrees,
		Palette:                     DefaultPalette(),
	}
}

// MinCenterDistance is the smallest planar distance from the origin an
// orbiting body may be placed at.
func (c PlacementConfig) MinCenterDistance() float64 {
	return c.CenterRadius * c.MinCenterDistanceMultiplier
}

func (c PlacementConfig) palette() Palette {
	if c.Palette.IsZero() {
		return DefaultPalette()
	}
	return c.Palette
}

// Validate checks the config and returns all violations joined together,
// or nil. Every returned violation is a *ConfigError.
func (c PlacementConfig) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	floats := []struct {
		field string
		v     float64
	}{
		{"planeRadius", c.PlaneRadius},
		{"centerRadius", c.CenterRadius},
		{"driftRange", c.DriftRange},
		{"minSize", c.MinSize},
		{"maxSize", c.MaxSize},
		{"minCenterDistanceMultiplier", c.MinCenterDistanceMultiplier},
		{"maxTiltDegrees", c.MaxTiltDegrees},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			bad(f.field, "must be finite, got %g", f.v)
		}
	}

	if !(c.PlaneRadius > 0) {
		bad("planeRadius", "must be positive, got %g", c.PlaneRadius)
	}
	if !(c.CenterRadius > 0) {
		bad("centerRadius", "must be positive, got %g", c.CenterRadius)
	}
	if !(c.MinCenterDistanceMultiplier > 0) {
		bad("minCenterDistanceMultiplier", "must be positive, got %g", c.MinCenterDistanceMultiplier)
	}
	if !(c.DriftRange >= 0) {
		bad("driftRange", "must not be negative, got %g", c.DriftRange)
	}
	if c.PlaneRadius > MaxExtent {
		bad("planeRadius", "must be at most %g, got %g", MaxExtent, c.PlaneRadius)
	}
	if c.DriftRange > MaxExtent {
		bad("driftRange", "must be at most %g, got %g", MaxExtent, c.DriftRange)
	}
	if !(c.MinSize > 0) {
		bad("minSize", "must be positive, got %g", c.MinSize)
	}
	if !(c.MaxSize > 0) {
		bad("maxSize", "must be positive, got %g", c.MaxSize)
	}
	if c.MinSize > c.MaxSize {
		bad("minSize", "%g exceeds maxSize %g", c.MinSize, c.MaxSize)
	}
	if c.MinBodyCount <= 0 {
		bad("minBodyCount", "must be positive, got %d", c.MinBodyCount)
	}
	if c.MaxBodyCount <= 0 {
		bad("maxBodyCount", "must be positive, got %d", c.MaxBodyCount)
	}
	if c.MaxBodyCount > MaxBodies {
		bad("maxBodyCount", "must be at most %d, got %d", MaxBodies, c.MaxBodyCount)
	}
	if c.MinBodyCount > c.MaxBodyCount {
		bad("minBodyCount", "%d exceeds maxBodyCount %d", c.MinBodyCount, c.MaxBodyCount)
	}
	if !(c.MaxTiltDegrees >= 0 && c.MaxTiltDegrees <= 360) {
		bad("maxTiltDegrees", "must be within [0, 360], got %g", c.MaxTiltDegrees)
	}
	// Sampling rejects distances below the minimum; with nothing left to
	// accept it would never terminate.
	if c.PlaneRadius > 0 && c.MinCenterDistance() >= c.PlaneRadius {
		bad("minCenterDistanceMultiplier", "min center distance %g must be less than planeRadius %g",
			c.MinCenterDistance(), c.PlaneRadius)
	}

	return errors.Join(errs...)
}
