package engine

import (
	"math"
	"math/rand"
)

// Options tunes the engine. Zero values fall back to the defaults below.
type Options struct {
	MinZoom          float64
	MaxZoom          float64
	WheelSensitivity float64
	SnapThreshold    float64
	ArrangePadding   float64

	// Rand, when set, shuffles the candidate cells tried while placing
	// graph neighbors during arrange, restoring layout variety. When
	// nil, a fixed clockwise-from-top order keeps arrange deterministic.
	Rand *rand.Rand
}

const (
	DefaultMinZoom          = 0.2
	DefaultMaxZoom          = 4.0
	DefaultWheelSensitivity = 0.002
	DefaultSnapThreshold    = 8.0
	DefaultArrangePadding   = 40.0
)

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		MinZoom:          DefaultMinZoom,
		MaxZoom:          DefaultMaxZoom,
		WheelSensitivity: DefaultWheelSensitivity,
		SnapThreshold:    DefaultSnapThreshold,
		ArrangePadding:   DefaultArrangePadding,
	}
}

// normalized substitutes defaults for unset or non-finite fields.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if !(o.MinZoom > 0) || math.IsInf(o.MinZoom, 0) {
		o.MinZoom = def.MinZoom
	}
	if !(o.MaxZoom > 0) || math.IsInf(o.MaxZoom, 0) {
		o.MaxZoom = def.MaxZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MinZoom, o.MaxZoom = def.MinZoom, def.MaxZoom
	}
	if !(o.WheelSensitivity > 0) || math.IsInf(o.WheelSensitivity, 0) {
		o.WheelSensitivity = def.WheelSensitivity
	}
	if !(o.SnapThreshold > 0) || math.IsInf(o.SnapThreshold, 0) {
		o.SnapThreshold = def.SnapThreshold
	}
	if !(o.ArrangePadding > 0) || math.IsInf(o.ArrangePadding, 0) {
		o.ArrangePadding = def.ArrangePadding
	}
	return o
}
