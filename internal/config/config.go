package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AccessKey      string `envconfig:"ACCESS_KEY" default:""`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	// Engine tuning. Zero values fall back to the engine defaults.
	MinZoom          float64 `envconfig:"MIN_ZOOM" default:"0.2"`
	MaxZoom          float64 `envconfig:"MAX_ZOOM" default:"4.0"`
	WheelSensitivity float64 `envconfig:"WHEEL_SENSITIVITY" default:"0.002"`
	SnapThreshold    float64 `envconfig:"SNAP_THRESHOLD" default:"8"`
	ArrangePadding   float64 `envconfig:"ARRANGE_PADDING" default:"40"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
