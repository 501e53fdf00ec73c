// Package config reads process configuration from the environment and
// the saved observer location from disk.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }

// Face dimensions default to the 1872x1404 e-paper panel the clock
// ships with; the annulus and indicator sizes follow from it.
type Config struct {
	Environment Environment `env:"APP_ENV" envDefault:"production"`

	Width  int `env:"LUNA_WIDTH" envDefault:"1872"`
	Height int `env:"LUNA_HEIGHT" envDefault:"1404"`

	InnerRadius float64 `env:"LUNA_INNER_RADIUS" envDefault:"632"`
	OuterRadius float64 `env:"LUNA_OUTER_RADIUS" envDefault:"702"`
	DotRadius   float64 `env:"LUNA_DOT_RADIUS" envDefault:"10"`

	// DisplayCommand is run with the rendered file as its last argument;
	// empty means render only.
	DisplayCommand string        `env:"LUNA_DISPLAY_CMD"`
	DisplayTimeout time.Duration `env:"LUNA_DISPLAY_TIMEOUT" envDefault:"30s"`

	// TZ is the IANA zone for all face text; empty means the system zone.
	// The sky itself is always computed in UT.
	TZ string `env:"LUNA_TZ"`

	// SetupAddr is where the location form is served.
	SetupAddr string `env:"LUNA_SETUP_ADDR" envDefault:":8080"`

	SVSBaseURL string `env:"LUNA_SVS_URL" envDefault:"https://svs.gsfc.nasa.gov"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

// DisplayLocation resolves TZ to a time location.
func (c Config) DisplayLocation() (*time.Location, error) {
	if c.TZ == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TZ)
}
