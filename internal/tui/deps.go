package tui

import (
	"log/slog"
	"time"

	"github.com/lunaclock/luna/internal/astro"
	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/skypath"
)

// Illuminator reports the percent of the lunar disc lit at an instant.
type Illuminator interface {
	Illumination(t time.Time) float64
}

type Deps struct {
	Logger      *slog.Logger
	Provider    astro.Provider
	Illuminator Illuminator
	Location    config.Location
	Face        skypath.Config
}
