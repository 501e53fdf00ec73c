package tui

import (
	"time"

	"github.com/lunaclock/luna/internal/tui/components/skyview"
)

const tickInterval = time.Minute

// TickMsg fires once a minute to recompute the face.
type TickMsg struct{}

// SkyMsg carries a freshly computed face snapshot.
type SkyMsg struct {
	View    skyview.SkyView
	Now     time.Time
	Percent float64
	Err     error
}
