package tui

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/lunaclock/luna/internal/astro"
	"github.com/lunaclock/luna/internal/skypath"
	"github.com/lunaclock/luna/internal/tui/components/skyview"
)

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// computeSkyCmd runs the whole pipeline for one instant: sample, locate
// the surrounding rise/set pair, trace the path and package a view.
func computeSkyCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		now := time.Now().UTC()
		msg := SkyMsg{Now: now}

		sample, err := astro.SampleAt(deps.Provider, now, deps.Location.Latitude, deps.Location.Longitude)
		if err != nil {
			msg.Err = fmt.Errorf("sampling current position: %w", err)
			return msg
		}

		if deps.Illuminator != nil {
			msg.Percent = deps.Illuminator.Illumination(now)
		}

		view := skyview.SkyView{
			Face: deps.Face,
			Dot:  deps.Face.PointFor(sample.Altitude(), sample.Azimuth()),
		}

		rise, set, err := astro.NearestRiseSet(deps.Provider, sample)
		if errors.Is(err, astro.ErrGeometryUnavailable) {
			// No path to draw; the dot alone is still worth showing.
			msg.View = view
			return msg
		}
		if err != nil {
			msg.Err = err
			return msg
		}

		path, err := skypath.Trace(deps.Provider, rise, set, deps.Face)
		if err != nil {
			msg.Err = err
			return msg
		}

		view.Path = path
		view.HasPath = true
		view.RiseText = rise.Time.Local().Format("15:04")
		view.SetText = set.Time.Local().Format("15:04")
		msg.View = view
		return msg
	}
}
