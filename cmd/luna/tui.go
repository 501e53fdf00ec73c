package main

import (
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/ephem"
	"github.com/lunaclock/luna/internal/paths"
	"github.com/lunaclock/luna/internal/skypath"
	"github.com/lunaclock/luna/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Watch the sky in your terminal",
		Long:  "Opens a full-screen terminal rendition of the clock face, refreshed each minute.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			locPath, err := paths.Location()
			if err != nil {
				return err
			}
			loc, err := config.LoadLocation(locPath)
			if errors.Is(err, config.ErrNotConfigured) {
				return fmt.Errorf("no location saved; visit the setup page first")
			}
			if err != nil {
				return err
			}

			provider := ephem.Provider{}
			deps := tui.Deps{
				Logger:      slog.Default(),
				Provider:    provider,
				Illuminator: provider,
				Location:    loc,
				Face: skypath.Config{
					InnerRadius: cfg.InnerRadius,
					OuterRadius: cfg.OuterRadius,
					DotRadius:   cfg.DotRadius,
					Step:        skypath.DefaultStep,
					ControlK:    skypath.DefaultControlK,
				},
			}
			model := tui.New(deps)

			p := tea.NewProgram(&model)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}
}
