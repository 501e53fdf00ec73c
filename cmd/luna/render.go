package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/lunaclock/luna/internal/annotate"
	"github.com/lunaclock/luna/internal/apperr"
	"github.com/lunaclock/luna/internal/astro"
	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/ephem"
	"github.com/lunaclock/luna/internal/library"
	"github.com/lunaclock/luna/internal/paths"
	"github.com/lunaclock/luna/internal/render/magick"
	"github.com/lunaclock/luna/internal/skypath"
	"github.com/lunaclock/luna/internal/xslog"
)

// runRender is one clock tick: compute the sky, compose the face,
// optionally push it to the panel. Failures land on the panel too, as a
// text card, so a headless clock never goes silently stale.
func runRender(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := paths.EnsureDir(); err != nil {
		return err
	}
	out, err := paths.Output()
	if err != nil {
		return err
	}

	renderer := magick.New(cfg.Width, cfg.Height)

	if err := renderTick(ctx, cfg, renderer, out); err != nil {
		xslog.FromContext(ctx).ErrorContext(ctx, "tick failed", xslog.Error(err))
		lines := []string{"luna cannot draw the sky", err.Error(), time.Now().Format(time.RFC822)}
		if cardErr := renderer.DebugCard(ctx, lines, out); cardErr != nil {
			return errors.Join(err, cardErr)
		}
		if dispErr := display(ctx, cfg, out); dispErr != nil {
			return errors.Join(err, dispErr)
		}
		return err
	}

	return display(ctx, cfg, out)
}

func renderTick(ctx context.Context, cfg config.Config, renderer *magick.Renderer, out string) error {
	locPath, err := paths.Location()
	if err != nil {
		return err
	}
	loc, err := config.LoadLocation(locPath)
	if errors.Is(err, config.ErrNotConfigured) {
		return apperr.NeedsConfig(
			apperr.WithMessage("no location saved; visit the setup page first"),
			apperr.WithCause(err),
		)
	}
	if err != nil {
		return err
	}

	provider := ephem.Provider{}
	now := time.Now().UTC()

	sample, err := astro.SampleAt(provider, now, loc.Latitude, loc.Longitude)
	if err != nil {
		return err
	}

	rise, set, err := astro.NearestRiseSet(provider, sample)
	if err != nil {
		return err
	}

	xslog.FromContext(ctx).InfoContext(ctx, "computed sky",
		xslog.ObserverGroup(loc.Latitude, loc.Longitude),
		xslog.Altitude(sample.Altitude()),
		xslog.Azimuth(sample.Azimuth()),
		xslog.Rise(rise.Time),
		xslog.Set(set.Time),
	)

	face := skypath.Config{
		InnerRadius: cfg.InnerRadius,
		OuterRadius: cfg.OuterRadius,
		DotRadius:   cfg.DotRadius,
		Step:        skypath.DefaultStep,
		ControlK:    skypath.DefaultControlK,
	}

	path, err := skypath.Trace(provider, rise, set, face)
	if err != nil {
		return err
	}

	tz, err := cfg.DisplayLocation()
	if err != nil {
		return fmt.Errorf("resolving display timezone: %w", err)
	}

	in := annotate.Input{
		Now:     now,
		Current: sample,
		Rise:    rise,
		Set:     set,
		Path:    path,
		Face:    face,
		TZ:      tz,
		Percent: provider.Illumination(now),
	}

	// The moon image is decorative: a miss degrades to grid-only.
	if img := findMoonImage(ctx, now); img != nil {
		in.ImagePath = img.Path
		in.ImageAngle = img.PosAngle
	}

	return renderer.Render(ctx, annotate.Annotate(in), out)
}

func findMoonImage(ctx context.Context, now time.Time) *library.Image {
	logger := xslog.FromContext(ctx)

	dbPath, err := paths.DB()
	if err != nil {
		return nil
	}
	repo, err := library.Open(ctx, dbPath)
	if err != nil {
		logger.WarnContext(ctx, "moon library unavailable", xslog.Error(err))
		return nil
	}
	defer func() { _ = repo.Close() }()

	finder := library.NewFinder(repo)
	target, err := finder.Target(ctx, now)
	if err != nil {
		logger.WarnContext(ctx, "no target record for this hour", xslog.Error(err))
		return nil
	}
	best, err := finder.Best(ctx, target)
	if err != nil {
		logger.WarnContext(ctx, "no matching moon image", xslog.Error(err))
		return nil
	}
	logger.DebugContext(ctx, "matched moon image",
		xslog.ImageID(int64(best.Frame)),
		xslog.File(best.Path),
	)
	return best
}

// display hands the rendered file to the configured panel command.
func display(ctx context.Context, cfg config.Config, out string) error {
	if cfg.DisplayCommand == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.DisplayTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.DisplayCommand, out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("display command failed: %w\noutput: %s", err, output)
	}
	return nil
}
