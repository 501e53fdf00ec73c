package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lunaclock/luna/internal/version"
	"github.com/lunaclock/luna/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:     "luna",
		Short:   "A clock that tells lunar time",
		Long:    "Renders the Moon's position, path and face for the configured location.",
		Version: version.Get(),
		RunE:    runRender,
	}

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
