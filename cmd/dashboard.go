package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CordisO/Vybrato/internal/config"
	"github.com/CordisO/Vybrato/internal/dashboard"
	"github.com/CordisO/Vybrato/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dashboardPlain    bool
	dashboardLogFile  string
	dashboardLogLevel string
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse your Spotify account",
	Long: `Render your Spotify account in the terminal.

The dashboard shows your profile, top artists, recently played tracks,
playlists, and new releases. All five sections load concurrently; a
failure in one section does not affect the others.

By default an interactive view opens (q to quit, r to refresh). Use
--plain for a one-shot text dump suitable for piping.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	// Command-line flags
	dashboardCmd.Flags().BoolVar(&dashboardPlain, "plain", false, "Print a one-shot plain text dump instead of the interactive view")
	dashboardCmd.Flags().StringVar(&dashboardLogFile, "log-file", "", "Log file path (default: discard logs in interactive mode)")
	dashboardCmd.Flags().StringVar(&dashboardLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := newSpotifyClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Spotify client: %w", err)
	}

	store, err := openTokenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := setupLogger(dashboardLogFile, dashboardLogLevel)
	if !dashboardPlain && dashboardLogFile == "" {
		// The interactive view owns the terminal; without a log file,
		// stderr output would corrupt the display.
		logger = zerolog.Nop()
	}

	newDashboard := func(renderer dashboard.Renderer) *dashboard.Dashboard {
		return dashboard.New(dashboard.Config{
			Client:        client,
			Store:         store,
			Renderer:      renderer,
			Logger:        logger,
			ArtistLimit:   cfg.Limits.TopArtists,
			RecentLimit:   cfg.Limits.RecentlyPlayed,
			PlaylistLimit: cfg.Limits.Playlists,
			TrendingLimit: cfg.Limits.NewReleases,
			Country:       cfg.Spotify.Country,
		})
	}

	if dashboardPlain {
		return newDashboard(ui.NewPlainRenderer(os.Stdout)).Run(ctx)
	}

	app := ui.NewApp()
	d := newDashboard(app)

	load := func() {
		if err := d.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("Dashboard load failed")
		}
	}
	app.SetRefetchFunc(load)

	go func() {
		load()
		<-ctx.Done()
		app.Stop()
	}()

	return app.Run()
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
