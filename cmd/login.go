package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CordisO/Vybrato/internal/config"
	"github.com/CordisO/Vybrato/internal/session"
	"github.com/spf13/cobra"
)

var loginLogLevel string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect your Spotify account",
	Long: `Connect your Spotify account using the implicit-grant flow.

This command starts a temporary local server on the configured
redirect address, prints the Spotify authorization URL, and waits for
you to approve access in your browser. Once Spotify redirects back the
access token is stored locally and the server shuts down.

The redirect URI must be registered for your application in the
Spotify Developer Dashboard and must match the configured
spotify.redirect_uri exactly.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
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

	logger := setupLogger("", loginLogLevel)

	flow := session.NewFlow(client, store, os.Stdout, logger)
	rec, err := flow.Login(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("login cancelled")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	expires := time.UnixMilli(rec.ExpiresAt).Local().Format(time.Kitchen)
	fmt.Printf("\n✓ Connected to Spotify!\n")
	fmt.Printf("✓ Token stored, valid until %s\n", expires)
	fmt.Println("\nYou can now run 'vybrato dashboard'.")

	return nil
}
