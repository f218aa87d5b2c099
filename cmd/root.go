/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/CordisO/Vybrato/internal/config"
	"github.com/CordisO/Vybrato/internal/token"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vybrato",
	Short: "Spotify dashboard for your terminal",
	Long: `vybrato is a Spotify dashboard for your terminal.

It connects to your Spotify account through the implicit-grant
authorization flow and renders your profile, top artists, recently
played tracks, playlists, and new releases.

Run 'vybrato login' once to connect, then 'vybrato dashboard' to
browse your account.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newSpotifyClient builds the API client from configuration.
func newSpotifyClient(cfg *config.Config) (*spotify.Client, error) {
	return spotify.NewClient(spotify.Config{
		ClientID:    cfg.Spotify.ClientID,
		RedirectURI: cfg.Spotify.RedirectURI,
		Scopes:      cfg.Spotify.Scopes,
	})
}

// openTokenStore opens the token store at the configured database path.
func openTokenStore(cfg *config.Config) (*token.Store, error) {
	store, err := token.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return store, nil
}
