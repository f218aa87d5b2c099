package cmd

import (
	"context"
	"fmt"

	"github.com/CordisO/Vybrato/internal/config"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored Spotify token",
	Long: `Remove the locally stored Spotify access token.

This only clears local state. The authorization itself stays active in
your Spotify account until it expires or you revoke it at
https://www.spotify.com/account/apps/.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := openTokenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	fmt.Println("✓ Logged out")
	return nil
}
