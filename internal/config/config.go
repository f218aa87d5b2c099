package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Spotify application settings
	Spotify SpotifyConfig

	// Page sizes for the dashboard fetches
	Limits LimitsConfig

	// Output format template for the whoami command
	// Default: "{{.Name}} ({{.ID}})"
	OutputFormat string

	// DatabasePath is where the token store lives
	DatabasePath string
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
	Country     string
}

// LimitsConfig holds the per-feature page sizes
type LimitsConfig struct {
	TopArtists     int
	RecentlyPlayed int
	Playlists      int
	NewReleases    int
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	// Load .env from the working directory if present
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("spotify.client_id", "2fe7c17371964a1290b5af802b2eaa23")
	v.SetDefault("spotify.redirect_uri", "http://127.0.0.1:8888/auth")
	v.SetDefault("spotify.scopes", []string{
		"user-read-private",
		"user-read-email",
		"user-top-read",
		"user-read-recently-played",
	})
	v.SetDefault("spotify.country", "US")
	v.SetDefault("limits.top_artists", 10)
	v.SetDefault("limits.recently_played", 20)
	v.SetDefault("limits.playlists", 20)
	v.SetDefault("limits.new_releases", 10)
	v.SetDefault("output_format", "{{.Name}} ({{.ID}})")
	v.SetDefault("database_path", filepath.Join(configDir, "vybrato.db"))

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("VYBRATO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Spotify: SpotifyConfig{
			ClientID:    v.GetString("spotify.client_id"),
			RedirectURI: v.GetString("spotify.redirect_uri"),
			Scopes:      v.GetStringSlice("spotify.scopes"),
			Country:     v.GetString("spotify.country"),
		},
		Limits: LimitsConfig{
			TopArtists:     v.GetInt("limits.top_artists"),
			RecentlyPlayed: v.GetInt("limits.recently_played"),
			Playlists:      v.GetInt("limits.playlists"),
			NewReleases:    v.GetInt("limits.new_releases"),
		},
		OutputFormat: v.GetString("output_format"),
		DatabasePath: v.GetString("database_path"),
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "vybrato")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.redirect_uri", c.Spotify.RedirectURI)
	v.Set("spotify.scopes", c.Spotify.Scopes)
	v.Set("spotify.country", c.Spotify.Country)
	v.Set("limits.top_artists", c.Limits.TopArtists)
	v.Set("limits.recently_played", c.Limits.RecentlyPlayed)
	v.Set("limits.playlists", c.Limits.Playlists)
	v.Set("limits.new_releases", c.Limits.NewReleases)
	v.Set("output_format", c.OutputFormat)
	v.Set("database_path", c.DatabasePath)

	// Write to file
	return v.WriteConfigAs(configFile)
}
