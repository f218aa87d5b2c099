package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/CordisO/Vybrato/internal/config"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the connected Spotify account",
	Long: `Query Spotify and display the connected account's profile.

The output format can be customized in ~/.config/vybrato/config.yaml
using a Go template. Available fields: .Name, .ID, .Email, .Country,
.Product, .Followers.Total

Exit codes:
  0 - A valid session exists and the profile was fetched
  1 - Not logged in, token expired, or the fetch failed`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	// Add format flag to override config
	whoamiCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	// Add width flag to set fixed output width, for status bars
	whoamiCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled)")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check for format flag override
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag != "" {
		cfg.OutputFormat = formatFlag
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

	rec, ok, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}
	if !ok || !rec.Valid(time.Now()) {
		return fmt.Errorf("not logged in. Run 'vybrato login' first")
	}

	profile, err := client.Me().Profile(ctx, rec.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	// Format and print output
	output, err := formatProfile(*profile, cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	width, _ := cmd.Flags().GetInt("width")
	if width > 0 {
		output = padToWidth(output, width)
	}

	fmt.Println(output)
	return nil
}

// formatProfile applies the template to the profile data
func formatProfile(profile spotify.Profile, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, &profile); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text // no padding requested
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			// If width is too small, just return ellipsis truncated to width
			return runewidth.Truncate(ellipsis, width, "")
		}

		// Truncate to (width - ellipsisWidth) and add ellipsis
		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Ensure we're exactly at the target width (in case truncate was imprecise)
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			padding := strings.Repeat(" ", width-resultWidth)
			return result + padding
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		// Pad with spaces
		padding := strings.Repeat(" ", width-currentWidth)
		return text + padding
	}

	return text // exactly the right width
}
