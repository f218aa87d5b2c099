package ui

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/CordisO/Vybrato/pkg/spotify"
)

// maxItemWidth bounds item lines so long titles do not wrap inside the
// fixed-size panels.
const maxItemWidth = 42

// truncate shortens text to a display width measured in terminal
// columns, adding an ellipsis when anything was cut.
func truncate(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}

	ellipsis := "..."
	ellipsisWidth := runewidth.StringWidth(ellipsis)
	if width <= ellipsisWidth {
		return runewidth.Truncate(ellipsis, width, "")
	}
	return runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis
}

// joinArtists renders the artist credit line for a track or album.
func joinArtists(artists []spotify.ArtistRef) string {
	if len(artists) == 0 {
		return "Unknown artist"
	}
	names := make([]string, len(artists))
	for i, artist := range artists {
		names[i] = artist.Name
	}
	return strings.Join(names, ", ")
}

// playedTime renders the played-at timestamp from the recently-played
// feed. Unparseable values pass through unchanged.
func playedTime(playedAt string) string {
	ts, err := time.Parse(time.RFC3339, playedAt)
	if err != nil {
		return playedAt
	}
	return ts.Local().Format("Jan 2 15:04")
}
