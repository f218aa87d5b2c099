package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/CordisO/Vybrato/internal/dashboard"
	"github.com/CordisO/Vybrato/pkg/spotify"
)

// PlainRenderer writes each dashboard section as plain text, for
// non-interactive use and piping. Sections print in completion order.
type PlainRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlainRenderer creates a renderer writing to out.
func NewPlainRenderer(out io.Writer) *PlainRenderer {
	return &PlainRenderer{out: out}
}

func (r *PlainRenderer) section(title string, lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "\n%s\n", title)
	for _, line := range lines {
		fmt.Fprintf(r.out, "  %s\n", line)
	}
}

func (r *PlainRenderer) ShowLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, "Not connected to Spotify. Run 'vybrato login' first.")
}

func (r *PlainRenderer) ShowProfile(profile spotify.Profile) {
	lines := []string{
		fmt.Sprintf("name: %s", profile.Name()),
		fmt.Sprintf("id: %s", profile.ID),
		fmt.Sprintf("followers: %d", profile.Followers.Total),
	}
	if profile.Country != "" {
		lines = append(lines, fmt.Sprintf("country: %s", profile.Country))
	}
	r.section("Profile", lines)
}

func (r *PlainRenderer) ShowArtists(artists []spotify.Artist) {
	lines := make([]string, len(artists))
	for i, artist := range artists {
		lines[i] = fmt.Sprintf("%2d. %s", i+1, artist.Name)
	}
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}
	r.section("Top Artists", lines)
}

func (r *PlainRenderer) ShowRecent(plays []spotify.PlayHistory) {
	lines := make([]string, len(plays))
	for i, play := range plays {
		lines[i] = fmt.Sprintf("%s - %s", play.Track.Name, joinArtists(play.Track.Artists))
	}
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}
	r.section("Recently Played", lines)
}

func (r *PlainRenderer) ShowPlaylists(playlists []spotify.Playlist) {
	lines := make([]string, len(playlists))
	for i, playlist := range playlists {
		lines[i] = fmt.Sprintf("%s (%d tracks)", playlist.Name, playlist.Tracks.Total)
	}
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}
	r.section("Playlists", lines)
}

func (r *PlainRenderer) ShowTrending(albums []spotify.Album) {
	lines := make([]string, len(albums))
	for i, album := range albums {
		lines[i] = fmt.Sprintf("%s - %s (%s)", album.Name, joinArtists(album.Artists), album.ReleaseDate)
	}
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}
	r.section("New Releases", lines)
}

func (r *PlainRenderer) ShowError(slot dashboard.Slot, message string) {
	r.section(sectionTitle(slot), []string{message})
}

func sectionTitle(slot dashboard.Slot) string {
	switch slot {
	case dashboard.SlotProfile:
		return "Profile"
	case dashboard.SlotArtists:
		return "Top Artists"
	case dashboard.SlotRecent:
		return "Recently Played"
	case dashboard.SlotPlaylists:
		return "Playlists"
	case dashboard.SlotTrending:
		return "New Releases"
	default:
		return string(slot)
	}
}
