// Package ui holds the dashboard renderers: a tview terminal UI and a
// plain-text fallback.
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/CordisO/Vybrato/internal/dashboard"
	"github.com/CordisO/Vybrato/pkg/spotify"
)

// App is the terminal UI. It implements dashboard.Renderer; the
// feature fetchers call in concurrently and every update goes through
// the tview draw queue.
type App struct {
	app    *tview.Application
	views  map[dashboard.Slot]*tview.TextView
	status *tview.TextView

	// Mutex protects the change-detection cache shared by the
	// concurrent renderer calls.
	mu   sync.Mutex
	last map[dashboard.Slot]string

	refetch func()
}

// NewApp creates the terminal UI with all panels empty.
func NewApp() *App {
	a := &App{
		app:   tview.NewApplication(),
		views: make(map[dashboard.Slot]*tview.TextView),
		last:  make(map[dashboard.Slot]string),
	}
	a.setupUI()
	return a
}

// SetRefetchFunc sets the callback invoked when the user presses r.
func (a *App) SetRefetchFunc(fn func()) {
	a.refetch = fn
}

// setupUI creates the panel layout
func (a *App) setupUI() {
	newPanel := func(slot dashboard.Slot, title string) *tview.TextView {
		view := tview.NewTextView().
			SetDynamicColors(true).
			SetTextAlign(tview.AlignLeft)
		view.SetBorder(true).
			SetTitle(" " + title + " ").
			SetTitleAlign(tview.AlignLeft)
		a.views[slot] = view
		return view
	}

	profile := newPanel(dashboard.SlotProfile, "Profile")
	artists := newPanel(dashboard.SlotArtists, "Top Artists")
	recent := newPanel(dashboard.SlotRecent, "Recently Played")
	playlists := newPanel(dashboard.SlotPlaylists, "Playlists")
	trending := newPanel(dashboard.SlotTrending, "New Releases")

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  r:refresh[-]")

	// Top row: profile summary
	// Middle rows: artists | recent, playlists | trending
	// Footer: status bar

	topRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(artists, 0, 1, false).
		AddItem(recent, 0, 1, false)

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(playlists, 0, 1, false).
		AddItem(trending, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(profile, 5, 1, false).
		AddItem(topRow, 0, 1, false).
		AddItem(bottomRow, 0, 1, false).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'r', 'R':
		if a.refetch != nil {
			go a.refetch()
		}
		return nil
	}
	return event
}

// Run starts the UI and blocks until the user quits.
func (a *App) Run() error {
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}

// Stop stops the UI.
func (a *App) Stop() {
	a.app.Stop()
}

// setSlot updates one panel through the draw queue, skipping redraws
// when the content has not changed.
func (a *App) setSlot(slot dashboard.Slot, text string) {
	a.mu.Lock()
	if a.last[slot] == text {
		a.mu.Unlock()
		return
	}
	a.last[slot] = text
	a.mu.Unlock()

	a.app.QueueUpdateDraw(func() {
		if view, ok := a.views[slot]; ok {
			view.SetText(text)
		}
	})
}

// ShowLogin replaces the dashboard content with the login prompt.
func (a *App) ShowLogin() {
	prompt := "[red]Not connected to Spotify.[-]\n\n" +
		"Run [white::b]vybrato login[-:-:-] in another terminal,\nthen press r to reload."
	a.setSlot(dashboard.SlotProfile, prompt)
	for _, slot := range []dashboard.Slot{
		dashboard.SlotArtists,
		dashboard.SlotRecent,
		dashboard.SlotPlaylists,
		dashboard.SlotTrending,
	} {
		a.setSlot(slot, "[gray]Waiting for login[-]")
	}
}

func (a *App) ShowProfile(profile spotify.Profile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]", tview.Escape(profile.Name())))
	if profile.Product != "" {
		sb.WriteString(fmt.Sprintf("  [gray]%s[-]", tview.Escape(profile.Product)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("[gray]id:[-] %s", tview.Escape(profile.ID)))
	if profile.Country != "" {
		sb.WriteString(fmt.Sprintf("  [gray]country:[-] %s", tview.Escape(profile.Country)))
	}
	sb.WriteString(fmt.Sprintf("  [gray]followers:[-] %d", profile.Followers.Total))
	a.setSlot(dashboard.SlotProfile, sb.String())
}

func (a *App) ShowArtists(artists []spotify.Artist) {
	if len(artists) == 0 {
		a.setSlot(dashboard.SlotArtists, "[gray]No top artists yet[-]")
		return
	}

	var sb strings.Builder
	for i, artist := range artists {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[yellow]%2d.[-] [white]%s[-]",
			i+1, tview.Escape(truncate(artist.Name, maxItemWidth))))
		if len(artist.Genres) > 0 {
			sb.WriteString(fmt.Sprintf(" [gray]%s[-]",
				tview.Escape(truncate(artist.Genres[0], 16))))
		}
	}
	a.setSlot(dashboard.SlotArtists, sb.String())
}

func (a *App) ShowRecent(plays []spotify.PlayHistory) {
	if len(plays) == 0 {
		a.setSlot(dashboard.SlotRecent, "[gray]Nothing played recently[-]")
		return
	}

	var sb strings.Builder
	for i, play := range plays {
		if i > 0 {
			sb.WriteString("\n")
		}
		line := play.Track.Name + " - " + joinArtists(play.Track.Artists)
		sb.WriteString(fmt.Sprintf("[white]%s[-]", tview.Escape(truncate(line, maxItemWidth))))
		if play.PlayedAt != "" {
			sb.WriteString(fmt.Sprintf(" [gray]%s[-]", tview.Escape(playedTime(play.PlayedAt))))
		}
	}
	a.setSlot(dashboard.SlotRecent, sb.String())
}

func (a *App) ShowPlaylists(playlists []spotify.Playlist) {
	if len(playlists) == 0 {
		a.setSlot(dashboard.SlotPlaylists, "[gray]No playlists[-]")
		return
	}

	var sb strings.Builder
	for i, playlist := range playlists {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[white]%s[-] [gray]%d tracks[-]",
			tview.Escape(truncate(playlist.Name, maxItemWidth)), playlist.Tracks.Total))
	}
	a.setSlot(dashboard.SlotPlaylists, sb.String())
}

func (a *App) ShowTrending(albums []spotify.Album) {
	if len(albums) == 0 {
		a.setSlot(dashboard.SlotTrending, "[gray]No new releases[-]")
		return
	}

	var sb strings.Builder
	for i, album := range albums {
		if i > 0 {
			sb.WriteString("\n")
		}
		line := album.Name + " - " + joinArtists(album.Artists)
		sb.WriteString(fmt.Sprintf("[white]%s[-]", tview.Escape(truncate(line, maxItemWidth))))
		if album.ReleaseDate != "" {
			sb.WriteString(fmt.Sprintf(" [gray]%s[-]", tview.Escape(album.ReleaseDate)))
		}
	}
	a.setSlot(dashboard.SlotTrending, sb.String())
}

func (a *App) ShowError(slot dashboard.Slot, message string) {
	a.setSlot(slot, fmt.Sprintf("[red]%s[-]", tview.Escape(message)))
}
