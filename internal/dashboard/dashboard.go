// Package dashboard orchestrates the account views: it validates the
// stored token, fans out the feature fetches, and hands results to a
// renderer.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/CordisO/Vybrato/internal/token"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/rs/zerolog"
)

// Slot identifies a rendering area. Each feature reports successes and
// failures to its own slot only.
type Slot string

const (
	SlotProfile   Slot = "profile"
	SlotArtists   Slot = "artists"
	SlotRecent    Slot = "recent"
	SlotPlaylists Slot = "playlists"
	SlotTrending  Slot = "trending"
)

// label is the human-readable name used in failure messages.
func (s Slot) label() string {
	switch s {
	case SlotProfile:
		return "profile"
	case SlotArtists:
		return "top artists"
	case SlotRecent:
		return "recently played tracks"
	case SlotPlaylists:
		return "playlists"
	case SlotTrending:
		return "new releases"
	default:
		return string(s)
	}
}

// Renderer receives the dashboard output. Implementations must be safe
// for concurrent use: the feature fetchers run in parallel and call in
// whatever order they complete.
type Renderer interface {
	// ShowLogin replaces the dashboard with the authentication entry
	// point.
	ShowLogin()

	ShowProfile(profile spotify.Profile)
	ShowArtists(artists []spotify.Artist)
	ShowRecent(plays []spotify.PlayHistory)
	ShowPlaylists(playlists []spotify.Playlist)
	ShowTrending(albums []spotify.Album)

	// ShowError reports a failure message local to one slot.
	ShowError(slot Slot, message string)
}

// Config configures a Dashboard.
type Config struct {
	Client   *spotify.Client
	Store    *token.Store
	Renderer Renderer
	Logger   zerolog.Logger

	// Page sizes and country filter for the feature fetches. Zero
	// values take the defaults below.
	ArtistLimit   int
	RecentLimit   int
	PlaylistLimit int
	TrendingLimit int
	Country       string

	// Now is the clock used for token validation. Defaults to
	// time.Now.
	Now func() time.Time
}

const (
	defaultArtistLimit   = 10
	defaultRecentLimit   = 20
	defaultPlaylistLimit = 20
	defaultTrendingLimit = 10
	defaultCountry       = "US"
)

// Dashboard drives one load of the account views.
type Dashboard struct {
	client   *spotify.Client
	store    *token.Store
	renderer Renderer
	logger   zerolog.Logger

	artistLimit   int
	recentLimit   int
	playlistLimit int
	trendingLimit int
	country       string

	now func() time.Time
}

// New creates a Dashboard from cfg, filling in defaults for unset
// limits, country, and clock.
func New(cfg Config) *Dashboard {
	d := &Dashboard{
		client:        cfg.Client,
		store:         cfg.Store,
		renderer:      cfg.Renderer,
		logger:        cfg.Logger.With().Str("component", "dashboard").Logger(),
		artistLimit:   cfg.ArtistLimit,
		recentLimit:   cfg.RecentLimit,
		playlistLimit: cfg.PlaylistLimit,
		trendingLimit: cfg.TrendingLimit,
		country:       cfg.Country,
		now:           cfg.Now,
	}
	if d.artistLimit <= 0 {
		d.artistLimit = defaultArtistLimit
	}
	if d.recentLimit <= 0 {
		d.recentLimit = defaultRecentLimit
	}
	if d.playlistLimit <= 0 {
		d.playlistLimit = defaultPlaylistLimit
	}
	if d.trendingLimit <= 0 {
		d.trendingLimit = defaultTrendingLimit
	}
	if d.country == "" {
		d.country = defaultCountry
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Run performs one dashboard load: if no valid token is stored it shows
// the login entry point; otherwise it fans out all feature fetches and
// waits for them to finish.
func (d *Dashboard) Run(ctx context.Context) error {
	rec, ok, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok || !rec.Valid(d.now()) {
		d.logger.Debug().Bool("present", ok).Msg("No valid token, showing login")
		d.renderer.ShowLogin()
		return nil
	}

	d.FetchAll(ctx, rec.AccessToken)
	return nil
}

// FetchAll dispatches the five feature fetches concurrently and waits
// for all of them. Each fetch renders into its own slot; failures do
// not cancel the others. The first Unauthorized failure clears the
// stored token, and once every fetch has finished the login entry
// point is shown in that case.
func (d *Dashboard) FetchAll(ctx context.Context, accessToken string) {
	var (
		wg        sync.WaitGroup
		clearOnce sync.Once
		cleared   bool
	)

	fail := func(slot Slot, err error) {
		d.logger.Warn().Err(err).Str("slot", string(slot)).Msg("Feature fetch failed")

		if spotify.IsKind(err, spotify.KindUnauthorized) {
			clearOnce.Do(func() {
				cleared = true
				if clearErr := d.store.Clear(ctx); clearErr != nil {
					d.logger.Error().Err(clearErr).Msg("Failed to clear invalid token")
				}
			})
		}

		d.renderer.ShowError(slot, messageFor(slot, err))
	}

	run := func(slot Slot, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				fail(slot, err)
			}
		}()
	}

	run(SlotProfile, func() error {
		profile, err := d.client.Me().Profile(ctx, accessToken)
		if err != nil {
			return err
		}
		d.renderer.ShowProfile(*profile)
		return nil
	})

	run(SlotArtists, func() error {
		artists, err := d.client.Me().TopArtists(ctx, accessToken, d.artistLimit)
		if err != nil {
			return err
		}
		d.renderer.ShowArtists(artists)
		return nil
	})

	run(SlotRecent, func() error {
		plays, err := d.client.Me().RecentlyPlayed(ctx, accessToken, d.recentLimit)
		if err != nil {
			return err
		}
		d.renderer.ShowRecent(plays)
		return nil
	})

	run(SlotPlaylists, func() error {
		playlists, err := d.client.Me().Playlists(ctx, accessToken, d.playlistLimit)
		if err != nil {
			return err
		}
		d.renderer.ShowPlaylists(playlists)
		return nil
	})

	run(SlotTrending, func() error {
		albums, err := d.client.Browse().NewReleases(ctx, accessToken, d.country, d.trendingLimit)
		if err != nil {
			return err
		}
		d.renderer.ShowTrending(albums)
		return nil
	})

	wg.Wait()

	if cleared {
		d.renderer.ShowLogin()
	}
}

// messageFor converts a fetch failure into the message shown in the
// slot's display area.
func messageFor(slot Slot, err error) string {
	switch {
	case spotify.IsKind(err, spotify.KindUnauthorized):
		return "Authentication expired. Please log in again."
	case spotify.IsKind(err, spotify.KindForbidden):
		return "Permission denied. Please re-authenticate with Spotify."
	case spotify.IsKind(err, spotify.KindRateLimited):
		return "Rate limited. Please try again in a moment."
	case spotify.IsKind(err, spotify.KindNetwork):
		return "Unable to load " + slot.label() + ". Check your connection."
	default:
		return "Unable to load " + slot.label() + "."
	}
}
