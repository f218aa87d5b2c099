package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/CordisO/Vybrato/internal/token"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/rs/zerolog"
)

// fakeRenderer records renderer calls behind a mutex so the concurrent
// fetchers can report into it.
type fakeRenderer struct {
	mu        sync.Mutex
	logins    int
	profile   *spotify.Profile
	artists   []spotify.Artist
	plays     []spotify.PlayHistory
	playlists []spotify.Playlist
	albums    []spotify.Album
	errors    map[Slot]string
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{errors: make(map[Slot]string)}
}

func (r *fakeRenderer) ShowLogin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins++
}

func (r *fakeRenderer) ShowProfile(profile spotify.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = &profile
}

func (r *fakeRenderer) ShowArtists(artists []spotify.Artist) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artists = artists
}

func (r *fakeRenderer) ShowRecent(plays []spotify.PlayHistory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays = plays
}

func (r *fakeRenderer) ShowPlaylists(playlists []spotify.Playlist) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playlists = playlists
}

func (r *fakeRenderer) ShowTrending(albums []spotify.Album) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.albums = albums
}

func (r *fakeRenderer) ShowError(slot Slot, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[slot] = message
}

// newAPIServer serves the five feature endpoints with canned payloads.
// overrides replaces the handler for specific paths.
func newAPIServer(t *testing.T, overrides map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	canned := map[string]string{
		"/v1/me":                        `{"id":"u1","display_name":"Cordis"}`,
		"/v1/me/top/artists":            `{"items":[{"id":"a1","name":"Arcane Roots"}]}`,
		"/v1/me/player/recently-played": `{"items":[{"track":{"id":"t1","name":"Curse"}}]}`,
		"/v1/me/playlists":              `{"items":[{"id":"p1","name":"Focus"}]}`,
		"/v1/browse/new-releases":       `{"albums":{"items":[{"id":"r1","name":"Melt"}]}}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := overrides[r.URL.Path]; ok {
			h(w, r)
			return
		}
		body, ok := canned[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestDashboard(t *testing.T, srv *httptest.Server) (*Dashboard, *token.Store, *fakeRenderer) {
	t.Helper()

	client, err := spotify.NewClient(spotify.Config{
		ClientID:    "test-client",
		RedirectURI: "http://127.0.0.1:8888/auth",
		BaseURL:     srv.URL,
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	store, err := token.NewStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	renderer := newFakeRenderer()
	d := New(Config{
		Client:   client,
		Store:    store,
		Renderer: renderer,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return time.UnixMilli(1_000_000) },
	})
	return d, store, renderer
}

func saveValidToken(t *testing.T, store *token.Store) {
	t.Helper()
	if err := store.Save(context.Background(), token.Record{
		AccessToken: "abc123",
		ExpiresAt:   2_000_000,
	}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
}

// TestDashboard_ShowsLoginWithoutToken verifies that an empty store
// leads straight to the login entry point.
func TestDashboard_ShowsLoginWithoutToken(t *testing.T) {
	srv := newAPIServer(t, nil)
	d, _, renderer := newTestDashboard(t, srv)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.logins != 1 {
		t.Errorf("expected 1 ShowLogin call, got %d", renderer.logins)
	}
	if renderer.profile != nil {
		t.Error("expected no fetches without a token")
	}
}

// TestDashboard_ShowsLoginWhenExpired verifies that an expired token
// is treated like no token.
func TestDashboard_ShowsLoginWhenExpired(t *testing.T) {
	srv := newAPIServer(t, nil)
	d, store, renderer := newTestDashboard(t, srv)

	if err := store.Save(context.Background(), token.Record{
		AccessToken: "abc123",
		ExpiresAt:   500_000,
	}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.logins != 1 {
		t.Errorf("expected 1 ShowLogin call, got %d", renderer.logins)
	}
}

// TestDashboard_RendersAllSlots verifies that a valid token fans out
// all five fetches and renders each slot.
func TestDashboard_RendersAllSlots(t *testing.T) {
	srv := newAPIServer(t, nil)
	d, _, renderer := newTestDashboard(t, srv)
	saveValidToken(t, d.store)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.logins != 0 {
		t.Errorf("expected no ShowLogin calls, got %d", renderer.logins)
	}
	if renderer.profile == nil || renderer.profile.ID != "u1" {
		t.Errorf("expected profile u1, got %+v", renderer.profile)
	}
	if len(renderer.artists) != 1 || renderer.artists[0].Name != "Arcane Roots" {
		t.Errorf("unexpected artists: %+v", renderer.artists)
	}
	if len(renderer.plays) != 1 || renderer.plays[0].Track.Name != "Curse" {
		t.Errorf("unexpected plays: %+v", renderer.plays)
	}
	if len(renderer.playlists) != 1 || renderer.playlists[0].Name != "Focus" {
		t.Errorf("unexpected playlists: %+v", renderer.playlists)
	}
	if len(renderer.albums) != 1 || renderer.albums[0].Name != "Melt" {
		t.Errorf("unexpected albums: %+v", renderer.albums)
	}
	if len(renderer.errors) != 0 {
		t.Errorf("unexpected errors: %+v", renderer.errors)
	}
}

// TestDashboard_UnauthorizedClearsTokenOnce verifies that 401
// responses clear the stored token a single time and surface the login
// entry point after every fetch has finished.
func TestDashboard_UnauthorizedClearsTokenOnce(t *testing.T) {
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
	}
	srv := newAPIServer(t, map[string]http.HandlerFunc{
		"/v1/me":             unauthorized,
		"/v1/me/top/artists": unauthorized,
	})
	d, store, renderer := newTestDashboard(t, srv)
	saveValidToken(t, store)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if renderer.logins != 1 {
		t.Errorf("expected 1 ShowLogin call, got %d", renderer.logins)
	}

	want := "Authentication expired. Please log in again."
	for _, slot := range []Slot{SlotProfile, SlotArtists} {
		if got := renderer.errors[slot]; got != want {
			t.Errorf("expected %q for slot %s, got %q", want, slot, got)
		}
	}

	// The other fetches still rendered.
	if len(renderer.playlists) != 1 || len(renderer.albums) != 1 || len(renderer.plays) != 1 {
		t.Error("expected unaffected fetches to render")
	}

	_, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected token cleared after 401")
	}
}

// TestDashboard_ForbiddenKeepsToken verifies that a 403 surfaces a
// scope message without touching the stored token.
func TestDashboard_ForbiddenKeepsToken(t *testing.T) {
	srv := newAPIServer(t, map[string]http.HandlerFunc{
		"/v1/me/playlists": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"status":403,"message":"Insufficient client scope"}}`))
		},
	})
	d, store, renderer := newTestDashboard(t, srv)
	saveValidToken(t, store)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Permission denied. Please re-authenticate with Spotify."
	if got := renderer.errors[SlotPlaylists]; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if renderer.logins != 0 {
		t.Errorf("expected no ShowLogin calls, got %d", renderer.logins)
	}

	_, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected token kept after 403, got ok=%v err=%v", ok, err)
	}
}

// TestDashboard_NetworkFailureIsolated verifies that one transport
// failure leaves the remaining fetches rendering.
func TestDashboard_NetworkFailureIsolated(t *testing.T) {
	srv := newAPIServer(t, map[string]http.HandlerFunc{
		"/v1/me": func(w http.ResponseWriter, r *http.Request) {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Errorf("failed to hijack connection: %v", err)
				return
			}
			conn.Close()
		},
	})
	d, store, renderer := newTestDashboard(t, srv)
	saveValidToken(t, store)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := renderer.errors[SlotProfile]; !strings.Contains(got, "Unable to load profile") {
		t.Errorf("expected network message for profile, got %q", got)
	}
	if len(renderer.artists) != 1 || len(renderer.plays) != 1 ||
		len(renderer.playlists) != 1 || len(renderer.albums) != 1 {
		t.Error("expected unaffected fetches to render")
	}
	if renderer.logins != 0 {
		t.Errorf("expected no ShowLogin calls, got %d", renderer.logins)
	}

	_, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected token kept after network failure, got ok=%v err=%v", ok, err)
	}
}

// TestMessageFor covers the failure-kind to message mapping.
func TestMessageFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		slot Slot
		want string
	}{
		{
			name: "unauthorized",
			err:  &spotify.Error{Kind: spotify.KindUnauthorized},
			slot: SlotProfile,
			want: "Authentication expired. Please log in again.",
		},
		{
			name: "forbidden",
			err:  &spotify.Error{Kind: spotify.KindForbidden},
			slot: SlotPlaylists,
			want: "Permission denied. Please re-authenticate with Spotify.",
		},
		{
			name: "rate limited",
			err:  &spotify.Error{Kind: spotify.KindRateLimited},
			slot: SlotRecent,
			want: "Rate limited. Please try again in a moment.",
		},
		{
			name: "network",
			err:  &spotify.Error{Kind: spotify.KindNetwork},
			slot: SlotTrending,
			want: "Unable to load new releases. Check your connection.",
		},
		{
			name: "malformed",
			err:  &spotify.Error{Kind: spotify.KindMalformed},
			slot: SlotArtists,
			want: "Unable to load top artists.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := messageFor(tt.slot, tt.err); got != tt.want {
				t.Errorf("messageFor(%s) = %q, want %q", tt.slot, got, tt.want)
			}
		})
	}
}
