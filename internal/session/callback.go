package session

import (
	"context"
	"fmt"
	"time"

	"github.com/CordisO/Vybrato/internal/token"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/rs/zerolog"
)

// Handler converts an authorization callback fragment into a persisted
// token record.
type Handler struct {
	auth   *spotify.AuthService
	store  *token.Store
	nav    Navigator
	now    func() time.Time
	logger zerolog.Logger
}

// NewHandler creates a callback handler.
func NewHandler(client *spotify.Client, store *token.Store, nav Navigator, logger zerolog.Logger) *Handler {
	return &Handler{
		auth:   client.Auth(),
		store:  store,
		nav:    nav,
		now:    time.Now,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// HandleCallback parses the fragment Spotify redirected back with,
// persists the resulting token record, clears the fragment from the
// visible URL, and navigates to the landing view.
//
// Handling the same fragment twice stores the same record; the second
// landing navigation is a no-op. On denial or upstream error nothing is
// persisted and no navigation happens — the caller falls back to
// showing the authorization entry point.
func (h *Handler) HandleCallback(ctx context.Context, fragment string) (token.Record, error) {
	grant, err := h.auth.ParseGrantFragment(fragment, h.now())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Authorization callback rejected")
		return token.Record{}, err
	}

	rec := token.Record{
		AccessToken: grant.AccessToken,
		ExpiresAt:   grant.ExpiresAt,
	}

	if err := h.store.Save(ctx, rec); err != nil {
		return token.Record{}, fmt.Errorf("failed to persist token: %w", err)
	}

	h.logger.Info().Int64("expires_at", rec.ExpiresAt).Msg("Token stored")

	h.nav.ClearFragment()
	h.nav.GoToLanding()

	return rec, nil
}
