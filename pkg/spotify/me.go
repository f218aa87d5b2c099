package spotify

import (
	"context"
	"net/url"
	"strconv"
)

// MeService provides read operations on the current user's account.
type MeService struct {
	client *Client
}

// Profile fetches the current user's profile.
func (s *MeService) Profile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := s.client.get(ctx, "/v1/me", nil, token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// TopArtists fetches the user's top artists. A limit of 0 uses the
// upstream default.
func (s *MeService) TopArtists(ctx context.Context, token string, limit int) ([]Artist, error) {
	var page struct {
		Items []Artist `json:"items"`
	}
	if err := s.client.get(ctx, "/v1/me/top/artists", limitQuery(limit), token, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// RecentlyPlayed fetches the user's recently played tracks.
func (s *MeService) RecentlyPlayed(ctx context.Context, token string, limit int) ([]PlayHistory, error) {
	var page struct {
		Items []PlayHistory `json:"items"`
	}
	if err := s.client.get(ctx, "/v1/me/player/recently-played", limitQuery(limit), token, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Playlists fetches the playlists owned by or followed by the user.
func (s *MeService) Playlists(ctx context.Context, token string, limit int) ([]Playlist, error) {
	var page struct {
		Items []Playlist `json:"items"`
	}
	if err := s.client.get(ctx, "/v1/me/playlists", limitQuery(limit), token, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return q
}
