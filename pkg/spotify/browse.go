package spotify

import (
	"context"
	"net/url"
	"strconv"
)

// BrowseService provides catalog browse operations.
type BrowseService struct {
	client *Client
}

// NewReleases fetches new album releases, optionally filtered by an
// ISO 3166-1 country code. A limit of 0 uses the upstream default.
func (s *BrowseService) NewReleases(ctx context.Context, token, country string, limit int) ([]Album, error) {
	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page struct {
		Albums struct {
			Items []Album `json:"items"`
		} `json:"albums"`
	}
	if err := s.client.get(ctx, "/v1/browse/new-releases", q, token, &page); err != nil {
		return nil, err
	}
	return page.Albums.Items, nil
}
