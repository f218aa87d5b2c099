package spotify

// Image is an image in one of the sizes Spotify serves.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ExternalURLs holds known external links for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Profile represents the current user's profile from /v1/me.
type Profile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	Country     string  `json:"country"`
	Product     string  `json:"product"`
	Images      []Image `json:"images"`
	Followers   struct {
		Total int `json:"total"`
	} `json:"followers"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Name returns the display name, falling back to the user ID.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// Artist represents a full artist object.
type Artist struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	Images    []Image  `json:"images"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// ArtistRef is the simplified artist object embedded in tracks and albums.
type ArtistRef struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Album represents an album object, full or simplified.
type Album struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AlbumType    string       `json:"album_type"`
	Artists      []ArtistRef  `json:"artists"`
	Images       []Image      `json:"images"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Track represents a track object.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []ArtistRef  `json:"artists"`
	Album        Album        `json:"album"`
	DurationMS   int          `json:"duration_ms"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// PlayHistory is one entry from the recently-played feed.
type PlayHistory struct {
	Track    Track  `json:"track"`
	PlayedAt string `json:"played_at"`
}

// Playlist represents a playlist object owned by or followed by the user.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Public      bool    `json:"public"`
	Images      []Image `json:"images"`
	Owner       struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}
