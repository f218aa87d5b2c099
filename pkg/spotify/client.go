// Package spotify provides a client for the Spotify Web API.
//
// This package implements the implicit-grant authorization flow and the
// read-only endpoints Vybrato renders: the user's profile, top artists,
// recently played tracks, playlists, and new releases. It is designed to
// be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/CordisO/Vybrato/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:    "your-client-id",
//	    RedirectURI: "http://127.0.0.1:8888/auth",
//	    Scopes:      []string{"user-read-private", "user-top-read"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Authorize at:", client.Auth().AuthorizeURL())
package spotify

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientID    string       // Required: Spotify application client ID
	RedirectURI string       // Required: redirect URI registered for the application
	Scopes      []string     // Optional: authorization scopes, in request order
	HTTPClient  *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string       // Optional: Web API base URL (defaults to Spotify, used for testing)
	AccountsURL string       // Optional: accounts base URL (defaults to Spotify, used for testing)
	Logger      Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID    string
	redirectURI string
	scopes      []string
	httpClient  *http.Client
	baseURL     string
	accountsURL string
	logger      Logger

	auth   *AuthService
	me     *MeService
	browse *BrowseService
}

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com"

	// DefaultAccountsURL is the default Spotify accounts endpoint used
	// for authorization.
	DefaultAccountsURL = "https://accounts.spotify.com"
)

// NewClient creates a new Spotify Web API client.
//
// Returns an error if required configuration (ClientID, RedirectURI) is
// missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify: ClientID is required")
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("spotify: RedirectURI is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	c := &Client{
		clientID:    cfg.ClientID,
		redirectURI: cfg.RedirectURI,
		scopes:      cfg.Scopes,
		httpClient:  httpClient,
		baseURL:     baseURL,
		accountsURL: accountsURL,
		logger:      cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.me = &MeService{client: c}
	c.browse = &BrowseService{client: c}

	return c, nil
}

// Auth returns the authorization service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Me returns the current-user service.
func (c *Client) Me() *MeService {
	return c.me
}

// Browse returns the browse service.
func (c *Client) Browse() *BrowseService {
	return c.browse
}

// RedirectURI returns the configured redirect URI.
func (c *Client) RedirectURI() string {
	return c.redirectURI
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
