package spotify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AuthService provides implicit-grant authorization operations.
//
// The implicit grant returns the access token directly in the URL
// fragment after user consent. There is no token-exchange step, no
// client secret, and no refresh token: when the token expires the user
// authorizes again.
type AuthService struct {
	client *Client
}

// Grant is a parsed authorization response.
type Grant struct {
	AccessToken string // Opaque bearer credential
	ExpiresAt   int64  // Absolute expiry, milliseconds since epoch
}

// AuthorizeURL builds the URL where the user grants access.
//
// The response type is fixed to the implicit/token grant. Scopes are
// joined with a single space before percent-encoding. The redirect URI
// must match, byte for byte after decoding, a URI registered with
// Spotify for the application; a mismatch is rejected upstream and
// cannot be recovered from here.
//
// Example:
//
//	fmt.Println("Please visit:", client.Auth().AuthorizeURL())
func (a *AuthService) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", a.client.clientID)
	q.Set("response_type", "token")
	q.Set("redirect_uri", a.client.redirectURI)
	q.Set("scope", strings.Join(a.client.scopes, " "))
	return a.client.accountsURL + "/authorize?" + q.Encode()
}

// ParseGrantFragment parses the URL fragment Spotify redirects back
// with and converts it into a Grant anchored at now.
//
// The fragment is interpreted as a query-string-shaped key/value set,
// with or without the leading '#'. Failures are classified:
//
//   - the user declined consent → ErrAccessDenied
//   - any other upstream error parameter, or no access token → ErrUpstreamAuth
//   - a fragment or expires_in that cannot be interpreted → ErrMalformedGrant
func (a *AuthService) ParseGrantFragment(fragment string, now time.Time) (*Grant, error) {
	fragment = strings.TrimPrefix(fragment, "#")

	params, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGrant, err)
	}

	if upstream := params.Get("error"); upstream != "" {
		if upstream == "access_denied" {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstreamAuth, upstream)
	}

	accessToken := params.Get("access_token")
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token in fragment", ErrUpstreamAuth)
	}

	expiresIn, err := strconv.ParseInt(params.Get("expires_in"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_in %q", ErrMalformedGrant, params.Get("expires_in"))
	}

	return &Grant{
		AccessToken: accessToken,
		ExpiresAt:   now.UnixMilli() + expiresIn*1000,
	}, nil
}
