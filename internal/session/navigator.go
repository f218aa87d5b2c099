package session

import (
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Navigator abstracts the browser-navigation side effects of the
// authorization flow so the callback handling can be tested by
// recording calls instead of driving a real browser session.
type Navigator interface {
	// OpenAuthorization presents the authorization URL to the user.
	// In browser terms this is a full-page redirect and therefore a
	// terminal action for the current page; here the user follows the
	// URL in their own browser.
	OpenAuthorization(url string) error

	// ClearFragment strips the token fragment from the visible URL so
	// the credential does not linger in the location bar or history.
	ClearFragment()

	// GoToLanding performs the one-time redirect to the canonical
	// landing view. Calling it again once landed is a no-op.
	GoToLanding()
}

// relayNavigator is the production Navigator. The authorization URL is
// printed for the user to open; the fragment-clearing and landing
// navigation act on the browser session held by the relay server's
// in-flight callback request.
type relayNavigator struct {
	out io.Writer

	mu     sync.Mutex
	w      http.ResponseWriter
	r      *http.Request
	landed bool
}

func newRelayNavigator(out io.Writer) *relayNavigator {
	return &relayNavigator{out: out}
}

// setResponse points the navigator at the callback request currently
// being served.
func (n *relayNavigator) setResponse(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.w = w
	n.r = r
	n.landed = false
}

func (n *relayNavigator) OpenAuthorization(url string) error {
	_, err := fmt.Fprintf(n.out, "\nPlease visit this URL to connect Vybrato to Spotify:\n\n  %s\n\n", url)
	return err
}

func (n *relayNavigator) ClearFragment() {
	// The relay page has already replaced the fragment-carrying URL
	// with the /callback query form, so the token is no longer in the
	// visible location.
}

func (n *relayNavigator) GoToLanding() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.landed || n.w == nil {
		return
	}
	n.landed = true
	http.Redirect(n.w, n.r, landingPath, http.StatusFound)
}
