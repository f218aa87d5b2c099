package session

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/CordisO/Vybrato/internal/token"
	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/rs/zerolog"
)

const (
	callbackPath = "/callback"
	landingPath  = "/done"
)

// relayPage is served at the registered redirect path. URL fragments
// never reach a server, so this page forwards the fragment to the
// /callback route as a query string, replacing the fragment-carrying
// URL in the process.
const relayPage = `<!DOCTYPE html>
<html>
<body>
<p>Completing Spotify login&hellip;</p>
<script>
  var fragment = window.location.hash.substring(1);
  if (fragment.length > 0) {
    window.location.replace("/callback?" + fragment);
  } else {
    document.body.textContent = "No Spotify authorization response present.";
  }
</script>
</body>
</html>`

const landingPage = `<!DOCTYPE html>
<html>
<body>
<p>Vybrato is connected to Spotify. You can close this window and return to the terminal.</p>
</body>
</html>`

// Flow runs the interactive implicit-grant login: it serves the
// fragment relay on the loopback redirect address, presents the
// authorization URL, and waits for the callback.
type Flow struct {
	client *spotify.Client
	store  *token.Store
	nav    *relayNavigator
	logger zerolog.Logger
}

type loginResult struct {
	rec token.Record
	err error
}

// NewFlow creates a login flow. The authorization URL is written to out.
func NewFlow(client *spotify.Client, store *token.Store, out io.Writer, logger zerolog.Logger) *Flow {
	return &Flow{
		client: client,
		store:  store,
		nav:    newRelayNavigator(out),
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Login runs the flow to completion: it returns the stored token record
// on success, the authorization failure on denial, or the context error
// if the user gave up. The relay server is one-shot and shuts down when
// Login returns.
func (f *Flow) Login(ctx context.Context) (token.Record, error) {
	redirect, err := url.Parse(f.client.RedirectURI())
	if err != nil {
		return token.Record{}, fmt.Errorf("invalid redirect URI: %w", err)
	}
	if redirect.Host == "" {
		return token.Record{}, fmt.Errorf("redirect URI %q has no host to listen on", f.client.RedirectURI())
	}

	relayPath := redirect.Path
	if relayPath == "" {
		relayPath = "/"
	}
	if relayPath == callbackPath || relayPath == landingPath {
		return token.Record{}, fmt.Errorf("redirect URI path %q collides with a reserved route", relayPath)
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return token.Record{}, fmt.Errorf("failed to open callback listener: %w", err)
	}

	handler := NewHandler(f.client, f.store, f.nav, f.logger)
	results := make(chan loginResult, 1)

	srv := &http.Server{Handler: f.newMux(handler, results, relayPath)}
	go func() {
		_ = srv.Serve(ln)
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	defer srv.Close()

	if err := f.nav.OpenAuthorization(f.client.Auth().AuthorizeURL()); err != nil {
		return token.Record{}, fmt.Errorf("failed to present authorization URL: %w", err)
	}

	f.logger.Info().Str("addr", redirect.Host).Msg("Waiting for Spotify callback")

	select {
	case <-ctx.Done():
		return token.Record{}, ctx.Err()
	case res := <-results:
		return res.rec, res.err
	}
}

// newMux builds the relay routes: the redirect path serving the
// fragment relay page, the callback receiver, and the landing view.
func (f *Flow) newMux(handler *Handler, results chan loginResult, relayPath string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		f.nav.setResponse(w, r)

		rec, err := handler.HandleCallback(r.Context(), r.URL.RawQuery)
		if err != nil {
			http.Error(w, "Spotify authorization failed: "+err.Error(), http.StatusBadRequest)
			pushResult(results, loginResult{err: err})
			return
		}

		// The navigator has already redirected this response to the
		// landing view.
		pushResult(results, loginResult{rec: rec})
	})

	mux.HandleFunc(landingPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, landingPage)
	})

	mux.HandleFunc(relayPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, relayPage)
	})

	return mux
}

// pushResult delivers the first result; later callbacks for the same
// login are handled for idempotency but do not re-resolve the flow.
func pushResult(results chan loginResult, res loginResult) {
	select {
	case results <- res:
	default:
	}
}
