package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/jobmeet/jobmeet/internal/errors"
	"github.com/jobmeet/jobmeet/internal/log"
)

// Flow obtains a Google access token via the loopback-redirect flow: a
// local listener receives the authorization code after the user consents in
// their browser, and the code is exchanged for a token. The token is handed
// straight to the backend's google-login endpoint and never persisted.
type Flow struct {
	clientID string
	endpoint oauth2.Endpoint
	logger   *log.Logger

	// openURL launches the user's browser; replaceable in tests
	openURL func(url string) error
}

// FlowOption configures a Flow
type FlowOption func(*Flow)

// WithEndpoint overrides the OAuth endpoint (tests point it at a stub)
func WithEndpoint(ep oauth2.Endpoint) FlowOption {
	return func(f *Flow) {
		f.endpoint = ep
	}
}

// WithOpenURL overrides how the consent URL is opened
func WithOpenURL(fn func(url string) error) FlowOption {
	return func(f *Flow) {
		f.openURL = fn
	}
}

// WithLogger sets the flow's logger
func WithLogger(logger *log.Logger) FlowOption {
	return func(f *Flow) {
		f.logger = logger
	}
}

// NewFlow creates a Flow for the given OAuth client ID
func NewFlow(clientID string, opts ...FlowOption) *Flow {
	f := &Flow{
		clientID: clientID,
		endpoint: googleoauth.Endpoint,
		logger:   log.DefaultLogger(),
		openURL:  openBrowser,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Token runs the loopback flow and returns the access token.
// Blocks until the user completes consent, the context is cancelled, or the
// flow times out.
func (f *Flow) Token(ctx context.Context) (string, error) {
	if f.clientID == "" {
		return "", errors.New(errors.ErrCodeOAuthExchange, "Google client ID is not configured").
			WithSuggestion("Set google_client_id in ~/.jobmeet/config.yaml").
			WithSuggestion("Or export JOBMEET_GOOGLE_CLIENT_ID")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeOAuthListener, "start loopback listener", err)
	}
	defer listener.Close()

	conf := &oauth2.Config{
		ClientID:    f.clientID,
		Endpoint:    f.endpoint,
		RedirectURL: fmt.Sprintf("http://%s/callback", listener.Addr().String()),
		Scopes:      []string{"openid", "email", "profile"},
	}

	state, err := randomState()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeOAuthExchange, "generate state", err)
	}
	verifier := oauth2.GenerateVerifier()

	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}

			q := r.URL.Query()
			switch {
			case q.Get("state") != state:
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- callbackResult{err: errors.New(errors.ErrCodeOAuthExchange, "OAuth state mismatch")}
			case q.Get("error") != "":
				fmt.Fprintln(w, "Sign-in was cancelled. You can close this window.")
				results <- callbackResult{err: errors.New(errors.ErrCodeOAuthDenied, "Google sign-in was denied")}
			default:
				fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
				results <- callbackResult{code: q.Get("code")}
			}
		}),
	}

	go server.Serve(listener) //nolint:errcheck // shut down below; Serve always returns non-nil
	defer server.Close()

	f.logger.InfoContext(ctx, "waiting for Google consent", "url", authURL)
	if err := f.openURL(authURL); err != nil {
		// The URL is still logged; the user can open it by hand
		f.logger.Warn("could not open browser", "error", err.Error())
	}

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return "", res.err
		}
		code = res.code
	case <-ctx.Done():
		return "", errors.Wrap(errors.ErrCodeOAuthDenied, "Google sign-in cancelled", ctx.Err())
	case <-time.After(5 * time.Minute):
		return "", errors.New(errors.ErrCodeOAuthDenied, "Google sign-in timed out")
	}

	token, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeOAuthExchange, "exchange authorization code", err)
	}

	return token.AccessToken, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// openBrowser opens url in the platform default browser
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
