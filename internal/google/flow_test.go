package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jobmeet/jobmeet/internal/errors"
)

// stubProvider fakes Google's authorize/token endpoints
func stubProvider(t *testing.T, accessToken string) oauth2.Endpoint {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/token" {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "fake-code", r.Form.Get("code"))
		assert.NotEmpty(t, r.Form.Get("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, accessToken)
	}))
	t.Cleanup(server.Close)

	return oauth2.Endpoint{
		AuthURL:  server.URL + "/authorize",
		TokenURL: server.URL + "/token",
	}
}

// browseAndApprove simulates the user approving consent: it parses the
// authorization URL and calls the loopback redirect with a code.
func browseAndApprove(t *testing.T) func(string) error {
	t.Helper()

	return func(authURL string) error {
		parsed, err := url.Parse(authURL)
		require.NoError(t, err)

		redirect := parsed.Query().Get("redirect_uri")
		state := parsed.Query().Get("state")
		require.NotEmpty(t, redirect)
		require.NotEmpty(t, state)

		go func() {
			resp, err := http.Get(fmt.Sprintf("%s?state=%s&code=fake-code", redirect, state))
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func TestTokenHappyPath(t *testing.T) {
	flow := NewFlow("client-123",
		WithEndpoint(stubProvider(t, "ya29.test-token")),
		WithOpenURL(browseAndApprove(t)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := flow.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ya29.test-token", token)
}

func TestTokenDenied(t *testing.T) {
	flow := NewFlow("client-123",
		WithEndpoint(stubProvider(t, "unused")),
		WithOpenURL(func(authURL string) error {
			parsed, err := url.Parse(authURL)
			require.NoError(t, err)

			redirect := parsed.Query().Get("redirect_uri")
			state := parsed.Query().Get("state")

			go func() {
				resp, err := http.Get(fmt.Sprintf("%s?state=%s&error=access_denied", redirect, state))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := flow.Token(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOAuthDenied, errors.CodeOf(err))
}

func TestTokenStateMismatch(t *testing.T) {
	flow := NewFlow("client-123",
		WithEndpoint(stubProvider(t, "unused")),
		WithOpenURL(func(authURL string) error {
			parsed, err := url.Parse(authURL)
			require.NoError(t, err)

			redirect := parsed.Query().Get("redirect_uri")

			go func() {
				resp, err := http.Get(fmt.Sprintf("%s?state=forged&code=fake-code", redirect))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := flow.Token(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOAuthExchange, errors.CodeOf(err))
}

func TestTokenMissingClientID(t *testing.T) {
	flow := NewFlow("")

	_, err := flow.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOAuthExchange, errors.CodeOf(err))
}

func TestTokenContextCancelled(t *testing.T) {
	flow := NewFlow("client-123",
		WithEndpoint(stubProvider(t, "unused")),
		WithOpenURL(func(string) error { return nil }), // browser never responds
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := flow.Token(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOAuthDenied, errors.CodeOf(err))
}
