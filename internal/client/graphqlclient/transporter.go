package graphqlclient

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/credentials"
)

// headerTransport attaches identity headers to every request and retries
// once after refreshing the session when the backend answers 401.
type headerTransport struct {
	base        http.RoundTripper
	credentials *credentials.Credentials
	anonKey     string
	refresher   Refresher
}

func newHeaderTransport(creds *credentials.Credentials, anonKey string, refresher Refresher, base http.RoundTripper) *headerTransport {
	return &headerTransport{
		base:        base,
		credentials: creds,
		anonKey:     anonKey,
		refresher:   refresher,
	}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	t.injectHeaders(clone)

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized &&
		t.refresher != nil &&
		t.credentials.AuthType != credentials.AuthTypeApiKey &&
		t.credentials.Tokens != nil &&
		t.credentials.Tokens.RefreshToken != "" &&
		req.GetBody != nil {

		resp.Body.Close()
		if refreshErr := t.refresher.Refresh(req.Context()); refreshErr != nil {
			return nil, fmt.Errorf("token refresh failed: %w", refreshErr)
		}

		retry := req.Clone(req.Context())
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
		t.injectHeaders(retry)
		return t.base.RoundTrip(retry)
	}

	return resp, nil
}

func (t *headerTransport) injectHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", uuid.New().String())
	req.Header.Set("User-Agent", constants.UserAgent)
	if t.anonKey != "" {
		req.Header.Set("apikey", t.anonKey)
	}

	switch {
	case t.credentials.AuthType == credentials.AuthTypeApiKey && t.credentials.APIKey != "":
		req.Header.Set("Authorization", "Bearer "+t.credentials.APIKey)
	case t.credentials.Tokens != nil && t.credentials.Tokens.AccessToken != "":
		req.Header.Set("Authorization", "Bearer "+t.credentials.Tokens.AccessToken)
	case t.anonKey != "":
		req.Header.Set("Authorization", "Bearer "+t.anonKey)
	}
}
