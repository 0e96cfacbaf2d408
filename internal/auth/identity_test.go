package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/session"
	"github.com/threef-labs/threef-cli/internal/testutil"
)

const mockAuthBase = "http://auth.mock/auth/v1"

func newTestIdentity(t *testing.T, tokens *credentials.SessionTokenSet) (*Identity, *session.Broker) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	broker := session.NewBroker()
	creds := &credentials.Credentials{AuthType: credentials.AuthTypeBearer, Tokens: tokens}
	return NewIdentity(creds, NewService(testEnv(mockAuthBase)), broker, testutil.NewTestLogger()), broker
}

func TestIdentity_CurrentUser_NoSession(t *testing.T) {
	id, _ := newTestIdentity(t, nil)
	_, err := id.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestIdentity_CurrentUser_FromStoredSession(t *testing.T) {
	id, _ := newTestIdentity(t, &credentials.SessionTokenSet{
		AccessToken: "acc",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		User:        &credentials.SessionUser{ID: "u1", Email: "u1@example.com"},
	})

	user, err := id.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestIdentity_CurrentUser_RefreshesExpiredSession(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, mockAuthBase+"/token?grant_type=refresh_token",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"access_token":  "fresh",
			"refresh_token": "fresh-refresh",
			"expires_in":    3600,
		}))
	httpmock.RegisterResponder(http.MethodGet, mockAuthBase+"/user",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{"id": "u2", "email": "u2@example.com"}))

	id, broker := newTestIdentity(t, &credentials.SessionTokenSet{
		AccessToken:  "old",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
	})

	var events []session.EventKind
	unsubscribe := broker.Subscribe(func(ev session.Event) { events = append(events, ev.Kind) })
	defer unsubscribe()

	user, err := id.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, "fresh", id.Credentials().Tokens.AccessToken)
	assert.Equal(t, []session.EventKind{session.TokenRefreshed}, events)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestIdentity_SignInAndSignOut(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodPost, mockAuthBase+"/logout", httpmock.NewStringResponder(204, ""))

	id, broker := newTestIdentity(t, nil)
	var events []session.EventKind
	unsubscribe := id.Subscribe(func(ev session.Event) { events = append(events, ev.Kind) })

	require.NoError(t, id.SignIn(&credentials.SessionTokenSet{
		AccessToken: "acc",
		User:        &credentials.SessionUser{ID: "u3"},
	}))
	user, err := id.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u3", user.ID)

	require.NoError(t, id.SignOut(context.Background()))
	_, err = id.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Equal(t, []session.EventKind{session.SignedIn, session.SignedOut}, events)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["POST "+mockAuthBase+"/logout"])

	unsubscribe()
	assert.Equal(t, 0, broker.Len())
}
