package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/session"
)

const refreshBuffer = 60 * time.Second

// Identity is the signed-in user as seen by commands: it keeps the local
// session fresh and announces every change on the broker.
type Identity struct {
	creds  *credentials.Credentials
	svc    *Service
	broker *session.Broker
	log    *zerolog.Logger
	now    func() time.Time
}

func NewIdentity(creds *credentials.Credentials, svc *Service, broker *session.Broker, log *zerolog.Logger) *Identity {
	if creds == nil {
		creds = &credentials.Credentials{AuthType: credentials.AuthTypeBearer}
	}
	if broker == nil {
		broker = session.NewBroker()
	}
	return &Identity{creds: creds, svc: svc, broker: broker, log: log, now: time.Now}
}

func (i *Identity) Credentials() *credentials.Credentials { return i.creds }

func (i *Identity) Subscribe(fn session.Listener) func() {
	return i.broker.Subscribe(fn)
}

// CurrentUser returns the signed-in user, refreshing an expiring session
// first. It returns ErrNotAuthenticated when there is no session.
func (i *Identity) CurrentUser(ctx context.Context) (*User, error) {
	if !i.creds.LoggedIn() {
		return nil, ErrNotAuthenticated
	}

	if i.creds.AuthType == credentials.AuthTypeApiKey {
		return i.svc.GetUser(ctx, i.creds.APIKey)
	}

	if i.creds.Tokens.Expired(i.now(), refreshBuffer) {
		i.log.Debug().Msg("session expired or approaching expiration, refreshing")
		if err := i.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	if u := i.creds.Tokens.User; u != nil && u.ID != "" {
		return &User{ID: u.ID, Email: u.Email}, nil
	}

	user, err := i.svc.GetUser(ctx, i.creds.Tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	i.creds.Tokens.User = &credentials.SessionUser{ID: user.ID, Email: user.Email}
	return user, nil
}

func (i *Identity) Refresh(ctx context.Context) error {
	tokens, err := i.svc.RefreshToken(ctx, i.creds.Tokens)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	i.creds.Tokens = tokens
	if err := credentials.SaveCredentials(tokens); err != nil {
		i.log.Error().Err(err).Msg("failed to save refreshed session")
		return err
	}
	i.broker.Publish(session.Event{Kind: session.TokenRefreshed, Tokens: tokens})
	return nil
}

// SignIn stores a freshly issued session.
func (i *Identity) SignIn(tokens *credentials.SessionTokenSet) error {
	if err := credentials.SaveCredentials(tokens); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	i.creds.AuthType = credentials.AuthTypeBearer
	i.creds.Tokens = tokens
	i.broker.Publish(session.Event{Kind: session.SignedIn, Tokens: tokens})
	return nil
}

// SignOut revokes the session remotely when possible and always removes it locally.
func (i *Identity) SignOut(ctx context.Context) error {
	if i.creds.Tokens != nil && i.creds.Tokens.AccessToken != "" {
		if err := i.svc.SignOut(ctx, i.creds.Tokens.AccessToken); err != nil {
			i.log.Warn().Err(err).Msg("Failed to revoke session")
		} else {
			i.log.Debug().Msg("Session revoked")
		}
	}
	if err := credentials.DeleteCredentials(); err != nil {
		return err
	}
	i.creds.Tokens = nil
	i.broker.Publish(session.Event{Kind: session.SignedOut})
	return nil
}
