package authvalidation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/credentials"
)

// UserLookup fetches the account an access token belongs to.
type UserLookup interface {
	GetUser(ctx context.Context, accessToken string) (*auth.User, error)
}

// Validator checks that the stored session is accepted by the identity provider.
type Validator struct {
	identity *auth.Identity
	lookup   UserLookup
	log      *zerolog.Logger
}

func NewValidator(identity *auth.Identity, lookup UserLookup, log *zerolog.Logger) *Validator {
	return &Validator{identity: identity, lookup: lookup, log: log}
}

// ValidateCredentials resolves the signed-in user, refreshing an expiring
// session, and asks the identity provider to confirm the access token.
func (v *Validator) ValidateCredentials(ctx context.Context) (*auth.User, error) {
	user, err := v.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	creds := v.identity.Credentials()
	if creds.AuthType != credentials.AuthTypeBearer {
		return user, nil
	}

	remote, err := v.lookup.GetUser(ctx, creds.Tokens.AccessToken)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return nil, fmt.Errorf("session was rejected: %w", err)
		}
		return nil, fmt.Errorf("authentication validation failed: %w", err)
	}
	v.log.Debug().Str("user_id", remote.ID).Msg("Session validated")
	return remote, nil
}
