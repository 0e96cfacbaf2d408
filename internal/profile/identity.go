package profile

import (
	"context"

	"github.com/threef-labs/threef-cli/internal/auth"
)

// Identity resolves the signed-in user.
type Identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

func requireUser(ctx context.Context, id Identity) (*auth.User, error) {
	if id == nil {
		return nil, auth.ErrNotAuthenticated
	}
	user, err := id.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, auth.ErrNotAuthenticated
	}
	return user, nil
}
