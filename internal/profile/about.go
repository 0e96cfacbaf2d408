package profile

import (
	"context"
	"strings"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
)

type AboutService struct {
	store    rowstore.Store
	identity Identity
}

func NewAboutService(store rowstore.Store, identity Identity) *AboutService {
	return &AboutService{store: store, identity: identity}
}

// Get returns the about text of userID, empty when none was saved.
func (s *AboutService) Get(ctx context.Context, userID string) (string, error) {
	var rows []About
	err := s.store.Select(ctx, TableAbout, rowstore.Query{Eq: rowstore.Eq{"user_id": userID}, Limit: 1}, &rows)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].About, nil
}

func (s *AboutService) Mine(ctx context.Context) (string, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return "", err
	}
	return s.Get(ctx, user.ID)
}

// Save creates or replaces the about text of the signed-in user.
func (s *AboutService) Save(ctx context.Context, about string) error {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return err
	}
	return s.store.Upsert(ctx, TableAbout,
		rowstore.Row{"user_id": user.ID, "about": strings.TrimSpace(about)},
		rowstore.Conflict{Constraint: AboutUserConstraint, UpdateColumns: []string{"about"}},
	)
}
