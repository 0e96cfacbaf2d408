package profile

import (
	"context"
	"fmt"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
)

// owned is CRUD over a table whose rows belong to a user through user_id.
// Updates and deletes match on both id and user_id, so a user can never
// change someone else's row.
type owned[T any] struct {
	store    rowstore.Store
	identity Identity
	table    string
}

func (o owned[T]) list(ctx context.Context, userID string) ([]T, error) {
	var rows []T
	err := o.store.Select(ctx, o.table, rowstore.Query{
		Eq:      rowstore.Eq{"user_id": userID},
		OrderBy: "created_at",
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (o owned[T]) mine(ctx context.Context) ([]T, error) {
	user, err := requireUser(ctx, o.identity)
	if err != nil {
		return nil, err
	}
	return o.list(ctx, user.ID)
}

func (o owned[T]) create(ctx context.Context, row rowstore.Row) (*T, error) {
	user, err := requireUser(ctx, o.identity)
	if err != nil {
		return nil, err
	}
	row["user_id"] = user.ID

	var out T
	if err := o.store.Insert(ctx, o.table, row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o owned[T]) update(ctx context.Context, id string, set rowstore.Row) error {
	user, err := requireUser(ctx, o.identity)
	if err != nil {
		return err
	}
	n, err := o.store.Update(ctx, o.table, rowstore.Eq{"id": id, "user_id": user.ID}, set)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", o.table, id, ErrNotFound)
	}
	return nil
}

func (o owned[T]) delete(ctx context.Context, id string) error {
	user, err := requireUser(ctx, o.identity)
	if err != nil {
		return err
	}
	n, err := o.store.Delete(ctx, o.table, rowstore.Eq{"id": id, "user_id": user.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", o.table, id, ErrNotFound)
	}
	return nil
}
