package rowstoretest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
)

type tierRow struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Title     string   `json:"title"`
	Amount    *float64 `json:"amount"`
	CreatedAt string   `json:"created_at"`
}

func TestMemory_InsertSelect(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var first tierRow
	require.NoError(t, m.Insert(ctx, "tiers", rowstore.Row{"user_id": "u1", "title": "Bronze", "amount": 5}, &first))
	require.NoError(t, m.Insert(ctx, "tiers", rowstore.Row{"user_id": "u1", "title": "Silver", "amount": nil}, nil))
	require.NoError(t, m.Insert(ctx, "tiers", rowstore.Row{"user_id": "u2", "title": "Gold"}, nil))

	assert.NotEmpty(t, first.ID)
	require.NotNil(t, first.Amount)
	assert.Equal(t, 5.0, *first.Amount)

	var rows []tierRow
	require.NoError(t, m.Select(ctx, "tiers", rowstore.Query{
		Eq:      rowstore.Eq{"user_id": "u1"},
		OrderBy: "created_at",
		Desc:    true,
	}, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Silver", rows[0].Title)
	assert.Nil(t, rows[0].Amount)
	assert.Equal(t, "Bronze", rows[1].Title)

	rows = nil
	require.NoError(t, m.Select(ctx, "tiers", rowstore.Query{Limit: 1}, &rows))
	assert.Len(t, rows, 1)
}

func TestMemory_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Insert(ctx, "faqs", rowstore.Row{"id": "f1", "question": "Q"}, nil))

	n, err := m.Update(ctx, "faqs", rowstore.Eq{"id": "f1"}, rowstore.Row{"question": "Q2"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Q2", m.Rows("faqs")[0]["question"])

	n, err = m.Delete(ctx, "faqs", rowstore.Eq{"id": "missing"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = m.Delete(ctx, "faqs", rowstore.Eq{"id": "f1"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, m.Rows("faqs"))
}

func TestMemory_Upsert(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddConstraint("profile_about_user_id_key", "user_id")

	conflict := rowstore.Conflict{Constraint: "profile_about_user_id_key", UpdateColumns: []string{"about"}}
	require.NoError(t, m.Upsert(ctx, "profile_about", rowstore.Row{"user_id": "u1", "about": "first"}, conflict))
	require.NoError(t, m.Upsert(ctx, "profile_about", rowstore.Row{"user_id": "u1", "about": "second"}, conflict))

	rows := m.Rows("profile_about")
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0]["about"])
}

func TestMemory_FailOnIsOneShot(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")
	m.FailOn("insert", "info", boom)

	assert.ErrorIs(t, m.Insert(ctx, "info", rowstore.Row{"brand": "Acme"}, nil), boom)
	assert.NoError(t, m.Insert(ctx, "info", rowstore.Row{"brand": "Acme"}, nil))
	assert.Len(t, m.Rows("info"), 1)
}
