package rowstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/machinebox/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/testutil"
)

type machineboxExecutor struct {
	client *graphql.Client
}

func (e machineboxExecutor) Execute(ctx context.Context, req *graphql.Request, resp any) error {
	return e.client.Run(ctx, req, resp)
}

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newTestStore(t *testing.T, handler func(req capturedRequest) any) (*Client, *[]capturedRequest) {
	t.Helper()
	var seen []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handler(req))
	}))
	t.Cleanup(srv.Close)

	store := New(machineboxExecutor{client: graphql.NewClient(srv.URL)}, testutil.NewTestLogger())
	store.SetReadRetry(3, time.Millisecond)
	return store, &seen
}

type infoRow struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Category string `json:"category,omitempty"`
	Ignored  string `json:"-"`
	internal string
}

func TestSelect(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"data": map[string]any{
			"info": []map[string]any{
				{"id": "1", "brand": "Acme", "category": "Tech"},
				{"id": "2", "brand": "Beta"},
			},
		}}
	})

	var rows []infoRow
	err := store.Select(context.Background(), "info", Query{
		Eq:      Eq{"user_id": "u1"},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   5,
	}, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].Brand)
	assert.Equal(t, "Tech", rows[0].Category)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Contains(t, req.Query, "info(where: $where, order_by: $order_by, limit: $limit)")
	assert.Contains(t, req.Query, "category")
	assert.NotContains(t, req.Query, "Ignored")
	assert.NotContains(t, req.Query, "internal")
	assert.Equal(t, map[string]any{"user_id": map[string]any{"_eq": "u1"}}, req.Variables["where"])
	assert.Equal(t, []any{map[string]any{"created_at": "desc"}}, req.Variables["order_by"])
	assert.EqualValues(t, 5, req.Variables["limit"])
}

func TestSelect_NullResultLeavesOutEmpty(t *testing.T) {
	store, _ := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"data": map[string]any{"info": nil}}
	})

	var rows []infoRow
	require.NoError(t, store.Select(context.Background(), "info", Query{}, &rows))
	assert.Empty(t, rows)
}

func TestSelect_GraphQLErrorIsNotRetried(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"errors": []map[string]string{{"message": "permission denied"}}}
	})

	var rows []infoRow
	err := store.Select(context.Background(), "info", Query{}, &rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select info")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Len(t, *seen, 1)
}

func TestSelect_RetriesNetworkErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"info":[{"id":"1","brand":"Acme"}]}}`))
	}))
	defer srv.Close()

	store := New(machineboxExecutor{client: graphql.NewClient(srv.URL)}, testutil.NewTestLogger())
	store.SetReadRetry(3, time.Millisecond)

	var rows []infoRow
	require.NoError(t, store.Select(context.Background(), "info", Query{}, &rows))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, calls.Load())
}

func TestSelect_RejectsBadOutAndIdentifiers(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any { return nil })

	var s string
	assert.Error(t, store.Select(context.Background(), "info", Query{}, &s))

	var rows []infoRow
	err := store.Select(context.Background(), "info; drop", Query{}, &rows)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = store.Select(context.Background(), "info", Query{OrderBy: "brand desc"}, &rows)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	assert.Empty(t, *seen)
}

func TestInsert(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"data": map[string]any{
			"insert_info": map[string]any{
				"returning": []map[string]any{{"id": "new-id", "brand": "Acme"}},
			},
		}}
	})

	var out infoRow
	err := store.Insert(context.Background(), "info", Row{"brand": "Acme", "user_id": "u1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "new-id", out.ID)

	req := (*seen)[0]
	assert.Contains(t, req.Query, "insert_info(objects: $objects)")
	assert.Equal(t, []any{map[string]any{"brand": "Acme", "user_id": "u1"}}, req.Variables["objects"])
}

func TestInsert_WithoutOut(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"data": map[string]any{
			"insert_faqs": map[string]any{"returning": []map[string]any{{"id": "f1"}}},
		}}
	})

	require.NoError(t, store.Insert(context.Background(), "faqs", Row{"question": "Why?"}, nil))
	assert.Contains(t, (*seen)[0].Query, "returning {\n      id\n    }")
}

func TestUpdateAndDelete(t *testing.T) {
	store, seen := newTestStore(t, func(req capturedRequest) any {
		field := "update_tiers"
		if _, ok := req.Variables["set"]; !ok {
			field = "delete_tiers"
		}
		return map[string]any{"data": map[string]any{
			field: map[string]any{"affected_rows": 1},
		}}
	})

	n, err := store.Update(context.Background(), "tiers", Eq{"id": "t1"}, Row{"title": "Gold"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, (*seen)[0].Query, "update_tiers(where: $where, _set: $set)")
	assert.Equal(t, map[string]any{"title": "Gold"}, (*seen)[0].Variables["set"])

	n, err = store.Delete(context.Background(), "tiers", Eq{"id": "t1"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, (*seen)[1].Query, "delete_tiers(where: $where)")
}

func TestUpdateAndDelete_RequireFilter(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any { return nil })

	_, err := store.Update(context.Background(), "tiers", nil, Row{"title": "Gold"})
	assert.Error(t, err)
	_, err = store.Delete(context.Background(), "tiers", Eq{})
	assert.Error(t, err)
	assert.Empty(t, *seen)
}

func TestUpsert(t *testing.T) {
	store, seen := newTestStore(t, func(capturedRequest) any {
		return map[string]any{"data": map[string]any{
			"insert_profile_about": map[string]any{"affected_rows": 1},
		}}
	})

	err := store.Upsert(context.Background(), "profile_about", Row{"user_id": "u1", "about": "hi"}, Conflict{
		Constraint:    "profile_about_user_id_key",
		UpdateColumns: []string{"about"},
	})
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Contains(t, req.Query, "on_conflict: $on_conflict")
	assert.Equal(t, map[string]any{
		"constraint":     "profile_about_user_id_key",
		"update_columns": []any{"about"},
	}, req.Variables["on_conflict"])
}
