// Package rowstore reads and writes rows of named collections through the
// backend's GraphQL endpoint. Every collection is exposed with the same
// generated operations: <table>, insert_<table>, update_<table> and
// delete_<table>, with <table>_bool_exp filters.
package rowstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/constants"
)

// Row is a set of column values.
type Row map[string]any

// Eq is an equality filter: every column must equal its value.
type Eq map[string]any

// Query narrows a Select.
type Query struct {
	Eq      Eq
	OrderBy string
	Desc    bool
	Limit   int
}

// Conflict names the unique constraint an Upsert resolves and the columns
// it overwrites.
type Conflict struct {
	Constraint    string
	UpdateColumns []string
}

// Store is row CRUD over named collections.
type Store interface {
	Select(ctx context.Context, table string, q Query, out any) error
	Insert(ctx context.Context, table string, row Row, out any) error
	Update(ctx context.Context, table string, where Eq, set Row) (int, error)
	Delete(ctx context.Context, table string, where Eq) (int, error)
	Upsert(ctx context.Context, table string, row Row, conflict Conflict) error
}

// Executor runs one GraphQL request.
type Executor interface {
	Execute(ctx context.Context, req *graphql.Request, resp any) error
}

var ErrInvalidIdentifier = errors.New("invalid table or column name")

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type Client struct {
	graphql        Executor
	log            *zerolog.Logger
	serviceTimeout time.Duration
	readAttempts   uint
	retryDelay     time.Duration
}

func New(executor Executor, log *zerolog.Logger) *Client {
	return &Client{
		graphql:        executor,
		log:            log,
		serviceTimeout: constants.DefaultServiceTimeout,
		readAttempts:   3,
		retryDelay:     500 * time.Millisecond,
	}
}

func (c *Client) SetServiceTimeout(timeout time.Duration) {
	c.serviceTimeout = timeout
}

// SetReadRetry configures how often a Select is attempted on network errors.
func (c *Client) SetReadRetry(attempts uint, delay time.Duration) {
	c.readAttempts = attempts
	c.retryDelay = delay
}

func (c *Client) serviceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.serviceTimeout)
}

// Select loads the rows of table matching q into out, a pointer to a
// slice of structs. The selected columns are the json tags of the struct.
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	columns, err := columnsOf(out)
	if err != nil {
		return err
	}
	if err := checkIdentifiers(append([]string{table, q.OrderBy}, columns...)...); err != nil {
		return err
	}

	query := fmt.Sprintf(`
query Select%[1]s($where: %[1]s_bool_exp, $order_by: [%[1]s_order_by!], $limit: Int) {
  %[1]s(where: $where, order_by: $order_by, limit: $limit) {
    %[2]s
  }
}`, table, strings.Join(columns, "\n    "))

	req := graphql.NewRequest(query)
	req.Var("where", whereExp(q.Eq))
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		req.Var("order_by", []map[string]string{{q.OrderBy: dir}})
	}
	if q.Limit > 0 {
		req.Var("limit", q.Limit)
	}

	var container map[string]json.RawMessage
	err = retry.Do(
		func() error {
			ctx, cancel := c.serviceContext(ctx)
			defer cancel()
			return c.graphql.Execute(ctx, req, &container)
		},
		retry.Context(ctx),
		retry.Attempts(c.readAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug().Str("table", table).Uint("attempt", n+1).Err(err).Msg("Retrying select")
		}),
	)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}

	c.log.Debug().Str("table", table).Msg("Received rows")
	return decodeField(container, table, out)
}

// Insert writes row into table. When out is non-nil the inserted row,
// as returned by the backend, is decoded into it.
func (c *Client) Insert(ctx context.Context, table string, row Row, out any) error {
	returning := []string{"id"}
	if out != nil {
		cols, err := columnsOf(out)
		if err != nil {
			return err
		}
		returning = cols
	}
	if err := checkIdentifiers(append(append([]string{table}, returning...), keys(row)...)...); err != nil {
		return err
	}

	mutation := fmt.Sprintf(`
mutation Insert%[1]s($objects: [%[1]s_insert_input!]!) {
  insert_%[1]s(objects: $objects) {
    returning {
      %[2]s
    }
  }
}`, table, strings.Join(returning, "\n      "))

	req := graphql.NewRequest(mutation)
	req.Var("objects", []Row{row})

	var container map[string]struct {
		Returning []json.RawMessage `json:"returning"`
	}
	ctx, cancel := c.serviceContext(ctx)
	defer cancel()
	if err := c.graphql.Execute(ctx, req, &container); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	c.log.Debug().Str("table", table).Msg("Inserted row")
	if out == nil {
		return nil
	}
	result := container["insert_"+table].Returning
	if len(result) == 0 {
		return fmt.Errorf("insert into %s: no row returned", table)
	}
	return json.Unmarshal(result[0], out)
}

// Update sets columns on every row matching where and returns the number
// of affected rows.
func (c *Client) Update(ctx context.Context, table string, where Eq, set Row) (int, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("update %s: refusing to update without a filter", table)
	}
	if err := checkIdentifiers(append(append([]string{table}, keys(where)...), keys(set)...)...); err != nil {
		return 0, err
	}

	mutation := fmt.Sprintf(`
mutation Update%[1]s($where: %[1]s_bool_exp!, $set: %[1]s_set_input) {
  update_%[1]s(where: $where, _set: $set) {
    affected_rows
  }
}`, table)

	req := graphql.NewRequest(mutation)
	req.Var("where", whereExp(where))
	req.Var("set", set)

	return c.affected(ctx, req, "update_"+table)
}

// Delete removes every row matching where and returns how many were removed.
func (c *Client) Delete(ctx context.Context, table string, where Eq) (int, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("delete from %s: refusing to delete without a filter", table)
	}
	if err := checkIdentifiers(append([]string{table}, keys(where)...)...); err != nil {
		return 0, err
	}

	mutation := fmt.Sprintf(`
mutation Delete%[1]s($where: %[1]s_bool_exp!) {
  delete_%[1]s(where: $where) {
    affected_rows
  }
}`, table)

	req := graphql.NewRequest(mutation)
	req.Var("where", whereExp(where))

	return c.affected(ctx, req, "delete_"+table)
}

// Upsert inserts row or, when it collides on conflict.Constraint,
// overwrites conflict.UpdateColumns of the existing row.
func (c *Client) Upsert(ctx context.Context, table string, row Row, conflict Conflict) error {
	ids := append([]string{table, conflict.Constraint}, conflict.UpdateColumns...)
	if err := checkIdentifiers(append(ids, keys(row)...)...); err != nil {
		return err
	}

	mutation := fmt.Sprintf(`
mutation Upsert%[1]s($objects: [%[1]s_insert_input!]!, $on_conflict: %[1]s_on_conflict) {
  insert_%[1]s(objects: $objects, on_conflict: $on_conflict) {
    affected_rows
  }
}`, table)

	req := graphql.NewRequest(mutation)
	req.Var("objects", []Row{row})
	req.Var("on_conflict", map[string]any{
		"constraint":     conflict.Constraint,
		"update_columns": conflict.UpdateColumns,
	})

	if _, err := c.affected(ctx, req, "insert_"+table); err != nil {
		return err
	}
	return nil
}

func (c *Client) affected(ctx context.Context, req *graphql.Request, field string) (int, error) {
	var container map[string]struct {
		AffectedRows int `json:"affected_rows"`
	}
	ctx, cancel := c.serviceContext(ctx)
	defer cancel()
	if err := c.graphql.Execute(ctx, req, &container); err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	n := container[field].AffectedRows
	c.log.Debug().Str("operation", field).Int("affected_rows", n).Msg("Mutation done")
	return n, nil
}

func whereExp(eq Eq) map[string]any {
	where := make(map[string]any, len(eq))
	for col, v := range eq {
		where[col] = map[string]any{"_eq": v}
	}
	return where
}

func decodeField(container map[string]json.RawMessage, field string, out any) error {
	raw, ok := container[field]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}
	return nil
}

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if n == "" {
			continue
		}
		if !identifierPattern.MatchString(n) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, n)
		}
	}
	return nil
}

func keys[M ~map[string]any](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func isTransient(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
