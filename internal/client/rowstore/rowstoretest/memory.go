// Package rowstoretest provides an in-memory rowstore.Store for tests.
package rowstoretest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
)

var _ rowstore.Store = (*Memory)(nil)

// Memory keeps rows per table. Inserted rows get an id and a created_at
// column when they carry none. Constraints default to the id column.
type Memory struct {
	mu          sync.Mutex
	tables      map[string][]rowstore.Row
	constraints map[string][]string
	failures    map[string]error
	clock       time.Time
}

func NewMemory() *Memory {
	return &Memory{
		tables:      map[string][]rowstore.Row{},
		constraints: map[string][]string{},
		failures:    map[string]error{},
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddConstraint declares the columns a named unique constraint covers.
func (m *Memory) AddConstraint(name string, columns ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints[name] = columns
}

// FailOn makes the next call of op ("select", "insert", "update",
// "delete" or "upsert") on table return err.
func (m *Memory) FailOn(op, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op+":"+table] = err
}

// Rows returns a copy of the rows stored in table.
func (m *Memory) Rows(table string) []rowstore.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]rowstore.Row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

func (m *Memory) Select(_ context.Context, table string, q rowstore.Query, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("select", table); err != nil {
		return err
	}

	var rows []rowstore.Row
	for _, r := range m.tables[table] {
		if matches(r, q.Eq) {
			rows = append(rows, r)
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := fmt.Sprint(rows[i][q.OrderBy]), fmt.Sprint(rows[j][q.OrderBy])
			if q.Desc {
				return a > b
			}
			return a < b
		})
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	if rows == nil {
		rows = []rowstore.Row{}
	}
	return roundTrip(rows, out)
}

func (m *Memory) Insert(_ context.Context, table string, row rowstore.Row, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("insert", table); err != nil {
		return err
	}

	stored := m.normalize(row)
	m.tables[table] = append(m.tables[table], stored)
	if out == nil {
		return nil
	}
	return roundTrip(stored, out)
}

func (m *Memory) Update(_ context.Context, table string, where rowstore.Eq, set rowstore.Row) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("update", table); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, fmt.Errorf("update %s: refusing to update without a filter", table)
	}

	n := 0
	for _, r := range m.tables[table] {
		if !matches(r, where) {
			continue
		}
		for k, v := range normalizeValues(set) {
			r[k] = v
		}
		n++
	}
	return n, nil
}

func (m *Memory) Delete(_ context.Context, table string, where rowstore.Eq) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("delete", table); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, fmt.Errorf("delete from %s: refusing to delete without a filter", table)
	}

	kept := m.tables[table][:0]
	n := 0
	for _, r := range m.tables[table] {
		if matches(r, where) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.tables[table] = kept
	return n, nil
}

func (m *Memory) Upsert(_ context.Context, table string, row rowstore.Row, conflict rowstore.Conflict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure("upsert", table); err != nil {
		return err
	}

	cols, ok := m.constraints[conflict.Constraint]
	if !ok {
		cols = []string{"id"}
	}
	values := normalizeValues(row)
	key := rowstore.Eq{}
	for _, c := range cols {
		key[c] = values[c]
	}
	for _, r := range m.tables[table] {
		if matches(r, key) {
			for _, c := range conflict.UpdateColumns {
				if v, ok := values[c]; ok {
					r[c] = v
				}
			}
			return nil
		}
	}
	m.tables[table] = append(m.tables[table], m.normalize(row))
	return nil
}

func (m *Memory) failure(op, table string) error {
	key := op + ":" + table
	err, ok := m.failures[key]
	if ok {
		delete(m.failures, key)
	}
	return err
}

func (m *Memory) normalize(row rowstore.Row) rowstore.Row {
	stored := normalizeValues(row)
	if _, ok := stored["id"]; !ok {
		stored["id"] = uuid.NewString()
	}
	if _, ok := stored["created_at"]; !ok {
		m.clock = m.clock.Add(time.Second)
		stored["created_at"] = m.clock.Format(time.RFC3339)
	}
	return stored
}

// normalizeValues passes row through JSON so stored values look like what
// a backend would return.
func normalizeValues(row rowstore.Row) rowstore.Row {
	var out rowstore.Row
	raw, err := json.Marshal(row)
	if err != nil || json.Unmarshal(raw, &out) != nil || out == nil {
		return rowstore.Row{}
	}
	return out
}

func matches(r rowstore.Row, eq rowstore.Eq) bool {
	for k, want := range eq {
		if fmt.Sprint(r[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func copyRow(r rowstore.Row) rowstore.Row {
	out := make(rowstore.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
