package ui

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders rows under header with the CLI's table style. Columns
// listed in centered are center aligned, numbered from 1.
func Table(header []string, rows [][]string, centered ...int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	h := make(table.Row, len(header))
	for i, v := range header {
		h[i] = v
	}
	t.AppendHeader(h)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, WidthMax: 60}
		for _, c := range centered {
			if c == i+1 {
				cfg.Align = text.AlignCenter
			}
		}
		configs = append(configs, cfg)
	}
	t.SetColumnConfigs(configs)

	return t.Render()
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}
