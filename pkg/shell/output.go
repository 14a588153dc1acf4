// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/harbor"
)

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)
	return table
}

func renderTable(table *tablewriter.Table, rows [][]string) error {
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// PrintList writes rows as a table. When sortBy names one of the headers
// the rows are sorted by that column, numerically if every value is an
// integer.
func PrintList(w io.Writer, headers []string, rows [][]string, sortBy string) error {
	if sortBy != "" {
		idx := slices.IndexFunc(headers, func(h string) bool { return strings.EqualFold(h, sortBy) })
		if idx < 0 {
			return errors.NewInvalidArgumentError(
				fmt.Sprintf("unknown sort key '%s', must be one of: %s", sortBy, strings.Join(headers, ", ")), nil)
		}
		rows = slices.Clone(rows)
		sortRows(rows, idx)
	}
	return renderTable(newTable(w, headers), rows)
}

func sortRows(rows [][]string, idx int) {
	numeric := true
	for _, row := range rows {
		if _, err := strconv.ParseInt(row[idx], 10, 64); err != nil {
			numeric = false
			break
		}
	}

	slices.SortStableFunc(rows, func(a, b []string) int {
		if numeric {
			x, _ := strconv.ParseInt(a[idx], 10, 64)
			y, _ := strconv.ParseInt(b[idx], 10, 64)
			return cmp.Compare(x, y)
		}
		return cmp.Compare(a[idx], b[idx])
	})
}

// PrintDict writes values as a two column Property/Value table sorted by
// property.
func PrintDict(w io.Writer, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, values[k]})
	}
	return renderTable(newTable(w, []string{"Property", "Value"}), rows)
}

// PrintTimings writes the duration of every recorded request followed by
// the total.
func PrintTimings(w io.Writer, timings []harbor.Timing) error {
	var total time.Duration
	rows := make([][]string, 0, len(timings)+1)
	for _, t := range timings {
		total += t.Duration()
		rows = append(rows, []string{t.Label, formatSeconds(t.Duration())})
	}
	rows = append(rows, []string{"Total", formatSeconds(total)})

	if err := renderTable(newTable(w, []string{"url", "seconds"}), rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s seconds\n", formatSeconds(total))
	return err
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// FormatTime renders timestamps in table cells. The zero time renders empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
