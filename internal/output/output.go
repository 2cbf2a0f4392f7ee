// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Column selects one attribute of each result row.
type Column struct {
	// Key is a gjson path into the row.
	Key string
	// Title is the column header. Defaults to Key.
	Title string
	// Format renders the value. Defaults to the plain string value.
	Format func(gjson.Result) string
}

// Options controls text rendering.
type Options struct {
	Format string
	Titles bool
	Color  bool
}

// Emit writes result in the requested format. A single object is rendered as
// a one-row table.
func Emit(w io.Writer, result gjson.Result, cols []Column, opts Options) error {
	switch opts.Format {
	case "", "text":
		return Table(w, result, cols, opts)
	case "json":
		return JSON(w, result)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}
}

// JSON pretty prints result.
func JSON(w io.Writer, result gjson.Result) error {
	if !result.Exists() {
		return nil
	}
	_, err := io.WriteString(w, result.Get("@pretty").Raw)
	return err
}

// Table renders result as a borderless table.
func Table(w io.Writer, result gjson.Result, cols []Column, opts Options) error {
	var items []gjson.Result
	switch {
	case result.IsArray():
		items = result.Array()
	case result.Exists() && result.Type != gjson.Null:
		items = []gjson.Result{result}
	}

	var rows [][]string
	for _, item := range items {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			v := item.Get(c.Key)
			if c.Format != nil {
				row = append(row, c.Format(v))
			} else {
				row = append(row, v.String())
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Border(lipgloss.HiddenBorder()).
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(cols))
		for _, c := range cols {
			title := c.Title
			if title == "" {
				title = c.Key
			}
			headers = append(headers, strings.ToUpper(title))
		}
		t = t.Headers(headers...).BorderHeader(false)
	}

	header := lipgloss.NewStyle().PaddingRight(1)
	cell := lipgloss.NewStyle().PaddingRight(1)
	if opts.Color {
		header = header.Bold(true).Foreground(lipgloss.Color("12"))
	}
	t = t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	})

	if len(rows) == 0 && !opts.Titles {
		return nil
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Duration renders a number of seconds such as 5400 as "1h30m0s". A running
// time entry carries the negated start epoch instead and is measured up to now.
func Duration(now time.Time) func(gjson.Result) string {
	return func(v gjson.Result) string {
		secs := v.Int()
		if secs < 0 {
			elapsed := time.Duration(now.Unix()+secs) * time.Second
			return "running " + elapsed.String()
		}
		return (time.Duration(secs) * time.Second).String()
	}
}

// Since renders an RFC3339 timestamp relative to now, e.g. "3 hours ago".
func Since(now time.Time) func(gjson.Result) string {
	return func(v gjson.Result) string {
		t, err := time.Parse(time.RFC3339, v.String())
		if err != nil {
			return v.String()
		}
		return humanize.RelTime(t, now, "ago", "from now")
	}
}
