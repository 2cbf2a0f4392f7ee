// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var testCols = []Column{
	{Key: "id"},
	{Key: "name", Title: "workspace"},
}

func TestTable(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		titles   bool
		contains []string
		lines    int
	}{
		{
			name:     "array",
			doc:      `[{"id":1,"name":"alpha"},{"id":2,"name":"beta"}]`,
			contains: []string{"1", "alpha", "2", "beta"},
			lines:    2,
		},
		{
			name:     "single object",
			doc:      `{"id":3,"name":"gamma"}`,
			contains: []string{"3", "gamma"},
			lines:    1,
		},
		{
			name:     "titles",
			doc:      `[{"id":1,"name":"alpha"}]`,
			titles:   true,
			contains: []string{"ID", "WORKSPACE", "alpha"},
			lines:    2,
		},
		{
			name:  "empty array",
			doc:   `[]`,
			lines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Table(&buf, gjson.Parse(tt.doc), testCols, Options{Titles: tt.titles})
			require.NoError(t, err)

			out := buf.String()
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			assert.Len(t, nonEmptyLines(out), tt.lines)
		})
	}
}

func TestTable_Format(t *testing.T) {
	cols := []Column{{Key: "name", Format: func(v gjson.Result) string { return strings.ToUpper(v.String()) }}}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, gjson.Parse(`[{"name":"alpha"}]`), cols, Options{}))
	assert.Contains(t, buf.String(), "ALPHA")
}

func TestEmit(t *testing.T) {
	doc := gjson.Parse(`{"id":1,"name":"alpha"}`)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, doc, testCols, Options{Format: "json"}))
	assert.JSONEq(t, `{"id":1,"name":"alpha"}`, buf.String())

	buf.Reset()
	require.NoError(t, Emit(&buf, doc, testCols, Options{}))
	assert.Contains(t, buf.String(), "alpha")

	err := Emit(&buf, doc, testCols, Options{Format: "yaml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDuration(t *testing.T) {
	now := time.Unix(10_000, 0)
	f := Duration(now)

	assert.Equal(t, "1h30m0s", f(gjson.Parse("5400")))
	assert.Equal(t, "0s", f(gjson.Parse("0")))
	assert.Equal(t, "running 1m40s", f(gjson.Parse("-9900")))
}

func TestSince(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f := Since(now)

	assert.Equal(t, "3 hours ago", f(gjson.Parse(`"2025-03-01T09:00:00Z"`)))
	assert.Equal(t, "not a time", f(gjson.Parse(`"not a time"`)))
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
