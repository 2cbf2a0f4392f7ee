// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

const entries = `[
  {"id": 1, "description": "Coding togglctl", "duration": 3600, "billable": true,  "tags": ["dev", "go"],   "project_id": 10},
  {"id": 2, "description": "Lunch",           "duration": 1800, "billable": false, "tags": [],              "project_id": null},
  {"id": 3, "description": "code review",     "duration": 900,  "billable": true,  "tags": ["dev"],         "project_id": 10}
]`

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{name: "empty", spec: "", want: nil},
		{name: "equals", spec: "id=1", want: []Filter{{Key: "id", Operand: "=", Target: "1"}}},
		{name: "negated", spec: "description!^Lu", want: []Filter{{Key: "description", Negate: true, Operand: "^", Target: "Lu"}}},
		{
			name: "multiple",
			spec: "duration>1000,tags@dev",
			want: []Filter{
				{Key: "duration", Operand: ">", Target: "1000"},
				{Key: "tags", Operand: "@", Target: "dev"},
			},
		},
		{name: "invalid skipped", spec: "nooperator,id=2", want: []Filter{{Key: "id", Operand: "=", Target: "2"}}},
		{name: "missing key skipped", spec: "=2", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv("TOGGL_FILTER_DELIM", ";")
	got := BuildFilters("description@a,b;id=1")
	assert.Equal(t, []Filter{
		{Key: "description", Operand: "@", Target: "a,b"},
		{Key: "id", Operand: "=", Target: "1"},
	}, got)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []int64
	}{
		{name: "no filter", spec: "", want: []int64{1, 2, 3}},
		{name: "numeric equals", spec: "id=2", want: []int64{2}},
		{name: "numeric greater", spec: "duration>1000", want: []int64{1, 2}},
		{name: "numeric not less", spec: "duration!<1800", want: []int64{1, 2}},
		{name: "case insensitive", spec: "description~lunch", want: []int64{2}},
		{name: "prefix", spec: "description^Cod", want: []int64{1}},
		{name: "contains string", spec: "description@od", want: []int64{1, 3}},
		{name: "regex", spec: "description/(?i)^cod", want: []int64{1, 3}},
		{name: "bool", spec: "billable=true", want: []int64{1, 3}},
		{name: "array contains", spec: "tags@go", want: []int64{1}},
		{name: "array not contains", spec: "tags!@dev", want: []int64{2}},
		{name: "null never matches", spec: "project_id!=10", want: []int64{}},
		{name: "all must match", spec: "billable=true,duration<1000", want: []int64{3}},
		{name: "missing key", spec: "client=x", want: []int64{}},
		{name: "bad numeric target", spec: "id=abc", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(gjson.Parse(entries), tt.spec)
			ids := []int64{}
			for _, r := range got.Array() {
				ids = append(ids, r.Get("id").Int())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApply_SingleObject(t *testing.T) {
	obj := gjson.Parse(`{"id": 7, "description": "x"}`)

	assert.Len(t, Apply(obj, "id=7").Array(), 1)
	assert.Len(t, Apply(obj, "id=8").Array(), 0)
	assert.Equal(t, obj.Raw, Apply(obj, "").Raw)
}

func TestMatch_ObjectContains(t *testing.T) {
	row := gjson.Parse(`{"labels": {"team": "core"}}`)

	assert.True(t, Match(row, BuildFilters("labels@team")))
	assert.False(t, Match(row, BuildFilters("labels@owner")))
	assert.True(t, Match(row, BuildFilters("labels!@owner")))
}
