// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex splits an expression into key, operator and target. Operators
// are one of = ^ ~ < > @ or /, optionally negated with a leading '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	// Key is a gjson path into each row.
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("TOGGL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil || parts[1] == "" {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(parts[2], "!")

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		})
	}

	return filters
}

// Apply returns the rows of result that match every filter in spec, as a JSON
// array. A single object is treated as a one-row array. An empty spec returns
// result unchanged.
func Apply(result gjson.Result, spec string) gjson.Result {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return result
	}

	var rows []gjson.Result
	if result.IsArray() {
		rows = result.Array()
	} else if result.Exists() && result.Type != gjson.Null {
		rows = []gjson.Result{result}
	}

	kept := make([]string, 0, len(rows))
	for _, row := range rows {
		if Match(row, filters) {
			kept = append(kept, row.Raw)
		}
	}

	return gjson.Parse("[" + strings.Join(kept, ",") + "]")
}

// Match reports whether row satisfies all filters. A missing or null value
// never matches.
func Match(row gjson.Result, filters []Filter) bool {
	for _, filter := range filters {
		value := row.Get(filter.Key)
		if !value.Exists() || value.Type == gjson.Null {
			return false
		}

		var ok bool
		switch {
		case value.Type == gjson.Number:
			ok = checkNumericOperand(value.Float(), filter)
		case value.Type == gjson.String, value.IsBool():
			ok = checkStringOperand(value.String(), filter)
		case filter.Operand == "@":
			ok = checkContainsOperand(value, filter)
		default:
			log.Errorf("unsupported value for filter %s: %s", filter.Key, value.Raw)
		}

		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership filter (operand '@') against
// arrays (element equality) and objects (key presence).
func checkContainsOperand(value gjson.Result, filter Filter) bool {
	found := false
	switch {
	case value.IsArray():
		for _, item := range value.Array() {
			if item.String() == filter.Target {
				found = true
				break
			}
		}
	case value.IsObject():
		found = value.Get(gjson.Escape(filter.Target)).Exists()
	}
	return found == !filter.Negate
}

// checkNumericOperand compares using numeric semantics. Supported operands
// are =, > and <.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + filter.Target)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
