// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"runtime/debug"

	"github.com/apex/log"
)

// defaults are the type-level values every Config falls back to. Change them
// only through SetDefault so the write is audited.
var defaults = map[string]any{
	"api_url":  "https://api.track.toggl.com/api/v9/",
	"output":   "text",
	"timezone": "",
}

// Default returns the type-level default for name.
func Default(name string) (any, bool) {
	v, ok := defaults[name]
	return v, ok
}

// SetDefault changes a type-level default for every Config, cached ones
// included. Each write is logged as a warning with the call stack at debug
// level.
func SetDefault(name string, value any) {
	log.Warnf("You are modifying default attribute '%s' of 'Config' type. You better know what you are doing!", name)
	log.Debug(string(debug.Stack()))

	defaults[name] = value
}
