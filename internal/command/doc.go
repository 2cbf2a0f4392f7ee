// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command builds the togglctl command tree and the actions behind
// each command.
package command
