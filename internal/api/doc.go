// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package api sends synchronous requests to the Toggl Track API and turns
// error responses into typed errors.
package api
