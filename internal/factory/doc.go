// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package factory provides a keyed single-instance cache. A participating type
// keeps one Cache and hands out instances only through it: at most one live
// instance per key, one default instance when no key is given, and a fresh
// uncached instance for the explicit null key.
package factory
