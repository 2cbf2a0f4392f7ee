// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"io"
	"net/http"
	"time"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	Args []string
	// Out receives command output.
	Out io.Writer
	// Now is the clock used for new time entries and relative times.
	Now func() time.Time
	// HTTPClient is used for API requests. Nil means http.DefaultClient.
	HTTPClient *http.Client
}
