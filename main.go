// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/togglctl/internal/api"
	"github.com/staranto/togglctl/internal/command"
	mylog "github.com/staranto/togglctl/internal/log"
	"github.com/staranto/togglctl/internal/meta"
	"github.com/staranto/togglctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, meta.Meta{Args: args, Out: os.Stdout})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		log.WithError(err).Debug("command failed")
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, api.ErrAuthentication) {
			fmt.Fprintln(os.Stderr, "Check api_token in togglctl.yaml or TOGGL_API_TOKEN.")
		}
		return 2
	}

	return 0
}
