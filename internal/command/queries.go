// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/togglctl/internal/api"
	"github.com/staranto/togglctl/internal/config"
	"github.com/staranto/togglctl/internal/output"
)

// MeCommandBuilder constructs the "me" command, which shows the current user.
func MeCommandBuilder() *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "me",
		Usage:     "show the authenticated user",
		UsageText: `togglctl me [options]`,
		Runner: &QueryActionRunner{
			Columns: []output.Column{
				{Key: "id"},
				{Key: "email"},
				{Key: "fullname", Title: "name"},
				{Key: "default_workspace_id", Title: "workspace"},
				{Key: "timezone"},
			},
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				return api.Get(ctx, cfg, "me", APIOptions(cmd)...)
			},
		},
	}).Build()
}

// WorkspacesCommandBuilder constructs the "workspaces" group.
func WorkspacesCommandBuilder() *cli.Command {
	ls := (&QueryCommandBuilder{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "list workspaces",
		UsageText: `togglctl workspaces ls [options]`,
		Runner: &QueryActionRunner{
			Columns: []output.Column{
				{Key: "id"},
				{Key: "name"},
				{Key: "premium"},
			},
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				return api.Get(ctx, cfg, "me/workspaces", APIOptions(cmd)...)
			},
		},
	}).Build()

	return &cli.Command{
		Name:     "workspaces",
		Aliases:  []string{"ws"},
		Usage:    "workspace commands",
		Commands: []*cli.Command{ls},
	}
}

// ProjectsCommandBuilder constructs the "projects" group.
func ProjectsCommandBuilder() *cli.Command {
	ls := (&QueryCommandBuilder{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "list projects of a workspace",
		UsageText: `togglctl projects ls [--workspace ID] [options]`,
		Flags:     []cli.Flag{NewWorkspaceFlag()},
		Runner: &QueryActionRunner{
			Columns: []output.Column{
				{Key: "id"},
				{Key: "name"},
				{Key: "active"},
				{Key: "client_id", Title: "client"},
			},
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				wid, err := Workspace(cmd, cfg)
				if err != nil {
					return gjson.Result{}, err
				}
				return api.Get(ctx, cfg, fmt.Sprintf("workspaces/%d/projects", wid), APIOptions(cmd)...)
			},
		},
	}).Build()

	return &cli.Command{
		Name:     "projects",
		Usage:    "project commands",
		Commands: []*cli.Command{ls},
	}
}
