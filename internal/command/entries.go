// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/togglctl/internal/api"
	"github.com/staranto/togglctl/internal/config"
	"github.com/staranto/togglctl/internal/output"
)

const createdWith = "togglctl"

func entryColumns(now time.Time) []output.Column {
	return []output.Column{
		{Key: "id"},
		{Key: "description"},
		{Key: "project_id", Title: "project"},
		{Key: "start", Format: output.Since(now)},
		{Key: "duration", Format: output.Duration(now)},
	}
}

// EntriesCommandBuilder constructs the "entries" group and its commands.
func EntriesCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:    "entries",
		Aliases: []string{"e"},
		Usage:   "time entry commands",
		Commands: []*cli.Command{
			entriesLsCommand(),
			entriesStartCommand(),
			entriesStopCommand(),
			entriesRmCommand(),
		},
	}
}

func entriesLsCommand() *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "list recent time entries",
		UsageText: `togglctl entries ls [options]`,
		Runner: &QueryActionRunner{
			ColumnsFn: entryColumns,
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				return api.Get(ctx, cfg, "me/time_entries", APIOptions(cmd)...)
			},
		},
	}).Build()
}

func entriesStartCommand() *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "start",
		Usage:     "start a new running time entry",
		UsageText: `togglctl entries start <description> [--workspace ID] [--project ID]`,
		Flags:     []cli.Flag{NewWorkspaceFlag(), NewProjectFlag()},
		Runner: &QueryActionRunner{
			ColumnsFn: entryColumns,
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				description := strings.Join(cmd.Args().Slice(), " ")
				if description == "" {
					return gjson.Result{}, fmt.Errorf("%w: description", ErrMissingArgument)
				}

				wid, err := Workspace(cmd, cfg)
				if err != nil {
					return gjson.Result{}, err
				}

				now := GetMeta(cmd).Now().UTC()
				body := map[string]any{
					"created_with": createdWith,
					"description":  description,
					"workspace_id": wid,
					"start":        now.Format(time.RFC3339),
					"duration":     -1,
				}
				if pid := cmd.Int("project"); pid > 0 {
					body["project_id"] = pid
				}

				return api.Post(ctx, cfg, fmt.Sprintf("workspaces/%d/time_entries", wid), body, APIOptions(cmd)...)
			},
		},
	}).Build()
}

func entriesStopCommand() *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "stop",
		Usage:     "stop the running time entry, or the one with the given id",
		UsageText: `togglctl entries stop [id]`,
		Runner: &QueryActionRunner{
			ColumnsFn: entryColumns,
			FetchFn: func(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
				entry, err := targetEntry(ctx, cmd, cfg)
				if err != nil {
					return gjson.Result{}, err
				}

				now := GetMeta(cmd).Now().UTC()
				path := fmt.Sprintf("workspaces/%d/time_entries/%d",
					entry.Get("workspace_id").Int(), entry.Get("id").Int())
				return api.Put(ctx, cfg, path, map[string]any{"stop": now.Format(time.RFC3339)}, APIOptions(cmd)...)
			},
		},
	}).Build()
}

func entriesRmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "delete a time entry",
		UsageText: `togglctl entries rm <id>`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("%w: id", ErrMissingArgument)
			}

			cfg, err := GetConfig(cmd)
			if err != nil {
				return err
			}

			entry, err := targetEntry(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			path := fmt.Sprintf("workspaces/%d/time_entries/%d",
				entry.Get("workspace_id").Int(), entry.Get("id").Int())
			if _, err := api.Delete(ctx, cfg, path, APIOptions(cmd)...); err != nil {
				return err
			}

			log.Infof("deleted time entry %d", entry.Get("id").Int())
			return nil
		},
	}
}

// targetEntry reads the entry named by the first argument, or the running
// entry when there is no argument.
func targetEntry(ctx context.Context, cmd *cli.Command, cfg *config.Config) (gjson.Result, error) {
	path := "me/time_entries/current"
	if arg := cmd.Args().First(); arg != "" {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%w: time entry id %q", ErrInvalidArgument, arg)
		}
		path = fmt.Sprintf("me/time_entries/%d", id)
	}

	entry, err := api.Get(ctx, cfg, path, APIOptions(cmd)...)
	if err != nil {
		return gjson.Result{}, err
	}
	if !entry.Get("id").Exists() {
		return gjson.Result{}, ErrNoRunningEntry
	}

	return entry, nil
}
