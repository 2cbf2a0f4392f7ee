// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/togglctl/internal/meta"
	"github.com/staranto/togglctl/internal/version"
)

func InitApp(ctx context.Context, m meta.Meta) (*cli.Command, error) {
	m = withMetaDefaults(m)

	app := &cli.Command{
		Name:   "togglctl",
		Usage:  "Toggl Track from the command line",
		Writer: m.Out,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:                 NewGlobalFlags(),
		EnableShellCompletion: true,
	}

	sub := NewSubCommands(app)
	sub.Command(MeCommandBuilder())
	sub.Command(VersionCommandBuilder())
	sub.Group(EntriesCommandBuilder())
	sub.Group(ProjectsCommandBuilder())
	sub.Group(WorkspacesCommandBuilder())

	// Make sure flags are sorted for the --help text.
	var sortFlags func(cmds []*cli.Command)
	sortFlags = func(cmds []*cli.Command) {
		for _, cmd := range cmds {
			sort.Slice(cmd.Flags, func(i, j int) bool {
				return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
			})
			sortFlags(cmd.Commands)
		}
	}
	sortFlags([]*cli.Command{app})

	return app, nil
}

// VersionCommandBuilder constructs the "version" command.
func VersionCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the togglctl version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(GetMeta(cmd).Out, version.Version)
			return err
		},
	}
}
