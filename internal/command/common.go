// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/togglctl/internal/api"
	"github.com/staranto/togglctl/internal/config"
	"github.com/staranto/togglctl/internal/factory"
	"github.com/staranto/togglctl/internal/filters"
	"github.com/staranto/togglctl/internal/meta"
	"github.com/staranto/togglctl/internal/output"
)

var (
	ErrNoWorkspace     = errors.New("no workspace given and no default_wid configured")
	ErrMissingArgument = errors.New("missing argument")
	ErrNoRunningEntry  = errors.New("no time entry is running")
	ErrInvalidArgument = errors.New("invalid argument")
)

// GetMeta returns the meta.Meta stored in the root command's Metadata. If
// missing, it returns a Meta writing to stdout.
func GetMeta(cmd *cli.Command) meta.Meta {
	var m meta.Meta
	if cmd != nil {
		if v, ok := cmd.Root().Metadata["meta"].(meta.Meta); ok {
			m = v
		}
	}
	return withMetaDefaults(m)
}

func withMetaDefaults(m meta.Meta) meta.Meta {
	if m.Out == nil {
		m.Out = os.Stdout
	}
	if m.Now == nil {
		m.Now = time.Now
	}
	return m
}

// ProfileKey maps the --isolated and --profile flags onto a config key.
func ProfileKey(cmd *cli.Command) factory.Key[string] {
	if cmd.Bool("isolated") {
		return factory.Null[string]()
	}
	if p := cmd.String("profile"); p != "" {
		return factory.Of(p)
	}
	return factory.Omitted[string]()
}

// GetConfig returns the Config selected by the command line.
func GetConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Factory(ProfileKey(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Workspace resolves the workspace id from --workspace or the config.
func Workspace(cmd *cli.Command, cfg *config.Config) (int, error) {
	if ws := cmd.Int("workspace"); ws > 0 {
		return ws, nil
	}
	ws, err := cfg.DefaultWorkspace()
	if err != nil {
		return 0, err
	}
	if ws > 0 {
		return ws, nil
	}
	return 0, ErrNoWorkspace
}

// APIOptions returns the request options derived from the command's meta.
func APIOptions(cmd *cli.Command) []api.Option {
	if c := GetMeta(cmd).HTTPClient; c != nil {
		return []api.Option{api.WithHTTPClient(c)}
	}
	return nil
}

// Emit writes result according to the --filter, --output, --titles and
// --color flags. Color is dropped when stdout is not a terminal.
func Emit(cmd *cli.Command, result gjson.Result, cols []output.Column) error {
	m := GetMeta(cmd)
	if spec := cmd.String("filter"); spec != "" {
		result = filters.Apply(result, spec)
	}
	color := cmd.Bool("color")
	if color && m.Out == os.Stdout && !term.IsTerminal(int(os.Stdout.Fd())) {
		color = false
	}
	return output.Emit(m.Out, result, cols, output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  color,
	})
}

// QueryActionRunner encapsulates the common action pattern: resolve meta and
// config, fetch, emit.
type QueryActionRunner struct {
	CommandName string
	Columns     []output.Column
	// ColumnsFn is used instead of Columns when set, for columns that need
	// the command's clock.
	ColumnsFn func(now time.Time) []output.Column
	FetchFn   func(context.Context, *cli.Command, *config.Config) (gjson.Result, error)
}

// Run executes the action with the provided context and command.
func (qar *QueryActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action %s for %v", qar.CommandName, m.Args)

	cfg, err := GetConfig(cmd)
	if err != nil {
		return err
	}

	result, err := qar.FetchFn(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	cols := qar.Columns
	if qar.ColumnsFn != nil {
		cols = qar.ColumnsFn(m.Now())
	}
	return Emit(cmd, result, cols)
}

// QueryCommandBuilder constructs a leaf cli.Command around a
// QueryActionRunner.
type QueryCommandBuilder struct {
	Name      string
	Aliases   []string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Runner    *QueryActionRunner
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	if qcb.Runner.CommandName == "" {
		qcb.Runner.CommandName = qcb.Name
	}
	return &cli.Command{
		Name:      qcb.Name,
		Aliases:   qcb.Aliases,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Flags:     qcb.Flags,
		Action:    qcb.Runner.Run,
	}
}
