// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/togglctl/internal/config"
)

// NewGlobalFlags returns the flags available to every command. Output
// settings can also come from the config file.
func NewGlobalFlags() (flags []cli.Flag) {
	src := altsrc.StringSourcer(config.Path())

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "config profile to use",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOGGL_PROFILE"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "isolated",
			Usage:       "use a private config that is not shared with the rest of the invocation",
			HideDefault: true,
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("color", src),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TOGGL_OUTPUT"),
				yaml.YAML("output", src),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("titles", src),
			),
			Value: false,
		},
	}

	return
}

// NewWorkspaceFlag constructs the flag selecting a workspace id. When unset
// the profile's default_wid is used.
func NewWorkspaceFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "workspace id. Overrides default_wid from the config",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOGGL_WORKSPACE"),
		),
	}
}

// NewProjectFlag constructs the flag selecting a project id.
func NewProjectFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "project",
		Usage: "project id",
	}
}
