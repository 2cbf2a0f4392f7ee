// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
)

// SubCommandsTitle is the help section that command groups are listed under.
const SubCommandsTitle = "Sub-Commands"

// CommandsTitle is the help section for directly runnable commands.
const CommandsTitle = "Commands"

// rootHelpTemplate is the stock root template with the category listing
// swapped for the sections rendered by SubCommands.Help.
var rootHelpTemplate = strings.Replace(cli.RootCommandHelpTemplate,
	`COMMANDS:{{template "visibleCommandCategoryTemplate" .}}`,
	`{{index (ExtraInfo) "commands"}}`, 1)

// SubCommands registers commands on a parent and tells groups (commands that
// only hold further commands) apart from directly runnable commands, so help
// can list the groups in their own section.
type SubCommands struct {
	parent *cli.Command
	groups map[string]*cli.Command
}

// NewSubCommands takes over the help listing of parent, which should be the
// root command.
func NewSubCommands(parent *cli.Command) *SubCommands {
	s := &SubCommands{
		parent: parent,
		groups: map[string]*cli.Command{},
	}
	parent.CustomRootCommandHelpTemplate = rootHelpTemplate
	parent.ExtraInfo = func() map[string]string {
		return map[string]string{"commands": s.Help()}
	}
	return s
}

// Group adds a command group. It is listed under SubCommandsTitle.
func (s *SubCommands) Group(cmd *cli.Command) *cli.Command {
	cmd.Category = SubCommandsTitle
	s.groups[cmd.Name] = cmd
	s.parent.Commands = append(s.parent.Commands, cmd)
	s.sort()
	return cmd
}

// Command adds a directly runnable command.
func (s *SubCommands) Command(cmd *cli.Command) *cli.Command {
	s.parent.Commands = append(s.parent.Commands, cmd)
	s.sort()
	return cmd
}

// ListSubCommands returns the sorted names of the registered groups.
func (s *SubCommands) ListSubCommands() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListCommands returns the sorted names of the parent's commands that are not
// groups.
func (s *SubCommands) ListCommands() []string {
	var names []string
	for _, cmd := range s.parent.Commands {
		if _, ok := s.groups[cmd.Name]; !ok {
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Help renders the groups under SubCommandsTitle followed by the plain
// commands under CommandsTitle. Columns are tab separated for the help
// printer's tabwriter.
func (s *SubCommands) Help() string {
	var b strings.Builder
	s.section(&b, SubCommandsTitle, s.ListSubCommands())
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	s.section(&b, CommandsTitle, s.ListCommands())
	return strings.TrimRight(b.String(), "\n")
}

func (s *SubCommands) section(b *strings.Builder, title string, names []string) {
	var rows []string
	for _, name := range names {
		cmd := s.parent.Command(name)
		if cmd == nil || cmd.Hidden {
			continue
		}
		rows = append(rows, fmt.Sprintf("   %s\t%s", strings.Join(cmd.Names(), ", "), cmd.Usage))
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n%s", title, strings.Join(rows, "\n"))
}

func (s *SubCommands) sort() {
	sort.SliceStable(s.parent.Commands, func(i, j int) bool {
		return s.parent.Commands[i].Name < s.parent.Commands[j].Name
	})
}
