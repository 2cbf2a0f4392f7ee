// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/togglctl/internal/command"
	"github.com/staranto/togglctl/internal/meta"
)

// Minimal doc generator:
// - Walks the togglctl command tree
// - Generates:
//   - docs/commands/togglctl-<cmd>.md from names, usage and flags
//   - docs/man/share/man1/togglctl-<cmd>.1 via md2man

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	mdOutDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")

	for _, d := range []string{mdOutDir, manOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			fatalf("creating output dir %s: %v", d, err)
		}
	}

	app, err := command.InitApp(context.Background(), meta.Meta{Out: io.Discard})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	walk(app, nil, func(path []string, cmd *cli.Command) {
		name := strings.Join(path, "-")
		md := renderMarkdown(path, cmd)

		mdPath := filepath.Join(mdOutDir, name+".md")
		if err := writeFileIfChanged(mdPath, []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", name, err)
		}

		manPath := filepath.Join(manOutDir, name+".1")
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", name, err)
		}

		processed++
	})

	if processed == 0 {
		fatalf("no commands found")
	}
}

func walk(cmd *cli.Command, parent []string, fn func([]string, *cli.Command)) {
	path := append(append([]string{}, parent...), cmd.Name)
	if cmd.Hidden {
		return
	}
	fn(path, cmd)
	for _, sub := range cmd.Commands {
		if sub.Name == "help" {
			continue
		}
		walk(sub, path, fn)
	}
}

// renderMarkdown produces a man-style markdown page for cmd.
func renderMarkdown(path []string, cmd *cli.Command) string {
	var b strings.Builder
	title := strings.Join(path, "-")

	fmt.Fprintf(&b, "%s 1 \"\" \"togglctl\" \"togglctl manual\"\n", strings.ToUpper(title))
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(&b, "# NAME\n\n%s - %s\n\n", strings.Join(path, " "), cmd.Usage)

	if cmd.UsageText != "" {
		fmt.Fprintf(&b, "# SYNOPSIS\n\n`%s`\n\n", cmd.UsageText)
	}

	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&b, "# ALIASES\n\n%s\n\n", strings.Join(cmd.Aliases, ", "))
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range cmd.Flags {
			names := make([]string, 0, len(f.Names()))
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			usage := ""
			if u, ok := f.(interface{ GetUsage() string }); ok {
				usage = u.GetUsage()
			}
			fmt.Fprintf(&b, "`%s`\n: %s\n\n", strings.Join(names, ", "), usage)
		}
	}

	var subs []string
	for _, sub := range cmd.Commands {
		if sub.Name != "help" && !sub.Hidden {
			subs = append(subs, fmt.Sprintf("* `%s` %s", sub.Name, sub.Usage))
		}
	}
	if len(subs) > 0 {
		heading := "COMMANDS"
		if cmd.Category == command.SubCommandsTitle {
			heading = strings.ToUpper(command.SubCommandsTitle)
		}
		fmt.Fprintf(&b, "# %s\n\n%s\n", heading, strings.Join(subs, "\n"))
	}

	return b.String()
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}
