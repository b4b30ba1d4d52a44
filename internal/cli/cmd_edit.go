// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/envvar"
	"github.com/yourbase/inifile/ini"
	"zombiezen.com/go/log"
)

func (a *app) editCommand() *Command {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	ff := addFormatFlags(flags, true)
	return &Command{
		Flags:   flags,
		Usage:   "edit <file>",
		MinArgs: 1,
		MaxArgs: 1,
		Short:   "Edit an INI file interactively",
		Long: `Open an interactive prompt for inspecting and changing an INI file. Changes
are kept in memory until "save". Type "help" at the prompt for commands.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			cfg, err := ff.resolve(a.cfg)
			if err != nil {
				return err
			}
			path := a.path(args[0])
			if path == "-" {
				return errStdinWrite
			}
			doc, err := ini.ParseFile(path, parseOptions(ctx, cfg, path))
			if errors.Is(err, fs.ErrNotExist) {
				log.Infof(ctx, "%s does not exist; it will be created on save", path)
				doc = ini.New()
			} else if err != nil {
				return err
			}
			s := &session{path: path, doc: doc, cfg: cfg, out: o.out}
			return repl(ctx, s, historyPath(a.env))
		},
	}
}

// repl reads commands from the terminal until quit or end of input.
func repl(ctx context.Context, s *session, history string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer saveHistory(ctx, line, history)
	}

	fmt.Fprintf(s.out, "Editing %s. Type 'help' for commands.\n", s.path)
	for {
		input, err := line.Prompt("inifmt> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			if s.dirty {
				log.Warnf(ctx, "discarding unsaved changes to %s", s.path)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		quit, err := s.exec(ctx, input)
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

// historyPath returns where the editor keeps its history:
// $XDG_STATE_HOME/inifmt/history if set, otherwise ~/.inifmt_history.
func historyPath(env envvar.Env) string {
	if dir := env.Get("XDG_STATE_HOME", ""); dir != "" {
		return filepath.Join(dir, "inifmt", "history")
	}
	if home := env.Get("HOME", ""); home != "" {
		return filepath.Join(home, ".inifmt_history")
	}
	return ""
}

func saveHistory(ctx context.Context, line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Debugf(ctx, "save history: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Debugf(ctx, "save history: %v", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		log.Debugf(ctx, "save history: %v", err)
	}
}
