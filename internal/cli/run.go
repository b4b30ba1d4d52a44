// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package cli implements the inifmt command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/envvar"
	"github.com/yourbase/inifile/internal/config"
	"github.com/yourbase/inifile/ini"
	"github.com/yourbase/inifile/retry"
	"zombiezen.com/go/log"
)

var (
	errKeyNotFound     = errors.New("key not found")
	errSectionNotFound = errors.New("section not found")
	errUsage           = errors.New("wrong number of arguments")
	errStdinWrite      = errors.New("cannot write back to standard input")
	errUnknownFormat   = errors.New("unknown export format")
)

// app is the state shared by all commands of one invocation.
type app struct {
	workDir string
	env     envvar.Env
	cfg     config.Config
	sources config.Sources
}

// Run executes inifmt with the given arguments and returns the exit code.
// args[0] is the program name.
func Run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(in, out, errOut)
	a := &app{env: envvar.Env(env)}
	commands := a.commands()

	globals := flag.NewFlagSet("inifmt", flag.ContinueOnError)
	globals.SetOutput(io.Discard)
	globals.SetInterspersed(false)
	configPath := globals.StringP("config", "c", "", "use specified config file")
	verbose := globals.BoolP("verbose", "v", false, "log debug messages")
	workDir := globals.StringP("cwd", "C", "", "run as if started in `dir`")
	var rest []string
	if len(args) > 0 {
		rest = args[1:]
	}
	if err := globals.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(o.out, commands)
			return 0
		}
		o.ErrPrintln("error:", err)
		printUsage(o.errOut, commands)
		return 1
	}

	prev := log.Default()
	log.SetDefault(&stderrLogger{w: errOut, verbose: *verbose})
	defer log.SetDefault(prev)

	a.workDir = *workDir
	if a.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)
			return 1
		}
		a.workDir = wd
	}
	var err error
	a.cfg, a.sources, err = config.Load(a.workDir, *configPath, a.env)
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}
	if a.sources.Global != "" {
		log.Debugf(ctx, "loaded config %s", a.sources.Global)
	}
	if a.sources.Project != "" {
		log.Debugf(ctx, "loaded config %s", a.sources.Project)
	}

	if globals.NArg() == 0 {
		printUsage(o.out, commands)
		return 0
	}
	name := globals.Arg(0)
	if name == "help" {
		printUsage(o.out, commands)
		return 0
	}
	for _, c := range commands {
		if c.Name() == name {
			return c.Run(ctx, o, globals.Args()[1:])
		}
	}
	o.ErrPrintln("error: unknown command:", name)
	printUsage(o.errOut, commands)
	return 1
}

func (a *app) commands() []*Command {
	return []*Command{
		a.fmtCommand(),
		a.getCommand(),
		a.setCommand(),
		a.rmCommand(),
		a.sectionsCommand(),
		a.exportCommand(),
		a.editCommand(),
		a.printConfigCommand(),
	}
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprint(w, `inifmt - read, edit, and format INI files

Usage: inifmt [options] <command> [args]

Options:
  -C, --cwd <dir>      Run as if started in <dir>
  -c, --config <file>  Use specified config file
  -v, --verbose        Log debug messages

Commands:
`)
	for _, c := range commands {
		fmt.Fprintln(w, c.HelpLine())
	}
}

// path resolves a command-line file argument against the working directory.
func (a *app) path(p string) string {
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.workDir, p)
}

// formatFlags are the per-command overrides of the loaded config.
type formatFlags struct {
	fs           *flag.FlagSet
	spacing      bool
	commentChar  string
	skipComments bool
}

func addFormatFlags(fs *flag.FlagSet, write bool) *formatFlags {
	ff := &formatFlags{fs: fs}
	if write {
		fs.BoolVar(&ff.spacing, "spacing", false, "write \"key = value\" instead of \"key=value\"")
		fs.StringVar(&ff.commentChar, "comment-char", "", "`char` to start comment lines with")
	}
	fs.BoolVar(&ff.skipComments, "skip-comments", false, "ignore lines starting with ';' or '#'")
	return ff
}

// resolve applies the flags that were given on the command line to cfg.
func (ff *formatFlags) resolve(cfg config.Config) (config.Config, error) {
	var l config.Layer
	if ff.fs.Changed("spacing") {
		l.Spacing = &ff.spacing
	}
	if ff.fs.Changed("comment-char") {
		l.CommentChar = &ff.commentChar
	}
	if ff.fs.Changed("skip-comments") {
		l.SkipComments = &ff.skipComments
	}
	cfg = cfg.Apply(l)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseOptions returns cfg's parse options with parser diagnostics logged at
// debug level.
func parseOptions(ctx context.Context, cfg config.Config, name string) *ini.ParseOptions {
	opts := cfg.ParseOptions()
	opts.OnProperty = func(section string, p ini.Property) {
		log.Debugf(ctx, "%s: [%s] %s=%s", name, section, p.Name, p.Value)
	}
	opts.OnSkip = func(lineno int, line string) {
		log.Debugf(ctx, "%s:%d: skipped %q", name, lineno, line)
	}
	return opts
}

// load parses the INI file at path, or standard input if path is "-".
func (a *app) load(ctx context.Context, o *IO, cfg config.Config, path string) (*ini.Document, error) {
	if path == "-" {
		return ini.Parse(o.in, parseOptions(ctx, cfg, "<stdin>"))
	}
	return ini.ParseFile(path, parseOptions(ctx, cfg, path))
}

// save replaces the file at path with doc. Replacing a file can fail briefly
// while another process holds it open, so failures are retried a few times.
// A missing directory fails immediately.
func save(ctx context.Context, path string, doc *ini.Document, opts *ini.WriteOptions) error {
	backoff := &retry.Exponential{
		Initial: 10 * time.Millisecond,
		Max:     100 * time.Millisecond,
		Retries: 4,
	}
	return retry.Do(ctx, "saving "+path, backoff, func() error {
		if _, err := os.Stat(filepath.Dir(path)); err != nil {
			return retry.Permanent(fmt.Errorf("write ini file: %w", err))
		}
		return ini.WriteFile(path, doc, opts)
	})
}
