// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is an inifmt subcommand.
type Command struct {
	// Flags holds the command's flags. A nil Flags accepts none.
	Flags *flag.FlagSet

	// Usage follows "inifmt" in help output. Its first word is the command
	// name, as in "get [--all] <section> <key> <file>...".
	Usage string

	// Short is listed next to Usage in the top-level help. Long, if set,
	// replaces it in the command's own help.
	Short string
	Long  string

	// MinArgs and MaxArgs bound the positional arguments passed to Exec.
	// A negative MaxArgs means no upper bound.
	MinArgs int
	MaxArgs int

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of c.Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine formats c as an entry in the top-level command list.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-38s %s", c.Usage, c.Short)
}

func (c *Command) description() string {
	if c.Long != "" {
		return c.Long
	}
	return c.Short
}

// checkArgs reports errUsage if n positional arguments are out of range.
func (c *Command) checkArgs(n int) error {
	switch {
	case n < c.MinArgs:
		return fmt.Errorf("%w: %s needs at least %d, got %d", errUsage, c.Name(), c.MinArgs, n)
	case c.MaxArgs >= 0 && n > c.MaxArgs:
		return fmt.Errorf("%w: %s takes at most %d, got %d", errUsage, c.Name(), c.MaxArgs, n)
	}
	return nil
}

// PrintHelp writes the help for "inifmt <cmd> --help" to w.
func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: inifmt %s\n\n%s\n", c.Usage, c.description())
	if c.Flags != nil && c.Flags.HasFlags() {
		fmt.Fprintf(w, "\nFlags:\n%s", c.Flags.FlagUsages())
	}
}

// Run parses args and calls c.Exec, returning the process exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	if c.Flags == nil {
		c.Flags = flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	}
	c.Flags.SetOutput(io.Discard)
	if err := c.Flags.Parse(args); errors.Is(err, flag.ErrHelp) {
		c.PrintHelp(o.out)
		return 0
	} else if err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o.out)
		return 1
	}
	if err := c.checkArgs(c.Flags.NArg()); err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o.errOut)
		return 1
	}
	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}
	return 0
}
