// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

func (a *app) sectionsCommand() *Command {
	fs := flag.NewFlagSet("sections", flag.ContinueOnError)
	ff := addFormatFlags(fs, false)
	return &Command{
		Flags:   fs,
		Usage:   "sections <file>",
		MinArgs: 1,
		MaxArgs: 1,
		Short:   "List sections and their key counts",
		Long: `List every section in document order with the number of distinct keys it
holds. Sections without properties are listed too, even though fmt drops them.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			cfg, err := ff.resolve(a.cfg)
			if err != nil {
				return err
			}
			doc, err := a.load(ctx, o, cfg, a.path(args[0]))
			if err != nil {
				return err
			}
			for _, s := range doc.Sections() {
				o.Printf("%s\t%d\n", s.Name(), s.Len())
			}
			return nil
		},
	}
}
