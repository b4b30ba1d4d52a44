// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"

	flag "github.com/spf13/pflag"
	"zombiezen.com/go/log"
)

func (a *app) fmtCommand() *Command {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.BoolP("write", "w", false, "write result to the source file instead of standard output")
	ff := addFormatFlags(fs, true)
	return &Command{
		Flags:   fs,
		Usage:   "fmt [-w] <file>...",
		MinArgs: 1,
		MaxArgs: -1,
		Short:   "Reformat INI files",
		Long: `Parse each file and write it back out in canonical form. Lines that are not
headers or properties are dropped, as are sections without properties.
A file of "-" reads standard input.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			cfg, err := ff.resolve(a.cfg)
			if err != nil {
				return err
			}
			for _, arg := range args {
				path := a.path(arg)
				if *write && path == "-" {
					return errStdinWrite
				}
				doc, err := a.load(ctx, o, cfg, path)
				if err != nil {
					return err
				}
				if !*write {
					if err := doc.Write(o.out, cfg.WriteOptions()); err != nil {
						return err
					}
					continue
				}
				if err := save(ctx, path, doc, cfg.WriteOptions()); err != nil {
					return err
				}
				log.Debugf(ctx, "formatted %s", path)
			}
			return nil
		},
	}
}
