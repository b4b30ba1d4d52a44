// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"

	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/ini"
)

func (a *app) getCommand() *Command {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	all := fs.BoolP("all", "a", false, "print every value, lowest precedence first")
	ff := addFormatFlags(fs, false)
	return &Command{
		Flags:   fs,
		Usage:   "get [--all] <section> <key> <file>...",
		MinArgs: 3,
		MaxArgs: -1,
		Short:   "Print a property value",
		Long: `Print the value of a property. When more than one file is given, the first
file that sets the property wins, and missing files are skipped. Within a
file, the last assignment wins.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			cfg, err := ff.resolve(a.cfg)
			if err != nil {
				return err
			}
			section, key := args[0], args[1]
			paths := make([]string, 0, len(args)-2)
			for _, p := range args[2:] {
				paths = append(paths, a.path(p))
			}
			fset, err := ini.ParseFiles(parseOptions(ctx, cfg, "get"), paths...)
			if err != nil {
				return err
			}
			if *all {
				values := fset.Find(section, key)
				if len(values) == 0 {
					return errKeyNotFound
				}
				for _, v := range values {
					o.Println(v)
				}
				return nil
			}
			v, ok := fset.Get(section, key)
			if !ok {
				return errKeyNotFound
			}
			o.Println(v)
			return nil
		},
	}
}
