// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"io/fs"

	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/ini"
	"zombiezen.com/go/log"
)

func (a *app) setCommand() *Command {
	flags := flag.NewFlagSet("set", flag.ContinueOnError)
	comment := flags.StringP("message", "m", "", "comment to write above the property")
	replace := flags.BoolP("replace", "r", false, "remove existing values of the key first")
	ff := addFormatFlags(flags, true)
	return &Command{
		Flags:   flags,
		Usage:   "set [-m comment] <file> <section> <key> <value>",
		MinArgs: 4,
		MaxArgs: 4,
		Short:   "Assign a property",
		Long: `Assign a value to a key and save the file. Assigning a key that is already set
adds another value unless --replace is given. The file is created if it does
not exist.`,
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
				log.Infof(ctx, "creating %s", path)
				doc = ini.New()
			} else if err != nil {
				return err
			}
			section := doc.Section(args[1])
			if *replace {
				section.RemoveProperty(args[2])
			}
			section.Set(args[2], args[3], *comment)
			return save(ctx, path, doc, cfg.WriteOptions())
		},
	}
}
