// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/ini"
)

func (a *app) rmCommand() *Command {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	ff := addFormatFlags(fs, true)
	return &Command{
		Flags:   fs,
		Usage:   "rm <file> <section> [key]",
		MinArgs: 2,
		MaxArgs: 3,
		Short:   "Remove a property or a whole section",
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
			if err != nil {
				return err
			}
			if err := remove(doc, args[1], args[2:]...); err != nil {
				return err
			}
			return save(ctx, path, doc, cfg.WriteOptions())
		},
	}
}

// remove deletes the named section from doc, or only the given key if one is
// passed.
func remove(doc *ini.Document, section string, key ...string) error {
	s := doc.Lookup(section)
	if s == nil {
		return fmt.Errorf("%w: %s", errSectionNotFound, section)
	}
	if len(key) == 0 {
		doc.RemoveSection(section)
		return nil
	}
	if s.Get(key[0]) == nil {
		return fmt.Errorf("%w: %s.%s", errKeyNotFound, section, key[0])
	}
	s.RemoveProperty(key[0])
	return nil
}
