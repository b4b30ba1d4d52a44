// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"

	"github.com/yourbase/inifile/internal/config"
)

func (a *app) printConfigCommand() *Command {
	return &Command{
		Usage:   "print-config",
		MinArgs: 0,
		MaxArgs: 0,
		Short:   "Show resolved configuration",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			formatted, err := config.Format(a.cfg)
			if err != nil {
				return err
			}
			o.Println(formatted)

			o.Println("")
			o.Println("# Sources:")
			if a.sources.Global != "" {
				o.Println("#   global:", a.sources.Global)
			}
			if a.sources.Project != "" {
				o.Println("#   project:", a.sources.Project)
			}
			for _, name := range a.sources.Env {
				o.Println("#   env:", name)
			}
			if a.sources.Global == "" && a.sources.Project == "" && len(a.sources.Env) == 0 {
				o.Println("#   (using defaults only)")
			}
			return nil
		},
	}
}
