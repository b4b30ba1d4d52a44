// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	flag "github.com/spf13/pflag"
	"github.com/yourbase/inifile/ini"
)

func (a *app) exportCommand() *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.StringP("format", "f", "json", "output `format`: json or toml")
	ff := addFormatFlags(fs, false)
	return &Command{
		Flags:   fs,
		Usage:   "export [-f toml|json] <file>",
		MinArgs: 1,
		MaxArgs: 1,
		Short:   "Convert an INI file to JSON or TOML",
		Long: `Convert an INI file to JSON or TOML. Each section becomes a table. Keys
assigned once become strings and keys assigned more than once become arrays
of strings. Sections without properties are omitted.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			cfg, err := ff.resolve(a.cfg)
			if err != nil {
				return err
			}
			doc, err := a.load(ctx, o, cfg, a.path(args[0]))
			if err != nil {
				return err
			}
			tables := exportTables(doc)
			var data []byte
			switch *format {
			case "json":
				data, err = json.MarshalIndent(tables, "", "  ")
				data = append(data, '\n')
			case "toml":
				data, err = toml.Marshal(tables)
			default:
				return fmt.Errorf("%w: %q", errUnknownFormat, *format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", *format, err)
			}
			_, err = o.out.Write(data)
			return err
		},
	}
}

// exportTables converts doc into nested maps. A key holds a string if it was
// assigned once and a []string otherwise.
func exportTables(doc *ini.Document) map[string]map[string]any {
	tables := make(map[string]map[string]any)
	for _, s := range doc.Sections() {
		if s.Len() == 0 {
			continue
		}
		t := make(map[string]any, s.Len())
		for _, key := range s.Keys() {
			switch v := s.Get(key).(type) {
			case ini.Single:
				t[key] = v.Value
			case ini.Multi:
				values := make([]string, 0, len(v))
				for _, p := range v {
					values = append(values, p.Value)
				}
				t[key] = values
			}
		}
		tables[s.Name()] = t
	}
	return tables
}
