// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yourbase/inifile/ini"
	"github.com/yourbase/inifile/internal/config"
)

var errUnsaved = errors.New("unsaved changes (run save, or quit again to discard them)")

// session is the state of an interactive editing session. It executes one
// command line at a time and knows nothing about the terminal.
type session struct {
	path string
	doc  *ini.Document
	cfg  config.Config
	out  io.Writer

	dirty bool
	// warned is set after quit was refused because of unsaved changes.
	warned bool
}

// sessionCommands lists the commands exec understands, in help order.
var sessionCommands = []struct {
	name string
	args string
	help string
}{
	{"sections", "", "List sections and their key counts"},
	{"show", "[section]", "Print the document or one section"},
	{"get", "<section> <key>", "Print every value of a key"},
	{"set", "<section> <key> <value>", "Assign a value (the rest of the line)"},
	{"rm", "<section> [key]", "Remove a key or a whole section"},
	{"comment", "<section> [text]", "Set or clear a section's comment"},
	{"save", "", "Write the document back to the file"},
	{"help", "", "Show this help"},
	{"quit", "", "Leave the editor"},
}

// exec runs a single command line. It reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) (quit bool, err error) {
	name, rest := cutField(line)
	switch name {
	case "":
		return false, nil
	case "quit", "exit", "q":
		if s.dirty && !s.warned {
			s.warned = true
			return false, errUnsaved
		}
		return true, nil
	}
	s.warned = false
	switch name {
	case "help", "?":
		s.printHelp()
	case "sections":
		for _, sec := range s.doc.Sections() {
			fmt.Fprintf(s.out, "%s\t%d\n", sec.Name(), sec.Len())
		}
	case "show":
		return false, s.show(strings.TrimSpace(rest))
	case "get":
		section, rest := cutField(rest)
		key, _ := cutField(rest)
		if key == "" {
			return false, fmt.Errorf("%w: get <section> <key>", errUsage)
		}
		values := s.doc.Find(section, key)
		if len(values) == 0 {
			return false, errKeyNotFound
		}
		for _, v := range values {
			fmt.Fprintln(s.out, v)
		}
	case "set":
		section, rest := cutField(rest)
		key, value := cutField(rest)
		if key == "" {
			return false, fmt.Errorf("%w: set <section> <key> <value>", errUsage)
		}
		s.doc.Section(section).Set(key, strings.TrimSpace(value), "")
		s.dirty = true
	case "rm":
		section, rest := cutField(rest)
		key, _ := cutField(rest)
		if section == "" {
			return false, fmt.Errorf("%w: rm <section> [key]", errUsage)
		}
		var err error
		if key == "" {
			err = remove(s.doc, section)
		} else {
			err = remove(s.doc, section, key)
		}
		if err != nil {
			return false, err
		}
		s.dirty = true
	case "comment":
		section, text := cutField(rest)
		sec := s.doc.Lookup(section)
		if sec == nil {
			return false, fmt.Errorf("%w: %s", errSectionNotFound, section)
		}
		sec.Comment = strings.TrimSpace(text)
		s.dirty = true
	case "save":
		if err := save(ctx, s.path, s.doc, s.cfg.WriteOptions()); err != nil {
			return false, err
		}
		s.dirty = false
		fmt.Fprintln(s.out, "saved", s.path)
	default:
		return false, fmt.Errorf("unknown command: %s (type 'help' for commands)", name)
	}
	return false, nil
}

func (s *session) show(name string) error {
	if name == "" {
		return s.doc.Write(s.out, s.cfg.WriteOptions())
	}
	sec := s.doc.Lookup(name)
	if sec == nil {
		return fmt.Errorf("%w: %s", errSectionNotFound, name)
	}
	if sec.Len() == 0 {
		fmt.Fprintf(s.out, "[%s] is empty\n", name)
		return nil
	}
	tmp := ini.New()
	copied := tmp.Section(name)
	copied.Comment = sec.Comment
	for _, p := range sec.Properties() {
		copied.Add(p)
	}
	return tmp.Write(s.out, s.cfg.WriteOptions())
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	for _, c := range sessionCommands {
		fmt.Fprintf(s.out, "  %-32s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}
}

// complete returns completions for a partially typed line: command names
// for the first word, section names for the second.
func (s *session) complete(line string) []string {
	name, rest, hasArg := strings.Cut(line, " ")
	var completions []string
	if !hasArg {
		for _, c := range sessionCommands {
			if strings.HasPrefix(c.name, line) {
				completions = append(completions, c.name)
			}
		}
		return completions
	}
	switch name {
	case "show", "get", "set", "rm", "comment":
	default:
		return nil
	}
	if strings.Contains(rest, " ") {
		return nil
	}
	for _, sec := range s.doc.Sections() {
		if strings.HasPrefix(sec.Name(), rest) {
			completions = append(completions, name+" "+sec.Name())
		}
	}
	sort.Strings(completions)
	return completions
}

// cutField splits off the first whitespace-separated word of s.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
