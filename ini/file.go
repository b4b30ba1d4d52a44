// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// ParseFile parses the INI file at the given path.
func ParseFile(path string, opts *ParseOptions) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	defer f.Close()
	d, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteFile serializes d and replaces the file at path with the result. The
// file is replaced atomically: readers observe either the old or the new
// content, never a partial write.
func WriteFile(path string, d *Document, opts *WriteOptions) error {
	buf := new(bytes.Buffer)
	if err := d.Write(buf, opts); err != nil {
		return fmt.Errorf("write ini file %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, buf); err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	return nil
}

// FileSet is a list of documents to obtain configuration from in descending
// order of precedence. Nil elements stand for missing files and are skipped.
type FileSet []*Document

// ParseFiles parses the files at the given paths as INI and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *Document.
func ParseFiles(opts *ParseOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		parsed, err := Parse(f, opts)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %s: %w", p, err)
		}
		fset = append(fset, parsed)
	}
	return fset, nil
}

// Get returns the last value assigned to key in the named section of the
// first document that sets it. The boolean is false if no document does.
func (fset FileSet) Get(section, key string) (string, bool) {
	for _, d := range fset {
		if v, ok := d.Get(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Find returns all the values assigned to key in the named section across
// every document, lowest precedence first.
func (fset FileSet) Find(section, key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		values = append(values, fset[i].Find(section, key)...)
	}
	return values
}

// Sections returns the names of sections that have properties set in any
// document. Names are listed in the order they are first seen, starting from
// the lowest precedence document.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]struct{})
	for i := len(fset) - 1; i >= 0; i-- {
		for _, s := range fset[i].Sections() {
			if s.Len() == 0 {
				continue
			}
			if _, dup := seen[s.Name()]; dup {
				continue
			}
			seen[s.Name()] = struct{}{}
			names = append(names, s.Name())
		}
	}
	return names
}

// Section returns a copy of the values in the named section, merged across
// every document. Values from lower precedence documents come first.
func (fset FileSet) Section(name string) map[string][]string {
	merged := make(map[string][]string)
	for i := len(fset) - 1; i >= 0; i-- {
		s := fset[i].Lookup(name)
		for _, key := range s.Keys() {
			merged[key] = append(merged[key], s.Values(key)...)
		}
	}
	return merged
}
