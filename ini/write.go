// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"io"
	"iter"
	"strings"
)

// DefaultCommentChar is the comment marker written when WriteOptions does not
// specify one.
const DefaultCommentChar = ';'

// WriteOptions holds optional parameters for serializing a Document. Nil
// options are treated identically as passing the zero value.
type WriteOptions struct {
	// Spacing writes "key = value" instead of "key=value".
	Spacing bool

	// CommentChar is the marker written before comment lines.
	// If zero, DefaultCommentChar is used.
	CommentChar rune
}

func (opts *WriteOptions) separator() string {
	if opts != nil && opts.Spacing {
		return " = "
	}
	return "="
}

func (opts *WriteOptions) commentPrefix() string {
	c := rune(DefaultCommentChar)
	if opts != nil && opts.CommentChar != 0 {
		c = opts.CommentChar
	}
	return string(c) + " "
}

// Lines returns the INI serialization of d, one line at a time and without
// line terminators. Sections without properties are skipped and every written
// section is followed by an empty line.
func (d *Document) Lines(opts *WriteOptions) iter.Seq[string] {
	sep := opts.separator()
	commentPrefix := opts.commentPrefix()
	return func(yield func(string) bool) {
		if d == nil {
			return
		}
		for _, s := range d.sections {
			if s.Len() == 0 {
				continue
			}
			if s.Comment != "" && !yield(commentPrefix+s.Comment) {
				return
			}
			if !yield("[" + s.name + "]") {
				return
			}
			for _, p := range s.Properties() {
				if p.Comment != "" && !yield(commentPrefix+p.Comment) {
					return
				}
				if !yield(p.Name + sep + p.Value) {
					return
				}
			}
			if !yield("") {
				return
			}
		}
	}
}

// Write writes the INI serialization of d to w, terminating each line with a
// newline character.
func (d *Document) Write(w io.Writer, opts *WriteOptions) error {
	sb := new(strings.Builder)
	for line := range d.Lines(opts) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// MarshalText serializes the document in INI format with default options.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	var buf []byte
	for line := range d.Lines(nil) {
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return buf, nil
}
