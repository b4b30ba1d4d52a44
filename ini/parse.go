// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"math"
	"regexp"
	"strings"
)

// ParseOptions holds optional parameters for parsing. Nil options are treated
// identically as passing the zero value.
type ParseOptions struct {
	// NormalizeSection is called on each section name to apply text transformations.
	// This can be used to make section names case-insensitive, for instance.
	// If nil, no transformations are made.
	NormalizeSection func(name string) string

	// NormalizeKey is called on each key to apply text transformations.
	// This can be used to make keys case-insensitive, for instance.
	// If nil, no transformations are made.
	NormalizeKey func(section, key string) string

	// SkipComments causes lines whose first non-whitespace character is ';' or
	// '#' to be ignored instead of being matched as properties.
	SkipComments bool

	// OnProperty, if not nil, is called for each property the parser assigns,
	// after normalization.
	OnProperty func(section string, p Property)

	// OnSkip, if not nil, is called for each non-blank line the parser ignores.
	// lineno counts from 1.
	OnSkip func(lineno int, line string)
}

// propertyPattern matches a key/value line. The optional leading semicolon is
// stripped, so ";key=value" assigns key. An unmatched value group means an
// empty value.
var propertyPattern = regexp.MustCompile(`^;?(\S+)\s?=\s*(.+)?$`)

// A Parser is the line-at-a-time state machine behind Parse. It remembers the
// section the last header named so that later properties attach to it.
type Parser struct {
	doc     *Document
	current *Section
	opts    ParseOptions
	lineno  int
}

// NewParser returns a parser that adds to doc. If doc is nil, the parser
// starts from an empty document.
func NewParser(doc *Document, opts *ParseOptions) *Parser {
	if doc == nil {
		doc = New()
	}
	p := &Parser{doc: doc}
	if opts != nil {
		p.opts = *opts
	}
	return p
}

// Document returns the document the parser is populating.
func (p *Parser) Document() *Document {
	return p.doc
}

// ParseLine consumes the next line of input. The line should not include its
// line terminator, though surrounding whitespace is ignored.
func (p *Parser) ParseLine(line string) {
	p.lineno++
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
		name := line[1 : len(line)-1]
		if p.opts.NormalizeSection != nil {
			name = p.opts.NormalizeSection(name)
		}
		p.current = p.doc.Section(name)
		return
	}
	if p.current == nil {
		p.skip(line)
		return
	}
	if p.opts.SkipComments && (line[0] == ';' || line[0] == '#') {
		p.skip(line)
		return
	}
	m := propertyPattern.FindStringSubmatchIndex(line)
	if m == nil {
		p.skip(line)
		return
	}
	prop := Property{Name: line[m[2]:m[3]]}
	if m[4] >= 0 {
		prop.Value = line[m[4]:m[5]]
	}
	if p.opts.NormalizeKey != nil {
		prop.Name = p.opts.NormalizeKey(p.current.name, prop.Name)
	}
	p.current.Add(prop)
	if p.opts.OnProperty != nil {
		p.opts.OnProperty(p.current.name, prop)
	}
}

func (p *Parser) skip(line string) {
	if p.opts.OnSkip != nil {
		p.opts.OnSkip(p.lineno, line)
	}
}

// ParseLines parses a sequence of lines into a new document. It never fails:
// lines it cannot make sense of are ignored.
func ParseLines(lines iter.Seq[string], opts *ParseOptions) *Document {
	p := NewParser(nil, opts)
	for line := range lines {
		p.ParseLine(line)
	}
	return p.Document()
}

// Parse reads lines from r and parses them into a new document. The returned
// error is non-nil only if reading from r fails, in which case the document
// holds everything parsed up to that point.
//
// See the Syntax section in the package documentation for the format recognized
// by Parse.
func Parse(r io.Reader, opts *ParseOptions) (*Document, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	p := NewParser(nil, opts)
	for s.Scan() {
		p.ParseLine(s.Text())
	}
	if err := s.Err(); err != nil {
		return p.Document(), fmt.Errorf("parse ini file: line %d: %w", p.lineno+1, err)
	}
	return p.Document(), nil
}

// UnmarshalText parses the INI data with default options, replacing any
// sections in d.
func (d *Document) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
