// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

// A Document is an ordered collection of named sections. The zero value is an
// empty document.
//
// A Document is not safe for concurrent mutation. Callers sharing one between
// goroutines must synchronize access themselves.
type Document struct {
	sections []*Section
	byName   map[string]*Section
}

// New returns an empty document.
func New() *Document {
	return new(Document)
}

// Section returns the section with the given name, creating it at the end of
// the document if it does not exist yet. Section names are case-sensitive.
func (d *Document) Section(name string) *Section {
	if s := d.byName[name]; s != nil {
		return s
	}
	if d.byName == nil {
		d.byName = make(map[string]*Section)
	}
	s := &Section{name: name}
	d.sections = append(d.sections, s)
	d.byName[name] = s
	return s
}

// Lookup returns the section with the given name or nil if there is none.
// Unlike Section, Lookup never modifies the document.
func (d *Document) Lookup(name string) *Section {
	if d == nil {
		return nil
	}
	return d.byName[name]
}

// RemoveSection removes the named section along with all of its properties.
// It is a no-op if the section does not exist. Sections previously returned
// for the name are detached: a later call to Section creates a fresh one.
func (d *Document) RemoveSection(name string) {
	s := d.Lookup(name)
	if s == nil {
		return
	}
	delete(d.byName, name)
	for i, curr := range d.sections {
		if curr == s {
			copy(d.sections[i:], d.sections[i+1:])
			// Zero out truncated element for garbage collection.
			d.sections[len(d.sections)-1] = nil
			d.sections = d.sections[:len(d.sections)-1]
			break
		}
	}
}

// Sections returns the document's sections in document order. The returned
// slice is a copy, but the sections themselves are shared with the document.
func (d *Document) Sections() []*Section {
	if d == nil || len(d.sections) == 0 {
		return nil
	}
	return append([]*Section(nil), d.sections...)
}

// Len returns the number of sections in the document, including sections
// without properties.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sections)
}

// Get returns the last value assigned to key in the named section. The
// boolean is false if either the section or the key does not exist.
func (d *Document) Get(section, key string) (string, bool) {
	return d.Lookup(section).Lookup(key)
}

// Find returns every value assigned to key in the named section, in the order
// they were assigned.
func (d *Document) Find(section, key string) []string {
	return d.Lookup(section).Values(key)
}

// A Section is a named, ordered group of properties. Sections are created
// through Document.Section.
type Section struct {
	name string

	// Comment is written on its own line above the section header.
	// An empty comment is not written.
	Comment string

	keys   []string
	values map[string]Value
}

// Name returns the section's name.
func (s *Section) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Len returns the number of distinct keys in the section.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the section's keys in the order they were first assigned.
func (s *Section) Keys() []string {
	if s == nil || len(s.keys) == 0 {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Set assigns value to key with an optional comment. The first assignment of
// a key stores a Single. Every later assignment appends to a Multi whose first
// element is the original assignment; Set never replaces an existing value.
func (s *Section) Set(key, value, comment string) {
	s.Add(Property{Name: key, Value: value, Comment: comment})
}

// Add assigns p under the key p.Name, with the same merge rules as Set. Add is
// the only way to store a property whose value is absent.
func (s *Section) Add(p Property) {
	key := p.Name
	switch v := s.values[key].(type) {
	case nil:
		if s.values == nil {
			s.values = make(map[string]Value)
		}
		s.keys = append(s.keys, key)
		s.values[key] = Single{p}
	case Single:
		s.values[key] = Multi{v.Property, p}
	case Multi:
		s.values[key] = append(v, p)
	}
}

// Get returns the value stored under key: nil if the key is not set, a Single
// if it was assigned once, or a Multi if it was assigned more than once. The
// returned value is a copy and may be modified freely.
func (s *Section) Get(key string) Value {
	if s == nil {
		return nil
	}
	switch v := s.values[key].(type) {
	case Single:
		return v
	case Multi:
		return append(Multi(nil), v...)
	default:
		return nil
	}
}

// Lookup returns the last value assigned to key. Absent values are reported as
// the empty string. The boolean is false if the key is not set.
func (s *Section) Lookup(key string) (string, bool) {
	v := s.Get(key)
	if v == nil {
		return "", false
	}
	props := v.Properties()
	return props[len(props)-1].Value, true
}

// Values returns every value assigned to key, oldest first.
func (s *Section) Values(key string) []string {
	v := s.Get(key)
	if v == nil {
		return nil
	}
	props := v.Properties()
	values := make([]string, 0, len(props))
	for _, p := range props {
		values = append(values, p.Value)
	}
	return values
}

// Properties returns all of the section's properties in key order. The
// assignments of a multi-valued key are listed consecutively, oldest first.
func (s *Section) Properties() []Property {
	if s == nil {
		return nil
	}
	var props []Property
	for _, key := range s.keys {
		props = append(props, s.values[key].Properties()...)
	}
	return props
}

// RemoveProperty removes key and all of its values from the section. It is a
// no-op if the key is not set.
func (s *Section) RemoveProperty(key string) {
	if s == nil {
		return
	}
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// A Property is a single key assignment.
type Property struct {
	Name  string
	Value string

	// Absent is true when the assignment carried no value at all. The parser
	// never sets it: "key=" is a present, empty value. Value is empty when
	// Absent is true.
	Absent bool

	// Comment is written on its own line above the property.
	// An empty comment is not written.
	Comment string
}

// A Value is what a section stores under a key. It is either a Single or a
// Multi; use a type switch to tell them apart.
type Value interface {
	// Properties returns the assignments held by the value, oldest first.
	Properties() []Property

	value()
}

// Single is the Value of a key that has been assigned exactly once.
type Single struct {
	Property
}

// Properties returns a one-element slice holding s.Property.
func (s Single) Properties() []Property {
	return []Property{s.Property}
}

func (Single) value() {}

// Multi is the Value of a key that has been assigned more than once. Its
// elements are in assignment order.
type Multi []Property

// Properties returns a copy of m.
func (m Multi) Properties() []Property {
	return append([]Property(nil), m...)
}

func (Multi) value() {}
