// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a forgiving parser and a stable serializer for the INI
file format. See https://en.wikipedia.org/wiki/INI_file.

The package works on lines: Parse and ParseLines turn a sequence of text lines
into a *Document, and Document.Lines turns a *Document back into lines.
ParseFile and WriteFile cover the common case of a file on disk, and FileSet
looks values up across several files in order of precedence.

# Syntax

Each line is trimmed of surrounding whitespace and then classified:

	[name]      starts a section, or re-enters one seen earlier
	key=value   assigns a value within the current section
	key = value same, with whitespace around the equals sign

Blank lines are ignored. Lines before the first section header have no section
to attach to and are ignored. Lines that match no rule are ignored as well: the
parser never fails on malformed input.

A key is a run of non-whitespace characters. At most one whitespace character
may separate the key from the equals sign; any amount may follow it. A line of
the form "key=" assigns an empty value. A line without an equals sign assigns
nothing, so the parser never produces a Property with Absent set; absent values
only come from Section.Add.

When a line holds several equals signs, the key takes in as many as it can, so
"url=http://example.com/?a=b" assigns "b" to the key "url=http://example.com/?a".
A value containing an equals sign therefore does not survive a write and
reparse unchanged.

A single leading semicolon is stripped before a line is matched as a property,
so ";key=value" assigns key. Comment lines made of words, such as "; a comment",
do not match and are dropped. Set ParseOptions.SkipComments to ignore every line
starting with ';' or '#'.

# Repeated keys

Assigning the same key more than once within a section turns it into a
multi-valued key. Section.Get reports which shape a key has by returning either
a Single or a Multi. Repeated section headers name the same section, so

	[a]
	x=1
	[b]
	y=2
	[a]
	x=3

yields section a with x set to 1 and then 3.

# Writing

Sections are written in the order they were first referenced. Sections without
properties are skipped. Comments are written on their own line above the section
header or property they annotate, and every section is followed by a blank line.
*/
package ini
