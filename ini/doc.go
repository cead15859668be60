// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a streaming reader for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

A Reader is a cursor over one INI source. Callers pull sections with
NextSection and, within a section, key/value pairs with ReadPair:

	r, err := ini.Open("config.ini")
	if err != nil {
		return err
	}
	defer r.Close()
	for {
		name, ok, err := r.NextSection()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		for {
			key, value, ok, err := r.ReadPair()
			...
		}
	}

Parse drains a Reader into a read-only File for random access.

Syntax

An INI file is treated as a sequence of bytes split into lines. No transcoding
is performed.

A property is a key and value written on a single line, separated by an
equals sign ('='):

	key=value

Keys are not allowed to be empty or contain square brackets ('['). The value
is the rest of the line and may be empty.

Properties may be grouped into sections. A section is started by writing its
name in square brackets ('[' and ']') on its own line and ends at the next
section name or the end of file:

	[section]
	key1=value1
	key2=value2

Properties encountered before a section name are permitted. They are considered
part of the global section, identified by the empty string ("").

Whitespace at the beginning or end of lines, around section names, around
property keys, and around property values is ignored. Only ASCII whitespace
(space, tab, CR, LF, vertical tab, form feed) counts: other encoded spaces such
as U+00A0 are kept. If the first non-whitespace character in a line is a
semicolon (';') or a hash ('#'), then the line is treated as a comment. A
semicolon or hash preceded by a space or tab starts an inline comment that runs
to the end of the line:

	host = example.com ; primary
	path = a;b         # value is "a;b"

A backslash before a semicolon or hash in a value makes the marker literal and
is removed. No other escapes are recognized; any other backslash is part of
the value:

	motto = one \; two  # value is "one ; two"
	dir = C:\temp       # value is "C:\temp"

Section and key names are case-sensitive.

Repeated names

Multiple sections may have the same name. A Reader reports each header as
it is encountered and never merges them. File treats their properties as if
they were presented contiguously in the same section.
*/
package ini
