// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"io"
	"strings"
)

// A Pair is a single property.
type Pair struct {
	Key   string
	Value string
}

// A File holds every property of an INI source, indexed by section name.
// Sections with the same name are treated as one section whose properties
// appear in file order. The zero value is an empty file. Files are immutable
// after Parse and can be read by multiple concurrent goroutines.
type File struct {
	groups []group
	byName map[string][]int // indices into groups
}

// group is one run of properties under a header, or before the first one.
type group struct {
	name  string
	pairs []Pair
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// Normalize, if not nil, is applied to every section name and key as it
	// is read. Lookups must use normalized names. Passing strings.ToLower
	// makes a File case-insensitive.
	Normalize func(string) string
}

func (opts *ParseOptions) normalize(s string) string {
	if opts == nil || opts.Normalize == nil {
		return s
	}
	return opts.Normalize(s)
}

// Parse reads an INI source to completion. Nil options are treated
// identically as passing the zero value.
//
// On error, Parse returns the properties read before the offending line
// along with the error.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	rd := NewReader(r)
	defer rd.Close()
	f := new(File)
	err := f.readFrom(rd, opts)
	return f, err
}

// readFrom adds the rest of rd to f, starting in the global section.
func (f *File) readFrom(rd *Reader, opts *ParseOptions) error {
	g := f.addGroup("")
	for {
		key, value, ok, err := rd.ReadPair()
		if err != nil {
			return err
		}
		if ok {
			g.pairs = append(g.pairs, Pair{Key: opts.normalize(key), Value: value})
			continue
		}
		name, ok, err := rd.NextSection()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		g = f.addGroup(opts.normalize(name))
	}
}

func (f *File) addGroup(name string) *group {
	if f.byName == nil {
		f.byName = make(map[string][]int)
	}
	f.byName[name] = append(f.byName[name], len(f.groups))
	f.groups = append(f.groups, group{name: name})
	return &f.groups[len(f.groups)-1]
}

// Lookup returns the last value of key in the named section and reports
// whether the key was present. The empty section name denotes the global
// section.
func (f *File) Lookup(section, key string) (string, bool) {
	if f == nil {
		return "", false
	}
	idx := f.byName[section]
	for i := len(idx) - 1; i >= 0; i-- {
		pairs := f.groups[idx[i]].pairs
		for j := len(pairs) - 1; j >= 0; j-- {
			if pairs[j].Key == key {
				return pairs[j].Value, true
			}
		}
	}
	return "", false
}

// Get is like Lookup but returns the empty string for a missing key.
func (f *File) Get(section, key string) string {
	v, _ := f.Lookup(section, key)
	return v
}

// Find returns every value of key in the named section in file order.
func (f *File) Find(section, key string) []string {
	var values []string
	for _, p := range f.Pairs(section) {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Pairs returns a copy of the properties of the named section in file order.
func (f *File) Pairs(section string) []Pair {
	if f == nil {
		return nil
	}
	var pairs []Pair
	for _, i := range f.byName[section] {
		pairs = append(pairs, f.groups[i].pairs...)
	}
	return pairs
}

// Sections returns the names of the sections that have properties, in order
// of first appearance. The global section is listed as "" if it has any.
func (f *File) Sections() []string {
	if f == nil {
		return nil
	}
	var names []string
	seen := make(map[string]bool, len(f.byName))
	for _, g := range f.groups {
		// An empty group doesn't count: a later one of the same name may
		// still list the section.
		if len(g.pairs) == 0 || seen[g.name] {
			continue
		}
		seen[g.name] = true
		names = append(names, g.name)
	}
	return names
}

// UnmarshalText parses the INI data with default options, replacing the
// contents of f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// IsValidSection reports whether a string is read back unchanged when written
// as a section header.
func IsValidSection(name string) bool {
	if name == "" {
		// Special case: global section.
		return true
	}
	return trimmed(name) && !strings.ContainsAny(name, "]\r\n")
}

// IsValidKey reports whether a string is read back unchanged when written as
// a property key.
func IsValidKey(key string) bool {
	if key == "" || !trimmed(key) || isCommentMarker(key[0]) {
		return false
	}
	return !strings.ContainsAny(key, "=[\r\n")
}

// IsValidValue reports whether a string is read back unchanged when written as
// a property value.
func IsValidValue(value string) bool {
	if !trimmed(value) || strings.ContainsAny(value, "\r\n") {
		return false
	}
	// Written after "key=", so the first byte never follows whitespace.
	return string(parseValue([]byte(value))) == value
}

func trimmed(s string) bool {
	return len(trimBlank([]byte(s))) == len(s)
}
