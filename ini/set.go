// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"os"
)

// FileSet is a list of files to obtain configuration from in descending order
// of precedence. Nil elements are treated as empty files.
type FileSet []*File

// ParseFiles parses the files at the given paths and returns a FileSet with
// one element per path. Missing files are not an error: their element is nil.
// ParseFiles stops at the first other error and returns the files parsed so
// far.
func ParseFiles(opts *ParseOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := parseFile(p, opts)
		if errors.Is(err, os.ErrNotExist) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		fset = append(fset, f)
	}
	return fset, nil
}

func parseFile(path string, opts *ParseOptions) (*File, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close() // Close errors irrelevant after a full read.
	f := new(File)
	if err := f.readFrom(r, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Lookup returns the value of key from the first file that sets it.
func (fset FileSet) Lookup(section, key string) (string, bool) {
	for _, f := range fset {
		if v, ok := f.Lookup(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Get is like Lookup but returns the empty string for a missing key.
func (fset FileSet) Get(section, key string) string {
	v, _ := fset.Lookup(section, key)
	return v
}

// Find returns every value of key in the named section, starting with the
// file of lowest precedence. The last element, if any, is the value Get
// returns.
func (fset FileSet) Find(section, key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		values = append(values, fset[i].Find(section, key)...)
	}
	return values
}

// Sections returns the names of sections with properties in any file,
// ordered by file precedence and then by first appearance.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]bool)
	for _, f := range fset {
		for _, name := range f.Sections() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
