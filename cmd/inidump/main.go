// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inidump prints the sections and properties of an INI file in file order.
//
//	Usage: inidump [INI_FILE]
//	       inidump --get [SECTION.]KEY INI_FILE...
//
// With --get, inidump instead prints the value of a single property. When
// several files are given, the first file that sets the property wins.
// Section and key are split at the last dot; a key without a dot is looked
// up in the global section.
//
// It exits with a non-zero status if a file cannot be opened or is
// malformed, or if the requested property is not set.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/yourbase/iniread/ini"
	"zombiezen.com/go/log"
)

const usage = "Usage: inidump [INI_FILE]\n" +
	"       inidump --get [SECTION.]KEY INI_FILE..."

type args struct {
	Verbose  bool     `help:"Log progress to stderr and print line numbers." short:"v" env:"INIDUMP_VERBOSE"`
	Get      string   `help:"Print the value of a single property." placeholder:"[SECTION.]KEY"`
	All      bool     `help:"With --get, print every value of the property, lowest precedence first."`
	FoldCase bool     `help:"Treat section names and keys as case-insensitive."`
	Files    []string `arg:"" optional:"" name:"INI_FILE" help:"INI files to read."`
}

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Exit, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Errorf(ctx, "inidump: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, exit func(int), stdout, stderr io.Writer, argv []string) error {
	var a args
	parser, err := kong.New(&a,
		kong.Name("inidump"),
		kong.Description("Print the sections and properties of an INI file."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(argv); err != nil {
		return err
	}
	opts := new(ini.ParseOptions)
	if a.FoldCase {
		opts.Normalize = strings.ToLower
	}
	if a.Get != "" {
		if len(a.Files) == 0 {
			fmt.Fprintln(stdout, usage)
			return nil
		}
		return get(ctx, stdout, &a, opts)
	}
	if len(a.Files) != 1 {
		fmt.Fprintln(stdout, usage)
		return nil
	}
	d := &dumper{w: stdout, verbose: a.Verbose, normalize: opts.Normalize}
	return d.dump(ctx, a.Files[0])
}

func get(ctx context.Context, w io.Writer, a *args, opts *ini.ParseOptions) error {
	section, key := "", a.Get
	if i := strings.LastIndexByte(a.Get, '.'); i != -1 {
		section, key = a.Get[:i], a.Get[i+1:]
	}
	if opts.Normalize != nil {
		section, key = opts.Normalize(section), opts.Normalize(key)
	}
	fset, err := ini.ParseFiles(opts, a.Files...)
	if err != nil {
		return err
	}
	if a.Verbose {
		for i, f := range fset {
			if f == nil {
				log.Infof(ctx, "Skipping missing file %s", a.Files[i])
			}
		}
	}
	if a.All {
		values := fset.Find(section, key)
		if len(values) == 0 {
			return fmt.Errorf("%s not set", a.Get)
		}
		for _, v := range values {
			fmt.Fprintln(w, v)
		}
		return nil
	}
	v, ok := fset.Lookup(section, key)
	if !ok {
		return fmt.Errorf("%s not set", a.Get)
	}
	fmt.Fprintln(w, v)
	return nil
}

type dumper struct {
	w         io.Writer
	verbose   bool
	normalize func(string) string
}

func (d *dumper) dump(ctx context.Context, path string) error {
	r, err := ini.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	if d.verbose {
		log.Infof(ctx, "Reading %s", path)
	}

	// Properties before the first header belong to the global section.
	n, err := d.dumpPairs(r, "In global section")
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintln(d.w, "End of section.")
	}
	for {
		name, ok, err := r.NextSection()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		name = d.norm(name)
		d.printf(r, "In section: %s\n", name)
		dumpIfNonPrintable(d.w, "section", name)
		if _, err := d.dumpPairs(r, ""); err != nil {
			return err
		}
		fmt.Fprintln(d.w, "End of section.")
	}
	fmt.Fprintln(d.w, "End.")
	if d.verbose {
		log.Infof(ctx, "Read %d lines (%d bytes) from %s", r.Line(), r.Offset(), path)
	}
	return r.Close()
}

// dumpPairs prints the remaining properties of the current section. If
// heading is not empty, it is printed before the first property.
func (d *dumper) dumpPairs(r *ini.Reader, heading string) (int, error) {
	n := 0
	for {
		key, value, ok, err := r.ReadPair()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if n == 0 && heading != "" {
			fmt.Fprintln(d.w, heading)
		}
		n++
		key = d.norm(key)
		d.printf(r, "Reading key: %s value: %s\n", key, value)
		dumpIfNonPrintable(d.w, "key", key)
		dumpIfNonPrintable(d.w, "value", value)
	}
}

// printf writes a line about the item r just read, prefixed with its line
// number in verbose mode.
func (d *dumper) printf(r *ini.Reader, format string, v ...interface{}) {
	if d.verbose {
		fmt.Fprintf(d.w, "[%02d] : ", r.Line())
	}
	fmt.Fprintf(d.w, format, v...)
}

func (d *dumper) norm(s string) string {
	if d.normalize == nil {
		return s
	}
	return d.normalize(s)
}

// dumpIfNonPrintable writes a hex dump of s if it contains control characters
// or bytes outside of printable ASCII.
func dumpIfNonPrintable(w io.Writer, name, s string) {
	if isPrintable(s) {
		return
	}
	fmt.Fprintf(w, "\t%s (len=%d) includes non-printable chars\n", name, len(s))
	for _, line := range strings.SplitAfter(hex.Dump([]byte(s)), "\n") {
		if line != "" {
			io.WriteString(w, "\t\t"+line)
		}
	}
}

func isPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
