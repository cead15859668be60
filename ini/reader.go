// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxLineSize is the longest line a Reader accepts, in bytes.
const MaxLineSize = 1 << 20

// A Reader is a cursor over a single INI source. It yields section names with
// NextSection and the properties of the current section with ReadPair.
//
// Properties that appear before the first section header belong to the
// global section, which is current when the Reader is created. Call ReadPair
// before the first NextSection to read them.
//
// Readers are not safe for concurrent use.
type Reader struct {
	s       *bufio.Scanner
	closer  io.Closer
	advance int // bytes consumed by the most recent token
	offset  int64
	lineno  int
	section string

	peeked    string
	hasPeeked bool
	eof       bool
	closed    bool
	err       error // first read error, returned by every later call
}

// Open opens the named file for reading. If the file cannot be opened, Open
// returns an *OpenError. The caller is responsible for closing the Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &OpenError{
			Path: path,
			Err:  &os.PathError{Op: "open", Path: path, Err: errors.New("is a directory")},
		}
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader returns a Reader that reads INI data from src. The Reader does
// not take ownership of src: closing the Reader does not close src.
func NewReader(src io.Reader) *Reader {
	r := &Reader{s: bufio.NewScanner(src)}
	r.s.Buffer(nil, MaxLineSize)
	r.s.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if token != nil {
			r.advance = advance
		}
		return advance, token, err
	})
	return r
}

// NextSection advances to the next section header and returns its name.
// Properties of the current section that were not read are skipped. At the
// end of the source, NextSection returns ok == false and a nil error, and
// keeps doing so on subsequent calls.
//
// A line that is not blank, a comment, a header, or a property results in a
// *SyntaxError. The offending line is consumed, so the caller may call
// NextSection again to continue past it.
func (r *Reader) NextSection() (name string, ok bool, err error) {
	if r == nil || r.closed {
		return "", false, ErrClosed
	}
	if r.hasPeeked {
		r.section = r.peeked
		r.peeked, r.hasPeeked = "", false
		return r.section, true, nil
	}
	for {
		l, ok, err := r.next()
		if err != nil || !ok {
			return "", false, err
		}
		if l.kind == headerLine {
			r.section = l.name
			return l.name, true, nil
		}
	}
}

// ReadPair returns the next property in the current section. When the next
// significant line is a section header or the source is exhausted, ReadPair
// returns ok == false and a nil error. A header found this way is not
// consumed: the following call to NextSection returns it.
//
// Errors are reported the same way as NextSection.
func (r *Reader) ReadPair() (key, value string, ok bool, err error) {
	if r == nil || r.closed {
		return "", "", false, ErrClosed
	}
	if r.hasPeeked {
		return "", "", false, nil
	}
	l, ok, err := r.next()
	if err != nil || !ok {
		return "", "", false, err
	}
	if l.kind == headerLine {
		r.peeked, r.hasPeeked = l.name, true
		return "", "", false, nil
	}
	return l.key, l.value, true, nil
}

// Section returns the name of the current section. It is the empty string
// before the first header has been read.
func (r *Reader) Section() string {
	if r == nil {
		return ""
	}
	return r.section
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int {
	if r == nil {
		return 0
	}
	return r.lineno
}

// Offset returns the number of bytes consumed from the source so far.
func (r *Reader) Offset() int64 {
	if r == nil {
		return 0
	}
	return r.offset
}

// Close releases the source. Calling Close more than once is a no-op.
func (r *Reader) Close() error {
	if r == nil || r.closed {
		return nil
	}
	r.closed = true
	r.s = nil
	r.peeked, r.hasPeeked = "", false
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	if err != nil {
		return fmt.Errorf("close ini file: %w", err)
	}
	return nil
}

// next returns the next line that is a header or a property, skipping blank
// lines and comments.
func (r *Reader) next() (_ line, ok bool, _ error) {
	if r.err != nil {
		return line{}, false, r.err
	}
	for !r.eof {
		if !r.s.Scan() {
			if err := r.s.Err(); err != nil {
				// The scanner is unusable after an error: a further Scan would
				// return the buffered remainder as a line.
				r.err = fmt.Errorf("parse ini file: line %d: %w", r.lineno+1, err)
				return line{}, false, r.err
			}
			r.eof = true
			break
		}
		r.lineno++
		r.offset += int64(r.advance)
		l, err := parseLine(r.s.Bytes())
		if err != nil {
			return line{}, false, &SyntaxError{Line: r.lineno, Msg: err.Error()}
		}
		if l.kind != blankLine {
			return l, true, nil
		}
	}
	return line{}, false, nil
}

type lineKind int

const (
	blankLine lineKind = iota
	headerLine
	propertyLine
)

// line is a classified source line. Strings are copies, so they remain valid
// after the scanner advances.
type line struct {
	kind  lineKind
	name  string
	key   string
	value string
}

// parseLine classifies a single line without its terminator. Blank lines and
// comments are both reported as blankLine.
func parseLine(b []byte) (line, error) {
	b = trimBlank(b)
	if len(b) == 0 || b[0] == ';' || b[0] == '#' {
		return line{kind: blankLine}, nil
	}
	if b[0] == '[' {
		// Headers take precedence over properties. Keys can't contain '[',
		// so a malformed header is never a property.
		name, err := parseHeader(b)
		if err != nil {
			return line{}, err
		}
		return line{kind: headerLine, name: name}, nil
	}
	i := bytes.IndexByte(b, '=')
	if i == -1 {
		return line{}, errors.New("could not find '='")
	}
	k := trimBlank(b[:i])
	if len(k) == 0 {
		return line{}, errors.New("property key missing")
	}
	if bytes.IndexByte(k, '[') != -1 {
		return line{}, fmt.Errorf("invalid key %q", k)
	}
	v := trimBlank(parseValue(b[i+1:]))
	return line{kind: propertyLine, key: string(k), value: string(v)}, nil
}

func parseHeader(b []byte) (string, error) {
	end := bytes.IndexByte(b, ']')
	if end == -1 {
		return "", errors.New("missing section closing bracket")
	}
	name := trimBlank(b[1:end])
	if len(name) == 0 {
		return "", errors.New("section name missing")
	}
	if rest := trimBlank(b[end+1:]); len(rest) > 0 && rest[0] != ';' && rest[0] != '#' {
		return "", fmt.Errorf("unexpected %q after section name", rest)
	}
	return string(name), nil
}

// parseValue removes an inline comment from a raw property value. A comment
// starts at a ';' or '#' that immediately follows a space or tab. A backslash
// before either marker makes it literal and is dropped; any other backslash is
// kept as is.
func parseValue(raw []byte) []byte {
	v := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw) && isCommentMarker(raw[i+1]):
			i++
			v = append(v, raw[i])
		case isCommentMarker(c) && i > 0 && isBlank(raw[i-1]):
			return v
		default:
			v = append(v, c)
		}
	}
	return v
}

// trimBlank trims ASCII whitespace only. Other bytes, including UTF-8
// encoded spaces, are part of the text.
func trimBlank(b []byte) []byte {
	return bytes.Trim(b, " \t\r\n\v\f")
}

func isCommentMarker(c byte) bool {
	return c == ';' || c == '#'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
