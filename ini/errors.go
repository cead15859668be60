// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Reader methods called after Close or on a nil
// Reader.
var ErrClosed = errors.New("ini: use of closed reader")

// An OpenError is returned by Open when the source cannot be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "open ini file: " + e.Err.Error()
}

// Unwrap returns the underlying I/O error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// A SyntaxError describes a line that is not blank, a comment, a section
// header, or a property.
type SyntaxError struct {
	// Line is the 1-based line number of the offending line.
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse ini file: line %d: %s", e.Line, e.Msg)
}

// Status is the numeric result convention used by C-style bindings.
type Status int

// Status values.
const (
	StatusError Status = -1
	StatusEnd   Status = 0
	StatusOK    Status = 1
)

// StatusOf converts the results of NextSection or ReadPair into a Status.
func StatusOf(ok bool, err error) Status {
	switch {
	case err != nil:
		return StatusError
	case ok:
		return StatusOK
	default:
		return StatusEnd
	}
}

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusEnd:
		return "end"
	case StatusOK:
		return "ok"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
