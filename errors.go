// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// A ParseError describes a malformed schema document.
// It is returned by [Parse] before any evaluation happens.
type ParseError struct {
	Keyword  string // keyword whose value is malformed; empty for document-level problems
	Expected string // the shape the keyword expects, if known
	Location string // JSON Pointer from the document root to the offending value
	Err      error  // underlying error, if any
	frame    xerrors.Frame
}

func (p *parser) errorf(loc position, keyword, expected string, err error) *ParseError {
	return &ParseError{
		Keyword:  keyword,
		Expected: expected,
		Location: loc.doc,
		Err:      err,
		frame:    xerrors.Caller(1),
	}
}

func (e *ParseError) message() string {
	var b strings.Builder
	b.WriteString("jsonschema: parsing #")
	b.WriteString(e.Location)
	if e.Keyword != "" {
		fmt.Fprintf(&b, ": %s", e.Keyword)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	return b.String()
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.message() + ": " + e.Err.Error()
	}
	return e.message()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Format prints the error; the %+v verb includes the location in this
// package that detected it.
func (e *ParseError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *ParseError) FormatError(p xerrors.Printer) error {
	p.Print(e.message())
	e.frame.Format(p)
	return e.Err
}

// An ErrorKind classifies the failure recorded for a keyword in a result [Node].
type ErrorKind int

const (
	// KindNone means the keyword did not fail.
	KindNone ErrorKind = iota
	// KindAssertion is a keyword whose own condition is violated.
	KindAssertion
	// KindReference is a reference whose target could not be resolved.
	KindReference
	// KindCycle is a reference that re-entered a schema at the same
	// instance location.
	KindCycle
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAssertion:
		return "assertion"
	case KindReference:
		return "reference resolution"
	case KindCycle:
		return "reference cycle"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ErrResourceExhausted is returned by [Evaluate] when an evaluation exceeds
// its depth or step budget. See [Options.MaxDepth] and [Options.MaxSteps].
var ErrResourceExhausted = errors.New("jsonschema: evaluation budget exceeded")

// A ValidationError reports an instance that does not conform to its schema.
type ValidationError struct {
	Result   *Result
	Failures []*Unit // the failing units of the Basic output
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("jsonschema: instance is invalid")
	for i, u := range e.Failures {
		if i == 3 {
			fmt.Fprintf(&b, " (and %d more)", len(e.Failures)-i)
			break
		}
		sep := ";"
		if i == 0 {
			sep = ":"
		}
		for _, kw := range sortedKeys(u.Errors) {
			fmt.Fprintf(&b, "%s %s at #%s: %s", sep, kw, u.InstanceLocation, u.Errors[kw])
			sep = ";"
		}
	}
	return b.String()
}
