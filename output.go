// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file renders results in the output formats of JSON Schema 2020-12.
// See https://json-schema.org/draft/2020-12/json-schema-core#section-12.

package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// An OutputFormat selects the shape of a rendered [Result].
type OutputFormat int

const (
	// Flag renders only the verdict.
	Flag OutputFormat = iota + 1
	// Basic renders a flat list of the failing units of an invalid result,
	// or of the annotating units of a valid one.
	Basic
	// Detailed renders the tree of units that decided the outcome.
	Detailed
	// Verbose renders every unit.
	Verbose
)

var formatNames = map[OutputFormat]string{
	Flag:     "flag",
	Basic:    "basic",
	Detailed: "detailed",
	Verbose:  "verbose",
}

func (f OutputFormat) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// ParseOutputFormat returns the output format with the given name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for f, n := range formatNames {
		if strings.EqualFold(s, n) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown output format %q", s)
}

// A Unit is one output unit of a rendered result.
type Unit struct {
	Valid            bool              `json:"valid"`
	EvaluationPath   string            `json:"evaluationPath"`
	SchemaLocation   string            `json:"schemaLocation"`
	InstanceLocation string            `json:"instanceLocation"`
	Errors           map[string]string `json:"errors,omitempty"`
	Annotations      map[string]any    `json:"annotations,omitempty"`
	Details          []*Unit           `json:"details,omitempty"`

	flag bool
}

func (u *Unit) MarshalJSON() ([]byte, error) {
	if u.flag {
		return json.Marshal(struct {
			Valid bool `json:"valid"`
		}{u.Valid})
	}
	type unit Unit // avoid recursion
	return json.Marshal((*unit)(u))
}

// MarshalJSON renders the result in the output format of the evaluation's options.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Output(r.format))
}

// Output renders the result in the given format.
func (r *Result) Output(f OutputFormat) *Unit {
	switch f {
	case Flag:
		return &Unit{Valid: r.Valid, flag: true}
	case Detailed:
		return detailedUnit(r.root, true)
	case Verbose:
		return verboseUnit(r.root)
	default:
		return basicOutput(r.root)
	}
}

// newUnit returns a unit for n without details. Annotations of invalid nodes
// are never rendered.
func newUnit(n *Node) *Unit {
	u := &Unit{
		Valid:            n.Valid,
		EvaluationPath:   n.EvaluationPath,
		SchemaLocation:   n.SchemaLocation,
		InstanceLocation: n.InstanceLocation,
	}
	if !n.Valid {
		u.Errors = n.Errors
	} else {
		u.Annotations = n.Annotations
	}
	return u
}

func basicOutput(root *Node) *Unit {
	u := newUnit(root)
	u.Errors = nil
	u.Annotations = nil
	var walk func(*Node)
	walk = func(n *Node) {
		if root.Valid {
			if !n.Valid {
				return
			}
			if len(n.Annotations) > 0 {
				d := newUnit(n)
				u.Details = append(u.Details, d)
			}
		} else if len(n.Errors) > 0 {
			d := newUnit(n)
			d.Annotations = nil
			u.Details = append(u.Details, d)
		}
		for _, c := range n.Details {
			walk(c)
		}
	}
	walk(root)
	return u
}

// detailedUnit keeps only the children that agree with their parent's
// validity: failures under an invalid node, annotations under a valid one.
// Nodes left with nothing to say are dropped.
func detailedUnit(n *Node, root bool) *Unit {
	u := newUnit(n)
	for _, c := range n.Details {
		if c.Valid != n.Valid {
			continue
		}
		if cu := detailedUnit(c, false); cu != nil {
			u.Details = append(u.Details, cu)
		}
	}
	if !root && len(u.Errors) == 0 && len(u.Annotations) == 0 && len(u.Details) == 0 {
		return nil
	}
	return u
}

func verboseUnit(n *Node) *Unit {
	u := newUnit(n)
	for _, c := range n.Details {
		u.Details = append(u.Details, verboseUnit(c))
	}
	return u
}
