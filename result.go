// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import "slices"

// A Node is the result of evaluating an instance location against one schema.
// Nodes form a tree that follows the evaluation path: the children of a node
// are the subschema evaluations made by its keywords, in the order they
// were made.
type Node struct {
	Valid            bool
	EvaluationPath   string // JSON Pointer through the schemas, following references
	SchemaLocation   string // absolute URI of the schema, with a JSON Pointer fragment
	InstanceLocation string // JSON Pointer into the instance

	// Errors maps each failed keyword to its message.
	Errors map[string]string
	// Annotations maps each annotating keyword to its value.
	// Annotations are recorded regardless of validity; see [Node.AnnotationsAt]
	// for the ones that are visible.
	Annotations map[string]any

	Details []*Node

	kinds map[string]ErrorKind
	// scratch holds values that keywords pass to later keywords of the same schema.
	scratch map[string]any
}

// ErrorKind returns the kind of failure of the named keyword, or KindNone if
// it did not fail.
func (n *Node) ErrorKind(keyword string) ErrorKind {
	return n.kinds[keyword]
}

// An Annotation is a value produced by a keyword.
type Annotation struct {
	Keyword        string
	Value          any
	EvaluationPath string
}

// An AnnotationQuery selects annotations from a result tree.
type AnnotationQuery struct {
	// InstanceLocation is the instance location whose annotations are wanted.
	InstanceLocation string
	// Keywords, if not empty, restricts the result to these keywords.
	Keywords []string
	// IgnoreValidity includes annotations from invalid subtrees.
	IgnoreValidity bool
}

// AnnotationsAt returns the annotations produced within the tree rooted at n
// that match q, in evaluation order.
//
// An annotation is visible only if every node from n down to the one that
// produced it is valid, except that n's own annotations are always included.
// Only nodes evaluated at q.InstanceLocation are searched; subtrees for other
// instance locations are not entered.
func (n *Node) AnnotationsAt(q AnnotationQuery) []Annotation {
	var anns []Annotation
	n.collect(q, &anns, true)
	return anns
}

func (n *Node) collect(q AnnotationQuery, anns *[]Annotation, root bool) {
	if n.InstanceLocation != q.InstanceLocation {
		return
	}
	if !root && !n.Valid && !q.IgnoreValidity {
		return
	}
	// Sorted, for determinism.
	for _, kw := range sortedKeys(n.Annotations) {
		if len(q.Keywords) == 0 || slices.Contains(q.Keywords, kw) {
			*anns = append(*anns, Annotation{
				Keyword:        kw,
				Value:          n.Annotations[kw],
				EvaluationPath: appendPointer(n.EvaluationPath, kw),
			})
		}
	}
	for _, d := range n.Details {
		d.collect(q, anns, false)
	}
}

// A Result is the outcome of [Evaluate].
type Result struct {
	Valid  bool
	root   *Node
	format OutputFormat
}

// Root returns the result node of the root schema.
func (r *Result) Root() *Node { return r.root }
