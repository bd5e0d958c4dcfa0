// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
)

// state is the state of a single call to Evaluate.
// Everything else that evaluation threads through the recursion lives in
// [Context] values, which are never modified after they are passed down.
type state struct {
	opts     *Options
	logger   *slog.Logger
	registry *Registry

	// dialects memoizes the dialect of each resource.
	dialects map[*Schema]*Dialect

	// active holds the references being evaluated, to detect cycles.
	active map[activeRef]bool

	// refs caches resolved references.
	refs map[refKey]*Schema

	steps int
	// err is set when the call must be abandoned.
	err error
}

// An activeRef is a reference target being evaluated at an instance location.
type activeRef struct {
	target   *Schema
	location string
}

// A scope is one entry in the dynamic scope: the resources entered on the
// way from the root to the current schema, innermost first.
type scope struct {
	resource *Schema
	parent   *scope
}

// outermostFirst returns the resources of the scope, from the root inward.
func (sc *scope) outermostFirst() []*Schema {
	var rs []*Schema
	for ; sc != nil; sc = sc.parent {
		rs = append(rs, sc.resource)
	}
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return rs
}

// A Context is passed to each keyword as it evaluates.
// It describes where evaluation is, in the schema and in the instance,
// and holds the result node of the schema being evaluated.
type Context struct {
	st      *state
	schema  *Schema
	dialect *Dialect
	scope   *scope
	node    *Node
	depth   int

	// keyword is the name of the keyword being evaluated.
	keyword string

	instance         any
	instanceLocation string
}

// evalSchema evaluates instance, found at instLoc, against s, reached by
// evalPath. It returns the result node.
func (st *state) evalSchema(s *Schema, instance any, instLoc, evalPath string, sc *scope, depth int) *Node {
	n := &Node{
		Valid:            true,
		EvaluationPath:   evalPath,
		SchemaLocation:   s.Location(),
		InstanceLocation: instLoc,
	}
	if st.err != nil {
		n.Valid = false
		return n
	}
	st.steps++
	if depth > st.opts.maxDepth() {
		st.err = fmt.Errorf("%w: depth %d at %s", ErrResourceExhausted, depth, evalPath)
	} else if limit := st.opts.maxSteps(); limit > 0 && st.steps > limit {
		st.err = fmt.Errorf("%w: %d steps at %s", ErrResourceExhausted, limit, evalPath)
	}
	if st.err != nil {
		n.Valid = false
		return n
	}
	if sc == nil || sc.resource != s.resource {
		sc = &scope{resource: s.resource, parent: sc}
	}
	c := &Context{
		st:               st,
		schema:           s,
		scope:            sc,
		node:             n,
		depth:            depth,
		instance:         instance,
		instanceLocation: instLoc,
	}
	if b, ok := s.Bool(); ok {
		if !b {
			c.keyword = "false"
			c.fail()
		}
		return n
	}
	d, err := st.dialectFor(s.resource)
	if err != nil {
		c.keyword = "$schema"
		c.failKind(KindReference, "$schema", "error", err.Error())
		return n
	}
	c.dialect = d
	c.trace("schema", "dialect", d)
	for _, kw := range applicableKeywords(s, d) {
		if st.err != nil || (!n.Valid && c.fast()) {
			break
		}
		c.keyword = kw.Name()
		kw.evaluate(c)
	}
	if st.err != nil {
		n.Valid = false
	}
	return n
}

// trace logs an evaluation step at debug level.
func (c *Context) trace(msg string, args ...any) {
	lg := c.st.logger
	if !lg.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if indent := c.st.opts.logIndent(); indent > 0 {
		msg = strings.Repeat(" ", indent*c.depth) + msg
	}
	args = append(args,
		"evaluationPath", c.node.EvaluationPath,
		"instanceLocation", c.instanceLocation,
		"depth", c.depth)
	if c.keyword != "" {
		args = append(args, "keyword", c.keyword)
	}
	lg.Debug(msg, args...)
}

func (c *Context) fast() bool { return c.st.opts.fast() }

// fail records a failure of the current keyword. The args are alternating
// parameter names and values, substituted into the keyword's message.
func (c *Context) fail(args ...any) {
	c.failKind(KindAssertion, c.keyword, args...)
}

// failKind records a failure of the current keyword with the given kind,
// rendered with the message named key.
func (c *Context) failKind(kind ErrorKind, key string, args ...any) {
	n := c.node
	n.Valid = false
	if n.Errors == nil {
		n.Errors = map[string]string{}
		n.kinds = map[string]ErrorKind{}
	}
	params := map[string]any{}
	for i := 0; i+1 < len(args); i += 2 {
		params[fmt.Sprint(args[i])] = args[i+1]
	}
	n.Errors[c.keyword] = c.st.message(key, params)
	n.kinds[c.keyword] = kind
	c.trace("fail", "kind", kind)
}

// annotate records v as the annotation of the current keyword.
func (c *Context) annotate(v any) {
	if c.node.Annotations == nil {
		c.node.Annotations = map[string]any{}
	}
	c.node.Annotations[c.keyword] = v
}

// setLocal stores a value for later keywords of the same schema.
func (c *Context) setLocal(name string, v any) {
	if c.node.scratch == nil {
		c.node.scratch = map[string]any{}
	}
	c.node.scratch[name] = v
}

func (c *Context) local(name string) (any, bool) {
	v, ok := c.node.scratch[name]
	return v, ok
}

// evaluate evaluates the current instance against sub, reached from the
// current keyword through the given path segments.
func (c *Context) evaluate(sub *Schema, path ...string) *Node {
	return c.evaluateAt(sub, c.instance, "", path...)
}

// evaluateAt evaluates v against sub. If instSeg is not empty, v is the
// member or item of the current instance with that name or index.
func (c *Context) evaluateAt(sub *Schema, v any, instSeg string, path ...string) *Node {
	instLoc := c.instanceLocation
	if instSeg != "" {
		instLoc = appendPointer(instLoc, instSeg)
	}
	evalPath := appendPointer(appendPointer(c.node.EvaluationPath, c.keyword), path...)
	child := c.st.evalSchema(sub, v, instLoc, evalPath, c.scope, c.depth+1)
	c.node.Details = append(c.node.Details, child)
	return child
}

// evaluateRef evaluates the current instance against the target of a
// reference. It fails with KindCycle if the target is already being
// evaluated at the same instance location.
func (c *Context) evaluateRef(target *Schema) *Node {
	key := activeRef{target, c.instanceLocation}
	if c.st.active[key] {
		c.failKind(KindCycle, "refCycle", "target", target.Location())
		return nil
	}
	c.st.active[key] = true
	defer delete(c.st.active, key)
	return c.evaluate(target)
}

// siblingKeyword returns the keyword of the current schema with the given
// name, if it is present and active.
func (c *Context) siblingKeyword(name string) (Keyword, bool) {
	kw, ok := c.schema.keyword(name)
	if !ok {
		return nil, false
	}
	if info := keywordTable[name]; info != nil && !c.dialect.active(info) {
		return nil, false
	}
	return kw, true
}

// annotationsAt returns the visible annotations produced so far at the
// current instance location by the named keywords.
func (c *Context) annotationsAt(keywords ...string) []Annotation {
	return c.node.AnnotationsAt(AnnotationQuery{
		InstanceLocation: c.instanceLocation,
		Keywords:         keywords,
	})
}

// Accessors for the instance. Each returns false, and logs that the current
// keyword does not apply, if the instance is not of the requested kind.

func (c *Context) object() (map[string]any, bool) {
	m, ok := c.instance.(map[string]any)
	if !ok {
		c.notApplicable("object")
	}
	return m, ok
}

func (c *Context) array() ([]any, bool) {
	a, ok := c.instance.([]any)
	if !ok {
		c.notApplicable("array")
	}
	return a, ok
}

func (c *Context) str() (string, bool) {
	s, ok := c.instance.(string)
	if !ok {
		c.notApplicable("string")
	}
	return s, ok
}

func (c *Context) number() (*big.Rat, bool) {
	r, ok := jsonNumber(c.instance)
	if !ok {
		c.notApplicable("number")
	}
	return r, ok
}

func (c *Context) notApplicable(want string) {
	c.trace("keyword not applicable", "want", want, "got", jsonType(c.instance))
}
