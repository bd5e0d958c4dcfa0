// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Core keywords: identifiers, definitions and references.
// See https://json-schema.org/draft/2020-12/json-schema-core#section-8.

package jsonschema

import (
	"errors"
	"fmt"
	"hash/maphash"
	"net/url"
	"regexp"
	"strings"
)

func init() {
	registerKeywords(
		&keywordInfo{name: "$id", priority: priorityIdentifier, versions: since(Draft6, "core"), parse: parseIdentifier(stringIdentifier)},
		&keywordInfo{name: "$schema", priority: priorityIdentifier, versions: since(Draft6, "core"), parse: parseIdentifier(stringIdentifier)},
		&keywordInfo{name: "$anchor", priority: priorityIdentifier, versions: since(Draft201909, "core"), parse: parseIdentifier(anchorIdentifier)},
		&keywordInfo{name: "$dynamicAnchor", priority: priorityIdentifier, versions: since(Draft202012, "core"), parse: parseIdentifier(anchorIdentifier)},
		&keywordInfo{name: "$recursiveAnchor", priority: priorityIdentifier, versions: between(Draft201909, Draft201909, "core"), parse: parseIdentifier(boolIdentifier)},
		&keywordInfo{name: "$comment", priority: priorityIdentifier, versions: since(Draft7, "core"), parse: parseIdentifier(stringIdentifier)},
		&keywordInfo{name: "$vocabulary", priority: priorityIdentifier, versions: since(Draft201909, "core"), parse: parseVocabulary},
		&keywordInfo{name: "$defs", priority: priorityIdentifier, versions: since(Draft201909, "core"), parse: parseDefinitions},
		&keywordInfo{name: "definitions", priority: priorityIdentifier, versions: since(Draft6, "core"), parse: parseDefinitions},
		&keywordInfo{name: "$ref", priority: priorityDefault, versions: since(Draft6, "core"), parse: parseRef},
		&keywordInfo{name: "$dynamicRef", priority: priorityDefault, versions: since(Draft202012, "core"), parse: parseRef},
		&keywordInfo{name: "$recursiveRef", priority: priorityDefault, versions: between(Draft201909, Draft201909, "core"), parse: parseRef},
	)
}

// An identifierKeyword has a scalar value that matters to parsing or
// resolution but not to evaluation.
type identifierKeyword struct {
	name string
	v    any // string or bool
}

func (k *identifierKeyword) Name() string      { return k.name }
func (k *identifierKeyword) evaluate(*Context) {}
func (k *identifierKeyword) value() any        { return k.v }
func (k *identifierKeyword) hash(h *maphash.Hash) {
	hashValue(h, k.v)
}

func (k *identifierKeyword) equal(o Keyword) bool {
	ok, is := o.(*identifierKeyword)
	return is && ok.name == k.name && ok.v == k.v
}

type identifierKind int

const (
	stringIdentifier identifierKind = iota
	anchorIdentifier
	boolIdentifier
)

// anchorRE matches the plain names allowed for anchors.
var anchorRE = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9._]*$`)

func parseIdentifier(kind identifierKind) func(*parser, any, position) (Keyword, error) {
	return func(p *parser, v any, loc position) (Keyword, error) {
		name := lastSegment(loc)
		switch kind {
		case boolIdentifier:
			b, err := p.bool(name, v, loc)
			if err != nil {
				return nil, err
			}
			return &identifierKeyword{name, b}, nil
		default:
			s, err := p.string(name, v, loc)
			if err != nil {
				return nil, err
			}
			if kind == anchorIdentifier && !anchorRE.MatchString(s) {
				return nil, p.errorf(loc, name, "a plain name", fmt.Errorf("invalid anchor %q", s))
			}
			return &identifierKeyword{name, s}, nil
		}
	}
}

// lastSegment returns the keyword name at the end of loc.
func lastSegment(loc position) string {
	i := strings.LastIndexByte(loc.pointer, '/')
	if i < 0 {
		return ""
	}
	return pointerUnescaper.Replace(loc.pointer[i+1:])
}

// vocabularyKeyword is $vocabulary, which appears in meta-schemas.
type vocabularyKeyword struct {
	uris   []string
	vocabs map[string]bool // vocabulary URI to whether it is required
}

func (k *vocabularyKeyword) Name() string      { return "$vocabulary" }
func (k *vocabularyKeyword) evaluate(*Context) {}
func (k *vocabularyKeyword) value() any        { return orderedMembers(k.uris, k.vocabs) }

func (k *vocabularyKeyword) equal(o Keyword) bool {
	ok, is := o.(*vocabularyKeyword)
	if !is || len(ok.vocabs) != len(k.vocabs) {
		return false
	}
	for u, req := range k.vocabs {
		if oreq, found := ok.vocabs[u]; !found || oreq != req {
			return false
		}
	}
	return true
}

func (k *vocabularyKeyword) hash(h *maphash.Hash) {
	var sum uint64
	for u, req := range k.vocabs {
		sum += entryHash(u, func(h *maphash.Hash) { hashValue(h, req) })
	}
	writeUint64(h, sum)
}

func parseVocabulary(p *parser, v any, loc position) (Keyword, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, p.errorf(loc, "$vocabulary", "an object", fmt.Errorf("got %s", describe(v)))
	}
	k := &vocabularyKeyword{uris: obj.names, vocabs: map[string]bool{}}
	for _, u := range obj.names {
		req, err := p.bool("$vocabulary", obj.values[u], loc.child(u))
		if err != nil {
			return nil, err
		}
		if pu, err := url.Parse(u); err != nil || !pu.IsAbs() {
			return nil, p.errorf(loc.child(u), "$vocabulary", "an absolute URI", fmt.Errorf("%q", u))
		}
		k.vocabs[u] = req
	}
	return k, nil
}

// definitionsKeyword is $defs or definitions. Its schemas are evaluated only
// when referenced.
type definitionsKeyword struct{ schemaMap }

func (k *definitionsKeyword) evaluate(*Context) {}

func parseDefinitions(p *parser, v any, loc position) (Keyword, error) {
	m, err := p.schemaMap(lastSegment(loc), v, loc)
	if err != nil {
		return nil, err
	}
	return &definitionsKeyword{m}, nil
}

// refKeyword is $ref, $dynamicRef or $recursiveRef.
type refKeyword struct {
	name string
	ref  string
	// anchor is the plain-name fragment of ref, if any.
	anchor string
}

func (k *refKeyword) Name() string         { return k.name }
func (k *refKeyword) value() any           { return k.ref }
func (k *refKeyword) hash(h *maphash.Hash) { h.WriteString(k.ref) }

func (k *refKeyword) equal(o Keyword) bool {
	ok, is := o.(*refKeyword)
	return is && ok.name == k.name && ok.ref == k.ref
}

func parseRef(p *parser, v any, loc position) (Keyword, error) {
	name := lastSegment(loc)
	s, err := p.string(name, v, loc)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, p.errorf(loc, name, "a URI reference", err)
	}
	if name == "$recursiveRef" && s != "#" {
		return nil, p.errorf(loc, name, `"#"`, errors.New("$recursiveRef must be \"#\""))
	}
	k := &refKeyword{name: name, ref: s}
	if f := u.Fragment; f != "" && f[0] != '/' {
		k.anchor = f
	}
	return k, nil
}

func (k *refKeyword) evaluate(c *Context) {
	target, err := c.st.resolveRef(c.schema, k.ref)
	if err != nil {
		c.failKind(KindReference, "refResolution", "reference", k.ref, "error", err.Error())
		return
	}
	switch k.name {
	case "$dynamicRef":
		target = k.dynamicTarget(c, target)
	case "$recursiveRef":
		target = recursiveTarget(c, target)
	}
	c.trace("reference", "target", target.Location())
	if n := c.evaluateRef(target); n != nil && !n.Valid {
		c.fail("target", target.Location())
	}
}

// dynamicTarget returns the target of a $dynamicRef whose static target is
// target: if the reference names a dynamic anchor, the outermost resource in
// the dynamic scope that declares it.
func (k *refKeyword) dynamicTarget(c *Context, target *Schema) *Schema {
	if k.anchor == "" {
		return target
	}
	// The static target must itself declare the dynamic anchor,
	// except in the next draft, which drops that requirement.
	if c.dialect.Version < DraftNext {
		if _, ok := dynamicAnchor(target, k.anchor); !ok {
			return target
		}
	}
	for _, res := range c.scope.outermostFirst() {
		if s, ok := dynamicAnchor(res, k.anchor); ok {
			return s
		}
	}
	return target
}

// recursiveTarget returns the target of a $recursiveRef whose static target
// is target. If target has "$recursiveAnchor": true, the target moves outward
// through the dynamic scope for as long as the resources there have it too.
func recursiveTarget(c *Context, target *Schema) *Schema {
	if !recursiveAnchor(target) {
		return target
	}
	for sc := c.scope; sc != nil; sc = sc.parent {
		if !recursiveAnchor(sc.resource) {
			break
		}
		target = sc.resource
	}
	return target
}

func recursiveAnchor(s *Schema) bool {
	kw, ok := s.keyword("$recursiveAnchor")
	return ok && kw.(*identifierKeyword).v == true
}
