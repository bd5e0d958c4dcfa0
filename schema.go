// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"bytes"
	"encoding/json"
	"hash/maphash"
	"iter"
	"net/url"
	"slices"
)

// A Schema is a parsed JSON schema: either a boolean schema or an object
// holding keywords.
//
// A Schema is immutable once [Parse] returns it, so it may be used by many
// concurrent evaluations.
//
// The keywords of a schema object are kept in declaration order, and keyword
// names are unique. Keywords this package does not understand are retained,
// so that marshaling a parsed Schema reproduces its document.
type Schema struct {
	boolean  *bool
	keywords []Keyword
	byName   map[string]Keyword

	// computed fields, set during parsing

	// The document the schema belongs to.
	doc *document

	// This schema's resource: the innermost enclosing schema (possibly
	// the schema itself) that has an $id or is the document root.
	// Invariant: s.resource.resource == s.resource.
	resource *Schema

	// For a resource, the lexically enclosing resource, or nil for the
	// document root.
	parentResource *Schema

	// For a resource, its absolute base URI, without a fragment.
	// It is empty if neither the document nor the resource has a URI.
	uri *url.URL

	// The JSON Pointer from the resource to here.
	pointer string

	// For a resource, the anchors declared within it.
	anchors map[string]anchorInfo

	// For a resource, the value of its $schema keyword.
	declared string
}

// A document is the set of schemas parsed together by one call to [Parse].
type document struct {
	root *Schema
	// resources maps the base URI of each resource in the document to the resource.
	resources map[string]*Schema
}

// anchorInfo records the subschema to which an anchor refers, and whether
// the anchor keyword is $anchor or $dynamicAnchor.
type anchorInfo struct {
	schema  *Schema
	dynamic bool
}

// True returns a boolean schema that every instance satisfies.
func True() *Schema { return boolSchema(true) }

// False returns a boolean schema that no instance satisfies.
func False() *Schema { return boolSchema(false) }

func boolSchema(b bool) *Schema {
	s := &Schema{boolean: &b, uri: &url.URL{}}
	s.resource = s
	s.doc = &document{root: s, resources: map[string]*Schema{"": s}}
	return s
}

// Bool reports whether s is a boolean schema, and if so, its value.
func (s *Schema) Bool() (value, ok bool) {
	if s.boolean == nil {
		return false, false
	}
	return *s.boolean, true
}

// Keyword returns the keyword of s with the given name.
func (s *Schema) Keyword(name string) (Keyword, bool) { return s.keyword(name) }

func (s *Schema) keyword(name string) (Keyword, bool) {
	kw, ok := s.byName[name]
	return kw, ok
}

// Keywords returns the keywords of s in declaration order.
func (s *Schema) Keywords() iter.Seq[Keyword] { return slices.Values(s.keywords) }

// KeywordValue returns the JSON value of the keyword called name,
// and whether s has it.
func (s *Schema) KeywordValue(name string) (any, bool) {
	kw, ok := s.keyword(name)
	if !ok {
		return nil, false
	}
	return kw.value(), true
}

// Subschemas returns s and every schema nested under it, in preorder.
func (s *Schema) Subschemas() iter.Seq[*Schema] { return s.all() }

// ID returns the absolute base URI of the schema's resource, or the empty
// string if it has none.
func (s *Schema) ID() string {
	if u := s.baseURI(); u != nil {
		return u.String()
	}
	return ""
}

// baseURI returns the base URI of the schema's resource.
func (s *Schema) baseURI() *url.URL {
	if s.resource == nil || s.resource.uri == nil {
		return &url.URL{}
	}
	return s.resource.uri
}

// Location returns the absolute location of the schema: the URI of its
// resource with a JSON Pointer fragment.
func (s *Schema) Location() string {
	return s.baseURI().String() + "#" + s.pointer
}

// String returns a short description of the schema.
func (s *Schema) String() string {
	if s == nil {
		return "<nil schema>"
	}
	if loc := s.Location(); loc != "#" {
		return loc
	}
	return "<root schema>"
}

// Equal reports whether s and t are structurally equal: both are the same
// boolean schema, or both have the same keywords with equal values, in any order.
func (s *Schema) Equal(t *Schema) bool {
	if s == t {
		return true
	}
	if s == nil || t == nil {
		return false
	}
	sb, sok := s.Bool()
	tb, tok := t.Bool()
	if sok || tok {
		return sok && tok && sb == tb
	}
	if len(s.keywords) != len(t.keywords) {
		return false
	}
	for _, kw := range s.keywords {
		tkw, ok := t.keyword(kw.Name())
		if !ok || !kw.equal(tkw) {
			return false
		}
	}
	return true
}

// Hash returns a hash of s that agrees with [Schema.Equal]:
// equal schemas have equal hashes.
// Hashes are stable only within one process.
func (s *Schema) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	if b, ok := s.Bool(); ok {
		if b {
			h.WriteByte('T')
		} else {
			h.WriteByte('F')
		}
		return h.Sum64()
	}
	var sum uint64
	for _, kw := range s.keywords {
		sum += entryHash(kw.Name(), kw.hash)
	}
	h.WriteByte('{')
	writeUint64(&h, sum)
	return h.Sum64()
}

// MarshalJSON writes the schema's document: a boolean, or an object whose
// members are the keywords in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if b, ok := s.Bool(); ok {
		return json.Marshal(b)
	}
	ms := make(members, len(s.keywords))
	for i, kw := range s.keywords {
		ms[i] = member{kw.Name(), kw.value()}
	}
	return ms.MarshalJSON()
}

// members is a JSON object with a fixed member order.
type members []member

type member struct {
	name  string
	value any
}

func (ms members) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(m.name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedMembers returns the entries of m in the order given by names.
func orderedMembers[V any](names []string, m map[string]V) members {
	ms := make(members, len(names))
	for i, name := range names {
		ms[i] = member{name, m[name]}
	}
	return ms
}

// every applies f preorder to every schema under s including s.
// It stops when f returns false.
func (s *Schema) every(f func(*Schema) bool) bool {
	return f(s) && s.everyChild(func(s *Schema) bool { return s.every(f) })
}

// everyChild reports whether f is true for every immediate child schema of s.
func (s *Schema) everyChild(f func(*Schema) bool) bool {
	for _, kw := range s.keywords {
		if a, ok := kw.(applicator); ok {
			for c := range a.subschemas() {
				if !f(c) {
					return false
				}
			}
		}
	}
	return true
}

// all wraps every in an iterator.
func (s *Schema) all() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) { s.every(yield) }
}

// children wraps everyChild in an iterator.
func (s *Schema) children() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) { s.everyChild(yield) }
}
