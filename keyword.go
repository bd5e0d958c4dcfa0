// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"cmp"
	"hash/maphash"
	"iter"
	"slices"
	"strconv"
)

// A Keyword is one member of a schema object, parsed according to its name.
//
// The set of keywords is closed: every keyword this package understands
// has an entry in a static table that gives its priority, the drafts and
// vocabularies in which it is active, and how to parse its value.
// Keywords the table does not know are kept verbatim and always pass.
//
// Keywords are immutable. Two keywords are equal when they have the same
// name and structurally equal values; maps of subschemas compare without
// regard to declaration order.
type Keyword interface {
	// Name returns the keyword's name, as it appears in the schema.
	Name() string

	evaluate(*Context)
	equal(Keyword) bool
	hash(*maphash.Hash)
	// value returns the JSON value of the keyword, for marshaling.
	value() any
}

// An applicator is a keyword that owns subschemas.
type applicator interface {
	subschemas() iter.Seq[*Schema]
}

// A subschemaFinder locates one of its subschemas from the JSON Pointer
// segments that follow the keyword name. It returns the schema and the
// number of segments consumed, or nil if there is no such subschema.
type subschemaFinder interface {
	findSubschema(segments []string) (*Schema, int)
}

// keywordInfo is the static description of a keyword.
type keywordInfo struct {
	name string
	// Keywords run in ascending priority order; ties keep declaration order.
	priority int
	// versions maps each version in which the keyword is active to the
	// vocabulary that defines it ("" for drafts without vocabularies).
	versions map[SpecVersion]string
	parse    func(p *parser, v any, loc position) (Keyword, error)
}

// keywordTable holds every keyword this package understands.
// It is populated by init and read-only afterwards.
var keywordTable = map[string]*keywordInfo{}

func registerKeywords(infos ...*keywordInfo) {
	for _, info := range infos {
		assert(keywordTable[info.name] == nil, "duplicate keyword "+info.name)
		keywordTable[info.name] = info
	}
}

// Keyword priorities.
const (
	priorityIdentifier  = -10
	priorityDefault     = 0
	priorityDependent   = 10
	priorityUnevaluated = 30
)

// since returns the activation set for a keyword introduced in version
// from, defined by the given vocabulary in drafts that have them.
func since(from SpecVersion, vocab string) map[SpecVersion]string {
	m := map[SpecVersion]string{}
	for v := from; v <= DraftNext; v++ {
		if v < Draft201909 {
			m[v] = ""
		} else {
			m[v] = vocab
		}
	}
	return m
}

// between is like since, but the keyword was removed after version to.
func between(from, to SpecVersion, vocab string) map[SpecVersion]string {
	m := since(from, vocab)
	for v := to + 1; v <= DraftNext; v++ {
		delete(m, v)
	}
	return m
}

// withVocab sets the vocabulary of version v in m and returns m.
func withVocab(m map[SpecVersion]string, v SpecVersion, vocab string) map[SpecVersion]string {
	m[v] = vocab
	return m
}

// applicableKeywords returns the keywords of s that are active under d,
// in evaluation order.
func applicableKeywords(s *Schema, d *Dialect) []Keyword {
	// In drafts 6 and 7, $ref overrides its siblings.
	if d.Version <= Draft7 {
		if ref, ok := s.keyword("$ref"); ok {
			return []Keyword{ref}
		}
	}
	kws := make([]Keyword, 0, len(s.keywords))
	for _, kw := range s.keywords {
		if info := keywordTable[kw.Name()]; info != nil && d.active(info) {
			kws = append(kws, kw)
		} else if info == nil {
			kws = append(kws, kw) // unknown keywords are kept and always pass
		}
	}
	slices.SortStableFunc(kws, func(a, b Keyword) int {
		return cmp.Compare(priorityOf(a), priorityOf(b))
	})
	return kws
}

func priorityOf(kw Keyword) int {
	if info := keywordTable[kw.Name()]; info != nil {
		return info.priority
	}
	return priorityDefault
}

// Payloads shared by several keywords.

// schemaOne is the value of a keyword that holds a single subschema.
type schemaOne struct {
	name   string
	schema *Schema
}

func (k *schemaOne) Name() string { return k.name }

func (k *schemaOne) one() *schemaOne { return k }

func (k *schemaOne) equal(o Keyword) bool {
	ok, is := o.(interface{ one() *schemaOne })
	return is && o.Name() == k.name && k.schema.Equal(ok.one().schema)
}

func (k *schemaOne) hash(h *maphash.Hash) { writeUint64(h, k.schema.Hash()) }

func (k *schemaOne) value() any { return k.schema }

func (k *schemaOne) subschemas() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) { yield(k.schema) }
}

func (k *schemaOne) findSubschema([]string) (*Schema, int) { return k.schema, 0 }

// schemaList is the value of a keyword that holds an array of subschemas.
type schemaList struct {
	name    string
	schemas []*Schema
}

func (k *schemaList) Name() string { return k.name }

func (k *schemaList) list() *schemaList { return k }

func (k *schemaList) equal(o Keyword) bool {
	ol, is := o.(interface{ list() *schemaList })
	return is && o.Name() == k.name && slices.EqualFunc(k.schemas, ol.list().schemas, (*Schema).Equal)
}

func (k *schemaList) hash(h *maphash.Hash) {
	writeInt(h, len(k.schemas))
	for _, s := range k.schemas {
		writeUint64(h, s.Hash())
	}
}

func (k *schemaList) value() any { return k.schemas }

func (k *schemaList) subschemas() iter.Seq[*Schema] { return slices.Values(k.schemas) }

func (k *schemaList) findSubschema(segments []string) (*Schema, int) {
	if len(segments) == 0 {
		return nil, 0
	}
	i, ok := indexSegment(segments[0], len(k.schemas))
	if !ok {
		return nil, 0
	}
	return k.schemas[i], 1
}

// schemaMap is the value of a keyword that maps names to subschemas.
// Evaluation follows declaration order; equality ignores it.
type schemaMap struct {
	name    string
	names   []string
	schemas map[string]*Schema
}

func (k *schemaMap) Name() string { return k.name }

func (k *schemaMap) smap() *schemaMap { return k }

func (k *schemaMap) equal(o Keyword) bool {
	om, is := o.(interface{ smap() *schemaMap })
	return is && o.Name() == k.name && equalSchemaMaps(k.schemas, om.smap().schemas)
}

func (k *schemaMap) hash(h *maphash.Hash) { hashSchemaMap(h, k.schemas) }

func (k *schemaMap) value() any { return orderedMembers(k.names, k.schemas) }

func (k *schemaMap) subschemas() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		for _, name := range k.names {
			if !yield(k.schemas[name]) {
				return
			}
		}
	}
}

func (k *schemaMap) findSubschema(segments []string) (*Schema, int) {
	if len(segments) == 0 {
		return nil, 0
	}
	if s, ok := k.schemas[segments[0]]; ok {
		return s, 1
	}
	return nil, 0
}

func equalSchemaMaps(x, y map[string]*Schema) bool {
	if len(x) != len(y) {
		return false
	}
	for name, xs := range x {
		ys, ok := y[name]
		if !ok || !xs.Equal(ys) {
			return false
		}
	}
	return true
}

func hashSchemaMap(h *maphash.Hash, m map[string]*Schema) {
	var sum uint64
	for name, s := range m {
		sum += entryHash(name, func(h *maphash.Hash) { writeUint64(h, s.Hash()) })
	}
	writeUint64(h, sum)
}

// indexSegment parses a JSON Pointer segment as an index into an array of length n.
func indexSegment(seg string, n int) (int, bool) {
	if len(seg) > 1 && seg[0] == '0' {
		return 0, false // leading zeroes are not allowed
	}
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
