// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// A SpecVersion identifies a draft of the JSON Schema specification.
type SpecVersion int

const (
	VersionUnspecified SpecVersion = iota
	Draft6
	Draft7
	Draft201909
	Draft202012
	DraftNext
)

var versionNames = map[SpecVersion]string{
	Draft6:      "draft-06",
	Draft7:      "draft-07",
	Draft201909: "2019-09",
	Draft202012: "2020-12",
	DraftNext:   "next",
}

func (v SpecVersion) String() string {
	if n, ok := versionNames[v]; ok {
		return n
	}
	return fmt.Sprintf("SpecVersion(%d)", int(v))
}

// ParseSpecVersion parses a version name such as "2020-12", "draft-07", "7" or "next".
func ParseSpecVersion(s string) (SpecVersion, error) {
	switch strings.TrimPrefix(strings.ToLower(s), "draft") {
	case "6", "-06", "06", "-6":
		return Draft6, nil
	case "7", "-07", "07", "-7":
		return Draft7, nil
	case "2019-09", "-2019-09", "/2019-09":
		return Draft201909, nil
	case "2020-12", "-2020-12", "/2020-12":
		return Draft202012, nil
	case "next", "-next", "/next":
		return DraftNext, nil
	}
	return VersionUnspecified, fmt.Errorf("unknown JSON Schema version %q", s)
}

// MetaSchemaURI returns the URI of the version's standard meta-schema.
func (v SpecVersion) MetaSchemaURI() string {
	switch v {
	case Draft6:
		return "http://json-schema.org/draft-06/schema#"
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft201909, Draft202012, DraftNext:
		return "https://json-schema.org/draft/" + v.String() + "/schema"
	}
	return ""
}

// metaSchemaVersions maps standard meta-schema URIs, without fragment,
// to their versions.
var metaSchemaVersions = map[string]SpecVersion{}

func init() {
	for v := range versionNames {
		uri := strings.TrimSuffix(v.MetaSchemaURI(), "#")
		metaSchemaVersions[uri] = v
		if rest, ok := strings.CutPrefix(uri, "http://"); ok {
			metaSchemaVersions["https://"+rest] = v
		}
	}
}

// vocabularyURI returns the URI of the named vocabulary of a version.
// Drafts 6 and 7 have no vocabularies.
func vocabularyURI(v SpecVersion, name string) string {
	switch v {
	case Draft201909, Draft202012, DraftNext:
		return "https://json-schema.org/draft/" + v.String() + "/vocab/" + name
	}
	return ""
}

// defaultVocabularies lists the vocabularies of each version's standard meta-schema.
var defaultVocabularies = map[SpecVersion][]string{
	Draft201909: {"core", "applicator", "validation", "meta-data", "format", "content"},
	Draft202012: {"core", "applicator", "unevaluated", "validation", "meta-data", "format-annotation", "content"},
	DraftNext:   {"core", "applicator", "unevaluated", "validation", "meta-data", "format-annotation", "content"},
}

// A Dialect is the set of keywords in effect for a schema resource:
// a spec version and the vocabularies enabled for it.
type Dialect struct {
	Version SpecVersion
	// vocabularies holds the enabled vocabulary URIs.
	// If nil, the version's default vocabularies are enabled.
	vocabularies map[string]bool
}

// Vocabularies returns the sorted URIs of the dialect's vocabularies.
func (d *Dialect) Vocabularies() []string {
	if d.vocabularies == nil {
		var uris []string
		for _, name := range defaultVocabularies[d.Version] {
			uris = append(uris, vocabularyURI(d.Version, name))
		}
		slices.Sort(uris)
		return uris
	}
	return slices.Sorted(maps.Keys(d.vocabularies))
}

// hasVocabulary reports whether the named vocabulary of the dialect's version
// is enabled.
func (d *Dialect) hasVocabulary(name string) bool {
	if d.vocabularies == nil {
		return slices.Contains(defaultVocabularies[d.Version], name)
	}
	return d.vocabularies[vocabularyURI(d.Version, name)]
}

// active reports whether a keyword is in effect under d.
func (d *Dialect) active(info *keywordInfo) bool {
	vocab, ok := info.versions[d.Version]
	if !ok {
		return false
	}
	if vocab == "" || vocab == "core" {
		return true
	}
	// The format-assertion vocabulary replaces format-annotation.
	if vocab == "format-annotation" && d.hasVocabulary("format-assertion") {
		return true
	}
	return d.hasVocabulary(vocab)
}

func (d *Dialect) String() string {
	if d.vocabularies == nil {
		return d.Version.String()
	}
	return fmt.Sprintf("%s with %d vocabularies", d.Version, len(d.vocabularies))
}

// dialectFor returns the dialect of the resource res.
// The dialect comes from the override option, from the resource's $schema,
// from the lexically enclosing resource, or from the default option, in that order.
func (st *state) dialectFor(res *Schema) (*Dialect, error) {
	if d, ok := st.dialects[res]; ok {
		return d, nil
	}
	d, err := st.computeDialect(res, 0)
	if err != nil {
		return nil, err
	}
	st.dialects[res] = d
	return d, nil
}

func (st *state) computeDialect(res *Schema, depth int) (*Dialect, error) {
	if v := st.opts.dialectOverride(); v != VersionUnspecified {
		return &Dialect{Version: v}, nil
	}
	if res.declared == "" {
		if res.parentResource != nil {
			return st.dialectFor(res.parentResource)
		}
		return &Dialect{Version: st.opts.defaultDialect()}, nil
	}
	uri := strings.TrimSuffix(res.declared, "#")
	if v, ok := metaSchemaVersions[uri]; ok {
		return &Dialect{Version: v}, nil
	}
	// A custom meta-schema: its $vocabulary lists the enabled vocabularies,
	// and its own $schema determines the version.
	if depth > 10 {
		return nil, fmt.Errorf("meta-schema chain too long at %s", uri)
	}
	meta, err := st.lookup(res.doc, uri)
	if err != nil {
		return nil, fmt.Errorf("unknown meta-schema %s: %w", uri, err)
	}
	if meta == res {
		return &Dialect{Version: st.opts.defaultDialect()}, nil
	}
	base, err := st.computeDialect(meta.resource, depth+1)
	if err != nil {
		return nil, err
	}
	kw, ok := meta.keyword("$vocabulary")
	if !ok {
		return base, nil
	}
	d := &Dialect{Version: base.Version, vocabularies: map[string]bool{}}
	for uri := range kw.(*vocabularyKeyword).vocabs {
		d.vocabularies[uri] = true
	}
	d.vocabularies[vocabularyURI(d.Version, "core")] = true
	return d, nil
}
