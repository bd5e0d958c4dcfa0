// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseSpecVersion(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want SpecVersion
	}{
		{"6", Draft6},
		{"draft-06", Draft6},
		{"draft7", Draft7},
		{"Draft-07", Draft7},
		{"2019-09", Draft201909},
		{"draft/2020-12", Draft202012},
		{"2020-12", Draft202012},
		{"next", DraftNext},
	} {
		got, err := ParseSpecVersion(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSpecVersion(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "4", "2021-01"} {
		if _, err := ParseSpecVersion(bad); err == nil {
			t.Errorf("ParseSpecVersion(%q): got nil error", bad)
		}
	}
	for v := range versionNames {
		if got := metaSchemaVersions[strings.TrimSuffix(v.MetaSchemaURI(), "#")]; got != v {
			t.Errorf("meta-schema of %s maps to %s", v, got)
		}
	}
}

func TestKeywordActivation(t *testing.T) {
	const (
		d7   = `"$schema": "http://json-schema.org/draft-07/schema#"`
		d19  = `"$schema": "https://json-schema.org/draft/2019-09/schema"`
		d20  = `"$schema": "https://json-schema.org/draft/2020-12/schema"`
		next = `"$schema": "https://json-schema.org/draft/next/schema"`
	)
	for _, tt := range []struct {
		schema   string
		instance string
		valid    bool
	}{
		// $ref overrides its siblings in draft 7 only.
		{`{` + d7 + `, "definitions": {"a": true}, "$ref": "#/definitions/a", "type": "string"}`, `1`, true},
		{`{` + d19 + `, "$defs": {"a": true}, "$ref": "#/$defs/a", "type": "string"}`, `1`, false},
		{`{` + d20 + `, "$defs": {"a": true}, "$ref": "#/$defs/a", "type": "string"}`, `1`, false},
		// prefixItems arrived in 2020-12; array-form items left.
		{`{` + d19 + `, "prefixItems": [false]}`, `[1]`, true},
		{`{` + d20 + `, "prefixItems": [false]}`, `[1]`, false},
		{`{` + d19 + `, "items": [{"type": "string"}], "additionalItems": false}`, `["a", 1]`, false},
		{`{` + d19 + `, "items": [{"type": "string"}]}`, `["a", 1]`, true},
		// if/then/else arrived in draft 7.
		{`{"$schema": "http://json-schema.org/draft-06/schema#", "if": false, "else": false}`, `1`, true},
		{`{` + d7 + `, "if": false, "else": false}`, `1`, false},
		// contains annotations count toward unevaluatedItems from 2020-12.
		{`{` + d20 + `, "contains": {"type": "string"}, "unevaluatedItems": false}`, `["a", "b"]`, true},
		{`{` + d20 + `, "contains": {"type": "string"}, "unevaluatedItems": false}`, `["a", 1]`, false},
		{`{` + d19 + `, "contains": {"type": "string"}, "unevaluatedItems": false}`, `["a"]`, false},
		// minContains and maxContains arrived in 2019-09.
		{`{` + d7 + `, "contains": {"type": "string"}, "maxContains": 1}`, `["a", "b"]`, true},
		{`{` + d19 + `, "contains": {"type": "string"}, "maxContains": 1}`, `["a", "b"]`, false},
		{`{` + d19 + `, "contains": {"type": "string"}, "minContains": 0}`, `[1]`, true},
		// propertyDependencies exists only in the next draft.
		{`{` + d20 + `, "propertyDependencies": {"a": {"b": false}}}`, `{"a": "b"}`, true},
		{`{` + next + `, "propertyDependencies": {"a": {"b": false}}}`, `{"a": "b"}`, false},
		// $dynamicRef without a matching $dynamicAnchor is an ordinary reference.
		{`{` + d20 + `, "$defs": {"s": {"type": "string"}}, "$dynamicRef": "#/$defs/s"}`, `1`, false},
	} {
		s := MustParse(tt.schema)
		res := mustEvaluate(t, s, tt.instance, nil)
		if res.Valid != tt.valid {
			t.Errorf("%s against %s: got valid=%t, want %t (%s)", tt.instance, tt.schema, res.Valid, tt.valid, failures(res))
		}
	}
}

func TestDialectOptions(t *testing.T) {
	s := MustParse(`{"$schema": "http://json-schema.org/draft-07/schema#", "$ref": "#/definitions/a", "definitions": {"a": true}, "type": "string"}`)
	if res := mustEvaluate(t, s, `1`, nil); !res.Valid {
		t.Errorf("declared draft 7: wanted success, but failed with: %s", failures(res))
	}
	if res := mustEvaluate(t, s, `1`, &Options{DialectOverride: Draft202012}); res.Valid {
		t.Error("overridden to 2020-12: succeeded but wanted failure")
	}

	undeclared := MustParse(`{"prefixItems": [false]}`)
	for _, tt := range []struct {
		def   SpecVersion
		valid bool
	}{
		{VersionUnspecified, false},
		{Draft201909, true},
		{Draft202012, false},
	} {
		if res := mustEvaluate(t, undeclared, `[1]`, &Options{DefaultDialect: tt.def}); res.Valid != tt.valid {
			t.Errorf("default %s: got valid=%t, want %t", tt.def, res.Valid, tt.valid)
		}
	}
}

func TestNestedResourceDialects(t *testing.T) {
	s := MustParse(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"properties": {
			"inherit": {"$id": "https://example.com/inherit", "prefixItems": [false]},
			"old": {
				"$id": "https://example.com/old",
				"$schema": "https://json-schema.org/draft/2019-09/schema",
				"prefixItems": [false]
			}
		}
	}`)
	if res := mustEvaluate(t, s, `{"inherit": [1]}`, nil); res.Valid {
		t.Error("inherited dialect: succeeded but wanted failure")
	}
	if res := mustEvaluate(t, s, `{"old": [1]}`, nil); !res.Valid {
		t.Errorf("declared dialect: wanted success, but failed with: %s", failures(res))
	}
}

func TestCustomVocabularies(t *testing.T) {
	reg := NewRegistry(nil)
	meta := mustParseAt(t, "https://example.com/validation-only", fmt.Sprintf(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$vocabulary": {%q: true, %q: true}
	}`, vocabularyURI(Draft202012, "core"), vocabularyURI(Draft202012, "validation")))
	if err := reg.Register(meta); err != nil {
		t.Fatal(err)
	}
	s := MustParse(`{
		"$schema": "https://example.com/validation-only",
		"properties": {"a": false},
		"required": ["b"]
	}`)
	opts := &Options{Registry: reg}
	// properties is in the applicator vocabulary, which is not enabled.
	if res := mustEvaluate(t, s, `{"a": 1, "b": 2}`, opts); !res.Valid {
		t.Errorf("wanted success, but failed with: %s", failures(res))
	}
	if res := mustEvaluate(t, s, `{"a": 1}`, opts); res.Valid {
		t.Error("succeeded but wanted failure")
	}

	st := &state{opts: opts, registry: reg, dialects: map[*Schema]*Dialect{}}
	d, err := st.dialectFor(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Vocabularies(); len(got) != 2 {
		t.Errorf("Vocabularies() = %v, want core and validation", got)
	}
}

func TestUnknownDialect(t *testing.T) {
	s := MustParse(`{"$schema": "https://example.com/no-such-meta-schema", "type": "string"}`)
	res := mustEvaluate(t, s, `"x"`, nil)
	if res.Valid {
		t.Fatal("succeeded but wanted failure")
	}
	if got := res.Root().ErrorKind("$schema"); got != KindReference {
		t.Errorf("kind = %v, want %v", got, KindReference)
	}
	if msg := res.Root().Errors["$schema"]; !strings.Contains(msg, "no-such-meta-schema") {
		t.Errorf("message %q does not name the meta-schema", msg)
	}
}
