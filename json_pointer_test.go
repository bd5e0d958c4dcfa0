// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"slices"
	"strings"
	"testing"
)

func TestDereferenceJSONPointer(t *testing.T) {
	s := MustParse(`{
		"allOf": [{}, {"type": "string"}],
		"$defs": {
			"": {"properties": {"": {"title": "empty"}}},
			"A": {"title": "A"},
			"B": {"$defs": {"X": {"title": "X"}, "Y": true}},
			"/~": {"title": "slash tilde"},
			"~1": {"title": "tilde one"}
		},
		"items": {"title": "items"},
		"propertyDependencies": {"op": {"lt": {"title": "lt"}}}
	}`)

	defs := func(name string) *Schema {
		kw, _ := s.keyword("$defs")
		return kw.(*definitionsKeyword).schemas[name]
	}
	sub := func(parent *Schema, kwName string, segs ...string) *Schema {
		kw, _ := parent.keyword(kwName)
		got, _ := kw.(subschemaFinder).findSubschema(segs)
		return got
	}

	for _, tt := range []struct {
		ptr  string
		want *Schema
	}{
		{"", s},
		{"/$defs/A", defs("A")},
		{"/$defs/B", defs("B")},
		{"/$defs/B/$defs/X", sub(defs("B"), "$defs", "X")},
		{"/$defs/B/$defs/Y", sub(defs("B"), "$defs", "Y")},
		{"/$defs//properties/", sub(defs(""), "properties", "")},
		{"/allOf/1", sub(s, "allOf", "1")},
		{"/$defs/~1~0", defs("/~")},
		{"/$defs/~01", defs("~1")},
		{"/items", sub(s, "items")},
		{"/propertyDependencies/op/lt", sub(s, "propertyDependencies", "op", "lt")},
	} {
		got, err := dereferenceJSONPointer(s, tt.ptr)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got != tt.want {
			t.Errorf("%s:\ngot  %v\nwant %v", tt.ptr, got, tt.want)
		}
	}
}

func TestDereferenceJSONPointerErrors(t *testing.T) {
	s := MustParse(`{
		"type": "string",
		"items": {},
		"required": ["a"],
		"allOf": [{}],
		"$defs": {"t": true}
	}`)
	for _, tt := range []struct {
		ptr  string
		want string // error must contain this string
	}{
		{"x", "does not begin"}, // parse error: no initial '/'
		{"/minItems", "no keyword"},
		{"/required/0", "does not hold schemas"},
		{"/allOf/01", "no subschema"},
		{"/allOf/1", "no subschema"},
		{"/allOf/x", "no subschema"},
		{"/allOf", "no subschema"},
		{"/$defs/x", "no subschema"},
		{"/$defs/t/type", "boolean schema"},
	} {
		_, err := dereferenceJSONPointer(s, tt.ptr)
		if err == nil {
			t.Errorf("%q: succeeded, want failure", tt.ptr)
		} else if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: error is %q, which does not contain %q", tt.ptr, err, tt.want)
		}
	}
}

func TestAppendPointer(t *testing.T) {
	for _, tt := range []struct {
		base string
		segs []string
		want string
	}{
		{"", nil, ""},
		{"", []string{"a"}, "/a"},
		{"/a", []string{"b/c", "~d"}, "/a/b~1c/~0d"},
		{"", []string{""}, "/"},
	} {
		if got := appendPointer(tt.base, tt.segs...); got != tt.want {
			t.Errorf("appendPointer(%q, %q) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
		segs, err := splitPointer(tt.want)
		if err != nil {
			t.Fatal(err)
		}
		if tt.base == "" && !slices.Equal(segs, tt.segs) {
			t.Errorf("splitPointer(%q) = %q, want %q", tt.want, segs, tt.segs)
		}
	}
}
