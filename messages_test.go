// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

func TestRenderMessage(t *testing.T) {
	for _, tt := range []struct {
		tmpl   string
		params map[string]any
		want   string
	}{
		{"no tokens", nil, "no tokens"},
		{"[[a]]", map[string]any{"a": 1}, "1"},
		{"x [[a]] y [[b]]", map[string]any{"a": "s", "b": []string{"p", "q"}}, `x "s" y ["p","q"]`},
		{"[[missing]] stays", map[string]any{}, "[[missing]] stays"},
		{"[[a->b]]", map[string]any{"a->b": 1}, "[[a->b]]"},
		{"[[a]]", map[string]any{"a": []string{"a->b", "<&>"}}, `["a->b","<&>"]`},
		{"[[a]]", map[string]any{"a": nil}, "null"},
		{"[[ a ]]", map[string]any{"a": 1}, "[[ a ]]"},
	} {
		if got := renderMessage(tt.tmpl, tt.params); got != tt.want {
			t.Errorf("renderMessage(%q, %v) = %q, want %q", tt.tmpl, tt.params, got, tt.want)
		}
	}
}

func TestDefaultMessages(t *testing.T) {
	// Every keyword that can fail has a message.
	for name := range keywordTable {
		switch name {
		case "$id", "$schema", "$anchor", "$dynamicAnchor", "$recursiveAnchor", "$comment",
			"$vocabulary", "$defs", "definitions", "if", "minContains",
			"title", "description", "default", "examples", "readOnly", "writeOnly",
			"deprecated", "contentEncoding", "contentMediaType", "contentSchema":
			continue
		}
		if _, ok := defaultMessages[name]; !ok {
			t.Errorf("no message for %s", name)
		}
	}
	st := &state{}
	for key, tmpl := range defaultMessages {
		if got := st.message(key, nil); got != tmpl {
			t.Errorf("message(%q) = %q, want %q", key, got, tmpl)
		}
	}
}

func TestSetMessage(t *testing.T) {
	SetMessage("minimum", "too small: [[received]] < [[limit]]")
	t.Cleanup(func() { SetMessage("minimum", "") })

	res := mustEvaluate(t, MustParse(`{"minimum": 2}`), `1`, nil)
	if got, want := res.Root().Errors["minimum"], "too small: 1 < 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	SetMessage("minimum", "")
	res = mustEvaluate(t, MustParse(`{"minimum": 2}`), `1`, nil)
	if got, want := res.Root().Errors["minimum"], "1 is less than 2"; got != want {
		t.Errorf("after reset: got %q, want %q", got, want)
	}
}

func TestMessageCatalog(t *testing.T) {
	b := catalog.NewBuilder()
	if err := b.SetString(language.French, "required", "Propriétés manquantes : [[missing]]"); err != nil {
		t.Fatal(err)
	}
	opts := &Options{Language: language.French, Catalog: b}
	res := mustEvaluate(t, MustParse(`{"required": ["a", "b"]}`), `{"b": 1}`, opts)
	if got, want := res.Root().Errors["required"], `Propriétés manquantes : ["a"]`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
