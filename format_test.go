// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"fmt"
	"slices"
	"testing"
)

func TestFormatCheckers(t *testing.T) {
	for _, tt := range []struct {
		format string
		good   []string
		bad    []string
	}{
		{
			"date-time",
			[]string{"2025-01-02T03:04:05Z", "2025-01-02t03:04:05.5+01:00", "1998-12-31T23:59:60Z", "1998-12-31T15:59:60-08:00"},
			[]string{"2025-01-02", "2025-13-02T03:04:05Z", "2025-01-02T03:04:60Z", "2025-01-02 03:04:05Z"},
		},
		{"date", []string{"2020-02-29"}, []string{"2021-02-29", "2020-2-1", "20200101"}},
		{"time", []string{"12:00:00Z", "23:59:60Z", "01:02:03.25+05:30"}, []string{"12:00", "25:00:00Z", "12:00:00"}},
		{"duration", []string{"P1D", "PT1H30M", "P1Y2M3DT4H5M6S", "P4W"}, []string{"P", "PT", "1D", "P1H", "P1W2D"}},
		{"email", []string{"joe@example.com", "a.b+c@x.org"}, []string{"joe", "Joe <joe@example.com>", "@x.org"}},
		{"hostname", []string{"example.com", "a-b.c", "xn--bcher-kva.example"}, []string{"-a.com", "a..b", "ab--c.com", "ex ample.com", "a_b.com"}},
		{"idn-hostname", []string{"bücher.example", "example.com"}, []string{"-bücher.example", ""}},
		{"ipv4", []string{"127.0.0.1", "0.0.0.0"}, []string{"256.0.0.1", "1.2.3", "::1", "01.2.3.4"}},
		{"ipv6", []string{"::1", "2001:db8::8a2e:370:7334"}, []string{"127.0.0.1", "::1%eth0", "1:::2"}},
		{"uri", []string{"https://example.com/a?b#c", "urn:isbn:0451450523"}, []string{"/relative", "http://exa mple.com", `c:\x`}},
		{"uri-reference", []string{"/relative", "#frag", "https://x.y"}, []string{"a b"}},
		{"uri-template", []string{"https://x/{id}", "plain"}, []string{"{open", "close}", "{{x}}"}},
		{"uuid", []string{"123e4567-e89b-12d3-a456-426614174000"}, []string{"123e4567e89b12d3a456426614174000", "123e4567-e89b-12d3-a456-42661417400g"}},
		{"regex", []string{"^a+$", "[0-9]{2}"}, []string{"(", "a{2,1}"}},
		{"json-pointer", []string{"", "/a/b", "/a~0~1"}, []string{"a", "/a~2", "/~"}},
		{"relative-json-pointer", []string{"0", "1/a", "2#"}, []string{"", "/a", "01", "-1", "1#/a"}},
		{"semver", []string{"1.2.3", "1.0.0-rc.1+build"}, []string{"1.2", "v1.2.3", "01.2.3"}},
	} {
		check, ok := formatCheckers[tt.format]
		if !ok {
			t.Errorf("no checker for %s", tt.format)
			continue
		}
		for _, s := range tt.good {
			if !check(s) {
				t.Errorf("%s: %q rejected", tt.format, s)
			}
		}
		for _, s := range tt.bad {
			if check(s) {
				t.Errorf("%s: %q accepted", tt.format, s)
			}
		}
	}
	if !slices.IsSorted(FormatNames()) || len(FormatNames()) != len(formatCheckers) {
		t.Errorf("FormatNames() = %v", FormatNames())
	}
}

func TestFormatAssertion(t *testing.T) {
	const bad = `"not-a-date"`
	s := MustParse(`{"format": "date"}`)

	// By default, format only annotates.
	res := mustEvaluate(t, s, bad, nil)
	if !res.Valid {
		t.Errorf("annotation only: wanted success, but failed with: %s", failures(res))
	}
	if got := res.Root().Annotations["format"]; got != "date" {
		t.Errorf("annotation = %v, want date", got)
	}

	if res := mustEvaluate(t, s, bad, &Options{AssertFormat: true}); res.Valid {
		t.Error("AssertFormat: succeeded but wanted failure")
	}
	if res := mustEvaluate(t, s, `"2020-01-01"`, &Options{AssertFormat: true}); !res.Valid {
		t.Errorf("AssertFormat: wanted success, but failed with: %s", failures(res))
	}
	// Formats apply only to strings.
	if res := mustEvaluate(t, s, `12`, &Options{AssertFormat: true}); !res.Valid {
		t.Errorf("non-string: wanted success, but failed with: %s", failures(res))
	}
	// Unknown formats are annotations.
	if res := mustEvaluate(t, MustParse(`{"format": "color"}`), `"x"`, &Options{AssertFormat: true}); !res.Valid {
		t.Errorf("unknown format: wanted success, but failed with: %s", failures(res))
	}
}

func TestFormatAssertionVocabulary(t *testing.T) {
	reg := NewRegistry(nil)
	meta := mustParseAt(t, "https://example.com/format-meta", fmt.Sprintf(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$vocabulary": {
			%q: true,
			%q: true,
			%q: true
		}
	}`,
		vocabularyURI(Draft202012, "core"),
		vocabularyURI(Draft202012, "validation"),
		vocabularyURI(Draft202012, "format-assertion")))
	if err := reg.Register(meta); err != nil {
		t.Fatal(err)
	}
	s := MustParse(`{"$schema": "https://example.com/format-meta", "format": "ipv4"}`)
	opts := &Options{Registry: reg}
	if res := mustEvaluate(t, s, `"1.2.3.4"`, opts); !res.Valid {
		t.Errorf("wanted success, but failed with: %s", failures(res))
	}
	if res := mustEvaluate(t, s, `"1.2.3"`, opts); res.Valid {
		t.Error("succeeded but wanted failure")
	}
}
