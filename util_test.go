// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"encoding/json"
	"hash/maphash"
	"testing"
)

func TestEqual(t *testing.T) {
	for _, tt := range []struct {
		a, b any
		want bool
	}{
		{0, 1, false},
		{1, 1.0, true},
		{nil, 0, false},
		{"0", 0, false},
		{2.5, 2.5, true},
		{json.Number("1.0"), 1, true},
		{[]int{1, 2}, []float64{1.0, 2.0}, true},
		{[]int(nil), []int{}, false},
		{[]map[string]any(nil), []map[string]any{}, false},
		{
			map[string]any{"a": 1, "b": 2.0},
			map[string]any{"a": 1.0, "b": 2},
			true,
		},
		{
			map[string]any{"a": 1},
			map[string]any{"a": 1, "b": nil},
			false,
		},
	} {
		// Equal is reflexive and symmetric.
		for _, c := range []struct {
			x, y any
			want bool
		}{
			{tt.a, tt.a, true},
			{tt.b, tt.b, true},
			{tt.a, tt.b, tt.want},
			{tt.b, tt.a, tt.want},
		} {
			if got := Equal(c.x, c.y); got != c.want {
				t.Errorf("Equal(%#v, %#v) = %t, want %t", c.x, c.y, got, c.want)
			}
		}
	}
}

func TestJSONType(t *testing.T) {
	for _, tt := range []struct {
		val  string
		want string
	}{
		{`null`, "null"},
		{`0`, "integer"},
		{`0.0`, "integer"},
		{`1e2`, "integer"},
		{`0.1`, "number"},
		{`""`, "string"},
		{`true`, "boolean"},
		{`[]`, "array"},
		{`{}`, "object"},
	} {
		val, err := DecodeInstance([]byte(tt.val))
		if err != nil {
			t.Fatal(err)
		}
		if got := jsonType(val); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	x := map[string]any{
		"s": []any{1, "foo", nil, true},
		"f": 2.5,
		"m": map[string]any{
			"n": json.Number("123.456"),
		},
		"n": nil,
	}

	hash := func(v any) uint64 {
		var h maphash.Hash
		h.SetSeed(hashSeed)
		hashValue(&h, v)
		return h.Sum64()
	}

	want := hash(x)
	// Map iteration order varies between runs; the hash must not.
	for i := 0; i < 10; i++ {
		if got := hash(x); got != want {
			t.Fatalf("run %d: hash %d, first run %d", i, got, want)
		}
	}

	// Numerically equal values hash alike.
	nums := []any{
		5,
		uint(5),
		5.0,
		json.Number("5"),
		json.Number("5.00"),
		json.Number("0.5e1"),
	}
	for i, n := range nums {
		if i == 0 {
			want = hash(n)
		} else if got := hash(n); got != want {
			t.Errorf("hashes differ between %v (%[1]T) and %v (%[2]T)", nums[0], n)
		}
	}

	if hash([]any{1, 2}) == hash([]any{2, 1}) {
		t.Error("arrays in different orders have the same hash")
	}
}

func TestDecodeOrdered(t *testing.T) {
	v, err := decodeOrdered([]byte(`{"b": 1, "a": {"y": [true], "x": null}, "b": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	obj := v.(*object)
	if got, want := len(obj.names), 2; got != want {
		t.Fatalf("got %d names, want %d", got, want)
	}
	if obj.names[0] != "b" || obj.names[1] != "a" {
		t.Errorf("names = %q, want [b a]", obj.names)
	}
	if got := obj.values["b"]; got != json.Number("2") {
		t.Errorf("duplicate member: got %v, want the last value", got)
	}
	inner := obj.values["a"].(*object)
	if inner.names[0] != "y" {
		t.Errorf("inner names = %q", inner.names)
	}

	for _, bad := range []string{``, `{`, `{"a" 1}`, `[1,]`, `1 2`} {
		if _, err := decodeOrdered([]byte(bad)); err == nil {
			t.Errorf("%q: got nil error", bad)
		}
	}
}
