// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"bytes"
	"testing"

	other "github.com/santhosh-tekuri/jsonschema/v6"
)

// TestDifferential compares verdicts on the fixtures with an independent
// validator. Fixtures for the next draft, which it does not implement,
// and those asserting formats, where the two format libraries differ, are skipped.
func TestDifferential(t *testing.T) {
	for _, f := range loadFixtures(t) {
		if f.settings["dialect"] == "next" || f.settings["assert-format"] != "" {
			continue
		}
		t.Run(f.name, func(t *testing.T) {
			opts := f.options(t)
			draft := other.Draft2020
			switch opts.DefaultDialect {
			case Draft7:
				draft = other.Draft7
			case Draft201909:
				draft = other.Draft2019
			}

			doc, err := other.UnmarshalJSON(bytes.NewReader(f.schema))
			if err != nil {
				t.Fatal(err)
			}
			c := other.NewCompiler()
			c.DefaultDraft(draft)
			const loc = "https://fixtures.test/schema.json"
			if err := c.AddResource(loc, doc); err != nil {
				t.Fatal(err)
			}
			theirs, err := c.Compile(loc)
			if err != nil {
				t.Fatal(err)
			}
			ours, err := Parse(f.schema, opts)
			if err != nil {
				t.Fatal(err)
			}

			instances := map[string][]byte{}
			for name, data := range f.valid {
				instances["valid/"+name] = data
			}
			for name, data := range f.invalid {
				instances["invalid/"+name] = data
			}
			for _, name := range sortedKeys(instances) {
				v, err := other.UnmarshalJSON(bytes.NewReader(instances[name]))
				if err != nil {
					t.Fatalf("%s: %v", name, err)
				}
				theirErr := theirs.Validate(v)

				inst, err := DecodeInstance(instances[name])
				if err != nil {
					t.Fatalf("%s: %v", name, err)
				}
				res, err := Evaluate(ours, inst, opts)
				if err != nil {
					t.Fatalf("%s: %v", name, err)
				}
				if res.Valid != (theirErr == nil) {
					t.Errorf("%s: valid=%t, other validator says %v", name, res.Valid, theirErr)
				}
			}
		})
	}
}
