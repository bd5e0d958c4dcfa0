// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"strings"
	"testing"
)

// evalTest is one instance evaluated against a schema.
type evalTest struct {
	instance string
	valid    bool
}

func runEvalTests(t *testing.T, schema string, opts *Options, tests []evalTest) {
	t.Helper()
	s, err := Parse([]byte(schema), opts)
	if err != nil {
		t.Fatalf("%s: %v", schema, err)
	}
	for _, tt := range tests {
		inst, err := DecodeInstance([]byte(tt.instance))
		if err != nil {
			t.Fatal(err)
		}
		res, err := Evaluate(s, inst, opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.Valid != tt.valid {
			if tt.valid {
				t.Errorf("%s against %s: wanted success, but failed with: %s", tt.instance, schema, failures(res))
			} else {
				t.Errorf("%s against %s: succeeded but wanted failure", tt.instance, schema)
			}
		}
	}
}

// failures returns the error messages of a result, for test output.
func failures(res *Result) string {
	var msgs []string
	for _, u := range res.Output(Basic).Details {
		for _, kw := range sortedKeys(u.Errors) {
			msgs = append(msgs, u.InstanceLocation+" "+kw+": "+u.Errors[kw])
		}
	}
	return strings.Join(msgs, "; ")
}

func TestDependentSchemas(t *testing.T) {
	runEvalTests(t, `{"dependentSchemas": {"a": false}}`, nil, []evalTest{
		{`{}`, true},
		{`{"a": 1}`, false},
		{`{"b": 1}`, true},
		{`"a"`, true},
		{`["a"]`, true},
		{`null`, true},
	})
	runEvalTests(t, `{
		"dependentSchemas": {
			"credit_card": {"required": ["billing_address"]},
			"billing_address": {"properties": {"zip": {"type": "string"}}}
		}
	}`, nil, []evalTest{
		{`{"name": "x"}`, true},
		{`{"credit_card": 1, "billing_address": {}}`, true},
		{`{"credit_card": 1}`, false},
		{`{"billing_address": {}, "zip": 3}`, false},
		{`{"billing_address": {}, "zip": "3"}`, true},
	})
}

func TestDependentSchemasInactive(t *testing.T) {
	// dependentSchemas does not exist in draft 7.
	runEvalTests(t, `{"$schema": "http://json-schema.org/draft-07/schema#", "dependentSchemas": {"a": false}}`, nil, []evalTest{
		{`{"a": 1}`, true},
	})
}

func TestPropertyDependencies(t *testing.T) {
	const schema = `{"propertyDependencies": {"op": {"lt": {"properties": {"value": {"type": "number"}}}}}}`
	opts := &Options{DefaultDialect: DraftNext}
	runEvalTests(t, schema, opts, []evalTest{
		{`{"op": "lt", "value": 5}`, true},
		{`{"op": "lt", "value": "x"}`, false},
		{`{"op": "unknown"}`, true},
		{`{"op": 3, "value": "x"}`, true},
		{`{"value": "x"}`, true},
		{`[]`, true},
	})

	// Only the next draft has propertyDependencies.
	runEvalTests(t, schema, nil, []evalTest{
		{`{"op": "lt", "value": "x"}`, true},
	})
	runEvalTests(t, `{"$schema": "https://json-schema.org/draft/next/schema", "propertyDependencies": {"op": {"lt": false}}}`, nil, []evalTest{
		{`{"op": "lt"}`, false},
		{`{"op": "gt"}`, true},
	})
}

// The subschema applies to the whole object, not to the dependent property's
// value, so {"type": "number"} fails for any object instance. This rejects
// {"op": "lt", "value": 5}, which an example of the keyword shows as valid.
func TestPropertyDependenciesApplyToWholeInstance(t *testing.T) {
	runEvalTests(t, `{"propertyDependencies": {"op": {"lt": {"type": "number"}}}}`, &Options{DefaultDialect: DraftNext}, []evalTest{
		{`{"op": "lt", "value": 5}`, false},
		{`{"op": "gt"}`, true},
	})
}

func TestDependencyFailureReports(t *testing.T) {
	for _, tt := range []struct {
		schema   string
		instance string
		keyword  string
		message  string
		path     string
	}{
		{
			`{"dependentSchemas": {"a": true, "b": false, "c": false}}`,
			`{"a": 1, "b": 2}`,
			"dependentSchemas",
			`Dependent schemas of properties ["b"] are not satisfied`,
			"/dependentSchemas/b",
		},
		{
			`{"propertyDependencies": {"kind": {"x": {"required": ["y"]}}}}`,
			`{"kind": "x"}`,
			"propertyDependencies",
			`Dependent schemas of property values ["kind=x"] are not satisfied`,
			"/propertyDependencies/kind/x",
		},
		{
			`{"dependentRequired": {"a": ["b", "c"]}}`,
			`{"a": 1, "c": 1}`,
			"dependentRequired",
			`Properties required by other properties are missing: ["a->b"]`,
			"",
		},
	} {
		s := MustParse(tt.schema)
		inst, err := DecodeInstance([]byte(tt.instance))
		if err != nil {
			t.Fatal(err)
		}
		res, err := Evaluate(s, inst, &Options{DefaultDialect: DraftNext})
		if err != nil {
			t.Fatal(err)
		}
		root := res.Root()
		if root.Valid {
			t.Fatalf("%s: succeeded but wanted failure", tt.schema)
		}
		if got := root.Errors[tt.keyword]; got != tt.message {
			t.Errorf("%s: message\ngot  %q\nwant %q", tt.schema, got, tt.message)
		}
		if got := root.ErrorKind(tt.keyword); got != KindAssertion {
			t.Errorf("%s: kind = %v, want %v", tt.schema, got, KindAssertion)
		}
		if tt.path == "" {
			continue
		}
		found := false
		for _, d := range root.Details {
			if d.EvaluationPath == tt.path {
				found = true
				if d.Valid {
					t.Errorf("%s: node at %s is valid", tt.schema, tt.path)
				}
			}
		}
		if !found {
			t.Errorf("%s: no node at evaluation path %s", tt.schema, tt.path)
		}
	}
}

func TestDraft7Dependencies(t *testing.T) {
	runEvalTests(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"dependencies": {"a": ["b"], "c": {"required": ["d"]}}
	}`, nil, []evalTest{
		{`{}`, true},
		{`{"a": 1, "b": 1}`, true},
		{`{"a": 1}`, false},
		{`{"c": 1, "d": 1}`, true},
		{`{"c": 1}`, false},
		{`"c"`, true},
	})
}

// Fail-fast evaluation never changes the verdict.
func TestOptimizationVerdict(t *testing.T) {
	schemas := []string{
		`{"dependentSchemas": {"a": false, "b": {"required": ["c"]}}}`,
		`{"propertyDependencies": {"op": {"lt": {"required": ["v"]}, "gt": false}}}`,
		`{"allOf": [{"type": "object"}, {"required": ["a"]}, {"minProperties": 2}]}`,
		`{"anyOf": [{"required": ["a"]}, {"required": ["b"]}], "unevaluatedProperties": false}`,
		`{"oneOf": [{"required": ["a"]}, {"required": ["b"]}, true]}`,
		`{"properties": {"a": {"type": "string"}}, "additionalProperties": {"type": "integer"}}`,
		`{"items": {"type": "integer"}, "contains": {"const": 1}, "maxContains": 1, "uniqueItems": true}`,
	}
	instances := []string{
		`{}`, `{"a": 1}`, `{"a": "x", "b": 2}`, `{"op": "lt"}`, `{"op": "gt", "v": 1}`,
		`{"b": 1, "c": 2}`, `[1, 2, 1]`, `[1]`, `"s"`, `null`,
	}
	for _, schema := range schemas {
		s := MustParse(schema)
		for _, inst := range instances {
			v, err := DecodeInstance([]byte(inst))
			if err != nil {
				t.Fatal(err)
			}
			slow, err := Evaluate(s, v, &Options{DefaultDialect: DraftNext})
			if err != nil {
				t.Fatal(err)
			}
			fast, err := Evaluate(s, v, &Options{DefaultDialect: DraftNext, ApplyOptimizations: true})
			if err != nil {
				t.Fatal(err)
			}
			if slow.Valid != fast.Valid {
				t.Errorf("%s against %s: verdict %t without optimizations, %t with", inst, schema, slow.Valid, fast.Valid)
			}
		}
	}
}
