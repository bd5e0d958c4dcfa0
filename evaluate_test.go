// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"bufio"
	"bytes"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// A fixture is one schema and the instances it accepts and rejects,
// read from a txtar archive in testdata.
//
// An archive holds files named schema.json, valid/NAME.json and
// invalid/NAME.json, optionally under a directory naming the case.
// The archive comment may set options, one per line:
//
//	dialect: 2019-09
//	assert-format: true
type fixture struct {
	name     string
	schema   []byte
	valid    map[string][]byte
	invalid  map[string][]byte
	settings map[string]string
}

func loadFixtures(t *testing.T) []*fixture {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures")
	}
	var fixtures []*fixture
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatal(err)
		}
		opts := map[string]string{}
		sc := bufio.NewScanner(bytes.NewReader(ar.Comment))
		for sc.Scan() {
			if k, v, ok := strings.Cut(sc.Text(), ":"); ok {
				opts[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
		}
		byCase := map[string]*fixture{}
		get := func(dir string) *fixture {
			name := strings.TrimSuffix(filepath.Base(file), ".txtar")
			if dir != "." {
				name += "/" + dir
			}
			f := byCase[dir]
			if f == nil {
				f = &fixture{name: name, valid: map[string][]byte{}, invalid: map[string][]byte{}, settings: opts}
				byCase[dir] = f
			}
			return f
		}
		for _, af := range ar.Files {
			if path.Base(af.Name) == "schema.json" {
				get(path.Dir(af.Name)).schema = af.Data
				continue
			}
			dir := path.Dir(af.Name)
			f := get(path.Dir(dir))
			name := strings.TrimSuffix(path.Base(af.Name), ".json")
			switch path.Base(dir) {
			case "valid":
				f.valid[name] = af.Data
			case "invalid":
				f.invalid[name] = af.Data
			default:
				t.Fatalf("%s: unexpected file %s", file, af.Name)
			}
		}
		for _, f := range byCase {
			if f.schema == nil {
				t.Fatalf("%s: no schema", f.name)
			}
			fixtures = append(fixtures, f)
		}
	}
	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].name < fixtures[j].name })
	return fixtures
}

func (f *fixture) options(t *testing.T) *Options {
	opts := &Options{}
	if d, ok := f.settings["dialect"]; ok {
		v, err := ParseSpecVersion(d)
		if err != nil {
			t.Fatalf("%s: %v", f.name, err)
		}
		opts.DefaultDialect = v
	}
	if a, ok := f.settings["assert-format"]; ok {
		b, err := strconv.ParseBool(a)
		if err != nil {
			t.Fatalf("%s: %v", f.name, err)
		}
		opts.AssertFormat = b
	}
	return opts
}

func TestFixtures(t *testing.T) {
	for _, f := range loadFixtures(t) {
		t.Run(f.name, func(t *testing.T) {
			opts := f.options(t)
			s, err := Parse(f.schema, opts)
			if err != nil {
				t.Fatal(err)
			}
			check := func(name string, data []byte, want bool) {
				t.Helper()
				inst, err := DecodeInstance(data)
				if err != nil {
					t.Fatalf("%s: %v", name, err)
				}
				for _, fast := range []bool{false, true} {
					o := *opts
					o.ApplyOptimizations = fast
					res, err := Evaluate(s, inst, &o)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if res.Valid == want {
						continue
					}
					if want {
						t.Errorf("%s (fast=%t): wanted success, but failed with: %s", name, fast, failures(res))
					} else {
						t.Errorf("%s (fast=%t): succeeded but wanted failure", name, fast)
					}
				}
			}
			for _, name := range sortedKeys(f.valid) {
				check("valid/"+name, f.valid[name], true)
			}
			for _, name := range sortedKeys(f.invalid) {
				check("invalid/"+name, f.invalid[name], false)
			}
		})
	}
}

// Keywords that do not apply to an instance's type behave as if absent.
func TestAbsenceEquivalence(t *testing.T) {
	keywords := map[string]string{
		"object": `"properties": {"a": false}, "required": ["a"], "minProperties": 3, "additionalProperties": false, "dependentSchemas": {"a": false}, "propertyNames": false`,
		"array":  `"items": false, "prefixItems": [false], "minItems": 3, "contains": false, "uniqueItems": true`,
		"string": `"minLength": 10, "pattern": "^x$", "format": "email"`,
		"number": `"minimum": 100, "multipleOf": 7, "exclusiveMaximum": -5`,
	}
	instances := map[string][]string{
		"object": {`{}`, `{"b": 1}`},
		"array":  {`[]`, `[1, 1]`},
		"string": {`""`, `"abc"`},
		"number": {`1`, `2.5`},
		"other":  {`null`, `true`},
	}
	for kind, kws := range keywords {
		with := MustParse(`{"title": "t", ` + kws + `}`)
		without := MustParse(`{"title": "t"}`)
		for instKind, insts := range instances {
			if instKind == kind {
				continue
			}
			for _, inst := range insts {
				opts := &Options{AssertFormat: true}
				r1 := mustEvaluate(t, with, inst, opts)
				r2 := mustEvaluate(t, without, inst, opts)
				if r1.Valid != r2.Valid {
					t.Errorf("%s keywords on %s: valid=%t with, %t without", kind, inst, r1.Valid, r2.Valid)
				}
			}
		}
	}
}
