// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keywords that apply schemas or requirements conditionally on the
// presence or value of a property.

package jsonschema

import (
	"fmt"
	"hash/maphash"
	"iter"
	"slices"
)

func init() {
	registerKeywords(
		&keywordInfo{name: "dependentSchemas", priority: priorityDependent, versions: since(Draft201909, "applicator"), parse: parseDependentSchemas},
		&keywordInfo{name: "propertyDependencies", priority: priorityDependent, versions: between(DraftNext, DraftNext, "applicator"), parse: parsePropertyDependencies},
		&keywordInfo{name: "dependentRequired", versions: since(Draft201909, "validation"), parse: parseDependentRequired},
		&keywordInfo{name: "dependencies", priority: priorityDependent, versions: between(Draft6, Draft7, ""), parse: parseDependencies},
	)
}

// dependentSchemasKeyword applies a schema to an object that has a given property.
type dependentSchemasKeyword struct{ schemaMap }

func parseDependentSchemas(p *parser, v any, loc position) (Keyword, error) {
	m, err := p.schemaMap("dependentSchemas", v, loc)
	if err != nil {
		return nil, err
	}
	return &dependentSchemasKeyword{m}, nil
}

func (k *dependentSchemasKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var failed []string
	for _, name := range k.names {
		if _, ok := obj[name]; !ok {
			c.trace("dependent property absent", "property", name)
			continue
		}
		if !c.evaluate(k.schemas[name], name).Valid {
			failed = append(failed, name)
			if c.fast() {
				break
			}
		}
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

// A PropertyDependency maps the string values of one property to the
// schemas that apply when the property has that value.
type PropertyDependency struct {
	values  []string
	schemas map[string]*Schema
}

// Schema returns the schema for the given value of the property.
func (d *PropertyDependency) Schema(value string) (*Schema, bool) {
	s, ok := d.schemas[value]
	return s, ok
}

// propertyDependenciesKeyword applies a schema to an object whose property
// has a given string value.
type propertyDependenciesKeyword struct {
	names []string
	deps  map[string]*PropertyDependency
}

func parsePropertyDependencies(p *parser, v any, loc position) (Keyword, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, p.errorf(loc, "propertyDependencies", "an object of objects of schemas", fmt.Errorf("got %s", describe(v)))
	}
	k := &propertyDependenciesKeyword{names: obj.names, deps: map[string]*PropertyDependency{}}
	for _, name := range obj.names {
		m, err := p.schemaMap("propertyDependencies", obj.values[name], loc.child(name))
		if err != nil {
			return nil, err
		}
		k.deps[name] = &PropertyDependency{values: m.names, schemas: m.schemas}
	}
	return k, nil
}

func (k *propertyDependenciesKeyword) Name() string { return "propertyDependencies" }

// Dependency returns the dependency declared for the named property.
func (k *propertyDependenciesKeyword) Dependency(name string) (*PropertyDependency, bool) {
	d, ok := k.deps[name]
	return d, ok
}

func (k *propertyDependenciesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var failed []string
	for _, name := range k.names {
		v, ok := obj[name]
		if !ok {
			c.trace("dependent property absent", "property", name)
			continue
		}
		str, ok := v.(string)
		if !ok {
			c.trace("dependent property is not a string", "property", name)
			continue
		}
		s, ok := k.deps[name].schemas[str]
		if !ok {
			c.trace("no dependency for value", "property", name, "value", str)
			continue
		}
		if !c.evaluate(s, name, str).Valid {
			failed = append(failed, name+"="+str)
			if c.fast() {
				break
			}
		}
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

func (k *propertyDependenciesKeyword) equal(o Keyword) bool {
	ok, is := o.(*propertyDependenciesKeyword)
	if !is || len(ok.deps) != len(k.deps) {
		return false
	}
	for name, d := range k.deps {
		od, found := ok.deps[name]
		if !found || !equalSchemaMaps(d.schemas, od.schemas) {
			return false
		}
	}
	return true
}

func (k *propertyDependenciesKeyword) hash(h *maphash.Hash) {
	var sum uint64
	for name, d := range k.deps {
		sum += entryHash(name, func(h *maphash.Hash) { hashSchemaMap(h, d.schemas) })
	}
	writeUint64(h, sum)
}

func (k *propertyDependenciesKeyword) value() any {
	ms := make(members, len(k.names))
	for i, name := range k.names {
		d := k.deps[name]
		ms[i] = member{name, orderedMembers(d.values, d.schemas)}
	}
	return ms
}

func (k *propertyDependenciesKeyword) subschemas() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		for _, name := range k.names {
			d := k.deps[name]
			for _, v := range d.values {
				if !yield(d.schemas[v]) {
					return
				}
			}
		}
	}
}

// findSubschema consumes two segments: a property name and a value.
func (k *propertyDependenciesKeyword) findSubschema(segments []string) (*Schema, int) {
	if len(segments) < 2 {
		return nil, 0
	}
	d, ok := k.deps[segments[0]]
	if !ok {
		return nil, 0
	}
	s, ok := d.schemas[segments[1]]
	if !ok {
		return nil, 0
	}
	return s, 2
}

// dependentRequiredKeyword requires properties of an object that has a
// given property.
type dependentRequiredKeyword struct {
	names    []string
	required map[string][]string
}

func parseDependentRequired(p *parser, v any, loc position) (Keyword, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, p.errorf(loc, "dependentRequired", "an object of string arrays", fmt.Errorf("got %s", describe(v)))
	}
	k := &dependentRequiredKeyword{names: obj.names, required: map[string][]string{}}
	for _, name := range obj.names {
		strs, err := p.strings("dependentRequired", obj.values[name], loc.child(name))
		if err != nil {
			return nil, err
		}
		k.required[name] = strs
	}
	return k, nil
}

func (k *dependentRequiredKeyword) Name() string { return "dependentRequired" }
func (k *dependentRequiredKeyword) value() any   { return orderedMembers(k.names, k.required) }

func (k *dependentRequiredKeyword) equal(o Keyword) bool {
	ok, is := o.(*dependentRequiredKeyword)
	return is && equalStringLists(k.required, ok.required)
}

func (k *dependentRequiredKeyword) hash(h *maphash.Hash) { hashStringLists(h, k.required) }

func (k *dependentRequiredKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	if missing := missingDependents(obj, k.names, k.required); len(missing) > 0 {
		c.fail("missing", missing)
	}
}

// missingDependents returns, for each property of obj in names, the
// properties it requires that obj lacks, as "property->required" pairs.
func missingDependents(obj map[string]any, names []string, required map[string][]string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := obj[name]; !ok {
			continue
		}
		for _, r := range required[name] {
			if _, ok := obj[r]; !ok {
				missing = append(missing, name+"->"+r)
			}
		}
	}
	return missing
}

func equalStringLists(x, y map[string][]string) bool {
	if len(x) != len(y) {
		return false
	}
	for name, xs := range x {
		ys, ok := y[name]
		if !ok || !slices.Equal(xs, ys) {
			return false
		}
	}
	return true
}

func hashStringLists(h *maphash.Hash, m map[string][]string) {
	var sum uint64
	for name, strs := range m {
		sum += entryHash(name, func(h *maphash.Hash) {
			writeInt(h, len(strs))
			for _, s := range strs {
				h.WriteString(s)
				h.WriteByte(0)
			}
		})
	}
	writeUint64(h, sum)
}

// dependenciesKeyword is the draft 6 and 7 form of dependentSchemas and
// dependentRequired: each value is either a schema or an array of
// property names.
type dependenciesKeyword struct {
	names    []string
	schemas  map[string]*Schema
	required map[string][]string
}

func parseDependencies(p *parser, v any, loc position) (Keyword, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, p.errorf(loc, "dependencies", "an object", fmt.Errorf("got %s", describe(v)))
	}
	k := &dependenciesKeyword{names: obj.names, schemas: map[string]*Schema{}, required: map[string][]string{}}
	for _, name := range obj.names {
		dv := obj.values[name]
		if _, ok := dv.([]any); ok {
			strs, err := p.strings("dependencies", dv, loc.child(name))
			if err != nil {
				return nil, err
			}
			k.required[name] = strs
			continue
		}
		s, err := p.schema(dv, loc.child(name))
		if err != nil {
			return nil, err
		}
		k.schemas[name] = s
	}
	return k, nil
}

func (k *dependenciesKeyword) Name() string { return "dependencies" }

func (k *dependenciesKeyword) value() any {
	ms := make(members, len(k.names))
	for i, name := range k.names {
		if s, ok := k.schemas[name]; ok {
			ms[i] = member{name, s}
		} else {
			ms[i] = member{name, k.required[name]}
		}
	}
	return ms
}

func (k *dependenciesKeyword) equal(o Keyword) bool {
	ok, is := o.(*dependenciesKeyword)
	return is && equalSchemaMaps(k.schemas, ok.schemas) && equalStringLists(k.required, ok.required)
}

func (k *dependenciesKeyword) hash(h *maphash.Hash) {
	hashSchemaMap(h, k.schemas)
	hashStringLists(h, k.required)
}

func (k *dependenciesKeyword) subschemas() iter.Seq[*Schema] {
	return func(yield func(*Schema) bool) {
		for _, name := range k.names {
			if s, ok := k.schemas[name]; ok && !yield(s) {
				return
			}
		}
	}
}

func (k *dependenciesKeyword) findSubschema(segments []string) (*Schema, int) {
	if len(segments) == 0 {
		return nil, 0
	}
	if s, ok := k.schemas[segments[0]]; ok {
		return s, 1
	}
	return nil, 0
}

func (k *dependenciesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var failed []string
	for _, name := range k.names {
		if _, ok := obj[name]; !ok {
			continue
		}
		if s, ok := k.schemas[name]; ok {
			if !c.evaluate(s, name).Valid {
				failed = append(failed, name)
			}
		} else if len(missingDependents(obj, []string{name}, k.required)) > 0 {
			failed = append(failed, name)
		}
		if len(failed) > 0 && c.fast() {
			break
		}
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}
