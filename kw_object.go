// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keywords for objects.

package jsonschema

import (
	"fmt"
	"hash/maphash"
	"regexp"
	"slices"
	"unicode/utf8"
)

func init() {
	registerKeywords(
		&keywordInfo{name: "properties", versions: since(Draft6, "applicator"), parse: parseProperties},
		&keywordInfo{name: "patternProperties", versions: since(Draft6, "applicator"), parse: parsePatternProperties},
		&keywordInfo{name: "additionalProperties", priority: priorityDependent, versions: since(Draft6, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &additionalPropertiesKeyword{o} })},
		&keywordInfo{name: "propertyNames", versions: since(Draft6, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &propertyNamesKeyword{o} })},
		&keywordInfo{name: "unevaluatedProperties", priority: priorityUnevaluated, versions: withVocab(since(Draft201909, "unevaluated"), Draft201909, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &unevaluatedPropertiesKeyword{o} })},
		&keywordInfo{name: "required", versions: since(Draft6, "validation"), parse: parseRequired},
		&keywordInfo{name: "minProperties", versions: since(Draft6, "validation"), parse: parseCount},
		&keywordInfo{name: "maxProperties", versions: since(Draft6, "validation"), parse: parseCount},
	)
}

type propertiesKeyword struct{ schemaMap }

func parseProperties(p *parser, v any, loc position) (Keyword, error) {
	m, err := p.schemaMap("properties", v, loc)
	if err != nil {
		return nil, err
	}
	return &propertiesKeyword{m}, nil
}

func (k *propertiesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	evaluated := []string{}
	var failed []string
	for _, name := range k.names {
		val, ok := obj[name]
		if !ok {
			continue
		}
		evaluated = append(evaluated, name)
		if !c.evaluateAt(k.schemas[name], val, name, name).Valid {
			failed = append(failed, name)
			if c.fast() {
				break
			}
		}
	}
	c.annotate(evaluated)
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

type patternPropertiesKeyword struct {
	schemaMap
	regexps map[string]*regexp.Regexp
}

func parsePatternProperties(p *parser, v any, loc position) (Keyword, error) {
	m, err := p.schemaMap("patternProperties", v, loc)
	if err != nil {
		return nil, err
	}
	k := &patternPropertiesKeyword{schemaMap: m, regexps: map[string]*regexp.Regexp{}}
	for _, pat := range m.names {
		re, err := p.regexp("patternProperties", pat, loc.child(pat))
		if err != nil {
			return nil, err
		}
		k.regexps[pat] = re
	}
	return k, nil
}

// matches reports whether name matches any of the patterns.
func (k *patternPropertiesKeyword) matches(name string) bool {
	for _, re := range k.regexps {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (k *patternPropertiesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	evaluated := []string{}
	var failed []string
outer:
	for _, name := range sortedKeys(obj) {
		matched := false
		for _, pat := range k.names {
			if !k.regexps[pat].MatchString(name) {
				continue
			}
			matched = true
			if !c.evaluateAt(k.schemas[pat], obj[name], name, pat).Valid {
				failed = append(failed, name)
				if c.fast() {
					break outer
				}
			}
		}
		if matched {
			evaluated = append(evaluated, name)
		}
	}
	c.annotate(evaluated)
	if len(failed) > 0 {
		c.fail("failed", slices.Compact(failed))
	}
}

type additionalPropertiesKeyword struct{ schemaOne }

func (k *additionalPropertiesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var props *propertiesKeyword
	if kw, ok := c.siblingKeyword("properties"); ok {
		props = kw.(*propertiesKeyword)
	}
	var patterns *patternPropertiesKeyword
	if kw, ok := c.siblingKeyword("patternProperties"); ok {
		patterns = kw.(*patternPropertiesKeyword)
	}
	evaluated := []string{}
	var failed []string
	for _, name := range sortedKeys(obj) {
		if props != nil {
			if _, ok := props.schemas[name]; ok {
				continue
			}
		}
		if patterns != nil && patterns.matches(name) {
			continue
		}
		evaluated = append(evaluated, name)
		if !c.evaluateAt(k.schema, obj[name], name).Valid {
			failed = append(failed, name)
			if c.fast() {
				break
			}
		}
	}
	c.annotate(evaluated)
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

type propertyNamesKeyword struct{ schemaOne }

func (k *propertyNamesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var failed []string
	for _, name := range sortedKeys(obj) {
		if !c.evaluateAt(k.schema, name, name).Valid {
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

// unevaluatedPropertiesKeyword applies its schema to the properties that no
// adjacent keyword, including those in valid subschemas at the same
// location, has evaluated.
type unevaluatedPropertiesKeyword struct{ schemaOne }

func (k *unevaluatedPropertiesKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	seen := map[string]bool{}
	for _, a := range c.annotationsAt("properties", "patternProperties", "additionalProperties", "unevaluatedProperties") {
		for _, name := range a.Value.([]string) {
			seen[name] = true
		}
	}
	evaluated := []string{}
	var failed []string
	for _, name := range sortedKeys(obj) {
		if seen[name] {
			continue
		}
		evaluated = append(evaluated, name)
		if !c.evaluateAt(k.schema, obj[name], name).Valid {
			failed = append(failed, name)
			if c.fast() {
				break
			}
		}
	}
	c.annotate(evaluated)
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

type requiredKeyword struct {
	literal
	names []string
}

func parseRequired(p *parser, v any, loc position) (Keyword, error) {
	names, err := p.strings("required", v, loc)
	if err != nil {
		return nil, err
	}
	return &requiredKeyword{literal{"required", plain(v)}, names}, nil
}

func (k *requiredKeyword) evaluate(c *Context) {
	obj, ok := c.object()
	if !ok {
		return
	}
	var missing []string
	for _, name := range k.names {
		if _, ok := obj[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		c.fail("missing", missing)
	}
}

// countKeyword is one of the keywords that bound the size of an
// object, array or string.
type countKeyword struct {
	literal
	n int
}

func parseCount(p *parser, v any, loc position) (Keyword, error) {
	name := lastSegment(loc)
	n, err := p.count(name, v, loc)
	if err != nil {
		return nil, err
	}
	return &countKeyword{literal{name, plain(v)}, n}, nil
}

func (k *countKeyword) evaluate(c *Context) {
	var size int
	switch k.name {
	case "minProperties", "maxProperties":
		obj, ok := c.object()
		if !ok {
			return
		}
		size = len(obj)
	case "minItems", "maxItems":
		arr, ok := c.array()
		if !ok {
			return
		}
		size = len(arr)
	case "minLength", "maxLength":
		s, ok := c.str()
		if !ok {
			return
		}
		size = utf8.RuneCountInString(s)
	case "minContains":
		return // checked by contains
	case "maxContains":
		v, ok := c.local("contains")
		if !ok {
			return
		}
		size = v.(int)
	default:
		panic(fmt.Sprintf("bad count keyword %q", k.name))
	}
	isMin := k.name[:3] == "min"
	if isMin && size < k.n || !isMin && size > k.n {
		c.fail("received", size, "limit", k.n)
	}
}

// A literal is a keyword whose value is kept as decoded JSON, for
// equality, hashing and marshaling.
type literal struct {
	name string
	raw  any
}

func (k *literal) Name() string         { return k.name }
func (k *literal) value() any           { return k.raw }
func (k *literal) lit() *literal        { return k }
func (k *literal) hash(h *maphash.Hash) { hashValue(h, k.raw) }

func (k *literal) equal(o Keyword) bool {
	ol, is := o.(interface{ lit() *literal })
	return is && o.Name() == k.name && equalJSON(k.raw, ol.lit().raw)
}
