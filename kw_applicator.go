// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keywords that apply subschemas to the instance in place.
// See https://json-schema.org/draft/2020-12/json-schema-core#section-10.2.

package jsonschema

import "strconv"

func init() {
	registerKeywords(
		&keywordInfo{name: "allOf", versions: since(Draft6, "applicator"), parse: parseLogic},
		&keywordInfo{name: "anyOf", versions: since(Draft6, "applicator"), parse: parseLogic},
		&keywordInfo{name: "oneOf", versions: since(Draft6, "applicator"), parse: parseLogic},
		&keywordInfo{name: "not", versions: since(Draft6, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &notKeyword{o} })},
		&keywordInfo{name: "if", versions: since(Draft7, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &ifKeyword{o} })},
		&keywordInfo{name: "then", priority: priorityDependent, versions: since(Draft7, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &thenElseKeyword{o, true} })},
		&keywordInfo{name: "else", priority: priorityDependent, versions: since(Draft7, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &thenElseKeyword{o, false} })},
	)
}

// parseOne returns a parser for a keyword holding one schema.
func parseOne(wrap func(schemaOne) Keyword) func(*parser, any, position) (Keyword, error) {
	return func(p *parser, v any, loc position) (Keyword, error) {
		o, err := p.schemaOne(lastSegment(loc), v, loc)
		if err != nil {
			return nil, err
		}
		return wrap(o), nil
	}
}

// logicKeyword is allOf, anyOf or oneOf.
type logicKeyword struct{ schemaList }

func parseLogic(p *parser, v any, loc position) (Keyword, error) {
	l, err := p.schemaList(lastSegment(loc), v, loc, true)
	if err != nil {
		return nil, err
	}
	return &logicKeyword{l}, nil
}

func (k *logicKeyword) evaluate(c *Context) {
	var matched, failed []int
	for i, s := range k.schemas {
		n := c.evaluate(s, strconv.Itoa(i))
		if n.Valid {
			matched = append(matched, i)
		} else {
			failed = append(failed, i)
		}
		if !c.fast() {
			continue
		}
		// anyOf never stops early: the annotations of every
		// successful branch are needed.
		if k.name == "allOf" && len(failed) > 0 || k.name == "oneOf" && len(matched) > 1 {
			break
		}
	}
	switch k.name {
	case "allOf":
		if len(failed) > 0 {
			c.fail("failed", failed)
		}
	case "anyOf":
		if len(matched) == 0 {
			c.fail()
		}
	case "oneOf":
		if len(matched) != 1 {
			c.fail("matched", matched)
		}
	}
}

type notKeyword struct{ schemaOne }

func (k *notKeyword) evaluate(c *Context) {
	if c.evaluate(k.schema).Valid {
		c.fail()
	}
}

// ifKeyword evaluates its schema only to choose between then and else.
// It never fails.
type ifKeyword struct{ schemaOne }

func (k *ifKeyword) evaluate(c *Context) {
	c.setLocal("if", c.evaluate(k.schema).Valid)
}

type thenElseKeyword struct {
	schemaOne
	then bool
}

func (k *thenElseKeyword) evaluate(c *Context) {
	v, ok := c.local("if")
	if !ok || v.(bool) != k.then {
		return
	}
	if !c.evaluate(k.schema).Valid {
		c.fail()
	}
}
