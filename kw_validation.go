// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Validation keywords for any instance, numbers and strings.
// See https://json-schema.org/draft/2020-12/draft-bhutton-json-schema-validation-01#section-6.

package jsonschema

import (
	"fmt"
	"math/big"
	"regexp"
	"slices"
)

func init() {
	registerKeywords(
		&keywordInfo{name: "type", versions: since(Draft6, "validation"), parse: parseType},
		&keywordInfo{name: "enum", versions: since(Draft6, "validation"), parse: parseEnum},
		&keywordInfo{name: "const", versions: since(Draft6, "validation"), parse: parseConst},
		&keywordInfo{name: "multipleOf", versions: since(Draft6, "validation"), parse: parseNumber},
		&keywordInfo{name: "maximum", versions: since(Draft6, "validation"), parse: parseNumber},
		&keywordInfo{name: "exclusiveMaximum", versions: since(Draft6, "validation"), parse: parseNumber},
		&keywordInfo{name: "minimum", versions: since(Draft6, "validation"), parse: parseNumber},
		&keywordInfo{name: "exclusiveMinimum", versions: since(Draft6, "validation"), parse: parseNumber},
		&keywordInfo{name: "maxLength", versions: since(Draft6, "validation"), parse: parseCount},
		&keywordInfo{name: "minLength", versions: since(Draft6, "validation"), parse: parseCount},
		&keywordInfo{name: "pattern", versions: since(Draft6, "validation"), parse: parsePattern},
	)
}

var typeNames = []string{"array", "boolean", "integer", "null", "number", "object", "string"}

type typeKeyword struct {
	literal
	types []string
}

func parseType(p *parser, v any, loc position) (Keyword, error) {
	var types []string
	if s, ok := v.(string); ok {
		types = []string{s}
	} else {
		var err error
		types, err = p.strings("type", v, loc)
		if err != nil {
			return nil, p.errorf(loc, "type", "a type name or an array of type names", fmt.Errorf("got %s", describe(v)))
		}
	}
	for _, t := range types {
		if !slices.Contains(typeNames, t) {
			return nil, p.errorf(loc, "type", "a type name", fmt.Errorf("unknown type %q", t))
		}
	}
	return &typeKeyword{literal{"type", plain(v)}, types}, nil
}

func (k *typeKeyword) evaluate(c *Context) {
	got := jsonType(c.instance)
	for _, t := range k.types {
		// "number" includes integers.
		if t == got || t == "number" && got == "integer" {
			return
		}
	}
	c.fail("received", got, "expected", k.raw)
}

type enumKeyword struct{ literal }

func parseEnum(p *parser, v any, loc position) (Keyword, error) {
	if _, ok := v.([]any); !ok {
		return nil, p.errorf(loc, "enum", "an array", fmt.Errorf("got %s", describe(v)))
	}
	return &enumKeyword{literal{"enum", plain(v)}}, nil
}

func (k *enumKeyword) evaluate(c *Context) {
	values := k.raw.([]any)
	if !slices.ContainsFunc(values, func(e any) bool { return equalJSON(e, c.instance) }) {
		c.fail("values", values)
	}
}

type constKeyword struct{ literal }

func parseConst(p *parser, v any, loc position) (Keyword, error) {
	return &constKeyword{literal{"const", plain(v)}}, nil
}

func (k *constKeyword) evaluate(c *Context) {
	if !equalJSON(k.raw, c.instance) {
		c.fail("value", k.raw)
	}
}

// numberKeyword is multipleOf or one of the bounds on numbers.
type numberKeyword struct {
	literal
	n *big.Rat
}

func parseNumber(p *parser, v any, loc position) (Keyword, error) {
	name := lastSegment(loc)
	_, r, err := p.number(name, v, loc)
	if err != nil {
		return nil, err
	}
	if name == "multipleOf" && r.Sign() <= 0 {
		return nil, p.errorf(loc, name, "a number greater than 0", fmt.Errorf("got %s", r.RatString()))
	}
	return &numberKeyword{literal{name, plain(v)}, r}, nil
}

func (k *numberKeyword) evaluate(c *Context) {
	x, ok := c.number()
	if !ok {
		return
	}
	var bad bool
	switch k.name {
	case "multipleOf":
		if !new(big.Rat).Quo(x, k.n).IsInt() {
			c.fail("received", c.instance, "divisor", k.raw)
		}
		return
	case "maximum":
		bad = x.Cmp(k.n) > 0
	case "exclusiveMaximum":
		bad = x.Cmp(k.n) >= 0
	case "minimum":
		bad = x.Cmp(k.n) < 0
	case "exclusiveMinimum":
		bad = x.Cmp(k.n) <= 0
	}
	if bad {
		c.fail("received", c.instance, "limit", k.raw)
	}
}

type patternKeyword struct {
	literal
	re *regexp.Regexp
}

func parsePattern(p *parser, v any, loc position) (Keyword, error) {
	s, err := p.string("pattern", v, loc)
	if err != nil {
		return nil, err
	}
	re, err := p.regexp("pattern", s, loc)
	if err != nil {
		return nil, err
	}
	return &patternKeyword{literal{"pattern", s}, re}, nil
}

func (k *patternKeyword) evaluate(c *Context) {
	s, ok := c.str()
	if !ok {
		return
	}
	if !k.re.MatchString(s) {
		c.fail("pattern", k.raw)
	}
}
