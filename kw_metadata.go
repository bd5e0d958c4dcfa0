// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keywords that only annotate: meta-data, content, and unknown keywords.
// See https://json-schema.org/draft/2020-12/draft-bhutton-json-schema-validation-01#section-8.

package jsonschema

import "fmt"

func init() {
	str := func(p *parser, v any, loc position) (Keyword, error) {
		if _, err := p.string(lastSegment(loc), v, loc); err != nil {
			return nil, err
		}
		return &annotationKeyword{literal{lastSegment(loc), v}}, nil
	}
	boolean := func(p *parser, v any, loc position) (Keyword, error) {
		if _, err := p.bool(lastSegment(loc), v, loc); err != nil {
			return nil, err
		}
		return &annotationKeyword{literal{lastSegment(loc), v}}, nil
	}
	anyValue := func(p *parser, v any, loc position) (Keyword, error) {
		return &annotationKeyword{literal{lastSegment(loc), plain(v)}}, nil
	}
	array := func(p *parser, v any, loc position) (Keyword, error) {
		if _, ok := v.([]any); !ok {
			return nil, p.errorf(loc, lastSegment(loc), "an array", fmt.Errorf("got %s", describe(v)))
		}
		return &annotationKeyword{literal{lastSegment(loc), plain(v)}}, nil
	}
	registerKeywords(
		&keywordInfo{name: "title", versions: since(Draft6, "meta-data"), parse: str},
		&keywordInfo{name: "description", versions: since(Draft6, "meta-data"), parse: str},
		&keywordInfo{name: "default", versions: since(Draft6, "meta-data"), parse: anyValue},
		&keywordInfo{name: "examples", versions: since(Draft6, "meta-data"), parse: array},
		&keywordInfo{name: "readOnly", versions: since(Draft7, "meta-data"), parse: boolean},
		&keywordInfo{name: "writeOnly", versions: since(Draft7, "meta-data"), parse: boolean},
		&keywordInfo{name: "deprecated", versions: since(Draft201909, "meta-data"), parse: boolean},
		&keywordInfo{name: "contentEncoding", versions: since(Draft7, "content"), parse: str},
		&keywordInfo{name: "contentMediaType", versions: since(Draft7, "content"), parse: str},
		&keywordInfo{name: "contentSchema", priority: priorityDependent, versions: since(Draft201909, "content"), parse: parseOne(func(o schemaOne) Keyword { return &contentSchemaKeyword{o} })},
	)
}

// annotationKeyword annotates its value and never fails.
type annotationKeyword struct{ literal }

func (k *annotationKeyword) evaluate(c *Context) { c.annotate(k.raw) }

// contentSchemaKeyword describes the decoded content of a string.
// It annotates its schema, without applying it, when contentMediaType is present.
type contentSchemaKeyword struct{ schemaOne }

func (k *contentSchemaKeyword) evaluate(c *Context) {
	if _, ok := c.str(); !ok {
		return
	}
	if _, ok := c.siblingKeyword("contentMediaType"); ok {
		c.annotate(k.schema)
	}
}

// unknownKeyword is a keyword this package does not know.
// Its value is kept verbatim, and it annotates that value.
type unknownKeyword struct{ literal }

func (k *unknownKeyword) evaluate(c *Context) { c.annotate(k.raw) }
