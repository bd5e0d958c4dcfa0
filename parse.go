// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file turns JSON documents into Schemas.
// Parsing also computes what reference resolution needs later:
// the base URI of every resource and the anchors declared in it.

package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/xerrors"
)

// Parse parses a JSON schema document.
// It returns a *[ParseError] if the document is not a valid schema.
//
// If opts.BaseURI is set, it is the URI the document was retrieved from;
// the root's $id, if any, is resolved against it.
func Parse(data []byte, opts *Options) (*Schema, error) {
	v, err := decodeOrdered(data)
	if err != nil {
		return nil, &ParseError{Expected: "a JSON document", Err: err, frame: xerrors.Caller(0)}
	}
	return parseDocument(v, opts)
}

// ParseValue parses a schema given as a Go value, such as a
// map[string]any or a json.RawMessage.
// Values other than raw JSON are marshaled with encoding/json first, so the
// declaration order of their members is that of the marshaled form.
func ParseValue(v any, opts *Options) (*Schema, error) {
	switch v := v.(type) {
	case json.RawMessage:
		return Parse(v, opts)
	case []byte:
		return Parse(v, opts)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ParseError{Expected: "a JSON value", Err: err, frame: xerrors.Caller(0)}
	}
	return Parse(data, opts)
}

// MustParse is like [Parse] but panics on error.
// It simplifies the initialization of global schemas.
func MustParse(doc string) *Schema {
	s, err := Parse([]byte(doc), nil)
	if err != nil {
		panic(err)
	}
	return s
}

// A parser holds the state of one call to Parse.
type parser struct {
	opts *Options
	base *url.URL
	doc  *document
}

// A position locates a value being parsed.
type position struct {
	resource *Schema // enclosing resource; nil above the document root
	pointer  string  // JSON Pointer from the resource
	doc      string  // JSON Pointer from the document root, for errors

	// The draft the value is expected to follow, as far as parsing can
	// tell: the override, the nearest standard $schema, or the default.
	version SpecVersion
}

func (loc position) child(segments ...string) position {
	loc.pointer = appendPointer(loc.pointer, segments...)
	loc.doc = appendPointer(loc.doc, segments...)
	return loc
}

func parseDocument(v any, opts *Options) (*Schema, error) {
	p := &parser{
		opts: opts,
		base: &url.URL{},
		doc:  &document{resources: map[string]*Schema{}},
	}
	if u := opts.baseURI(); u != "" {
		base, err := url.Parse(u)
		if err != nil {
			return nil, &ParseError{Expected: "a base URI", Err: err, frame: xerrors.Caller(0)}
		}
		if base.Fragment != "" {
			return nil, &ParseError{Expected: "a base URI without a fragment", Err: fmt.Errorf("%q", u), frame: xerrors.Caller(0)}
		}
		p.base = base
	}
	version := opts.dialectOverride()
	if version == VersionUnspecified {
		version = opts.defaultDialect()
	}
	root, err := p.schema(v, position{version: version})
	if err != nil {
		return nil, err
	}
	p.doc.root = root
	// The retrieval URI remains a way to refer to the root, even if
	// the root's $id changed its base.
	if _, ok := p.doc.resources[p.base.String()]; !ok {
		p.doc.resources[p.base.String()] = root
	}
	return root, nil
}

// schema parses a boolean or object schema at loc.
func (p *parser) schema(v any, loc position) (*Schema, error) {
	switch v := v.(type) {
	case bool:
		s := &Schema{boolean: &v, doc: p.doc}
		if loc.resource == nil {
			p.makeResource(s, p.base, nil)
		} else {
			s.resource = loc.resource
			s.pointer = loc.pointer
		}
		return s, nil
	case *object:
		return p.object(v, loc)
	}
	return nil, p.errorf(loc, "", "an object or boolean schema", fmt.Errorf("got %s", describe(v)))
}

func (p *parser) makeResource(s *Schema, uri *url.URL, parent *Schema) {
	s.resource = s
	s.uri = uri
	s.parentResource = parent
	s.pointer = ""
}

func (p *parser) object(obj *object, loc position) (*Schema, error) {
	s := &Schema{doc: p.doc, byName: make(map[string]Keyword, len(obj.names))}

	// Determine the resource before parsing keywords, since subschemas
	// need it for their own locations.
	id, anchorID, err := p.id(obj, loc)
	if err != nil {
		return nil, err
	}
	version := loc.version
	if (loc.resource == nil || id != nil) && p.opts.dialectOverride() == VersionUnspecified {
		if d, ok := obj.values["$schema"].(string); ok {
			if v, ok := metaSchemaVersions[strings.TrimSuffix(d, "#")]; ok {
				version = v
			}
		}
	}
	// Before 2019-09, $ref hides its siblings, $id included.
	if _, ok := obj.values["$ref"]; ok && version <= Draft7 {
		id, anchorID = nil, ""
	}
	if loc.resource == nil || id != nil {
		base := p.base
		if loc.resource != nil {
			base = loc.resource.uri
		}
		uri := base
		if id != nil {
			uri = base.ResolveReference(id)
			uri.Fragment = ""
			uri.RawFragment = ""
		}
		p.makeResource(s, uri, loc.resource)
		key := uri.String()
		if prev, ok := p.doc.resources[key]; ok && prev != s && id != nil {
			return nil, p.errorf(loc.child("$id"), "$id", "a unique identifier", fmt.Errorf("duplicate $id %s", key))
		}
		p.doc.resources[key] = s
		if d, ok := obj.values["$schema"].(string); ok {
			s.declared = d
		}
		loc = position{resource: s, doc: loc.doc, version: version}
	} else {
		s.resource = loc.resource
		s.pointer = loc.pointer
	}

	for _, name := range obj.names {
		v := obj.values[name]
		var kw Keyword
		if info, ok := keywordTable[name]; ok {
			kw, err = info.parse(p, v, loc.child(name))
			if err != nil {
				return nil, err
			}
		} else if p.opts.unknownKeywords() == RejectUnknown {
			return nil, p.errorf(loc.child(name), name, "a known keyword", errors.New("unknown keyword"))
		} else {
			kw = &unknownKeyword{literal{name, plain(v)}}
		}
		s.keywords = append(s.keywords, kw)
		s.byName[name] = kw
	}

	// Anchors are URI fragments that are scoped to their resource.
	addAnchor := func(keyword, name string, dynamic bool) error {
		res := s.resource
		if prev, ok := res.anchors[name]; ok && (prev.schema != s || prev.dynamic == dynamic) {
			return p.errorf(loc.child(keyword), keyword, "a unique anchor", fmt.Errorf("duplicate anchor %q in %s", name, res.uri))
		}
		if res.anchors == nil {
			res.anchors = map[string]anchorInfo{}
		}
		// An anchor that is both static and dynamic is recorded as dynamic.
		res.anchors[name] = anchorInfo{schema: s, dynamic: dynamic || res.anchors[name].dynamic}
		return nil
	}
	if anchorID != "" {
		if err := addAnchor("$id", anchorID, false); err != nil {
			return nil, err
		}
	}
	if kw, ok := s.keyword("$anchor"); ok {
		if err := addAnchor("$anchor", kw.(*identifierKeyword).v.(string), false); err != nil {
			return nil, err
		}
	}
	if kw, ok := s.keyword("$dynamicAnchor"); ok {
		if err := addAnchor("$dynamicAnchor", kw.(*identifierKeyword).v.(string), true); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// id returns the parsed $id of obj, if it names a resource.
// A $id consisting only of a plain-name fragment, allowed in drafts 6 and 7,
// is returned as an anchor instead.
func (p *parser) id(obj *object, loc position) (*url.URL, string, error) {
	v, ok := obj.values["$id"]
	if !ok {
		return nil, "", nil
	}
	str, ok := v.(string)
	if !ok {
		return nil, "", p.errorf(loc.child("$id"), "$id", "a string", fmt.Errorf("got %s", describe(v)))
	}
	if anchor, ok := strings.CutPrefix(str, "#"); ok && anchor != "" {
		return nil, anchor, nil
	}
	id, err := url.Parse(str)
	if err != nil {
		return nil, "", p.errorf(loc.child("$id"), "$id", "a URI reference", err)
	}
	if id.Fragment != "" {
		return nil, "", p.errorf(loc.child("$id"), "$id", "a URI without a fragment", fmt.Errorf("%q", str))
	}
	return id, "", nil
}

// Helpers for parsing keyword values.

func (p *parser) schemaOne(name string, v any, loc position) (schemaOne, error) {
	s, err := p.schema(v, loc)
	if err != nil {
		return schemaOne{}, err
	}
	return schemaOne{name: name, schema: s}, nil
}

func (p *parser) schemaList(name string, v any, loc position, nonEmpty bool) (schemaList, error) {
	arr, ok := v.([]any)
	if !ok || (nonEmpty && len(arr) == 0) {
		return schemaList{}, p.errorf(loc, name, "a non-empty array of schemas", fmt.Errorf("got %s", describe(v)))
	}
	l := schemaList{name: name, schemas: make([]*Schema, len(arr))}
	for i, e := range arr {
		s, err := p.schema(e, loc.child(fmt.Sprint(i)))
		if err != nil {
			return schemaList{}, err
		}
		l.schemas[i] = s
	}
	return l, nil
}

func (p *parser) schemaMap(name string, v any, loc position) (schemaMap, error) {
	obj, ok := v.(*object)
	if !ok {
		return schemaMap{}, p.errorf(loc, name, "an object of schemas", fmt.Errorf("got %s", describe(v)))
	}
	m := schemaMap{name: name, names: obj.names, schemas: make(map[string]*Schema, len(obj.names))}
	for _, key := range obj.names {
		s, err := p.schema(obj.values[key], loc.child(key))
		if err != nil {
			return schemaMap{}, err
		}
		m.schemas[key] = s
	}
	return m, nil
}

func (p *parser) string(name string, v any, loc position) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", p.errorf(loc, name, "a string", fmt.Errorf("got %s", describe(v)))
	}
	return s, nil
}

func (p *parser) bool(name string, v any, loc position) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, p.errorf(loc, name, "a boolean", fmt.Errorf("got %s", describe(v)))
	}
	return b, nil
}

// number parses a JSON number, keeping its text for marshaling.
func (p *parser) number(name string, v any, loc position) (json.Number, *big.Rat, error) {
	n, ok := v.(json.Number)
	if ok {
		if r, ok := jsonNumber(n); ok {
			return n, r, nil
		}
	}
	return "", nil, p.errorf(loc, name, "a number", fmt.Errorf("got %s", describe(v)))
}

// count parses a non-negative integer. As in JSON Schema generally, a number
// with a zero fractional part, like 1.0, is an integer.
func (p *parser) count(name string, v any, loc position) (int, error) {
	_, r, err := p.number(name, v, loc)
	if err == nil && r.IsInt() && r.Sign() >= 0 && r.Num().IsInt64() && r.Num().Int64() <= 1<<31-1 {
		return int(r.Num().Int64()), nil
	}
	return 0, p.errorf(loc, name, "a non-negative integer", fmt.Errorf("got %s", describe(v)))
}

// strings parses an array of unique strings.
func (p *parser) strings(name string, v any, loc position) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, p.errorf(loc, name, "an array of strings", fmt.Errorf("got %s", describe(v)))
	}
	strs := make([]string, 0, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, p.errorf(loc.child(fmt.Sprint(i)), name, "an array of strings", fmt.Errorf("got %s", describe(e)))
		}
		if slices.Contains(strs, s) {
			return nil, p.errorf(loc.child(fmt.Sprint(i)), name, "an array of unique strings", fmt.Errorf("duplicate %q", s))
		}
		strs = append(strs, s)
	}
	return strs, nil
}

func (p *parser) regexp(name string, src string, loc position) (*regexp.Regexp, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, p.errorf(loc, name, "a regular expression", err)
	}
	return re, nil
}

// describe returns the JSON kind of an ordered value, for error messages.
func describe(v any) string {
	switch v.(type) {
	case *object:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
