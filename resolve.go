// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file deals with resolving references to schemas.
// A reference is a URI reference, resolved against the base URI of the
// resource that contains it. For example, given the document
//
//	{"$id": "https://example.com/root.json",
//	 "$defs": {
//	    "A": {"$id": "item.json", "$anchor": "top"},
//	    "B": {"$ref": "item.json#top"}}}
//
// the reference in B resolves to the absolute URI
// https://example.com/item.json#top, whose resource is A and whose
// fragment is an anchor in A. A fragment that begins with a slash is a
// JSON Pointer from the resource instead.

package jsonschema

import (
	"fmt"
	"net/url"
)

// lookup returns the resource with the given absolute URI (without
// fragment), looking first in doc and then in the registry.
func (st *state) lookup(doc *document, uri string) (*Schema, error) {
	if s, ok := doc.resources[uri]; ok {
		return s, nil
	}
	if st.registry == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	return st.registry.Lookup(uri)
}

type refKey struct {
	from *Schema
	ref  string
}

// resolveRef resolves the reference ref found in schema from.
func (st *state) resolveRef(from *Schema, ref string) (*Schema, error) {
	key := refKey{from, ref}
	if s, ok := st.refs[key]; ok {
		return s, nil
	}
	s, err := st.resolveRefUncached(from, ref)
	if err != nil {
		return nil, err
	}
	st.refs[key] = s
	return s, nil
}

func (st *state) resolveRefUncached(from *Schema, ref string) (_ *Schema, err error) {
	defer wrapf(&err, "resolving %q from %s", ref, from)

	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	target := from.baseURI().ResolveReference(u)
	frag := target.Fragment
	target.Fragment = ""
	target.RawFragment = ""
	res, err := st.lookup(from.doc, target.String())
	if err != nil {
		return nil, err
	}
	return resolveFragment(res, frag)
}

// resolveFragment returns the schema that frag selects within the resource res.
func resolveFragment(res *Schema, frag string) (*Schema, error) {
	if frag == "" {
		return res, nil
	}
	if frag[0] == '/' {
		return dereferenceJSONPointer(res, frag)
	}
	a, ok := res.resource.anchors[frag]
	if !ok {
		return nil, fmt.Errorf("no anchor %q in %s", frag, res.resource.baseURI())
	}
	return a.schema, nil
}

// dynamicAnchor returns the schema of resource res that declares the dynamic
// anchor name, if any.
func dynamicAnchor(res *Schema, name string) (*Schema, bool) {
	a, ok := res.resource.anchors[name]
	if !ok || !a.dynamic {
		return nil, false
	}
	return a.schema, true
}
