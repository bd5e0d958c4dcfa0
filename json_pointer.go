// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// JSON Pointers (RFC 6901) locate a value inside a JSON document:
// "" is the whole document and "/a/0/b~1c" selects member "b/c" of the
// first element of member "a". Schema locations, evaluation paths and
// instance locations in results all use this syntax.

package jsonschema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// appendPointer returns ptr extended by the given unescaped segments.
func appendPointer(ptr string, segments ...string) string {
	var b strings.Builder
	b.WriteString(ptr)
	for _, seg := range segments {
		b.WriteByte('/')
		pointerEscaper.WriteString(&b, seg)
	}
	return b.String()
}

// splitPointer returns the unescaped segments of ptr.
// Segments stay strings: "0" names an array index or an object member
// depending on what it is applied to.
func splitPointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	rest, ok := strings.CutPrefix(ptr, "/")
	if !ok {
		return nil, fmt.Errorf("JSON Pointer %q does not begin with '/'", ptr)
	}
	// "a//b" has an empty middle segment and "/a/" an empty last one.
	segments := strings.Split(rest, "/")
	for i, seg := range segments {
		if strings.Contains(seg, "~") {
			segments[i] = pointerUnescaper.Replace(seg)
		}
	}
	return segments, nil
}

// dereferenceJSONPointer returns the Schema that sptr points to within s,
// or an error if none.
// Pointers are applied to the schema document, so each step names a keyword
// followed by the segments that keyword needs to select one of its subschemas:
// none for a single schema, an index for an array, a name for a map.
func dereferenceJSONPointer(s *Schema, sptr string) (_ *Schema, err error) {
	defer wrapf(&err, "JSON Pointer %q", sptr)

	segments, err := splitPointer(sptr)
	if err != nil {
		return nil, err
	}
	for len(segments) > 0 {
		if _, ok := s.Bool(); ok {
			return nil, errors.New("navigated into a boolean schema")
		}
		kw, ok := s.keyword(segments[0])
		if !ok {
			return nil, fmt.Errorf("no keyword %q", segments[0])
		}
		f, ok := kw.(subschemaFinder)
		if !ok {
			return nil, fmt.Errorf("keyword %q does not hold schemas", segments[0])
		}
		sub, n := f.findSubschema(segments[1:])
		if sub == nil {
			return nil, fmt.Errorf("no subschema under %q at %q", segments[0], strings.Join(segments[1:], "/"))
		}
		s = sub
		segments = segments[1+n:]
	}
	return s, nil
}
