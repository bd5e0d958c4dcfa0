// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// A Loader retrieves the schema at an absolute URI without a fragment.
// The returned schema should have been parsed with that URI as its base.
type Loader func(uri *url.URL) (*Schema, error)

// A Registry maps absolute URIs to schemas, so that references can cross
// documents. It is safe for concurrent use: lookups never block,
// and registrations are serialized and become visible atomically.
//
// Besides the resources registered explicitly, a Registry may consult a
// [Loader] for URIs it does not know. Concurrent misses on the same URI
// share one call to the loader.
type Registry struct {
	loader Loader

	mu      sync.Mutex // held by writers
	entries atomic.Pointer[map[string]*Schema]
	loads   singleflight.Group
}

// NewRegistry returns an empty registry that uses loader, which may be nil,
// to resolve unknown URIs.
func NewRegistry(loader Loader) *Registry {
	r := &Registry{loader: loader}
	m := map[string]*Schema{}
	r.entries.Store(&m)
	return r
}

// ErrNotFound is returned by [Registry.Lookup] for an unknown URI.
var ErrNotFound = errors.New("jsonschema: schema not found")

// Register adds every resource of the document containing s under its
// absolute URI, and every anchor under the URI of its resource with the
// anchor as fragment. Registering a document again has no effect. It is an
// error to bind a URI to a different schema.
// Resources without an absolute URI are not registered.
func (r *Registry) Register(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(s.doc, "")
}

// registerLocked publishes the resources of doc, plus the root under alias
// if that is not empty.
func (r *Registry) registerLocked(doc *document, alias string) error {
	old := *r.entries.Load()
	add := map[string]*Schema{}
	bind := func(uri string, s *Schema) error {
		if prev, ok := old[uri]; ok && prev != s {
			return fmt.Errorf("jsonschema: %s is already registered to a different schema", uri)
		}
		if prev, ok := add[uri]; ok && prev != s {
			return fmt.Errorf("jsonschema: %s is bound to two schemas", uri)
		}
		add[uri] = s
		return nil
	}
	for uri, res := range doc.resources {
		if uri == "" || !res.uri.IsAbs() {
			continue
		}
		if err := bind(uri, res); err != nil {
			return err
		}
		for name, a := range res.anchors {
			if err := bind(uri+"#"+name, a.schema); err != nil {
				return err
			}
		}
	}
	if alias != "" {
		if err := bind(alias, doc.root); err != nil {
			return err
		}
	}
	if len(add) == 0 {
		return nil
	}
	m := maps.Clone(old)
	maps.Copy(m, add)
	r.entries.Store(&m)
	return nil
}

// Lookup returns the schema registered under uri, which must be absolute.
// A fragment may name an anchor or be a JSON Pointer into the resource.
// If the resource is not registered and the registry has a loader, Lookup
// calls it, registers the result and returns it.
func (r *Registry) Lookup(uri string) (*Schema, error) {
	if s, ok := (*r.entries.Load())[uri]; ok {
		return s, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	if frag := u.Fragment; frag != "" {
		// An anchor or pointer in a resource that may need loading.
		u.Fragment = ""
		u.RawFragment = ""
		res, err := r.Lookup(u.String())
		if err != nil {
			return nil, err
		}
		s, err := resolveFragment(res, frag)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, uri, err)
		}
		return s, nil
	}
	u.Fragment = ""
	u.RawFragment = ""
	key := u.String()
	if s, ok := (*r.entries.Load())[key]; ok {
		return s, nil
	}
	if r.loader == nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	v, err, _ := r.loads.Do(key, func() (any, error) {
		// A load that finished since the check above.
		if s, ok := (*r.entries.Load())[key]; ok {
			return s, nil
		}
		s, err := r.loader(u)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", key, err)
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if err := r.registerLocked(s.doc, key); err != nil {
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schema), nil
}

// Len returns the number of URIs in the registry.
func (r *Registry) Len() int { return len(*r.entries.Load()) }
