// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keywords for arrays.

package jsonschema

import (
	"hash/maphash"
	"iter"
	"slices"
	"strconv"
)

func init() {
	registerKeywords(
		&keywordInfo{name: "prefixItems", versions: since(Draft202012, "applicator"), parse: parsePrefixItems},
		&keywordInfo{name: "items", priority: priorityDependent, versions: since(Draft6, "applicator"), parse: parseItems},
		&keywordInfo{name: "additionalItems", priority: priorityDependent, versions: between(Draft6, Draft201909, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &additionalItemsKeyword{o} })},
		&keywordInfo{name: "contains", versions: since(Draft6, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &containsKeyword{o} })},
		&keywordInfo{name: "unevaluatedItems", priority: priorityUnevaluated, versions: withVocab(since(Draft201909, "unevaluated"), Draft201909, "applicator"), parse: parseOne(func(o schemaOne) Keyword { return &unevaluatedItemsKeyword{o} })},
		&keywordInfo{name: "minItems", versions: since(Draft6, "validation"), parse: parseCount},
		&keywordInfo{name: "maxItems", versions: since(Draft6, "validation"), parse: parseCount},
		&keywordInfo{name: "minContains", priority: priorityDependent, versions: since(Draft201909, "validation"), parse: parseCount},
		&keywordInfo{name: "maxContains", priority: priorityDependent, versions: since(Draft201909, "validation"), parse: parseCount},
		&keywordInfo{name: "uniqueItems", versions: since(Draft6, "validation"), parse: parseUniqueItems},
	)
}

// evaluateItems evaluates the items of arr from start on, each against the
// schema returned by schemaFor. It returns the index of the last item
// evaluated, or -1 if none was, and the indexes of the failed items.
func evaluateItems(c *Context, arr []any, start int, schemaFor func(int) (*Schema, []string)) (last int, failed []int) {
	last = -1
	for i := start; i < len(arr); i++ {
		s, path := schemaFor(i)
		if s == nil {
			break
		}
		last = i
		if !c.evaluateAt(s, arr[i], strconv.Itoa(i), path...).Valid {
			failed = append(failed, i)
			if c.fast() {
				break
			}
		}
	}
	return last, failed
}

// tupleAnnotation is the annotation of a keyword that applies schemas to
// a prefix of an array: the largest index applied, or true if every item was.
func tupleAnnotation(c *Context, arr []any, last int) {
	if last < 0 {
		return
	}
	if last == len(arr)-1 {
		c.annotate(true)
	} else {
		c.annotate(last)
	}
}

type prefixItemsKeyword struct{ schemaList }

func parsePrefixItems(p *parser, v any, loc position) (Keyword, error) {
	l, err := p.schemaList("prefixItems", v, loc, true)
	if err != nil {
		return nil, err
	}
	return &prefixItemsKeyword{l}, nil
}

func (k *prefixItemsKeyword) evaluate(c *Context) {
	arr, ok := c.array()
	if !ok {
		return
	}
	last, failed := evaluateItems(c, arr, 0, func(i int) (*Schema, []string) {
		if i >= len(k.schemas) {
			return nil, nil
		}
		return k.schemas[i], []string{strconv.Itoa(i)}
	})
	tupleAnnotation(c, arr, last)
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

// itemsKeyword is items. Its value is a schema, or in drafts before 2020-12,
// possibly an array of schemas for the leading items.
type itemsKeyword struct {
	one  *Schema
	list []*Schema
}

func parseItems(p *parser, v any, loc position) (Keyword, error) {
	if _, ok := v.([]any); ok {
		l, err := p.schemaList("items", v, loc, false)
		if err != nil {
			return nil, err
		}
		return &itemsKeyword{list: l.schemas}, nil
	}
	s, err := p.schema(v, loc)
	if err != nil {
		return nil, err
	}
	return &itemsKeyword{one: s}, nil
}

func (k *itemsKeyword) Name() string { return "items" }

func (k *itemsKeyword) value() any {
	if k.one != nil {
		return k.one
	}
	return k.list
}

func (k *itemsKeyword) equal(o Keyword) bool {
	ok, is := o.(*itemsKeyword)
	if !is {
		return false
	}
	if k.one != nil || ok.one != nil {
		return k.one.Equal(ok.one)
	}
	return slices.EqualFunc(k.list, ok.list, (*Schema).Equal)
}

func (k *itemsKeyword) hash(h *maphash.Hash) {
	if k.one != nil {
		h.WriteByte('1')
		writeUint64(h, k.one.Hash())
		return
	}
	h.WriteByte('[')
	for _, s := range k.list {
		writeUint64(h, s.Hash())
	}
}

func (k *itemsKeyword) subschemas() iter.Seq[*Schema] {
	if k.one != nil {
		return func(yield func(*Schema) bool) { yield(k.one) }
	}
	return slices.Values(k.list)
}

func (k *itemsKeyword) findSubschema(segments []string) (*Schema, int) {
	if k.one != nil {
		return k.one, 0
	}
	if len(segments) == 0 {
		return nil, 0
	}
	if i, ok := indexSegment(segments[0], len(k.list)); ok {
		return k.list[i], 1
	}
	return nil, 0
}

func (k *itemsKeyword) evaluate(c *Context) {
	arr, ok := c.array()
	if !ok {
		return
	}
	if k.one == nil {
		// The array form applies schemas to the leading items.
		last, failed := evaluateItems(c, arr, 0, func(i int) (*Schema, []string) {
			if i >= len(k.list) {
				return nil, nil
			}
			return k.list[i], []string{strconv.Itoa(i)}
		})
		tupleAnnotation(c, arr, last)
		if len(failed) > 0 {
			c.fail("failed", failed)
		}
		return
	}
	start := 0
	if c.dialect.Version >= Draft202012 {
		if kw, ok := c.siblingKeyword("prefixItems"); ok {
			start = len(kw.(*prefixItemsKeyword).schemas)
		}
	}
	last, failed := evaluateItems(c, arr, start, func(int) (*Schema, []string) { return k.one, nil })
	if last >= 0 {
		c.annotate(true)
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

// additionalItemsKeyword applies to the items after those covered by
// the array form of items.
type additionalItemsKeyword struct{ schemaOne }

func (k *additionalItemsKeyword) evaluate(c *Context) {
	arr, ok := c.array()
	if !ok {
		return
	}
	kw, ok := c.siblingKeyword("items")
	if !ok || kw.(*itemsKeyword).one != nil {
		return
	}
	start := len(kw.(*itemsKeyword).list)
	last, failed := evaluateItems(c, arr, start, func(int) (*Schema, []string) { return k.schema, nil })
	if last >= 0 {
		c.annotate(true)
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}

// containsKeyword counts the items that match its schema. The count is
// bounded below by minContains (default 1) and above by maxContains.
type containsKeyword struct{ schemaOne }

func (k *containsKeyword) evaluate(c *Context) {
	arr, ok := c.array()
	if !ok {
		return
	}
	matched := []int{}
	for i, item := range arr {
		if c.evaluateAt(k.schema, item, strconv.Itoa(i)).Valid {
			matched = append(matched, i)
		}
	}
	c.setLocal("contains", len(matched))
	if c.dialect.Version >= Draft202012 {
		if len(matched) == len(arr) && len(arr) > 0 {
			c.annotate(true)
		} else {
			c.annotate(matched)
		}
	}
	limit := 1
	if kw, ok := c.siblingKeyword("minContains"); ok {
		limit = kw.(*countKeyword).n
	}
	if len(matched) < limit {
		c.fail("received", len(matched), "limit", limit)
	}
}

type uniqueItemsKeyword struct {
	literal
	unique bool
}

func parseUniqueItems(p *parser, v any, loc position) (Keyword, error) {
	b, err := p.bool("uniqueItems", v, loc)
	if err != nil {
		return nil, err
	}
	return &uniqueItemsKeyword{literal{"uniqueItems", b}, b}, nil
}

func (k *uniqueItemsKeyword) evaluate(c *Context) {
	if !k.unique {
		return
	}
	arr, ok := c.array()
	if !ok {
		return
	}
	if dups := duplicates(arr); len(dups) > 0 {
		c.fail("duplicates", dups)
	}
}

// duplicates returns the pairs of indexes of equal items in arr.
// Items are bucketed by hash, then compared within each bucket.
func duplicates(arr []any) [][2]int {
	buckets := map[uint64][]int{}
	var dups [][2]int
	for i, item := range arr {
		var h maphash.Hash
		h.SetSeed(hashSeed)
		hashValue(&h, item)
		sum := h.Sum64()
		for _, j := range buckets[sum] {
			if equalJSON(arr[j], item) {
				dups = append(dups, [2]int{j, i})
				break
			}
		}
		buckets[sum] = append(buckets[sum], i)
	}
	return dups
}

// unevaluatedItemsKeyword applies its schema to the items that no adjacent
// keyword, including those in valid subschemas at the same location,
// has evaluated.
type unevaluatedItemsKeyword struct{ schemaOne }

func (k *unevaluatedItemsKeyword) evaluate(c *Context) {
	arr, ok := c.array()
	if !ok {
		return
	}
	keywords := []string{"prefixItems", "items", "additionalItems", "unevaluatedItems"}
	if c.dialect.Version >= Draft202012 {
		keywords = append(keywords, "contains")
	}
	start := 0
	seen := map[int]bool{}
	for _, a := range c.annotationsAt(keywords...) {
		switch v := a.Value.(type) {
		case bool:
			if v {
				start = len(arr)
			}
		case int:
			if a.Keyword == "contains" {
				seen[v] = true
			} else {
				start = max(start, v+1)
			}
		case []int:
			for _, i := range v {
				seen[i] = true
			}
		}
	}
	var failed []int
	evaluated := false
	for i := start; i < len(arr); i++ {
		if seen[i] {
			continue
		}
		evaluated = true
		if !c.evaluateAt(k.schema, arr[i], strconv.Itoa(i)).Valid {
			failed = append(failed, i)
			if c.fast() {
				break
			}
		}
	}
	if evaluated {
		c.annotate(true)
	}
	if len(failed) > 0 {
		c.fail("failed", failed)
	}
}
