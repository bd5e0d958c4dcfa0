// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/maphash"
	"maps"
	"math/big"
	"slices"
	"strconv"
)

// Equal reports whether two Go values representing JSON values are equal according
// to the JSON Schema spec.
// See https://json-schema.org/draft/2020-12/json-schema-core#section-4.2.2.
// Numbers are compared according to mathematical equality, so 1 and 1.0 are equal.
// Values that cannot be represented as JSON are never equal to anything.
func Equal(x, y any) bool {
	nx, err := normalize(x)
	if err != nil {
		return false
	}
	ny, err := normalize(y)
	if err != nil {
		return false
	}
	return equalJSON(nx, ny)
}

// equalJSON compares two normalized JSON values.
func equalJSON(x, y any) bool {
	if rx, ok := jsonNumber(x); ok {
		ry, ok := jsonNumber(y)
		return ok && rx.Cmp(ry) == 0
	}
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool:
		yb, ok := y.(bool)
		return ok && x == yb
	case string:
		ys, ok := y.(string)
		return ok && x == ys
	case []any:
		ya, ok := y.([]any)
		return ok && slices.EqualFunc(x, ya, equalJSON)
	case map[string]any:
		ym, ok := y.(map[string]any)
		if !ok || len(x) != len(ym) {
			return false
		}
		for k, xv := range x {
			yv, ok := ym[k]
			if !ok || !equalJSON(xv, yv) {
				return false
			}
		}
		return true
	}
	return false
}

// jsonNumber converts a numeric value or a json.Number to a [big.Rat].
// If v is not a number, it returns nil, false.
func jsonNumber(v any) (*big.Rat, bool) {
	r := new(big.Rat)
	switch v := v.(type) {
	case json.Number:
		if _, ok := r.SetString(v.String()); !ok {
			// This can fail in rare cases; for example, "1e9999999".
			// That is a valid JSON number, since the spec puts no limit on the size
			// of the exponent.
			f, err := strconv.ParseFloat(v.String(), 64)
			if err != nil || r.SetFloat64(f) == nil {
				return nil, false
			}
		}
	case float64:
		if r.SetFloat64(v) == nil {
			return nil, false // NaN or infinity
		}
	case float32:
		if r.SetFloat64(float64(v)) == nil {
			return nil, false
		}
	case int:
		r.SetInt64(int64(v))
	case int8:
		r.SetInt64(int64(v))
	case int16:
		r.SetInt64(int64(v))
	case int32:
		r.SetInt64(int64(v))
	case int64:
		r.SetInt64(v)
	case uint:
		r.SetUint64(uint64(v))
	case uint8:
		r.SetUint64(uint64(v))
	case uint16:
		r.SetUint64(uint64(v))
	case uint32:
		r.SetUint64(uint64(v))
	case uint64:
		r.SetUint64(v)
	default:
		return nil, false
	}
	return r, true
}

// jsonType returns a string describing the type of the normalized JSON value,
// as described in the JSON Schema specification:
// https://json-schema.org/draft/2020-12/draft-bhutton-json-schema-validation-01#section-6.1.1.
// Numbers with a zero fractional part are "integer".
// It returns "" if the value is not a JSON value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if r, ok := jsonNumber(v); ok {
		if r.IsInt() {
			return "integer"
		}
		return "number"
	}
	if _, ok := v.(json.Number); ok {
		return "number" // too large for big.Rat
	}
	return ""
}

// normalize returns v as a tree of nil, bool, string, numbers, []any and
// map[string]any.
// Values of other Go types (structs, typed slices and maps) are converted
// by a round trip through encoding/json.
func normalize(v any) (any, error) {
	if isPlain(v) {
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("instance is not a JSON value: %w", err)
	}
	return decodePlain(data)
}

// isPlain reports whether v is already normalized.
func isPlain(v any) bool {
	switch v := v.(type) {
	case nil, bool, string:
		return true
	case []any:
		for _, e := range v {
			if !isPlain(e) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range v {
			if !isPlain(e) {
				return false
			}
		}
		return true
	}
	_, ok := jsonNumber(v)
	return ok
}

// hashSeed is shared by all hashes of JSON values and schemas, so that
// the hashes of equal values are equal within a process.
var hashSeed = maphash.MakeSeed()

// hashValue writes a hash of the normalized JSON value v to h.
// Values that are equal according to [equalJSON] have the same hash.
func hashValue(h *maphash.Hash, v any) {
	switch v := v.(type) {
	case nil:
		h.WriteByte('n')
	case bool:
		if v {
			h.WriteByte('t')
		} else {
			h.WriteByte('f')
		}
	case string:
		h.WriteByte('s')
		writeInt(h, len(v))
		h.WriteString(v)
	case []any:
		h.WriteByte('a')
		writeInt(h, len(v))
		for _, e := range v {
			hashValue(h, e)
		}
	case map[string]any:
		// Combine the entry hashes with addition, so that the result
		// does not depend on iteration order.
		var sum uint64
		for k, e := range v {
			sum += entryHash(k, func(h *maphash.Hash) { hashValue(h, e) })
		}
		h.WriteByte('o')
		writeUint64(h, sum)
	default:
		h.WriteByte('#')
		if r, ok := jsonNumber(v); ok {
			h.WriteString(r.RatString())
		} else {
			h.WriteString(fmt.Sprint(v))
		}
	}
}

// entryHash returns a standalone hash of a map entry, for order-independent
// combination.
func entryHash(key string, value func(*maphash.Hash)) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteString(key)
	h.WriteByte(0)
	value(&h)
	return h.Sum64()
}

func writeInt(h *maphash.Hash, n int) {
	writeUint64(h, uint64(n))
}

func writeUint64(h *maphash.Hash, u uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	h.Write(b[:])
}

// wrapf wraps *errp with the given formatted message if *errp is not nil.
func wrapf(errp *error, format string, args ...any) {
	if *errp != nil {
		*errp = fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), *errp)
	}
}

// sortedKeys returns the keys of m in increasing order.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
