// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

// Evaluate evaluates instance against s and returns the result.
//
// The instance must be a JSON value: nil, a bool, a string, a number
// (including json.Number), a []any or a map[string]any, or any value that
// encoding/json can marshal.
//
// Evaluate returns an error only if instance is not a JSON value, or if the
// evaluation exceeds the budgets of opts, in which case the error wraps
// [ErrResourceExhausted]. Failures of the instance to conform to the schema,
// including unresolvable references, are reported in the Result.
func Evaluate(s *Schema, instance any, opts *Options) (_ *Result, err error) {
	defer wrapf(&err, "evaluating %s", s)

	v, err := normalize(instance)
	if err != nil {
		return nil, err
	}
	st := &state{
		opts:     opts,
		logger:   opts.logger(),
		registry: opts.registry(),
		dialects: map[*Schema]*Dialect{},
		active:   map[activeRef]bool{},
		refs:     map[refKey]*Schema{},
	}
	root := st.evalSchema(s, v, "", "", nil, 0)
	if st.err != nil {
		return nil, st.err
	}
	return &Result{Valid: root.Valid, root: root, format: opts.outputFormat()}, nil
}

// Validate reports whether instance conforms to s.
// It returns nil if it does, and a *[ValidationError] if it does not.
// Other errors are as for [Evaluate].
func (s *Schema) Validate(instance any, opts *Options) error {
	res, err := Evaluate(s, instance, opts)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}
	return &ValidationError{Result: res, Failures: res.Output(Basic).Details}
}
