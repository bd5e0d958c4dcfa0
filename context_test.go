// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := MustParse(`{"properties": {"a": {"minLength": 3}}}`)
	res := mustEvaluate(t, s, `{"a": 1}`, &Options{Logger: lg, LogIndent: 2})
	if !res.Valid {
		t.Fatalf("wanted success, but failed with: %s", failures(res))
	}
	out := buf.String()
	for _, want := range []string{
		`msg="  schema"`,
		"evaluationPath=/properties/a",
		"instanceLocation=/a",
		"depth=1",
		`msg="  keyword not applicable" want=string got=integer`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace does not contain %q:\n%s", want, out)
		}
	}

	// Without a logger, nothing is written and evaluation is unchanged.
	buf.Reset()
	if res := mustEvaluate(t, s, `{"a": "ab"}`, nil); res.Valid {
		t.Error("succeeded but wanted failure")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
