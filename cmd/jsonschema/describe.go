// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/evalschema/jsonschema"
	"github.com/scott-cotton/cli"
	"github.com/yuin/goldmark"
)

func describe(cfg *DescribeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Describe.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: describe requires one schema, got %v", cli.ErrUsage, args)
	}
	s, err := parseFile(cc.In, args[0], cfg.options())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	md := outline(s)
	if !cfg.HTML {
		_, err := cc.Out.Write(md)
		return err
	}
	return goldmark.Convert(md, cc.Out)
}

// outline returns a Markdown section for each schema under s that has
// a title, a description or is deprecated, in document order.
func outline(s *jsonschema.Schema) []byte {
	var buf bytes.Buffer
	for sub := range s.Subschemas() {
		title := stringKeyword(sub, "title")
		desc := stringKeyword(sub, "description")
		dep, _ := sub.KeywordValue("deprecated")
		if title == "" && desc == "" && dep != true {
			continue
		}
		_, ptr, _ := strings.Cut(sub.Location(), "#")
		if ptr == "" {
			ptr = "/"
		}
		fmt.Fprintf(&buf, "## `%s`\n\n", ptr)
		if title != "" {
			fmt.Fprintf(&buf, "**%s**\n\n", title)
		}
		if t := typeString(sub); t != "" {
			fmt.Fprintf(&buf, "Type: %s\n\n", t)
		}
		if desc != "" {
			fmt.Fprintf(&buf, "%s\n\n", desc)
		}
		if dep == true {
			buf.WriteString("*Deprecated.*\n\n")
		}
	}
	return buf.Bytes()
}

func stringKeyword(s *jsonschema.Schema, name string) string {
	v, _ := s.KeywordValue(name)
	str, _ := v.(string)
	return str
}

// typeString renders the type keyword of s, or "" if it has none.
func typeString(s *jsonschema.Schema) string {
	v, ok := s.KeywordValue("type")
	if !ok {
		return ""
	}
	var names []string
	switch v := v.(type) {
	case string:
		names = []string{v}
	case []any:
		for _, n := range v {
			names = append(names, fmt.Sprint(n))
		}
	}
	for i, n := range names {
		names[i] = "`" + n + "`"
	}
	return strings.Join(names, " or ")
}
