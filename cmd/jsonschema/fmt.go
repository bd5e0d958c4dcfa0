// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
)

// format parses a schema and prints it indented, with its members in
// declaration order. YAML schemas are printed as JSON.
func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fmt requires one schema, got %v", cli.ErrUsage, args)
	}
	s, err := parseFile(cc.In, args[0], cfg.options())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cc.Out, "%s\n", data)
	return err
}
