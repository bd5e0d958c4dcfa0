// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Jsonschema validates JSON and YAML documents against JSON Schemas.
//
// Usage:
//
//	jsonschema [-v N] [-d draft] [-force-dialect draft] [-strict] [-color] [-gops] command [opts] args...
//
// The -d flag sets the dialect of schemas that do not declare $schema;
// -force-dialect sets the dialect of every schema.
//
// The commands are:
//
//	validate [-o format] [-fast] [-assert-format] [-j N] [-r file]... schema instance...
//		evaluate each instance against schema and report its verdict;
//		the exit status is 1 if any instance is invalid
//	describe [-html] schema
//		print an outline of the titles and descriptions in schema
//	fmt schema
//		parse schema and print it indented
//
// Files whose names end in .yaml or .yml are read as YAML.
// The file name "-" denotes standard input, and may appear only once.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.MainContext(ctx, MainCommand(ctx))
}
