// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/evalschema/jsonschema"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: validate requires a schema and at least one instance, got %v", cli.ErrUsage, args)
	}
	ok, err := cfg.run(cc.Out, cc.In, args[0], args[1:])
	if err != nil {
		return err
	}
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// A verdict is the outcome of validating one instance file.
type verdict struct {
	file string
	res  *jsonschema.Result
	err  error
}

// run validates the instance files against the schema in schemaFile and
// writes a verdict for each to w, in argument order.
// It reports whether every instance is valid.
func (cfg *ValidateConfig) run(w io.Writer, stdin io.Reader, schemaFile string, instances []string) (bool, error) {
	// Standard input can be read only once.
	if n := countStdin(schemaFile, instances, cfg.Refs); n > 1 {
		return false, fmt.Errorf("%w: standard input (-) named %d times", cli.ErrUsage, n)
	}
	opts := cfg.options()
	l := &loader{ctx: cfg.ctx, client: http.DefaultClient, opts: opts, logger: cfg.logger}
	reg, err := newRegistry(l, stdin, cfg.Refs)
	if err != nil {
		return false, err
	}
	opts.Registry = reg
	s, err := parseFile(stdin, schemaFile, opts)
	if err != nil {
		return false, fmt.Errorf("%s: %w", schemaFile, err)
	}

	verdicts := make([]verdict, len(instances))
	g, ctx := errgroup.WithContext(cfg.ctx)
	g.SetLimit(cfg.jobs())
	for i, file := range instances {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			verdicts[i] = check(stdin, s, file, opts)
			cfg.logger.Info("validated", "instance", file, "valid", verdicts[i].valid())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	valid, invalid := color.New(color.FgGreen, color.Bold), color.New(color.FgRed, color.Bold)
	if cfg.useColor(w) {
		valid.EnableColor()
		invalid.EnableColor()
	} else {
		valid.DisableColor()
		invalid.DisableColor()
	}
	all := true
	for _, v := range verdicts {
		switch {
		case v.err != nil:
			fmt.Fprintf(w, "%s: %s: %v\n", v.file, invalid.Sprint("error"), v.err)
		case v.res.Valid:
			fmt.Fprintf(w, "%s: %s\n", v.file, valid.Sprint("valid"))
		default:
			fmt.Fprintf(w, "%s: %s\n", v.file, invalid.Sprint("invalid"))
		}
		all = all && v.valid()
		if v.res != nil && cfg.Output != 0 {
			data, err := json.MarshalIndent(v.res.Output(cfg.Output), "", "  ")
			if err != nil {
				return false, err
			}
			fmt.Fprintf(w, "%s\n", data)
		}
	}
	return all, nil
}

func countStdin(schemaFile string, lists ...[]string) int {
	n := 0
	if schemaFile == "-" {
		n++
	}
	for _, list := range lists {
		for _, f := range list {
			if f == "-" {
				n++
			}
		}
	}
	return n
}

func check(stdin io.Reader, s *jsonschema.Schema, file string, opts *jsonschema.Options) verdict {
	v := verdict{file: file}
	data, err := readFile(stdin, file)
	if err != nil {
		v.err = err
		return v
	}
	inst, err := jsonschema.DecodeInstance(data)
	if err != nil {
		v.err = err
		return v
	}
	v.res, v.err = jsonschema.Evaluate(s, inst, opts)
	return v
}

func (v verdict) valid() bool { return v.err == nil && v.res.Valid }
