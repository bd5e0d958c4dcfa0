// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts,
		&cli.Opt{
			Name:        "d",
			Aliases:     []string{"draft"},
			Description: "dialect of schemas without $schema: draft-06, draft-07, 2019-09, 2020-12 or next",
			Type:        cli.NamedFuncOpt(cfg.dialectFunc(), "(draft)"),
		},
		&cli.Opt{
			Name:        "force-dialect",
			Description: "dialect of every schema, whatever its $schema declares",
			Type:        cli.NamedFuncOpt(cfg.overrideFunc(), "(draft)"),
		})

	return cli.NewCommandAt(&cfg.Main, "jsonschema").
		WithSynopsis("jsonschema [opts] command [opts]").
		WithDescription("jsonschema validates JSON and YAML documents against JSON Schemas.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonschemaMain(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			DescribeCommand(cfg),
			FmtCommand(cfg))
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "o",
			Description: "output format: flag, basic, detailed or verbose",
			Type:        cli.NamedFuncOpt(cfg.outputFunc(), "(format)"),
		},
		&cli.Opt{
			Name:        "r",
			Description: "register a schema file for references; may be repeated",
			Type:        cli.NamedFuncOpt(cfg.refFunc(), "(file)"),
		})
	cmd := cli.NewCommand("validate").
		WithAliases("v", "val").
		WithSynopsis("validate [opts] schema instance...").
		WithDescription("validate instances against a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
	cfg.Validate = cmd
	return cmd
}

func DescribeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescribeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("describe").
		WithAliases("d", "desc").
		WithSynopsis("describe [-html] schema").
		WithDescription("outline the titles and descriptions of a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return describe(cfg, cc, args)
		})
	cfg.Describe = cmd
	return cmd
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithSynopsis("fmt schema").
		WithDescription("parse a schema and print it indented").
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}
