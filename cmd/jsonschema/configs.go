// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/evalschema/jsonschema"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	V      int  `cli:"name=v desc='verbosity: 1 logs progress, 2 traces evaluation'"`
	Color  bool `cli:"name=color desc='color verdicts'"`
	Gops   bool `cli:"name=gops desc='start a gops diagnostics agent'"`
	Strict bool `cli:"name=strict desc='reject schemas with unknown keywords'"`

	// Dialect is set by -d.
	Dialect jsonschema.SpecVersion
	// Override is set by -force-dialect.
	Override jsonschema.SpecVersion

	ctx    context.Context
	logger *slog.Logger

	Main *cli.Command
}

func (cfg *MainConfig) dialectFunc() cli.FuncOpt { return versionFunc(&cfg.Dialect) }

func (cfg *MainConfig) overrideFunc() cli.FuncOpt { return versionFunc(&cfg.Override) }

func versionFunc(dst *jsonschema.SpecVersion) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		d, err := jsonschema.ParseSpecVersion(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*dst = d
		return d, nil
	})
}

// setLogger builds the command's logger from -v.
func (cfg *MainConfig) setLogger(w io.Writer) {
	level := slog.LevelWarn
	switch {
	case cfg.V >= 2:
		level = slog.LevelDebug
	case cfg.V == 1:
		level = slog.LevelInfo
	}
	cfg.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// options returns the library options shared by all commands.
func (cfg *MainConfig) options() *jsonschema.Options {
	opts := &jsonschema.Options{
		DefaultDialect:  cfg.Dialect,
		DialectOverride: cfg.Override,
		Logger:          cfg.logger,
	}
	if cfg.Strict {
		opts.UnknownKeywords = jsonschema.RejectUnknown
	}
	if cfg.V >= 2 {
		opts.LogIndent = 2
	}
	return opts
}

// useColor reports whether verdicts written to w are colored.
// Without an explicit -color, they are when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type ValidateConfig struct {
	*MainConfig
	Fast         bool `cli:"name=fast desc='stop evaluating once the verdict is known'"`
	AssertFormat bool `cli:"name=assert-format desc='treat format as an assertion'"`
	Jobs         int  `cli:"name=j desc='number of instances validated at once (default GOMAXPROCS)'"`

	// Output is set by -o. If zero, only verdicts are printed.
	Output jsonschema.OutputFormat
	// Refs lists the schema files registered by -r.
	Refs []string

	Validate *cli.Command
}

func (cfg *ValidateConfig) outputFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := jsonschema.ParseOutputFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Output = f
		return f, nil
	})
}

func (cfg *ValidateConfig) refFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		cfg.Refs = append(cfg.Refs, v)
		return v, nil
	})
}

func (cfg *ValidateConfig) options() *jsonschema.Options {
	opts := cfg.MainConfig.options()
	opts.ApplyOptimizations = cfg.Fast
	opts.AssertFormat = cfg.AssertFormat
	if cfg.Output != 0 {
		opts.OutputFormat = cfg.Output
	}
	return opts
}

func (cfg *ValidateConfig) jobs() int {
	if cfg.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return cfg.Jobs
}

type DescribeConfig struct {
	*MainConfig
	HTML bool `cli:"name=html desc='render HTML instead of Markdown'"`

	Describe *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Fmt *cli.Command
}
