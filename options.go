// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonschema

import (
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Options control parsing and evaluation.
// A nil *Options is equivalent to a zero Options, which selects the defaults
// described on each field.
type Options struct {
	// OutputFormat selects how a [Result] marshals. The default is [Basic].
	OutputFormat OutputFormat

	// DialectOverride, if set, is the spec version of every resource,
	// regardless of what the resource declares.
	DialectOverride SpecVersion

	// DefaultDialect is the spec version of a document that does not declare
	// one with $schema. The default is [Draft202012].
	DefaultDialect SpecVersion

	// ApplyOptimizations enables fail-fast evaluation: once the outcome of a
	// schema or keyword is decided, its remaining parts are skipped.
	// The verdict is unchanged, but results carry fewer errors and annotations.
	ApplyOptimizations bool

	// Logger receives a debug trace of evaluation. If nil, nothing is logged.
	Logger *slog.Logger
	// LogIndent, if positive, is the number of spaces per nesting level
	// prepended to each trace message.
	LogIndent int

	// UnknownKeywords says what Parse does with keywords it does not know.
	UnknownKeywords UnknownKeywordPolicy

	// BaseURI is the URI a parsed document was retrieved from.
	BaseURI string

	// Registry, if set, resolves references that leave the document.
	Registry *Registry

	// AssertFormat makes the format keyword an assertion in every dialect.
	AssertFormat bool

	// MaxDepth bounds the nesting of schema evaluations.
	// If zero, it is 1000.
	MaxDepth int
	// MaxSteps bounds the number of schema evaluations in one call.
	// If zero, there is no bound.
	MaxSteps int

	// Language selects the language of error messages. The default is English.
	Language language.Tag
	// Catalog, if set, supplies message templates in place of the defaults.
	Catalog catalog.Catalog
}

// An UnknownKeywordPolicy says how to treat keywords that are not known.
type UnknownKeywordPolicy int

const (
	// IgnoreUnknown keeps unknown keywords. They annotate their value and never fail.
	IgnoreUnknown UnknownKeywordPolicy = iota
	// RejectUnknown makes an unknown keyword a parse error.
	RejectUnknown
)

const defaultMaxDepth = 1000

func (o *Options) outputFormat() OutputFormat {
	if o == nil || o.OutputFormat == 0 {
		return Basic
	}
	return o.OutputFormat
}

func (o *Options) dialectOverride() SpecVersion {
	if o == nil {
		return VersionUnspecified
	}
	return o.DialectOverride
}

func (o *Options) defaultDialect() SpecVersion {
	if o == nil || o.DefaultDialect == VersionUnspecified {
		return Draft202012
	}
	return o.DefaultDialect
}

func (o *Options) fast() bool { return o != nil && o.ApplyOptimizations }

func (o *Options) unknownKeywords() UnknownKeywordPolicy {
	if o == nil {
		return IgnoreUnknown
	}
	return o.UnknownKeywords
}

func (o *Options) baseURI() string {
	if o == nil {
		return ""
	}
	return o.BaseURI
}

func (o *Options) registry() *Registry {
	if o == nil {
		return nil
	}
	return o.Registry
}

func (o *Options) assertFormat() bool { return o != nil && o.AssertFormat }

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) maxSteps() int {
	if o == nil {
		return 0
	}
	return o.MaxSteps
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o *Options) logIndent() int {
	if o == nil {
		return 0
	}
	return o.LogIndent
}

func (o *Options) language() language.Tag {
	if o == nil || o.Language == language.Und {
		return language.English
	}
	return o.Language
}

func (o *Options) catalog() catalog.Catalog {
	if o == nil || o.Catalog == nil {
		return defaultCatalog()
	}
	return o.Catalog
}
