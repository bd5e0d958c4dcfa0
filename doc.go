// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package jsonschema evaluates JSON values against schemas written in the
[JSON Schema specification], drafts 6, 7, 2019-09 and 2020-12, and the
in-progress next draft.

# Parsing

[Parse] reads a schema document into an immutable [Schema]. Each member of a
schema object becomes a [Keyword]. Keywords keep their declaration order, and
keywords the package does not know are kept verbatim unless
[Options.UnknownKeywords] rejects them. A malformed document yields a
*[ParseError] naming the keyword, what it expected, and where.

# Dialects

The keywords in effect for a schema resource depend on its dialect: a spec
version and a set of vocabularies. A resource declares its dialect with
$schema, either a standard meta-schema URI or the URI of a registered custom
meta-schema whose $vocabulary lists the vocabularies. A resource without
$schema inherits the dialect of its enclosing resource. [Options.DialectOverride]
replaces every declaration, and [Options.DefaultDialect] applies when nothing
is declared. A keyword that is not active in the dialect is ignored entirely.

# Evaluation

[Evaluate] applies a schema to an instance, which must be a Go value that
looks like the result of unmarshaling a JSON value into an [any]. For example,
the JSON value

	{"name": "Al", "scores": [90, 80, 100]}

could be represented as

	map[string]any{
		"name": "Al",
		"scores": []any{90, 80, 100},
	}

Use [DecodeInstance] to decode JSON without losing numeric precision.

The [Result] is a tree of [Node]s, one for each schema evaluated at each
instance location. It marshals in one of the output formats of the
specification: [Flag], [Basic], [Detailed] or [Verbose].

Keywords that apply to one kind of instance, such as properties for objects,
are satisfied by instances of other kinds.

# References

References are resolved against the base URI of the resource containing
them, first within the document and then in [Options.Registry].
A [Registry] may fetch unknown documents with a [Loader].
An unresolvable reference makes its schema invalid; it is not a parse error.
$dynamicRef and $recursiveRef follow the dynamic scope: the resources entered
during evaluation. A reference that re-enters a schema at the same instance
location fails with [KindCycle].

# Deviations from the specification

Regular expressions are processed with Go's regexp package, which differs from ECMA 262,
most significantly in not supporting back-references.
See [this table of differences] for more.

The format keyword asserts only when [Options.AssertFormat] is set or the
dialect includes the format-assertion vocabulary. Otherwise it only annotates.

[JSON Schema specification]: https://json-schema.org
[this table of differences]: https://github.com/dlclark/regexp2?tab=readme-ov-file#compare-regexp-and-regexp2
*/
package jsonschema
