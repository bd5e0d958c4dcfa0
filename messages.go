// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file holds the messages recorded for failed keywords.
// A message is a template in which a token like [[failed]] is replaced by
// the JSON encoding of the parameter of that name.

package jsonschema

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// defaultMessages are the English templates, keyed by keyword name or by
// one of "false", "$schema", "refResolution" and "refCycle".
// Templates must not contain '%'.
var defaultMessages = map[string]string{
	"false":         "All values fail against the false schema",
	"$schema":       "The dialect of the schema could not be determined: [[error]]",
	"refResolution": "Could not resolve reference [[reference]]: [[error]]",
	"refCycle":      "Reference to [[target]] is already being evaluated at this location",

	"$ref":          "Value does not match the schema at [[target]]",
	"$dynamicRef":   "Value does not match the schema at [[target]]",
	"$recursiveRef": "Value does not match the schema at [[target]]",

	"allOf":                "Value does not match subschemas [[failed]]",
	"anyOf":                "Value does not match any of the subschemas",
	"oneOf":                "Value should match exactly one subschema but matches [[matched]]",
	"not":                  "Value should not match the schema",
	"then":                 "Value matches the if schema but not the then schema",
	"else":                 "Value does not match the if schema or the else schema",
	"dependentSchemas":     "Dependent schemas of properties [[failed]] are not satisfied",
	"propertyDependencies": "Dependent schemas of property values [[failed]] are not satisfied",
	"dependencies":         "Dependencies of properties [[failed]] are not satisfied",
	"dependentRequired":    "Properties required by other properties are missing: [[missing]]",

	"properties":            "Properties [[failed]] do not match their schemas",
	"patternProperties":     "Properties [[failed]] do not match their pattern schemas",
	"additionalProperties":  "Additional properties [[failed]] do not match the schema",
	"propertyNames":         "Property names [[failed]] do not match the schema",
	"unevaluatedProperties": "Unevaluated properties [[failed]] do not match the schema",
	"required":              "Required properties [[missing]] are not present",
	"minProperties":         "Value has [[received]] properties, fewer than [[limit]]",
	"maxProperties":         "Value has [[received]] properties, more than [[limit]]",

	"prefixItems":      "Items at [[failed]] do not match their schemas",
	"items":            "Items at [[failed]] do not match the schema",
	"additionalItems":  "Items at [[failed]] do not match the schema",
	"unevaluatedItems": "Unevaluated items at [[failed]] do not match the schema",
	"contains":         "Value has [[received]] matching items, fewer than [[limit]]",
	"maxContains":      "Value has [[received]] matching items, more than [[limit]]",
	"minItems":         "Value has [[received]] items, fewer than [[limit]]",
	"maxItems":         "Value has [[received]] items, more than [[limit]]",
	"uniqueItems":      "Items at [[duplicates]] are equal",

	"type":             "Value is [[received]] but should be [[expected]]",
	"enum":             "Value should be one of [[values]]",
	"const":            "Value should be [[value]]",
	"multipleOf":       "[[received]] is not a multiple of [[divisor]]",
	"minimum":          "[[received]] is less than [[limit]]",
	"maximum":          "[[received]] is greater than [[limit]]",
	"exclusiveMinimum": "[[received]] is less than or equal to [[limit]]",
	"exclusiveMaximum": "[[received]] is greater than or equal to [[limit]]",
	"minLength":        "Value has [[received]] characters, fewer than [[limit]]",
	"maxLength":        "Value has [[received]] characters, more than [[limit]]",
	"pattern":          "Value does not match the regular expression [[pattern]]",
	"format":           "Value is not a valid [[format]]",
}

var defaultCatalog = sync.OnceValue(func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, tmpl := range defaultMessages {
		if err := b.SetString(language.English, key, tmpl); err != nil {
			panic(err)
		}
	}
	return b
})

var (
	overridesMu sync.RWMutex
	overrides   = map[string]string{}
)

// SetMessage replaces the template for the given key in every language.
// The key is a keyword name, or one of "false" (the false schema),
// "$schema" (an unknown dialect), "refResolution" (an unresolvable reference)
// and "refCycle" (a reference cycle).
// An empty template restores the default.
func SetMessage(key, template string) {
	overridesMu.Lock()
	defer overridesMu.Unlock()
	if template == "" {
		delete(overrides, key)
	} else {
		overrides[key] = template
	}
}

// message returns the rendered message for key.
func (st *state) message(key string, params map[string]any) string {
	overridesMu.RLock()
	tmpl, ok := overrides[key]
	overridesMu.RUnlock()
	if !ok {
		p := message.NewPrinter(st.opts.language(), message.Catalog(st.opts.catalog()))
		tmpl = p.Sprintf(key)
	}
	return renderMessage(tmpl, params)
}

var tokenRE = regexp.MustCompile(`\[\[([A-Za-z0-9_]+)\]\]`)

// renderMessage replaces each [[name]] in tmpl by the JSON encoding of
// params[name]. Tokens without a parameter are left alone.
func renderMessage(tmpl string, params map[string]any) string {
	if !strings.Contains(tmpl, "[[") {
		return tmpl
	}
	return tokenRE.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := tok[2 : len(tok)-2]
		v, ok := params[name]
		if !ok {
			return tok
		}
		var buf strings.Builder
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return tok
		}
		return strings.TrimSuffix(buf.String(), "\n")
	})
}
