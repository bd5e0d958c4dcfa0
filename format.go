// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The format keyword.
// See https://json-schema.org/draft/2020-12/draft-bhutton-json-schema-validation-01#section-7.

package jsonschema

import (
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"golang.org/x/net/idna"
)

func init() {
	registerKeywords(&keywordInfo{
		name:     "format",
		versions: withVocab(since(Draft6, "format-annotation"), Draft201909, "format"),
		parse:    parseFormat,
	})
}

// formatKeyword always annotates its format name. It also asserts the format
// of strings if the Options say so or the dialect has the format-assertion
// vocabulary.
type formatKeyword struct {
	literal
	format string
}

func parseFormat(p *parser, v any, loc position) (Keyword, error) {
	s, err := p.string("format", v, loc)
	if err != nil {
		return nil, err
	}
	return &formatKeyword{literal{"format", s}, s}, nil
}

func (k *formatKeyword) evaluate(c *Context) {
	c.annotate(k.format)
	if !c.st.opts.assertFormat() && !c.dialect.hasVocabulary("format-assertion") {
		return
	}
	s, ok := c.str()
	if !ok {
		return
	}
	check, ok := formatCheckers[k.format]
	if !ok {
		c.trace("unknown format", "format", k.format)
		return
	}
	if !check(s) {
		c.fail("format", k.format)
	}
}

// FormatNames returns the names of the formats that can be asserted.
func FormatNames() []string { return sortedKeys(formatCheckers) }

var formatCheckers = map[string]func(string) bool{
	"date-time":             isDateTime,
	"date":                  isDate,
	"time":                  isTime,
	"duration":              isDuration,
	"email":                 isEmail,
	"idn-email":             isEmail,
	"hostname":              isHostname,
	"idn-hostname":          isIDNHostname,
	"ipv4":                  isIPv4,
	"ipv6":                  isIPv6,
	"uri":                   isURI,
	"uri-reference":         isURIReference,
	"iri":                   isURI,
	"iri-reference":         isURIReference,
	"uri-template":          isURITemplate,
	"uuid":                  uuidRE.MatchString,
	"regex":                 isRegex,
	"json-pointer":          isJSONPointer,
	"relative-json-pointer": isRelativeJSONPointer,
	"semver":                isSemver,
}

// isDateTime reports whether s is an RFC 3339 date-time.
// A leap second is accepted at the end of a UTC day.
func isDateTime(s string) bool {
	s = strings.ToUpper(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return true
	}
	// time.Parse rejects second 60.
	i := strings.IndexByte(s, 'T')
	if i < 0 || len(s) < i+9 || s[i+7:i+9] != "60" {
		return false
	}
	t, err = time.Parse(time.RFC3339Nano, s[:i+7]+"59"+s[i+9:])
	if err != nil {
		return false
	}
	t = t.UTC()
	return t.Hour() == 23 && t.Minute() == 59
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isTime(s string) bool {
	return isDateTime("1970-01-01T" + s)
}

var durationRE = regexp.MustCompile(`^P(?:(\d+Y)?(\d+M)?(\d+D)?(?:T(\d+H)?(\d+M)?(\d+S)?)?|\d+W)$`)

// isDuration reports whether s is an ISO 8601 duration, as in RFC 3339 Appendix A.
func isDuration(s string) bool {
	m := durationRE.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.HasSuffix(s, "T") {
		return false
	}
	return true
}

func isEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s && a.Name == ""
}

// isHostname reports whether s is an ASCII host name, as in RFC 1123.
// A-labels must be valid punycode.
func isHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
		if strings.HasPrefix(strings.ToLower(label), "xn--") {
			if _, err := idna.Registration.ToUnicode(label); err != nil {
				return false
			}
		} else if len(label) >= 4 && label[2:4] == "--" {
			return false // reserved for A-labels
		}
	}
	return true
}

// isIDNHostname reports whether s is an internationalized host name, as in RFC 5890.
func isIDNHostname(s string) bool {
	a, err := idna.Registration.ToASCII(s)
	return err == nil && isHostname(a)
}

func isIPv4(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is4()
}

func isIPv6(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is6() && a.Zone() == ""
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && !strings.ContainsAny(s, " \\")
}

func isURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil && !strings.ContainsAny(s, " \\")
}

// isURITemplate checks the brace structure of an RFC 6570 template.
func isURITemplate(s string) bool {
	open := false
	for _, r := range s {
		switch r {
		case '{':
			if open {
				return false
			}
			open = true
		case '}':
			if !open {
				return false
			}
			open = false
		}
	}
	return !open
}

var uuidRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}

func isJSONPointer(s string) bool {
	if s != "" && s[0] != '/' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && (i+1 == len(s) || s[i+1] != '0' && s[i+1] != '1') {
			return false
		}
	}
	return true
}

// isRelativeJSONPointer reports whether s is a non-negative integer
// followed by "#" or a JSON Pointer.
func isRelativeJSONPointer(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || (i > 1 && s[0] == '0') {
		return false
	}
	if _, err := strconv.Atoi(s[:i]); err != nil {
		return false
	}
	rest := s[i:]
	return rest == "#" || isJSONPointer(rest)
}

// isSemver reports whether s is a full Semantic Versioning 2.0 version,
// without a "v" prefix. Unlike Go module versions, all three numbers
// are required.
func isSemver(s string) bool {
	if !semver.IsValid("v" + s) {
		return false
	}
	core := s
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		core = s[:i]
	}
	return strings.Count(core, ".") == 2
}
