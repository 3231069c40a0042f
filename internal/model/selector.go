package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Selector addresses gateway resources (lights, groups, scenes) the way
// the CLI accepts them on the command line:
//
//   - an integer matches the resource's string-integer identifier
//   - a string wrapped in slashes ("/office.*/") is a case-insensitive
//     regular expression matched against resource names
//   - any other string matches resource names case-insensitively
//   - the empty string matches every resource
//
// A Selector is immutable after ParseSelector and safe for concurrent use.
type Selector struct {
	// raw is the original command-line token, kept for error messages.
	raw string

	// Exactly one of the following is populated for a non-empty selector.
	id      int
	hasID   bool
	name    string
	pattern *regexp.Regexp
}

// All is the selector that matches every resource.
var All = Selector{}

// ParseSelector classifies a command-line token into a Selector.
//
// Classification order matters: "42" must become an id match, not a name
// match, so integer conversion is attempted first. Regular expressions
// that fail to compile are reported as errors rather than silently
// degrading to name matches.
func ParseSelector(token string) (Selector, error) {
	if token == "" {
		return All, nil
	}

	// Integer identifiers take precedence over names.
	if id, err := strconv.Atoi(token); err == nil {
		return Selector{raw: token, id: id, hasID: true}, nil
	}

	// A token wrapped in slashes is a regular expression. Compiled with
	// (?i) to match the case-insensitive name handling used everywhere
	// else in the CLI.
	if len(token) >= 2 && strings.HasPrefix(token, "/") && strings.HasSuffix(token, "/") {
		expr := token[1 : len(token)-1]
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return Selector{}, fmt.Errorf("invalid selector regexp %q: %w", token, err)
		}
		return Selector{raw: token, pattern: re}, nil
	}

	// Plain name, matched case-insensitively.
	return Selector{raw: token, name: strings.ToLower(token)}, nil
}

// MustSelector is ParseSelector for tokens known to be valid, typically
// literals in tests. It panics on error.
func MustSelector(token string) Selector {
	sel, err := ParseSelector(token)
	if err != nil {
		panic(err)
	}
	return sel
}

// IsAll reports whether the selector matches every resource.
func (s Selector) IsAll() bool {
	return !s.hasID && s.name == "" && s.pattern == nil
}

// Matches tests a resource's string-integer identifier and name against
// the selector.
func (s Selector) Matches(id, name string) bool {
	switch {
	case s.IsAll():
		return true
	case s.hasID:
		// Gateway identifiers are decimal strings; compare numerically
		// so both "07" and "7" match id 7.
		n, err := strconv.Atoi(id)
		return err == nil && n == s.id
	case s.pattern != nil:
		return s.pattern.MatchString(name)
	default:
		return strings.ToLower(name) == s.name
	}
}

// String returns the original command-line token, or "<all>" for the
// match-everything selector. Used in warnings and error messages.
func (s Selector) String() string {
	if s.raw == "" {
		return "<all>"
	}
	return s.raw
}
