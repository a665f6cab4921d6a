// Package validate holds the value validators used by document schemas.
//
// Each validator takes a raw value, which may be wrapped in dryc.Spanned, and
// returns its normalized form or a *dryc.Error carrying the value's line.
// Validators also accept values they have already normalized, so running a
// schema twice over the same object is a no-op.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/reoring/dryc"
)

var (
	idRe       = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	relIDRe    = regexp.MustCompile(`^(?:#[A-Za-z0-9_-]+|\.*[A-Za-z0-9_-]+(?:\.[A-Za-z0-9_-]+)*)$`)
	tagSplitRe = regexp.MustCompile(`[\s,;]+`)
)

func invalid(line int, raw any, format string, a ...any) error {
	return dryc.ErrorAt(line, dryc.CodeInvalidValue, format, a...).WithValue(raw)
}

// Integer parses a whole number. Any fractional part is truncated.
func Integer(v any) (any, error) {
	n, err := toInt(v)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func toInt(v any) (int, error) {
	raw, line := dryc.Unwrap(v)
	switch t := raw.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if fitsInt(t) {
			return int(math.Trunc(t)), nil
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil && fitsInt(f) {
			return int(math.Trunc(f)), nil
		}
	}
	return 0, invalid(line, v, "Not a valid whole number")
}

// fitsInt reports whether f truncates to a value an int can hold. NaN and
// infinities fail the comparison.
func fitsInt(f float64) bool {
	return f >= math.MinInt && f < -float64(math.MinInt)
}

// Bound is one end of an integer range; the zero Bound is open.
type Bound struct {
	n   int
	set bool
}

// Bounded returns a closed bound at n.
func Bounded(n int) Bound { return Bound{n: n, set: true} }

// Unbounded is an open range end.
var Unbounded = Bound{}

// RangedInteger returns a validator accepting whole numbers in [min, max].
func RangedInteger(min, max Bound) func(any) (any, error) {
	return func(v any) (any, error) {
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if (min.set && n < min.n) || (max.set && n > max.n) {
			line := dryc.LineOf(v)
			switch {
			case min.set && max.set:
				return nil, invalid(line, v, "%d is not in range %d-%d", n, min.n, max.n)
			case min.set:
				return nil, invalid(line, v, "%d is not in range %d+", n, min.n)
			default:
				return nil, invalid(line, v, "%d is not in range -%d", n, max.n)
			}
		}
		return n, nil
	}
}

var (
	yesRe = regexp.MustCompile(`^(?i:yes|true|t|y|ok)$`)
	noRe  = regexp.MustCompile(`^(?i:no|false|f|n)$`)
)

// Boolean accepts yes/no words and falls back to the truthiness of a whole
// number.
func Boolean(v any) (any, error) {
	raw, line := dryc.Unwrap(v)
	switch t := raw.(type) {
	case bool:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if yesRe.MatchString(s) {
			return true, nil
		}
		if noRe.MatchString(s) {
			return false, nil
		}
	}
	if n, err := toInt(v); err == nil {
		return n != 0, nil
	}
	return nil, invalid(line, v, "Not a valid yes/no value")
}

// Equal returns a validator that only accepts expected. Both sides are
// trimmed before comparing; label names the field in messages.
func Equal(label, expected string) func(any) (any, error) {
	want := strings.TrimSpace(expected)
	return func(v any) (any, error) {
		raw, line := dryc.Unwrap(v)
		s, ok := raw.(string)
		if !ok && raw != nil {
			s = fmt.Sprint(raw)
		}
		got := strings.TrimSpace(s)
		if !ok || got != want {
			return nil, invalid(line, v, "%s must be '%s', not '%s'", label, want, got)
		}
		return want, nil
	}
}

// Identifier accepts an id with an optional leading @, which is removed.
func Identifier(v any) (any, error) {
	raw, line := dryc.Unwrap(v)
	s, ok := raw.(string)
	id := strings.TrimPrefix(strings.TrimSpace(s), "@")
	if !ok || !idRe.MatchString(id) {
		return nil, invalid(line, v, "'%s' is not a valid id", s)
	}
	return id, nil
}

// RelativeID accepts an id that may be relative to the current scene
// (.section, ..sibling, scene.section) or a #tag. A leading @ is removed.
func RelativeID(v any) (any, error) {
	raw, line := dryc.Unwrap(v)
	s, ok := raw.(string)
	id := strings.TrimPrefix(strings.TrimSpace(s), "@")
	if !ok || !relIDRe.MatchString(id) {
		return nil, invalid(line, v, "'%s' is not a valid relative id", s)
	}
	return id, nil
}

// OptionRef accepts an option target: @id (absolute or relative) or #tag.
// The sigil is kept so resolvers can tell the two apart.
func OptionRef(v any) (any, error) {
	raw, line := dryc.Unwrap(v)
	s, _ := raw.(string)
	ref := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(ref, "@") && relIDRe.MatchString(ref[1:]) && !strings.HasPrefix(ref, "@#"):
		return ref, nil
	case strings.HasPrefix(ref, "#") && idRe.MatchString(ref[1:]):
		return ref, nil
	}
	return nil, invalid(line, v, "'%s' is not a valid option id or tag", s)
}

// TagList splits a tag declaration on whitespace, commas and semicolons and
// returns the tags without their optional leading #.
func TagList(v any) (any, error) {
	raw, line := dryc.Unwrap(v)
	var tokens []string
	switch t := raw.(type) {
	case string:
		tokens = tagSplitRe.Split(t, -1)
	case []string:
		tokens = t
	case []any:
		for _, it := range t {
			s, ok := dryc.AsString(it)
			if !ok {
				return nil, invalid(line, v, "Not a valid tag list")
			}
			tokens = append(tokens, s)
		}
	default:
		return nil, invalid(line, v, "Not a valid tag list")
	}

	tags := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		tag := strings.TrimPrefix(tok, "#")
		if !idRe.MatchString(tag) {
			return nil, invalid(line, v, "Tag %d ('%s') is not valid", len(tags)+1, tok)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
