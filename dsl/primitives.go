// Package dsl provides ready-made parsers and combinators over the
// strictjson decoding protocol.
package dsl

import (
	"fmt"
	"math"

	strictjson "github.com/openhomelab/strictjson"
)

// Bool parses a JSON boolean.
func Bool() strictjson.Parser[bool] {
	return strictjson.ParserFunc[bool](func(v strictjson.Value, at strictjson.Path) (bool, error) {
		return v.AsBool(at)
	})
}

// Number parses a JSON number.
func Number() strictjson.Parser[float64] {
	return strictjson.ParserFunc[float64](func(v strictjson.Value, at strictjson.Path) (float64, error) {
		return v.AsNumber(at)
	})
}

// String parses a JSON string.
func String() strictjson.Parser[string] {
	return strictjson.ParserFunc[string](func(v strictjson.Value, at strictjson.Path) (string, error) {
		return v.AsString(at)
	})
}

// Int parses a JSON number that is integral and exactly representable,
// returning invalid_value otherwise.
func Int() strictjson.Parser[int64] {
	return strictjson.ParserFunc[int64](func(v strictjson.Value, at strictjson.Path) (int64, error) {
		f, err := v.AsNumber(at)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) {
			return 0, strictjson.InvalidValue(at, fmt.Sprintf("expected integer, got %v", f))
		}
		if f < -9007199254740992 || f > 9007199254740992 { // 2^53
			return 0, strictjson.InvalidValue(at, fmt.Sprintf("integer out of range: %v", f))
		}
		return int64(f), nil
	})
}

// Raw is the identity parser. It hands the Value through untouched, for
// fields whose content is deliberately opaque.
func Raw() strictjson.Parser[strictjson.Value] {
	return strictjson.ParserFunc[strictjson.Value](func(v strictjson.Value, at strictjson.Path) (strictjson.Value, error) {
		return v, nil
	})
}

// NumberIn parses a number constrained to [min, max].
func NumberIn(min, max float64) strictjson.Parser[float64] {
	return strictjson.ParserFunc[float64](func(v strictjson.Value, at strictjson.Path) (float64, error) {
		f, err := v.AsNumber(at)
		if err != nil {
			return 0, err
		}
		if f < min || f > max {
			return 0, strictjson.InvalidValue(at, fmt.Sprintf("number %v out of range [%v, %v]", f, min, max))
		}
		return f, nil
	})
}

// OneOf parses a string constrained to the given set.
func OneOf(allowed ...string) strictjson.Parser[string] {
	set := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}
	return strictjson.ParserFunc[string](func(v strictjson.Value, at strictjson.Path) (string, error) {
		s, err := v.AsString(at)
		if err != nil {
			return "", err
		}
		if _, ok := set[s]; !ok {
			return "", strictjson.InvalidValue(at, fmt.Sprintf("unexpected value %q", s))
		}
		return s, nil
	})
}

// Array parses a JSON array with elem applied to each element at its
// index. Elements are decoded in ascending index order and the first
// element error aborts the decode; later elements are never inspected.
func Array[E any](elem strictjson.Parser[E]) strictjson.Parser[[]E] {
	return strictjson.ParserFunc[[]E](func(v strictjson.Value, at strictjson.Path) ([]E, error) {
		arr, err := v.AsArray(at)
		if err != nil {
			return nil, err
		}
		out := make([]E, 0, len(arr))
		for i, ev := range arr {
			e, err := elem.Parse(ev, at.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	})
}

// Convert maps a parse result through fn. A plain error from fn becomes
// invalid_value at the current path; a *ParseError passes through.
func Convert[A, B any](p strictjson.Parser[A], fn func(at strictjson.Path, v A) (B, error)) strictjson.Parser[B] {
	return strictjson.ParserFunc[B](func(v strictjson.Value, at strictjson.Path) (B, error) {
		a, err := p.Parse(v, at)
		if err != nil {
			var zero B
			return zero, err
		}
		b, err := fn(at, a)
		if err != nil {
			var zero B
			if _, ok := strictjson.AsParseError(err); ok {
				return zero, err
			}
			return zero, strictjson.InvalidValue(at, err.Error())
		}
		return b, nil
	})
}

// Refine runs a post-parse validation hook. A plain error from fn becomes
// a custom error naming the rule; a *ParseError passes through.
func Refine[T any](p strictjson.Parser[T], name string, fn func(at strictjson.Path, v T) error) strictjson.Parser[T] {
	return strictjson.ParserFunc[T](func(v strictjson.Value, at strictjson.Path) (T, error) {
		out, err := p.Parse(v, at)
		if err != nil {
			var zero T
			return zero, err
		}
		if err := fn(at, out); err != nil {
			var zero T
			if _, ok := strictjson.AsParseError(err); ok {
				return zero, err
			}
			return zero, strictjson.Customf(at, "%s: %s", name, err.Error())
		}
		return out, nil
	})
}
