package script

import "fmt"

// RangeOp selects a Range's matching rule.
type RangeOp int

const (
	RangeAny RangeOp = iota
	RangeLeq
	RangeGeq
	RangeBetweenEq
	RangeOutOfStrict
	RangeEq
)

// Range is a condition's acceptance window over script values.
type Range struct {
	Op  RangeOp
	Min Value // Geq, BetweenEq, OutOfStrict
	Max Value // Leq, BetweenEq, OutOfStrict
	Val Value // Eq
}

// Any accepts all values.
func Any() Range { return Range{Op: RangeAny} }

// Leq accepts any value v such that v <= max.
func Leq(max Value) Range { return Range{Op: RangeLeq, Max: max} }

// Geq accepts any value v such that v >= min.
func Geq(min Value) Range { return Range{Op: RangeGeq, Min: min} }

// BetweenEq accepts any value v such that min <= v and v <= max. If
// max < min, it never accepts anything.
func BetweenEq(min, max Value) Range { return Range{Op: RangeBetweenEq, Min: min, Max: max} }

// OutOfStrict accepts any value v such that v < min or max < v.
func OutOfStrict(min, max Value) Range { return Range{Op: RangeOutOfStrict, Min: min, Max: max} }

// Eq accepts exactly the given value.
func Eq(val Value) Range { return Range{Op: RangeEq, Val: val} }

// Contains reports whether the range accepts v. Incomparable values never
// match, except through Eq's equality.
func (r Range) Contains(v Value) bool {
	switch r.Op {
	case RangeAny:
		return true
	case RangeLeq:
		c, ok := v.Compare(r.Max)
		return ok && c <= 0
	case RangeGeq:
		c, ok := v.Compare(r.Min)
		return ok && c >= 0
	case RangeBetweenEq:
		lo, okLo := v.Compare(r.Min)
		hi, okHi := v.Compare(r.Max)
		return okLo && okHi && lo >= 0 && hi <= 0
	case RangeOutOfStrict:
		lo, okLo := v.Compare(r.Min)
		hi, okHi := v.Compare(r.Max)
		return (okLo && lo < 0) || (okHi && hi > 0)
	case RangeEq:
		return v.Equal(r.Val)
	default:
		return false
	}
}

// OperandType returns the type the range's bounds constrain values to. ok
// is false when the range accepts any type. An error is returned when the
// two bounds disagree on type.
func (r Range) OperandType() (Type, bool, error) {
	switch r.Op {
	case RangeLeq:
		return r.Max.Type(), true, nil
	case RangeGeq:
		return r.Min.Type(), true, nil
	case RangeEq:
		return r.Val.Type(), true, nil
	case RangeBetweenEq, RangeOutOfStrict:
		if r.Min.Type() != r.Max.Type() {
			return 0, false, fmt.Errorf("range bounds disagree: %s vs %s", r.Min.Type(), r.Max.Type())
		}
		return r.Min.Type(), true, nil
	default:
		return 0, false, nil
	}
}
