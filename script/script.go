package script

import (
	"fmt"
	"time"

	strictjson "github.com/openhomelab/strictjson"
	"github.com/openhomelab/strictjson/dsl"
)

// DefaultCooldown is used when a trigger does not pick a cooldown.
const DefaultCooldown = 10 * time.Minute

// ServiceID names a device service on the hub.
type ServiceID string

// Script is a monitor application: requirements on devices, resources
// allocated to them, and a set of rules stating what must be done in
// which circumstance.
type Script struct {
	Requirements []Requirement
	Allocations  []Resource
	Rules        []Trigger
}

// Requirement describes a device the script needs, e.g. "a thermometer
// that reports temperature".
type Requirement struct {
	Kind    string
	Inputs  []string
	Outputs []string
	Min     int // minimal number of matching devices, default 1
	Max     int // maximal number handled, default Min
}

// Resource is the set of services allocated for one requirement.
type Resource struct {
	Services []ServiceID
}

// Trigger is a single rule: when the conjunction of conditions becomes
// true, execute the statements.
type Trigger struct {
	When     []Condition
	Do       []Statement
	Cooldown time.Duration
}

// Condition holds when data received from a service is in a given range.
type Condition struct {
	Service    ServiceID
	Capability string
	Range      Range
}

// Statement sends typed arguments to an output's capability.
type Statement struct {
	Destination int // index into the script's allocations
	Action      string
	Args        map[string]Value
}

// Parse decodes a script document.
func Parse(v strictjson.Value) (Script, error) {
	return strictjson.Decode(ScriptParser(), v)
}

// ScriptParser parses the top-level script object. Only "rules" is
// required; requirements and allocations may be omitted by scripts that
// bind services directly.
func ScriptParser() strictjson.Parser[Script] {
	return strictjson.ParserFunc[Script](func(v strictjson.Value, at strictjson.Path) (Script, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return Script{}, err
		}
		reqs, err := strictjson.OptionalOr(f, "requirements", dsl.Array(RequirementParser()), nil)
		if err != nil {
			return Script{}, err
		}
		allocs, err := strictjson.OptionalOr(f, "allocations", dsl.Array(ResourceParser()), nil)
		if err != nil {
			return Script{}, err
		}
		rules, err := strictjson.Field(f, "rules", dsl.Array(TriggerParser()))
		if err != nil {
			return Script{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Script{}, err
		}
		return Script{Requirements: reqs, Allocations: allocs, Rules: rules}, nil
	})
}

// RequirementParser parses one device requirement.
func RequirementParser() strictjson.Parser[Requirement] {
	return strictjson.ParserFunc[Requirement](func(v strictjson.Value, at strictjson.Path) (Requirement, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return Requirement{}, err
		}
		kind, err := strictjson.Field(f, "kind", dsl.String())
		if err != nil {
			return Requirement{}, err
		}
		inputs, err := strictjson.OptionalOr(f, "inputs", dsl.Array(dsl.String()), nil)
		if err != nil {
			return Requirement{}, err
		}
		outputs, err := strictjson.OptionalOr(f, "outputs", dsl.Array(dsl.String()), nil)
		if err != nil {
			return Requirement{}, err
		}
		min, err := strictjson.OptionalOr(f, "min", nonNegativeInt(), 1)
		if err != nil {
			return Requirement{}, err
		}
		max, err := strictjson.OptionalOr(f, "max", nonNegativeInt(), min)
		if err != nil {
			return Requirement{}, err
		}
		if max < min {
			return Requirement{}, strictjson.InvalidValue(at.Field("max"), fmt.Sprintf("max %d is below min %d", max, min))
		}
		if err := f.CheckFields(); err != nil {
			return Requirement{}, err
		}
		return Requirement{Kind: kind, Inputs: inputs, Outputs: outputs, Min: min, Max: max}, nil
	})
}

// ResourceParser parses a resource: an array of service ids.
func ResourceParser() strictjson.Parser[Resource] {
	ids := dsl.Convert(dsl.Array(dsl.String()), func(at strictjson.Path, ss []string) ([]ServiceID, error) {
		out := make([]ServiceID, len(ss))
		for i, s := range ss {
			out[i] = ServiceID(s)
		}
		return out, nil
	})
	return strictjson.ParserFunc[Resource](func(v strictjson.Value, at strictjson.Path) (Resource, error) {
		services, err := ids.Parse(v, at)
		if err != nil {
			return Resource{}, err
		}
		return Resource{Services: services}, nil
	})
}

// TriggerParser parses one rule. "when" is the conjunction of conditions,
// "do" the statements to execute, "cooldown" an optional duration value
// bounding how often the trigger may fire.
func TriggerParser() strictjson.Parser[Trigger] {
	return strictjson.ParserFunc[Trigger](func(v strictjson.Value, at strictjson.Path) (Trigger, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return Trigger{}, err
		}
		when, err := strictjson.Field(f, "when", dsl.Array(ConditionParser()))
		if err != nil {
			return Trigger{}, err
		}
		do, err := strictjson.Field(f, "do", dsl.Array(StatementParser()))
		if err != nil {
			return Trigger{}, err
		}
		cooldown, err := strictjson.OptionalOr(f, "cooldown", durationParser(), DefaultCooldown)
		if err != nil {
			return Trigger{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Trigger{}, err
		}
		return Trigger{When: when, Do: do, Cooldown: cooldown}, nil
	})
}

// ConditionParser parses one condition: a service, the capability to
// watch, and an optional acceptance range (absent means any value).
func ConditionParser() strictjson.Parser[Condition] {
	return strictjson.ParserFunc[Condition](func(v strictjson.Value, at strictjson.Path) (Condition, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return Condition{}, err
		}
		service, err := strictjson.Field(f, "service", dsl.String())
		if err != nil {
			return Condition{}, err
		}
		capability, err := strictjson.Field(f, "capability", dsl.String())
		if err != nil {
			return Condition{}, err
		}
		rng, err := strictjson.OptionalOr(f, "range", RangeParser(), Any())
		if err != nil {
			return Condition{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Condition{}, err
		}
		return Condition{Service: ServiceID(service), Capability: capability, Range: rng}, nil
	})
}

// StatementParser parses one statement: the allocation index to act on,
// the capability to invoke, and its typed arguments.
func StatementParser() strictjson.Parser[Statement] {
	return strictjson.ParserFunc[Statement](func(v strictjson.Value, at strictjson.Path) (Statement, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return Statement{}, err
		}
		dest, err := strictjson.Field(f, "output", nonNegativeInt())
		if err != nil {
			return Statement{}, err
		}
		action, err := strictjson.Field(f, "capability", dsl.String())
		if err != nil {
			return Statement{}, err
		}
		args, err := strictjson.OptionalOr(f, "args", dsl.MapOf(ValueParser()), nil)
		if err != nil {
			return Statement{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Statement{}, err
		}
		return Statement{Destination: dest, Action: action, Args: args}, nil
	})
}

// RangeParser parses a condition range:
//
//	[null, max]         -> Leq
//	[min, null]         -> Geq
//	[min, max]          -> BetweenEq
//	["notin", min, max] -> OutOfStrict
//	any other value     -> Eq
func RangeParser() strictjson.Parser[Range] {
	return strictjson.ParserFunc[Range](func(v strictjson.Value, at strictjson.Path) (Range, error) {
		if v.Kind() != strictjson.KindArray {
			val, err := ValueParser().Parse(v, at)
			if err != nil {
				return Range{}, err
			}
			return Eq(val), nil
		}
		arr, err := v.AsArray(at)
		if err != nil {
			return Range{}, err
		}
		switch len(arr) {
		case 2:
			lo, hi := arr[0], arr[1]
			switch {
			case lo.IsNull():
				max, err := ValueParser().Parse(hi, at.Index(1))
				if err != nil {
					return Range{}, err
				}
				return Leq(max), nil
			case hi.IsNull():
				min, err := ValueParser().Parse(lo, at.Index(0))
				if err != nil {
					return Range{}, err
				}
				return Geq(min), nil
			default:
				min, err := ValueParser().Parse(lo, at.Index(0))
				if err != nil {
					return Range{}, err
				}
				max, err := ValueParser().Parse(hi, at.Index(1))
				if err != nil {
					return Range{}, err
				}
				return BetweenEq(min, max), nil
			}
		case 3:
			tag, err := arr[0].AsString(at.Index(0))
			if err != nil {
				return Range{}, err
			}
			if tag != "notin" {
				return Range{}, strictjson.InvalidValue(at.Index(0), fmt.Sprintf("unexpected range tag %q", tag))
			}
			min, err := ValueParser().Parse(arr[1], at.Index(1))
			if err != nil {
				return Range{}, err
			}
			max, err := ValueParser().Parse(arr[2], at.Index(2))
			if err != nil {
				return Range{}, err
			}
			return OutOfStrict(min, max), nil
		default:
			return Range{}, strictjson.InvalidValue(at, fmt.Sprintf("range must have 2 or 3 elements, got %d", len(arr)))
		}
	})
}

// ValueParser parses a typed script value. Strings and booleans pass
// through; objects carry a "type" discriminator, except the empty object
// which denotes the unit value.
func ValueParser() strictjson.Parser[Value] {
	return strictjson.ParserFunc[Value](parseValue)
}

func parseValue(v strictjson.Value, at strictjson.Path) (Value, error) {
	switch v.Kind() {
	case strictjson.KindString:
		s, _ := v.AsString(at)
		return StringValue(s), nil
	case strictjson.KindBool:
		b, _ := v.AsBool(at)
		return BoolValue(b), nil
	case strictjson.KindObject:
		return parseValueObject(v, at)
	default:
		return Value{}, strictjson.InvalidValue(at, "expected a string, bool, or typed value object, got "+v.Kind().String())
	}
}

func parseValueObject(v strictjson.Value, at strictjson.Path) (Value, error) {
	f, err := strictjson.ObjectFields(v, at)
	if err != nil {
		return Value{}, err
	}
	obj, _ := v.AsObject(at)
	if obj.Len() == 0 {
		return UnitValue(), nil
	}
	typ, err := strictjson.Field(f, "type", dsl.String())
	if err != nil {
		return Value{}, err
	}
	switch typ {
	case "ExtNumeric":
		value, err := strictjson.Field(f, "value", dsl.Number())
		if err != nil {
			return Value{}, err
		}
		vendor, err := strictjson.OptionalOr(f, "vendor", dsl.String(), "<unknown vendor>")
		if err != nil {
			return Value{}, err
		}
		adapter, err := strictjson.OptionalOr(f, "adapter", dsl.String(), "<unknown adapter>")
		if err != nil {
			return Value{}, err
		}
		kind, err := strictjson.Field(f, "kind", dsl.String())
		if err != nil {
			return Value{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Value{}, err
		}
		return ExtNumericValue(ExtNumeric{Value: value, Vendor: vendor, Adapter: adapter, Kind: kind}), nil
	case "Duration":
		secs, err := strictjson.OptionalOr(f, "s", nonNegativeInt64(), 0)
		if err != nil {
			return Value{}, err
		}
		nanos, err := strictjson.OptionalOr(f, "ns", nonNegativeInt64(), 0)
		if err != nil {
			return Value{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Value{}, err
		}
		return DurationValue(time.Duration(secs)*time.Second + time.Duration(nanos)*time.Nanosecond), nil
	case "Temperature":
		value, err := strictjson.Field(f, "value", dsl.Number())
		if err != nil {
			return Value{}, err
		}
		unit, err := strictjson.Field(f, "unit", dsl.OneOf("F", "C"))
		if err != nil {
			return Value{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Value{}, err
		}
		return TemperatureValue(Temperature{Degrees: value, Unit: TempUnit(unit)}), nil
	case "Json":
		raw, err := strictjson.Field(f, "value", dsl.Raw())
		if err != nil {
			return Value{}, err
		}
		if err := f.CheckFields(); err != nil {
			return Value{}, err
		}
		return JSONValue(raw), nil
	case "TimeStamp", "Color", "Binary":
		return Value{}, strictjson.InvalidValue(at.Field("type"), fmt.Sprintf("unsupported value type %q", typ))
	default:
		return Value{}, strictjson.InvalidValue(at.Field("type"), fmt.Sprintf("unknown value type %q", typ))
	}
}

// durationParser accepts a typed Duration value only.
func durationParser() strictjson.Parser[time.Duration] {
	return dsl.Convert(ValueParser(), func(at strictjson.Path, v Value) (time.Duration, error) {
		d, ok := v.AsDuration()
		if !ok {
			return 0, fmt.Errorf("expected a duration value, got %s", v.Type())
		}
		return d, nil
	})
}

func nonNegativeInt() strictjson.Parser[int] {
	return dsl.Convert(nonNegativeInt64(), func(at strictjson.Path, n int64) (int, error) {
		return int(n), nil
	})
}

func nonNegativeInt64() strictjson.Parser[int64] {
	return dsl.Refine(dsl.Int(), "non_negative", func(at strictjson.Path, n int64) error {
		if n < 0 {
			return strictjson.InvalidValue(at, fmt.Sprintf("expected a non-negative integer, got %d", n))
		}
		return nil
	})
}
