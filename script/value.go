// Package script decodes home-automation monitor scripts ("when these
// conditions hold, do these actions") from JSON or YAML documents into a
// typed model, using the strictjson decoding protocol. It covers the
// document format only; executing scripts against devices is a separate
// concern.
package script

import (
	"strings"
	"time"

	strictjson "github.com/openhomelab/strictjson"
)

// Type identifies the kind of a typed script value.
type Type int

const (
	TypeString Type = iota
	TypeBool
	TypeUnit
	TypeExtNumeric
	TypeDuration
	TypeTemperature
	TypeJSON
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeUnit:
		return "unit"
	case TypeExtNumeric:
		return "extnumeric"
	case TypeDuration:
		return "duration"
	case TypeTemperature:
		return "temperature"
	case TypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ExtNumeric is a vendor-specific numeric reading, tagged with the adapter
// that produced it and the kind of quantity it measures.
type ExtNumeric struct {
	Value   float64
	Vendor  string
	Adapter string
	Kind    string
}

// TempUnit is a temperature scale.
type TempUnit string

const (
	Fahrenheit TempUnit = "F"
	Celsius    TempUnit = "C"
)

// Temperature is a temperature reading in a given scale.
type Temperature struct {
	Degrees float64
	Unit    TempUnit
}

// InCelsius normalizes the reading for comparison across scales.
func (t Temperature) InCelsius() float64 {
	if t.Unit == Fahrenheit {
		return (t.Degrees - 32) * 5 / 9
	}
	return t.Degrees
}

// Value is a typed script value: the payload of statement arguments and
// the operands of condition ranges.
type Value struct {
	typ  Type
	str  string
	b    bool
	ext  ExtNumeric
	dur  time.Duration
	temp Temperature
	raw  strictjson.Value
}

func StringValue(s string) Value           { return Value{typ: TypeString, str: s} }
func BoolValue(b bool) Value               { return Value{typ: TypeBool, b: b} }
func UnitValue() Value                     { return Value{typ: TypeUnit} }
func ExtNumericValue(e ExtNumeric) Value   { return Value{typ: TypeExtNumeric, ext: e} }
func DurationValue(d time.Duration) Value  { return Value{typ: TypeDuration, dur: d} }
func TemperatureValue(t Temperature) Value { return Value{typ: TypeTemperature, temp: t} }
func JSONValue(v strictjson.Value) Value   { return Value{typ: TypeJSON, raw: v} }

// Type reports the value's kind.
func (v Value) Type() Type { return v.typ }

func (v Value) AsString() (string, bool)           { return v.str, v.typ == TypeString }
func (v Value) AsBool() (bool, bool)               { return v.b, v.typ == TypeBool }
func (v Value) AsExtNumeric() (ExtNumeric, bool)   { return v.ext, v.typ == TypeExtNumeric }
func (v Value) AsDuration() (time.Duration, bool)  { return v.dur, v.typ == TypeDuration }
func (v Value) AsTemperature() (Temperature, bool) { return v.temp, v.typ == TypeTemperature }
func (v Value) AsJSON() (strictjson.Value, bool)   { return v.raw, v.typ == TypeJSON }

// Equal reports whether two script values are the same type with the same
// content. Temperatures compare on the normalized scale.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return v.str == w.str
	case TypeBool:
		return v.b == w.b
	case TypeUnit:
		return true
	case TypeExtNumeric:
		return v.ext == w.ext
	case TypeDuration:
		return v.dur == w.dur
	case TypeTemperature:
		return v.temp.InCelsius() == w.temp.InCelsius()
	case TypeJSON:
		return v.raw.Equal(w.raw)
	default:
		return false
	}
}

// Compare orders two script values when an ordering exists. The second
// result is false for incomparable pairs: mismatched types, unit values,
// raw JSON payloads, and numeric readings of different kinds.
func (v Value) Compare(w Value) (int, bool) {
	if v.typ != w.typ {
		return 0, false
	}
	switch v.typ {
	case TypeString:
		return strings.Compare(v.str, w.str), true
	case TypeBool:
		return boolCompare(v.b, w.b), true
	case TypeDuration:
		switch {
		case v.dur < w.dur:
			return -1, true
		case v.dur > w.dur:
			return 1, true
		default:
			return 0, true
		}
	case TypeTemperature:
		return floatCompare(v.temp.InCelsius(), w.temp.InCelsius()), true
	case TypeExtNumeric:
		if v.ext.Kind != w.ext.Kind {
			return 0, false
		}
		return floatCompare(v.ext.Value, w.ext.Value), true
	default:
		return 0, false
	}
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
