package strictjson

import (
	"math"
	"strconv"

	j "github.com/goccy/go-json"
)

// MarshalJSON serializes the value, preserving object key order. NaN and
// infinite numbers are rejected since JSON cannot represent them.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil)
}

// AppendJSON appends the value's JSON text to dst.
func (v Value) AppendJSON(dst []byte) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return dst, InvalidValue(Path{}, "number is not representable in JSON")
		}
		return strconv.AppendFloat(dst, v.num, 'g', -1, 64), nil
	case KindString:
		return appendString(dst, v.str)
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = e.AppendJSON(dst)
			if err != nil {
				return dst, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		dst = append(dst, '{')
		for i, k := range v.obj.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendString(dst, k)
			if err != nil {
				return dst, err
			}
			dst = append(dst, ':')
			ev, _ := v.obj.Get(k)
			dst, err = ev.AppendJSON(dst)
			if err != nil {
				return dst, err
			}
		}
		return append(dst, '}'), nil
	default:
		return dst, InvalidValue(Path{}, "unknown value kind")
	}
}

// appendString delegates escaping to the JSON library.
func appendString(dst []byte, s string) ([]byte, error) {
	b, err := j.Marshal(s)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
