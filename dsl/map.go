package dsl

import (
	strictjson "github.com/openhomelab/strictjson"
)

// MapOf parses a JSON object whose keys are free-form and whose values all
// decode with elem. Keys are visited in insertion order; the first value
// error aborts the decode. Every key is consumed by construction, so there
// is no leftover set to check.
func MapOf[E any](elem strictjson.Parser[E]) strictjson.Parser[map[string]E] {
	return strictjson.ParserFunc[map[string]E](func(v strictjson.Value, at strictjson.Path) (map[string]E, error) {
		obj, err := v.AsObject(at)
		if err != nil {
			return nil, err
		}
		out := make(map[string]E, obj.Len())
		for _, k := range obj.Keys() {
			ev, _ := obj.Get(k)
			e, err := elem.Parse(ev, at.Field(k))
			if err != nil {
				return nil, err
			}
			out[k] = e
		}
		return out, nil
	})
}
