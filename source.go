package strictjson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/openhomelab/strictjson/i18n"
)

// ReadOpt bundles options for building a Value from text.
type ReadOpt struct {
	// MaxDepth caps container nesting while reading. Zero means unlimited;
	// decoding itself never bounds recursion, so callers handling
	// untrusted input should set this.
	MaxDepth int
}

// FromJSONBytes builds a Value from JSON text. Object key order is
// preserved, duplicate keys are rejected with a path-annotated
// duplicate_key error, and trailing data after the document is rejected.
func FromJSONBytes(data []byte, opts ...ReadOpt) (Value, error) {
	return FromJSONReader(bytes.NewReader(data), opts...)
}

// FromJSONReader is FromJSONBytes over an io.Reader.
func FromJSONReader(r io.Reader, opts ...ReadOpt) (Value, error) {
	var opt ReadOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	rd := &jsonReader{dec: j.NewDecoder(r), maxDepth: opt.MaxDepth}
	v, err := rd.readValue(Path{}, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := rd.dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, rd.syntaxErr(Path{}, err)
		}
		return Value{}, &ParseError{
			Code:    CodeParseError,
			Message: "trailing data after document",
		}
	}
	return v, nil
}

type jsonReader struct {
	dec      *j.Decoder
	maxDepth int
}

func (r *jsonReader) readValue(at Path, depth int) (Value, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return Value{}, r.syntaxErr(at, err)
	}
	return r.valueFromToken(tok, at, depth)
}

func (r *jsonReader) valueFromToken(tok any, at Path, depth int) (Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return r.readObject(at, depth+1)
		case '[':
			return r.readArray(at, depth+1)
		default:
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "unexpected " + string(t)}
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case j.Number:
		f, perr := strconv.ParseFloat(string(t), 64)
		if perr != nil {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "invalid number " + string(t), Cause: perr}
		}
		return Number(f), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "unexpected token"}
	}
}

func (r *jsonReader) readObject(at Path, depth int) (Value, error) {
	if err := r.checkDepth(at, depth); err != nil {
		return Value{}, err
	}
	obj := NewObject()
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return Value{}, r.syntaxErr(at, err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "object key is not a string"}
		}
		if obj.Has(key) {
			return Value{}, &ParseError{
				Code:    CodeDuplicateKey,
				Path:    at.Field(key),
				Field:   key,
				Message: i18n.T(CodeDuplicateKey, map[string]string{"key": key}),
			}
		}
		v, err := r.readValue(at.Field(key), depth)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
	}
	if _, err := r.dec.Token(); err != nil { // consume '}'
		return Value{}, r.syntaxErr(at, err)
	}
	return ObjectValue(obj), nil
}

func (r *jsonReader) readArray(at Path, depth int) (Value, error) {
	if err := r.checkDepth(at, depth); err != nil {
		return Value{}, err
	}
	var elems []Value
	for i := 0; r.dec.More(); i++ {
		v, err := r.readValue(at.Index(i), depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := r.dec.Token(); err != nil { // consume ']'
		return Value{}, r.syntaxErr(at, err)
	}
	return Array(elems...), nil
}

func (r *jsonReader) checkDepth(at Path, depth int) error {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return &ParseError{Code: CodeMaxDepth, Path: at, Message: i18n.T(CodeMaxDepth, nil)}
	}
	return nil
}

func (r *jsonReader) syntaxErr(at Path, err error) error {
	if err == io.EOF {
		return &ParseError{Code: CodeParseError, Path: at, Message: "unexpected end of input"}
	}
	return &ParseError{Code: CodeParseError, Path: at, Message: err.Error(), Cause: err}
}
