package strictjson

// Kind identifies one of the six JSON value kinds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an in-memory JSON document node: a tagged union over the six
// JSON kinds. Values are treated as immutable once decoding begins and may
// be shared read-only across concurrent decode calls. The zero value is
// JSON null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a JSON number.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a JSON array. The elements slice is taken over by the Value
// and must not be mutated afterwards.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// ObjectValue wraps a JSON object. A nil Object is treated as empty.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the value's JSON kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsObject returns the object mapping, or a type_mismatch error annotated
// with the given path.
func (v Value) AsObject(at Path) (*Object, error) {
	if v.kind != KindObject {
		return nil, TypeMismatch(at, KindObject, v.kind)
	}
	return v.obj, nil
}

// AsArray returns the element sequence, or a type_mismatch error annotated
// with the given path. The returned slice must be treated as read-only.
func (v Value) AsArray(at Path) ([]Value, error) {
	if v.kind != KindArray {
		return nil, TypeMismatch(at, KindArray, v.kind)
	}
	return v.arr, nil
}

// AsString returns the string content, or a type_mismatch error annotated
// with the given path.
func (v Value) AsString(at Path) (string, error) {
	if v.kind != KindString {
		return "", TypeMismatch(at, KindString, v.kind)
	}
	return v.str, nil
}

// AsNumber returns the numeric content, or a type_mismatch error annotated
// with the given path.
func (v Value) AsNumber(at Path) (float64, error) {
	if v.kind != KindNumber {
		return 0, TypeMismatch(at, KindNumber, v.kind)
	}
	return v.num, nil
}

// AsBool returns the boolean content, or a type_mismatch error annotated
// with the given path.
func (v Value) AsBool(at Path) (bool, error) {
	if v.kind != KindBool {
		return false, TypeMismatch(at, KindBool, v.kind)
	}
	return v.b, nil
}

// Equal reports structural equality. Objects compare by key set and
// per-key value; insertion order is preserved for iteration and encoding
// but does not affect equality.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber:
		return v.num == w.num
	case KindString:
		return v.str == w.str
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != w.obj.Len() {
			return false
		}
		for _, k := range v.obj.keys {
			ov, _ := v.obj.Get(k)
			wv, ok := w.obj.Get(k)
			if !ok || !ov.Equal(wv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Object is an insertion-ordered string-keyed mapping with unique keys.
// It is mutable during construction only; once handed to decoding it must
// be treated as read-only.
type Object struct {
	keys []string
	m    map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object { return &Object{m: map[string]Value{}} }

// Set inserts or replaces a key. Replacing keeps the key's original
// position in the insertion order.
func (o *Object) Set(key string, v Value) *Object {
	if _, exists := o.m[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
	return o
}

// Get looks up a key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.m[key]
	return v, ok
}

// Has reports whether the key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.m[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}
