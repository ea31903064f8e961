package strictjson

// Fields is the field-consumption record for a single object decode. It is
// seeded with the keys actually present in the source object; each field
// read removes its key; CheckFields flags whatever is left. A Fields value
// is local to one decode call and must not be shared or retained.
type Fields struct {
	at        Path
	obj       *Object
	remaining map[string]struct{}
	allowRest bool
}

// ObjectFields begins decoding an object: it requires v to be of object
// kind (else type_mismatch at the given path) and seeds the consumption
// record with every key present.
func ObjectFields(v Value, at Path) (*Fields, error) {
	obj, err := v.AsObject(at)
	if err != nil {
		return nil, err
	}
	rem := make(map[string]struct{}, obj.Len())
	for _, k := range obj.keys {
		rem[k] = struct{}{}
	}
	return &Fields{at: at, obj: obj, remaining: rem}, nil
}

// Path returns the path of the object being decoded.
func (f *Fields) Path() Path { return f.at }

// Skip consumes keys without parsing them. Useful for discriminator keys
// that were already inspected.
func (f *Fields) Skip(names ...string) {
	for _, n := range names {
		delete(f.remaining, n)
	}
}

// AllowRest opts this object out of the closed-world check: CheckFields
// will accept leftover keys.
func (f *Fields) AllowRest() { f.allowRest = true }

// CheckFields verifies the object's field set was fully consumed. It
// succeeds on an empty record and otherwise reports every leftover key at
// once in a single unknown_fields error. This is the one aggregation
// point: elsewhere decoding is fail-fast.
func (f *Fields) CheckFields() error {
	if f.allowRest || len(f.remaining) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f.remaining))
	for k := range f.remaining {
		keys = append(keys, k)
	}
	return UnknownFields(f.at, keys)
}

// Field reads a required field. An absent key yields missing_field at the
// field's path. A present key is consumed whether or not its sub-parse
// succeeds; the first failure aborts the object decode.
func Field[T any](f *Fields, name string, p Parser[T]) (T, error) {
	v, ok := f.obj.Get(name)
	if !ok {
		var zero T
		return zero, MissingField(f.at, name)
	}
	delete(f.remaining, name)
	return p.Parse(v, f.at.Field(name))
}

// Optional reads an optional field. An absent key is not an error and is
// not recorded as consumed; the record never contained it.
func Optional[T any](f *Fields, name string, p Parser[T]) (T, bool, error) {
	v, ok := f.obj.Get(name)
	if !ok {
		var zero T
		return zero, false, nil
	}
	delete(f.remaining, name)
	out, err := p.Parse(v, f.at.Field(name))
	if err != nil {
		var zero T
		return zero, false, err
	}
	return out, true, nil
}

// OptionalOr reads an optional field, substituting def when absent.
func OptionalOr[T any](f *Fields, name string, p Parser[T], def T) (T, error) {
	out, ok, err := Optional(f, name, p)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return out, nil
}
