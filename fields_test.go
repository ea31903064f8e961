package strictjson_test

import (
	"testing"

	strictjson "github.com/openhomelab/strictjson"
	"github.com/openhomelab/strictjson/dsl"
)

func mustJSON(t *testing.T, src string) strictjson.Value {
	t.Helper()
	v, err := strictjson.FromJSONBytes([]byte(src))
	if err != nil {
		t.Fatalf("FromJSONBytes(%q): %v", src, err)
	}
	return v
}

func TestObjectFields_RequiresObject(t *testing.T) {
	at := strictjson.Path{}.Field("cfg")
	_, err := strictjson.ObjectFields(strictjson.Array(), at)
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if !pe.Path.Equal(at) {
		t.Fatalf("path: %s", pe.Path)
	}
}

func TestField_RequiredAndMissing(t *testing.T) {
	v := mustJSON(t, `{"a": 1}`)
	f, err := strictjson.ObjectFields(v, strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	a, err := strictjson.Field(f, "a", dsl.Number())
	if err != nil || a != 1 {
		t.Fatalf("a: %v %v", a, err)
	}
	_, err = strictjson.Field(f, "b", dsl.Number())
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeMissingField {
		t.Fatalf("expected missing_field, got %v", err)
	}
	if got := pe.Path.String(); got != ".b" {
		t.Fatalf("path: %q", got)
	}
}

func TestField_ConsumesKeyEvenOnFailure(t *testing.T) {
	v := mustJSON(t, `{"a": "not a number"}`)
	f, err := strictjson.ObjectFields(v, strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if _, err := strictjson.Field(f, "a", dsl.Number()); err == nil {
		t.Fatalf("expected a type error")
	}
	// The key was seen, so the closed-world check passes.
	if err := f.CheckFields(); err != nil {
		t.Fatalf("CheckFields after failed parse: %v", err)
	}
}

func TestCheckFields_ReportsOnlyUnconsumedKeys(t *testing.T) {
	v := mustJSON(t, `{"a": 1, "b": 2}`)
	f, err := strictjson.ObjectFields(v, strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if _, err := strictjson.Field(f, "a", dsl.Number()); err != nil {
		t.Fatalf("a: %v", err)
	}
	err = f.CheckFields()
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeUnknownFields {
		t.Fatalf("expected unknown_fields, got %v", err)
	}
	if len(pe.Keys) != 1 || pe.Keys[0] != "b" {
		t.Fatalf("expected exactly {b}, got %v", pe.Keys)
	}
}

func TestCheckFields_NamesEveryLeftoverKey(t *testing.T) {
	v := mustJSON(t, `{"x": 1, "z": 2, "y": 3}`)
	f, err := strictjson.ObjectFields(v, strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	err = f.CheckFields()
	pe, ok := strictjson.AsParseError(err)
	if !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if len(pe.Keys) != 3 || pe.Keys[0] != "x" || pe.Keys[1] != "y" || pe.Keys[2] != "z" {
		t.Fatalf("expected the full sorted key set, got %v", pe.Keys)
	}
}

func TestCheckFields_EmptyRecordAlwaysSucceeds(t *testing.T) {
	for _, src := range []string{`{}`, `{"a": 1}`} {
		f, err := strictjson.ObjectFields(mustJSON(t, src), strictjson.Path{}.Field("anywhere"))
		if err != nil {
			t.Fatalf("fields: %v", err)
		}
		f.Skip("a")
		if err := f.CheckFields(); err != nil {
			t.Fatalf("CheckFields on consumed record (%s): %v", src, err)
		}
	}
}

func TestOptional_AbsentIsNotAnError(t *testing.T) {
	f, err := strictjson.ObjectFields(mustJSON(t, `{"a": 1}`), strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	_, ok, err := strictjson.Optional(f, "missing", dsl.Number())
	if err != nil || ok {
		t.Fatalf("absent optional: ok=%v err=%v", ok, err)
	}
	got, err := strictjson.OptionalOr(f, "missing", dsl.Number(), 42)
	if err != nil || got != 42 {
		t.Fatalf("OptionalOr default: %v %v", got, err)
	}
	got, err = strictjson.OptionalOr(f, "a", dsl.Number(), 42)
	if err != nil || got != 1 {
		t.Fatalf("OptionalOr present: %v %v", got, err)
	}
	if err := f.CheckFields(); err != nil {
		t.Fatalf("CheckFields: %v", err)
	}
}

func TestOptional_PresentButInvalidFails(t *testing.T) {
	f, err := strictjson.ObjectFields(mustJSON(t, `{"a": "x"}`), strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	_, _, err = strictjson.Optional(f, "a", dsl.Number())
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if got := pe.Path.String(); got != ".a" {
		t.Fatalf("path: %q", got)
	}
}

func TestAllowRest_OptsOutOfClosedWorld(t *testing.T) {
	f, err := strictjson.ObjectFields(mustJSON(t, `{"a": 1, "extra": true}`), strictjson.Path{})
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if _, err := strictjson.Field(f, "a", dsl.Number()); err != nil {
		t.Fatalf("a: %v", err)
	}
	f.AllowRest()
	if err := f.CheckFields(); err != nil {
		t.Fatalf("AllowRest should accept leftovers: %v", err)
	}
}

func TestDecode_WrapsFirstErrorInDecodeError(t *testing.T) {
	v := mustJSON(t, `{"a": {"b": 1}}`)
	type inner struct{ B string }
	p := strictjson.ParserFunc[inner](func(v strictjson.Value, at strictjson.Path) (inner, error) {
		f, err := strictjson.ObjectFields(v, at)
		if err != nil {
			return inner{}, err
		}
		fa, err := strictjson.Field(f, "a", strictjson.ParserFunc[inner](func(v strictjson.Value, at strictjson.Path) (inner, error) {
			g, err := strictjson.ObjectFields(v, at)
			if err != nil {
				return inner{}, err
			}
			b, err := strictjson.Field(g, "b", dsl.String())
			if err != nil {
				return inner{}, err
			}
			return inner{B: b}, g.CheckFields()
		}))
		if err != nil {
			return inner{}, err
		}
		return fa, f.CheckFields()
	})

	_, err := strictjson.Decode(p, v)
	de, ok := strictjson.AsDecodeError(err)
	if !ok || len(de.Errs) != 1 {
		t.Fatalf("expected DecodeError with one entry, got %v", err)
	}
	pe := de.Errs[0]
	if pe.Code != strictjson.CodeTypeMismatch {
		t.Fatalf("code: %s", pe.Code)
	}
	if got := pe.Path.String(); got != ".a.b" {
		t.Fatalf("nested mismatch path: %q", got)
	}
}
