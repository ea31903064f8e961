package strictjson_test

import (
	"strings"
	"testing"

	strictjson "github.com/openhomelab/strictjson"
)

func TestFromYAMLBytes_Document(t *testing.T) {
	src := `
rules:
  - when: []
    do: []
count: 3
ratio: 0.5
on: true
name: hall sensor
nothing: null
`
	v, err := strictjson.FromYAMLBytes([]byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, err := v.AsObject(strictjson.Path{})
	if err != nil {
		t.Fatalf("AsObject: %v", err)
	}
	if got := obj.Keys(); strings.Join(got, ",") != "rules,count,ratio,on,name,nothing" {
		t.Fatalf("key order: %v", got)
	}
	cv, _ := obj.Get("count")
	if n, err := cv.AsNumber(strictjson.Path{}); err != nil || n != 3 {
		t.Fatalf("int scalar: %v %v", n, err)
	}
	bv, _ := obj.Get("on")
	if b, err := bv.AsBool(strictjson.Path{}); err != nil || !b {
		t.Fatalf("bool scalar: %v %v", b, err)
	}
	nv, _ := obj.Get("nothing")
	if !nv.IsNull() {
		t.Fatalf("expected null scalar")
	}
}

func TestFromYAMLBytes_DuplicateKey(t *testing.T) {
	_, err := strictjson.FromYAMLBytes([]byte("a: 1\na: 2\n"))
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
	if got := pe.Path.String(); got != ".a" {
		t.Fatalf("path: %q", got)
	}
}

func TestFromYAMLBytes_CyclicAlias(t *testing.T) {
	_, err := strictjson.FromYAMLBytes([]byte("a: &x\n  b: *x\n"))
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeParseError {
		t.Fatalf("expected parse_error for a self-referential alias, got %v", err)
	}
}

func TestFromYAMLBytes_RepeatedAlias(t *testing.T) {
	v, err := strictjson.FromYAMLBytes([]byte("base: &b {x: 1}\nleft: *b\nright: *b\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, err := v.AsObject(strictjson.Path{})
	if err != nil {
		t.Fatalf("AsObject: %v", err)
	}
	left, _ := obj.Get("left")
	right, _ := obj.Get("right")
	if !left.Equal(right) {
		t.Fatalf("repeated aliases should expand to equal values")
	}
	want := strictjson.ObjectValue(strictjson.NewObject().Set("x", strictjson.Number(1)))
	if !left.Equal(want) {
		t.Fatalf("alias expansion: %v", left)
	}
}

func TestFromYAMLBytes_MaxDepth(t *testing.T) {
	src := "a:\n  - b:\n      - 1\n" // depth 4
	if _, err := strictjson.FromYAMLBytes([]byte(src), strictjson.ReadOpt{MaxDepth: 4}); err != nil {
		t.Fatalf("depth 4 should fit in a cap of 4: %v", err)
	}
	_, err := strictjson.FromYAMLBytes([]byte(src), strictjson.ReadOpt{MaxDepth: 3})
	pe, ok := strictjson.AsParseError(err)
	if !ok || pe.Code != strictjson.CodeMaxDepth {
		t.Fatalf("expected max_depth, got %v", err)
	}
}

func TestFromYAMLBytes_EmptyDocument(t *testing.T) {
	v, err := strictjson.FromYAMLBytes(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.IsNull() {
		t.Fatalf("expected null for empty input, got kind %s", v.Kind())
	}
}

func TestFromYAMLBytes_MatchesJSONShape(t *testing.T) {
	fromYAML, err := strictjson.FromYAMLBytes([]byte("a: [1, x]\nb: {c: true}\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromJSON, err := strictjson.FromJSONBytes([]byte(`{"a": [1, "x"], "b": {"c": true}}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !fromYAML.Equal(fromJSON) {
		t.Fatalf("YAML and JSON trees should be equal")
	}
}
