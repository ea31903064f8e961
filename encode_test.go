package strictjson_test

import (
	"math"
	"testing"

	strictjson "github.com/openhomelab/strictjson"
)

func TestMarshalJSON_PreservesKeyOrder(t *testing.T) {
	v := strictjson.ObjectValue(strictjson.NewObject().
		Set("zeta", strictjson.Number(1)).
		Set("alpha", strictjson.Array(strictjson.Bool(true), strictjson.Null())).
		Set("text", strictjson.String("a \"quoted\" line")))
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":1,"alpha":[true,null],"text":"a \"quoted\" line"}`
	if string(out) != want {
		t.Fatalf("got %s want %s", out, want)
	}
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	srcs := []string{
		`null`,
		`true`,
		`"héllo\nworld"`,
		`[1, 2.5, -3]`,
		`{"a": {"b": [false, "x", {"deep": null}]}, "c": 0.125}`,
	}
	for _, src := range srcs {
		v, err := strictjson.FromJSONBytes([]byte(src))
		if err != nil {
			t.Fatalf("decode %q: %v", src, err)
		}
		out, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %q: %v", src, err)
		}
		back, err := strictjson.FromJSONBytes(out)
		if err != nil {
			t.Fatalf("re-decode %s: %v", out, err)
		}
		if !back.Equal(v) {
			t.Fatalf("round trip changed %q: %s", src, out)
		}
	}
}

func TestMarshalJSON_RejectsNaN(t *testing.T) {
	if _, err := strictjson.Number(math.NaN()).MarshalJSON(); err == nil {
		t.Fatalf("expected error for NaN")
	}
	if _, err := strictjson.Number(math.Inf(1)).MarshalJSON(); err == nil {
		t.Fatalf("expected error for +Inf")
	}
}
