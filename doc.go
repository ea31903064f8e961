package strictjson

// Package strictjson provides:
//
// - A read-only tagged-union Value model over the six JSON kinds
// - Typed decoding via the Parser[T] contract (Parse(value, path) -> T or error)
// - A stable error model via ParseError/DecodeError (path, snake_case code, message)
// - Closed-world object decoding: Fields tracks key consumption and
//   CheckFields rejects whatever no parser claimed
// - Value construction from JSON (goccy/go-json) and YAML (yaml.v3) text
//
// Design policy:
// - Fail fast: the first error inside a container aborts that decode.
//   The single aggregation point is CheckFields, which names every
//   leftover key at once.
// - Keep the core protocol in the root package; put combinators under
//   dsl/, domain models under their own packages (see script/).
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := strictjson.FromJSONBytes(data)
//	cfg, err := strictjson.Decode[Config](configParser, v)
