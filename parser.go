package strictjson

// Parser decodes a JSON Value at a given Path into a value of type T.
// Implementations return a *ParseError (as error) on failure and must not
// return a partial T alongside one. Any type wishing to be JSON-decodable
// implements Parser for itself; this is the sole integration seam with
// application code.
//
// Decoding is synchronous and side-effect-free over its immutable input,
// so a Parser may be invoked concurrently. Recursion depth is bounded by
// the input, not by the decoder; callers handling adversarial input should
// bound nesting up front (see ReadOpt.MaxDepth).
type Parser[T any] interface {
	Parse(v Value, at Path) (T, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc[T any] func(v Value, at Path) (T, error)

func (f ParserFunc[T]) Parse(v Value, at Path) (T, error) { return f(v, at) }

// Decode runs a parser against a document root and normalizes any failure
// into a *DecodeError suitable for rendering to an end user or log.
func Decode[T any](p Parser[T], v Value) (T, error) {
	out, err := p.Parse(v, Path{})
	if err != nil {
		var zero T
		return zero, wrapDecode(err)
	}
	return out, nil
}
