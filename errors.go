package strictjson

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openhomelab/strictjson/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingField  = "missing_field"
	CodeUnknownFields = "unknown_fields"
	CodeTypeMismatch  = "type_mismatch"
	CodeInvalidValue  = "invalid_value"
	CodeCustom        = "custom"
	// Source-side codes (raised while building a Value from text)
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
)

// ParseError describes why a decode failed, and where. Every ParseError
// carries the Path at which the failure was detected. A ParseError is
// terminal for the decode attempt that raised it: no partial value is ever
// returned alongside one.
type ParseError struct {
	Code    string // One of the codes listed above.
	Path    Path   // Location of the failure in the document tree.
	Message string

	Field            string   // Set for missing_field and duplicate_key.
	Expected, Actual Kind     // Set for type_mismatch.
	Keys             []string // Set for unknown_fields, sorted.
	Cause            error    // Optional: underlying error.
}

func (e *ParseError) Error() string {
	return e.Path.String() + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// MissingField reports a required object field that was absent. The path
// already includes the field segment.
func MissingField(at Path, name string) *ParseError {
	return &ParseError{
		Code:    CodeMissingField,
		Path:    at.Field(name),
		Field:   name,
		Message: i18n.T(CodeMissingField, map[string]string{"field": name}),
	}
}

// UnknownFields reports object keys that no parser consumed. The keys are
// sorted for deterministic rendering; the complete set is always named.
func UnknownFields(at Path, keys []string) *ParseError {
	ks := append([]string(nil), keys...)
	sort.Strings(ks)
	return &ParseError{
		Code:    CodeUnknownFields,
		Path:    at,
		Keys:    ks,
		Message: i18n.T(CodeUnknownFields, map[string]string{"fields": strings.Join(ks, ", ")}),
	}
}

// TypeMismatch reports a value of the wrong JSON kind.
func TypeMismatch(at Path, expected, actual Kind) *ParseError {
	return &ParseError{
		Code:     CodeTypeMismatch,
		Path:     at,
		Expected: expected,
		Actual:   actual,
		Message:  i18n.T(CodeTypeMismatch, map[string]string{"expected": expected.String(), "got": actual.String()}),
	}
}

// InvalidValue reports a value of the right kind whose content is not
// acceptable (number out of range, malformed string content, ...).
func InvalidValue(at Path, reason string) *ParseError {
	return &ParseError{Code: CodeInvalidValue, Path: at, Message: reason}
}

// Custom is the escape hatch for type-specific validation failures.
func Custom(at Path, msg string) *ParseError {
	return &ParseError{Code: CodeCustom, Path: at, Message: msg}
}

// Customf is Custom with fmt-style formatting.
func Customf(at Path, format string, args ...any) *ParseError {
	return Custom(at, fmt.Sprintf(format, args...))
}

// DecodeError is the wrapper surfaced to callers outside the core. It
// aggregates one or more ParseErrors; the fail-fast decode path always
// wraps exactly the first error encountered.
type DecodeError struct {
	Errs []*ParseError
}

// Error summarizes the first few errors.
func (e *DecodeError) Error() string {
	if e == nil || len(e.Errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(e.Errs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Errs[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first wrapped ParseError to errors.Is/As.
func (e *DecodeError) Unwrap() error {
	if e == nil || len(e.Errs) == 0 {
		return nil
	}
	return e.Errs[0]
}

// AsParseError extracts a *ParseError from an error using errors.As internally.
func AsParseError(err error) (*ParseError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsDecodeError extracts a *DecodeError from an error using errors.As internally.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// wrapDecode normalizes an error into a *DecodeError for the public surface.
func wrapDecode(err error) error {
	if err == nil {
		return nil
	}
	if de, ok := AsDecodeError(err); ok {
		return de
	}
	if pe, ok := AsParseError(err); ok {
		return &DecodeError{Errs: []*ParseError{pe}}
	}
	return &DecodeError{Errs: []*ParseError{{
		Code:    CodeParseError,
		Message: err.Error(),
		Cause:   err,
	}}}
}
