// package payload provides types for validating, encoding and decoding the
// `aps` dictionary of an APNs notification.
package payload

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes.
const (
	CodeInvalidType    = "invalid_type"
	CodeInvalidValue   = "invalid_value"
	CodeOutOfRange     = "out_of_range"
	CodeInvalidEnum    = "invalid_enum"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeOrphanLocArgs  = "orphan_loc_args"
	CodeSilentConflict = "silent_conflict"
	CodeMisplacedKey   = "misplaced_key"
	CodeRequired       = "required"
	CodeTooDeep        = "too_deep"
)

// Severity tells whether a Violation rejects the payload.
type Severity int

const (
	// SeverityError marks a violation that makes the payload invalid.
	SeverityError Severity = iota
	// SeverityWarning marks a contract problem APNs tolerates.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Violation describes one field that does not conform to the aps schema.
type Violation struct {
	// Path locates the field, for example `aps.sound.volume` or
	// `aps.alert.loc-args[1]`.
	Path string `json:"path"`
	// Code is one of the Code* constants.
	Code string `json:"code"`
	// Expected describes the constraint the field failed.
	Expected string `json:"expected"`
	// Actual is the offending value as it appeared in the input.
	Actual   any      `json:"actual,omitempty"`
	Severity Severity `json:"severity"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s: expected %s, got %s", v.Path, v.Code, v.Expected, describe(v.Actual))
}

// Violations is the ordered result of a validation pass. It implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(vs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(vs[i].Error())
	}
	if len(vs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(vs))
	}
	return b.String()
}

// Errors returns the error-severity violations.
func (vs Violations) Errors() Violations {
	return vs.filter(SeverityError)
}

// Warnings returns the warning-severity violations.
func (vs Violations) Warnings() Violations {
	return vs.filter(SeverityWarning)
}

// HasErrors reports whether any violation rejects the payload.
func (vs Violations) HasErrors() bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns the error-severity violations as an error, or nil when there
// are none.
func (vs Violations) Err() error {
	if errs := vs.Errors(); len(errs) > 0 {
		return errs
	}
	return nil
}

// Escalate returns a copy of vs with every warning raised to an error.
func (vs Violations) Escalate() Violations {
	if vs == nil {
		return nil
	}
	out := make(Violations, len(vs))
	for i, v := range vs {
		v.Severity = SeverityError
		out[i] = v
	}
	return out
}

func (vs Violations) filter(s Severity) Violations {
	var out Violations
	for _, v := range vs {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}

// AsViolations extracts Violations from an error using errors.As.
func AsViolations(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// ParseError is returned by Decode when the input is not well-formed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "malformed JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	// ErrInvalidType is returned when a value has a type the encoder cannot write.
	ErrInvalidType = errors.New("invalid type for APS field")
	// ErrNonFinite is returned when a number is NaN or infinite.
	ErrNonFinite = errors.New("number is not finite")
	// ErrInvalidFlag is returned when a numeric flag is neither 0 nor 1.
	ErrInvalidFlag = errors.New("numeric flag must be 0 or 1")
	// ErrAmbiguousValue is returned when both the string and the dictionary
	// form of alert or sound are set.
	ErrAmbiguousValue = errors.New("both string and dictionary forms are set")
	// ErrKeyCollision is returned when an extra key shadows a known one.
	ErrKeyCollision = errors.New("key collides with a defined key")
	// ErrTooDeep is returned when a nested value exceeds the encoder's depth limit.
	ErrTooDeep = errors.New("value nested too deeply")
)

// EncodingError is returned by Encode for values that could not have passed
// Validate.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
