// Package numericflag provides the 0/1 integer flag used by several APNs keys
// (content-available, mutable-content and the sound dictionary's critical).
package numericflag

// NumericFlag is a boolean carried on the wire as the JSON integer 0 or 1.
type NumericFlag int

const (
	// Off is the flag's disabled value.
	Off NumericFlag = 0
	// On is the flag's enabled value.
	On NumericFlag = 1
)

// New returns a pointer to f, for use in optional payload fields.
func New(f NumericFlag) *NumericFlag {
	return &f
}

// Valid reports whether f is 0 or 1.
func (f NumericFlag) Valid() bool {
	return f == Off || f == On
}

// IsSet reports whether p is present and equal to On.
func IsSet(p *NumericFlag) bool {
	return p != nil && *p == On
}
