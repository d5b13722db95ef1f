package payload

import "github.com/takimoto3/apnscodec/internal/jsonvalue"

// Decode parses wire JSON text holding an aps dictionary and validates it.
// A *ParseError is returned when data is not well-formed JSON; schema
// problems, including keys repeated within one object, are reported through
// the Violations.
func (v *Validator) Decode(data []byte) (APS, Violations, error) {
	tree, dups, err := jsonvalue.Parse(data)
	if err != nil {
		return APS{}, nil, &ParseError{Err: err}
	}
	c := &checker{opts: v.opts}
	c.duplicates("aps", dups)
	aps := c.aps("aps", tree)
	return aps, v.finish(c.out), nil
}

// Decode parses and validates data with a Validator configured by opts.
func Decode(data []byte, opts ...Option) (APS, Violations, error) {
	return NewValidator(opts...).Decode(data)
}

// UnmarshalJSON implements json.Unmarshaler. It fails with a *ParseError or
// with the error-severity Violations; warnings are dropped.
func (aps *APS) UnmarshalJSON(data []byte) error {
	v, vs, err := Decode(data)
	if err != nil {
		return err
	}
	if err := vs.Err(); err != nil {
		return err
	}
	*aps = v
	return nil
}

// duplicates warns about keys repeated within one object. paths are relative
// to root.
func (c *checker) duplicates(root string, paths []string) {
	for _, p := range paths {
		c.out = append(c.out, DuplicateKey(jsonvalue.Join(root, p)))
	}
}

// DuplicateKey returns the warning reported for a key repeated within one
// object.
func DuplicateKey(path string) Violation {
	return Violation{Path: path, Code: CodeDuplicateKey, Expected: "unique keys in an object", Severity: SeverityWarning}
}
