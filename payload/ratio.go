package payload

import (
	"fmt"
	"math"
)

// Ratio represents a value between 0.0 and 1.0.
type Ratio float64

// NewRatio returns a pointer to r, for use in optional payload fields.
func NewRatio(r float64) *Ratio {
	v := Ratio(r)
	return &v
}

// Validate checks if the ratio is within the valid range [0.0, 1.0].
func (r Ratio) Validate() error {
	if math.IsNaN(float64(r)) || r < 0.0 || r > 1.0 {
		return fmt.Errorf("ratio out of range: %f", r)
	}
	return nil
}
