package numericflag_test

import (
	"testing"

	"github.com/takimoto3/apnscodec/payload/numericflag"
)

func TestNumericFlag_Values(t *testing.T) {
	testCases := []struct {
		name     string
		flag     numericflag.NumericFlag
		expected int
		valid    bool
	}{
		{name: "Off", flag: numericflag.Off, expected: 0, valid: true},
		{name: "On", flag: numericflag.On, expected: 1, valid: true},
		{name: "Two", flag: numericflag.NumericFlag(2), expected: 2, valid: false},
		{name: "Negative", flag: numericflag.NumericFlag(-1), expected: -1, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if int(tc.flag) != tc.expected {
				t.Errorf("NumericFlag %s got %d, want %d", tc.name, int(tc.flag), tc.expected)
			}
			if tc.flag.Valid() != tc.valid {
				t.Errorf("NumericFlag(%d).Valid() = %v, want %v", tc.flag, tc.flag.Valid(), tc.valid)
			}
		})
	}
}

func TestIsSet(t *testing.T) {
	tests := map[string]struct {
		in   *numericflag.NumericFlag
		want bool
	}{
		"nil": {in: nil, want: false},
		"off": {in: numericflag.New(numericflag.Off), want: false},
		"on":  {in: numericflag.New(numericflag.On), want: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := numericflag.IsSet(tt.in); got != tt.want {
				t.Errorf("IsSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewReturnsDistinctPointers(t *testing.T) {
	a := numericflag.New(numericflag.On)
	b := numericflag.New(numericflag.On)
	if a == b {
		t.Fatal("New returned the same pointer twice")
	}
	*a = numericflag.Off
	if *b != numericflag.On {
		t.Errorf("mutating one flag changed another: got %d", *b)
	}
}
