// Package jsonvalue reads JSON text into a generic value tree made of
// map[string]any, []any, json.Number, string, bool and nil.
package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrEmpty is returned when the input holds no JSON value at all.
var ErrEmpty = errors.New("empty input")

// ErrTrailingData is returned when a complete JSON value is followed by more
// non-whitespace input.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// Parse decodes data into a value tree. Numbers are kept as json.Number so
// integer and fractional literals can be told apart later.
//
// The second result lists the paths of object keys that occur more than once
// in the same object (the last occurrence wins in the tree). Paths use the
// same dotted form as Join.
func Parse(data []byte) (any, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmpty
		}
		return nil, nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrTrailingData
	}

	dups, err := duplicateKeys(data)
	if err != nil {
		return nil, nil, err
	}
	return v, dups, nil
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	path         string
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// childPath returns the path of the value about to be read in f.
func (f *frame) childPath() string {
	if f.kind == kindArray {
		return Index(f.path, f.index)
	}
	return Join(f.path, f.key)
}

// valueDone advances f past one complete member value.
func (f *frame) valueDone() {
	if f.kind == kindArray {
		f.index++
		return
	}
	f.expectingKey = true
}

func duplicateKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var dups []string
	var stack []*frame
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return dups, nil
		}
		if err != nil {
			return nil, err
		}

		parent := top()
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				path := ""
				if parent != nil {
					path = parent.childPath()
				}
				f := &frame{kind: kindArray, path: path}
				if d == '{' {
					f.kind = kindObject
					f.keys = make(map[string]struct{})
					f.expectingKey = true
				}
				stack = append(stack, f)
			case '}', ']':
				stack = stack[:len(stack)-1]
				if p := top(); p != nil {
					p.valueDone()
				}
			}
			continue
		}

		if parent == nil {
			continue
		}
		if parent.kind == kindObject && parent.expectingKey {
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", tok)
			}
			if _, seen := parent.keys[key]; seen {
				dups = append(dups, Join(parent.path, key))
			}
			parent.keys[key] = struct{}{}
			parent.key = key
			parent.expectingKey = false
			continue
		}
		parent.valueDone()
	}
}

// Join appends an object key to a dotted path.
func Join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index appends an array index to a dotted path.
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
