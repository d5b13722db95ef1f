package payload

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/takimoto3/apnscodec/internal/jsonvalue"
	"github.com/takimoto3/apnscodec/notification"
	"github.com/takimoto3/apnscodec/payload/numericflag"
)

const hex = "0123456789abcdef"

// maxDepth bounds nesting in content-state and Extra values so that cyclic
// maps fail instead of recursing forever. Validate rejects deeper trees with
// the same bound.
const maxDepth = 1000

var bufSize = 560

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, bufSize)
		return &b
	},
}

// encoder appends the members of one JSON object to b.
type encoder struct {
	b     []byte
	first bool
}

func (e *encoder) open() {
	e.b = append(e.b, '{')
	e.first = true
}

func (e *encoder) close() {
	e.b = append(e.b, '}')
}

func (e *encoder) key(k string) {
	if !e.first {
		e.b = append(e.b, ',')
	}
	e.first = false
	e.b = appendString(e.b, k)
	e.b = append(e.b, ':')
}

func (e *encoder) str(k, v string) {
	if v == "" {
		return
	}
	e.key(k)
	e.b = appendString(e.b, v)
}

func (e *encoder) strs(k string, vs []string) {
	if vs == nil {
		return
	}
	e.key(k)
	e.b = append(e.b, '[')
	for i, v := range vs {
		if i > 0 {
			e.b = append(e.b, ',')
		}
		e.b = appendString(e.b, v)
	}
	e.b = append(e.b, ']')
}

func (e *encoder) flag(path, k string, f *numericflag.NumericFlag) error {
	if f == nil {
		return nil
	}
	if !f.Valid() {
		return &EncodingError{Path: path, Err: ErrInvalidFlag}
	}
	e.key(k)
	e.b = strconv.AppendInt(e.b, int64(*f), 10)
	return nil
}

func (e *encoder) ratio(path, k string, r *Ratio) error {
	if r == nil {
		return nil
	}
	f := float64(*r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &EncodingError{Path: path, Err: ErrNonFinite}
	}
	e.key(k)
	e.b = strconv.AppendFloat(e.b, f, 'f', -1, 64)
	return nil
}

func (e *encoder) epoch(k string, t *notification.EpochTime) {
	if t == nil {
		return
	}
	e.key(k)
	e.b = strconv.AppendInt(e.b, int64(*t), 10)
}

// object writes m with sorted keys.
func (e *encoder) object(path, k string, m map[string]any) error {
	if m == nil {
		return nil
	}
	e.key(k)
	return e.value(path, m)
}

// value appends v, leaving e.b untouched on failure.
func (e *encoder) value(path string, v any) error {
	b, err := encodeValue(e.b, path, v, 0)
	if err != nil {
		return err
	}
	e.b = b
	return nil
}

// Encode returns the canonical JSON encoding of aps: keys in the order of the
// aps key table, absent values omitted, numeric flags written as 0 or 1 and
// the keys of content-state and Extra sorted. Encode does not validate; it
// fails only with an *EncodingError for values Validate could not produce.
func Encode(aps APS) ([]byte, error) {
	ptr := bufPool.Get().(*[]byte)
	e := &encoder{b: (*ptr)[:0]}
	defer func() {
		*ptr = e.b
		bufPool.Put(ptr)
	}()

	if err := e.aps("aps", &aps); err != nil {
		return nil, err
	}
	return bytes.Clone(e.b), nil
}

// MarshalJSON implements json.Marshaler using Encode.
func (aps APS) MarshalJSON() ([]byte, error) {
	return Encode(aps)
}

func (e *encoder) aps(path string, aps *APS) error {
	at := func(key string) string { return jsonvalue.Join(path, key) }

	e.open()
	if aps.Alert != nil {
		if aps.Alert.Dict != nil && aps.Alert.Text != "" {
			return &EncodingError{Path: at(KeyAlert), Err: ErrAmbiguousValue}
		}
		e.key(KeyAlert)
		if aps.Alert.Dict != nil {
			e.alert(aps.Alert.Dict)
		} else {
			e.b = appendString(e.b, aps.Alert.Text)
		}
	}
	if aps.Badge != nil {
		e.key(KeyBadge)
		e.b = strconv.AppendInt(e.b, int64(*aps.Badge), 10)
	}
	if aps.Sound != nil {
		if aps.Sound.Dict != nil && aps.Sound.Name != "" {
			return &EncodingError{Path: at(KeySound), Err: ErrAmbiguousValue}
		}
		e.key(KeySound)
		if aps.Sound.Dict != nil {
			if err := e.sound(at(KeySound), aps.Sound.Dict); err != nil {
				return err
			}
		} else {
			e.b = appendString(e.b, aps.Sound.Name)
		}
	}
	e.str(KeyThreadID, aps.ThreadID)
	e.str(KeyCategory, aps.Category)
	if err := e.flag(at(KeyContentAvailable), KeyContentAvailable, aps.ContentAvailable); err != nil {
		return err
	}
	if err := e.flag(at(KeyMutableContent), KeyMutableContent, aps.MutableContent); err != nil {
		return err
	}
	e.str(KeyTargetContentID, aps.TargetContentID)
	e.str(KeyInterruptionLevel, string(aps.InterruptionLevel))
	if err := e.ratio(at(KeyRelevanceScore), KeyRelevanceScore, aps.RelevanceScore); err != nil {
		return err
	}
	e.str(KeyFilterCriteria, aps.FilterCriteria)
	e.epoch(KeyStaleDate, aps.StaleDate)
	if err := e.object(at(KeyContentState), KeyContentState, aps.ContentState); err != nil {
		return err
	}
	e.epoch(KeyTimestamp, aps.Timestamp)
	e.str(KeyEvents, string(aps.Events))

	for _, k := range slices.Sorted(maps.Keys(aps.Extra)) {
		if IsAPSKey(k) {
			return &EncodingError{Path: at(k), Err: ErrKeyCollision}
		}
		e.key(k)
		if err := e.value(at(k), aps.Extra[k]); err != nil {
			return err
		}
	}
	e.close()
	return nil
}

func (e *encoder) alert(a *Alert) {
	e.open()
	e.str(KeyTitle, a.Title)
	e.str(KeySubtitle, a.Subtitle)
	e.str(KeyBody, a.Body)
	e.str(KeyLaunchImage, a.LaunchImage)
	e.str(KeyTitleLocKey, a.TitleLocKey)
	e.strs(KeyTitleLocArgs, a.TitleLocArgs)
	e.str(KeySubtitleLocKey, a.SubtitleLocKey)
	e.strs(KeySubtitleLocArgs, a.SubtitleLocArgs)
	e.str(KeyLocKey, a.LocKey)
	e.strs(KeyLocArgs, a.LocArgs)
	e.str(KeyActionLocKey, a.ActionLocKey)
	e.str(KeyAction, a.Action)
	e.close()
}

func (e *encoder) sound(path string, s *Sound) error {
	at := func(key string) string { return jsonvalue.Join(path, key) }
	e.open()
	if err := e.flag(at(KeyCritical), KeyCritical, s.Critical); err != nil {
		return err
	}
	e.str(KeyName, s.Name)
	if err := e.ratio(at(KeyVolume), KeyVolume, s.Volume); err != nil {
		return err
	}
	e.close()
	return nil
}

// appendString appends s as a JSON string. Invalid UTF-8 is replaced by U+FFFD.
func appendString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				b = append(b, '\\', c)
			case c <= 0x1F:
				b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
			default:
				b = append(b, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, "\ufffd"...)
		} else {
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return append(b, '"')
}

// EncodeValue appends the JSON encoding of v to b. Maps are written with
// sorted keys. Values outside the generic tree (structs, typed slices, ...)
// are encoded with go-json.
func EncodeValue(b []byte, v any) ([]byte, error) {
	return encodeValue(b, "", v, 0)
}

// EncodeValueAt is EncodeValue with EncodingError paths rooted at path.
func EncodeValueAt(b []byte, path string, v any) ([]byte, error) {
	return encodeValue(b, path, v, 0)
}

func encodeValue(b []byte, path string, v any, depth int) ([]byte, error) {
	if depth > maxDepth {
		return nil, &EncodingError{Path: path, Err: ErrTooDeep}
	}
	switch val := v.(type) {
	case nil:
		b = append(b, "null"...)
	case string:
		b = appendString(b, val)
	case bool:
		b = strconv.AppendBool(b, val)
	case json.Number:
		if val == "" || !(val[0] == '-' || ('0' <= val[0] && val[0] <= '9')) || !json.Valid([]byte(val)) {
			return nil, &EncodingError{Path: path, Err: fmt.Errorf("%w: invalid number %q", ErrInvalidType, string(val))}
		}
		b = append(b, val...)
	case int:
		b = strconv.AppendInt(b, int64(val), 10)
	case int64:
		b = strconv.AppendInt(b, val, 10)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, &EncodingError{Path: path, Err: ErrNonFinite}
		}
		b = strconv.AppendFloat(b, val, 'f', -1, 64)
	case notification.EpochTime:
		b = strconv.AppendInt(b, int64(val), 10)
	case map[string]any:
		b = append(b, '{')
		for i, k := range slices.Sorted(maps.Keys(val)) {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendString(b, k)
			b = append(b, ':')
			var err error
			if b, err = encodeValue(b, jsonvalue.Join(path, k), val[k], depth+1); err != nil {
				return nil, err
			}
		}
		b = append(b, '}')
	case []any:
		b = append(b, '[')
		for i, e := range val {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			if b, err = encodeValue(b, jsonvalue.Index(path, i), e, depth+1); err != nil {
				return nil, err
			}
		}
		b = append(b, ']')
	default:
		marshaled, err := json.Marshal(val)
		if err != nil {
			return nil, &EncodingError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidType, err)}
		}
		b = append(b, marshaled...)
	}
	return b, nil
}
