package payload

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/takimoto3/apnscodec/internal/jsonvalue"
	"github.com/takimoto3/apnscodec/notification"
	"github.com/takimoto3/apnscodec/payload/interruptionlevel"
	"github.com/takimoto3/apnscodec/payload/liveactivity"
	"github.com/takimoto3/apnscodec/payload/numericflag"
)

// Validator checks decoded values against the aps schema. It holds no state
// besides its options and is safe for concurrent use.
type Validator struct {
	opts options
}

// NewValidator returns a Validator configured by opts.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(&v.opts)
	}
	return v
}

// Strict reports whether the validator escalates warnings to errors.
func (v *Validator) Strict() bool {
	return v.opts.strict
}

// Validate checks a decoded aps dictionary and returns the typed value
// together with every violation found. The value is complete when
// Violations.Err returns nil; otherwise it holds the fields that were valid.
//
// in is a generic value tree as produced by JSON or YAML decoders: objects as
// map[string]any, arrays as []any, numbers as json.Number or a Go numeric
// kind. Validate never panics on malformed input.
func (v *Validator) Validate(in any) (APS, Violations) {
	return v.ValidateAt("aps", in)
}

// ValidateAt is Validate with violation paths rooted at path.
func (v *Validator) ValidateAt(path string, in any) (APS, Violations) {
	c := &checker{opts: v.opts}
	aps := c.aps(path, in)
	return aps, v.finish(c.out)
}

func (v *Validator) finish(vs Violations) Violations {
	if v.opts.strict {
		return vs.Escalate()
	}
	return vs
}

// Validate checks a decoded aps dictionary with a Validator configured by opts.
func Validate(in any, opts ...Option) (APS, Violations) {
	return NewValidator(opts...).Validate(in)
}

type checker struct {
	opts options
	out  Violations
}

func (c *checker) report(path, code, expected string, actual any) {
	c.out = append(c.out, Violation{Path: path, Code: code, Expected: expected, Actual: actual, Severity: SeverityError})
}

func (c *checker) warn(path, code, expected string, actual any) {
	c.out = append(c.out, Violation{Path: path, Code: code, Expected: expected, Actual: actual, Severity: SeverityWarning})
}

func (c *checker) object(path string, v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		c.report(path, CodeInvalidType, "object", v)
	}
	return obj, ok
}

func (c *checker) str(path string, v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		c.report(path, CodeInvalidType, "string", v)
	}
	return s, ok
}

func (c *checker) strings(path string, v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		c.report(path, CodeInvalidType, "array of strings", v)
		return nil, false
	}
	out := make([]string, 0, len(arr))
	valid := true
	for i, e := range arr {
		s, ok := c.str(jsonvalue.Index(path, i), e)
		valid = valid && ok
		out = append(out, s)
	}
	if !valid {
		return nil, false
	}
	return out, true
}

func (c *checker) flag(path string, v any) (*numericflag.NumericFlag, bool) {
	n, ok := toInt(v)
	if !ok || !numericflag.NumericFlag(n).Valid() {
		c.report(path, CodeInvalidValue, "the integer 0 or 1", v)
		return nil, false
	}
	return numericflag.New(numericflag.NumericFlag(n)), true
}

func (c *checker) ratio(path string, v any) (*Ratio, bool) {
	f, ok := toFloat(v)
	if !ok {
		c.report(path, CodeInvalidType, "number", v)
		return nil, false
	}
	if err := Ratio(f).Validate(); err != nil {
		c.report(path, CodeOutOfRange, "number in [0, 1]", v)
		return nil, false
	}
	return NewRatio(f), true
}

func (c *checker) epoch(path string, v any) (*notification.EpochTime, bool) {
	n, ok := toInt(v)
	if !ok {
		c.report(path, CodeInvalidType, "integer UNIX timestamp", v)
		return nil, false
	}
	if n < 0 {
		c.report(path, CodeOutOfRange, "non-negative UNIX timestamp", v)
		return nil, false
	}
	t := notification.EpochTime(n)
	return &t, true
}

// value deep-copies an opaque value, reporting trees nested deeper than the
// encoder accepts.
func (c *checker) value(path string, v any) (any, bool) {
	out, ok := cloneValue(v, 0)
	if !ok {
		c.report(path, CodeTooDeep, "nesting depth at most "+strconv.Itoa(maxDepth), describe(v))
	}
	return out, ok
}

// unknown warns about keys of a closed dictionary that are not in known.
func (c *checker) unknown(path string, obj map[string]any, known ...string) {
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if !slices.Contains(known, k) {
			c.warn(jsonvalue.Join(path, k), CodeUnknownKey, "one of "+strings.Join(known, ", "), obj[k])
		}
	}
}

func (c *checker) aps(path string, v any) APS {
	var aps APS
	obj, ok := c.object(path, v)
	if !ok {
		return aps
	}
	at := func(key string) string { return jsonvalue.Join(path, key) }

	if raw, ok := obj[KeyAlert]; ok {
		aps.Alert = c.alertValue(at(KeyAlert), raw)
	}
	if raw, ok := obj[KeyBadge]; ok {
		n, ok := toInt(raw)
		switch {
		case !ok:
			c.report(at(KeyBadge), CodeInvalidType, "integer", raw)
		case n < math.MinInt || n > math.MaxInt:
			c.report(at(KeyBadge), CodeOutOfRange, "integer within the range of int", raw)
		default:
			if n < 0 {
				c.warn(at(KeyBadge), CodeOutOfRange, "non-negative integer", raw)
			}
			aps.Badge = Int(int(n))
		}
	}
	if raw, ok := obj[KeySound]; ok {
		aps.Sound = c.soundValue(at(KeySound), raw)
	}
	if raw, ok := obj[KeyThreadID]; ok {
		aps.ThreadID, _ = c.str(at(KeyThreadID), raw)
	}
	if raw, ok := obj[KeyCategory]; ok {
		aps.Category, _ = c.str(at(KeyCategory), raw)
	}
	if raw, ok := obj[KeyContentAvailable]; ok {
		aps.ContentAvailable, _ = c.flag(at(KeyContentAvailable), raw)
	}
	if raw, ok := obj[KeyMutableContent]; ok {
		aps.MutableContent, _ = c.flag(at(KeyMutableContent), raw)
	}
	if raw, ok := obj[KeyTargetContentID]; ok {
		aps.TargetContentID, _ = c.str(at(KeyTargetContentID), raw)
	}
	if raw, ok := obj[KeyInterruptionLevel]; ok {
		aps.InterruptionLevel = c.interruptionLevel(at(KeyInterruptionLevel), raw)
	}
	if raw, ok := obj[KeyRelevanceScore]; ok {
		aps.RelevanceScore = c.relevanceScore(at(KeyRelevanceScore), raw, obj)
	}
	if raw, ok := obj[KeyFilterCriteria]; ok {
		aps.FilterCriteria, _ = c.str(at(KeyFilterCriteria), raw)
	}
	if raw, ok := obj[KeyStaleDate]; ok {
		aps.StaleDate, _ = c.epoch(at(KeyStaleDate), raw)
	}
	if raw, ok := obj[KeyContentState]; ok {
		if m, ok := c.object(at(KeyContentState), raw); ok {
			if v, ok := c.value(at(KeyContentState), m); ok {
				aps.ContentState = v.(map[string]any)
			}
		}
	}
	if raw, ok := obj[KeyTimestamp]; ok {
		aps.Timestamp, _ = c.epoch(at(KeyTimestamp), raw)
	}
	if raw, ok := obj[KeyEvents]; ok {
		aps.Events = c.events(at(KeyEvents), raw)
	}

	stringSound := aps.Sound != nil && !aps.Sound.IsDict()
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if IsAPSKey(k) {
			continue
		}
		if stringSound && (k == KeyCritical || k == KeyVolume) {
			c.report(at(k), CodeMisplacedKey, "sound dictionary member, sound is a string", obj[k])
			continue
		}
		v, ok := c.value(at(k), obj[k])
		if !ok {
			continue
		}
		if aps.Extra == nil {
			aps.Extra = make(map[string]any)
		}
		aps.Extra[k] = v
	}

	if aps.IsSilent() {
		var conflicts []string
		for _, k := range []string{KeyAlert, KeyBadge, KeySound} {
			if _, ok := obj[k]; ok {
				conflicts = append(conflicts, k)
			}
		}
		if len(conflicts) > 0 {
			c.warn(at(KeyContentAvailable), CodeSilentConflict,
				"no alert, badge or sound in a background update", strings.Join(conflicts, ", "))
		}
	}
	return aps
}

// alertValue decodes the string | dictionary sum by the JSON shape of v.
func (c *checker) alertValue(path string, v any) *AlertValue {
	switch x := v.(type) {
	case string:
		return AlertText(x)
	case map[string]any:
		return AlertDict(c.alert(path, x))
	}
	c.report(path, CodeInvalidType, "string or object", v)
	return nil
}

func (c *checker) alert(path string, obj map[string]any) Alert {
	var a Alert
	at := func(key string) string { return jsonvalue.Join(path, key) }
	strs := []struct {
		key string
		dst *string
	}{
		{KeyTitle, &a.Title},
		{KeySubtitle, &a.Subtitle},
		{KeyBody, &a.Body},
		{KeyLaunchImage, &a.LaunchImage},
		{KeyTitleLocKey, &a.TitleLocKey},
		{KeySubtitleLocKey, &a.SubtitleLocKey},
		{KeyLocKey, &a.LocKey},
		{KeyActionLocKey, &a.ActionLocKey},
		{KeyAction, &a.Action},
	}
	for _, f := range strs {
		if raw, ok := obj[f.key]; ok {
			*f.dst, _ = c.str(at(f.key), raw)
		}
	}

	args := []struct {
		key, locKey string
		dst         *[]string
	}{
		{KeyTitleLocArgs, KeyTitleLocKey, &a.TitleLocArgs},
		{KeySubtitleLocArgs, KeySubtitleLocKey, &a.SubtitleLocArgs},
		{KeyLocArgs, KeyLocKey, &a.LocArgs},
	}
	for _, f := range args {
		raw, ok := obj[f.key]
		if !ok {
			continue
		}
		*f.dst, _ = c.strings(at(f.key), raw)
		if _, ok := obj[f.locKey]; !ok {
			c.warn(at(f.key), CodeOrphanLocArgs, f.locKey+" alongside "+f.key, raw)
		}
	}

	c.unknown(path, obj,
		KeyTitle, KeySubtitle, KeyBody, KeyLaunchImage,
		KeyTitleLocKey, KeyTitleLocArgs, KeySubtitleLocKey, KeySubtitleLocArgs,
		KeyLocKey, KeyLocArgs, KeyActionLocKey, KeyAction)
	return a
}

// soundValue decodes the string | dictionary sum by the JSON shape of v.
func (c *checker) soundValue(path string, v any) *SoundValue {
	switch x := v.(type) {
	case string:
		return SoundName(x)
	case map[string]any:
		return SoundDict(c.sound(path, x))
	}
	c.report(path, CodeInvalidType, "string or object", v)
	return nil
}

func (c *checker) sound(path string, obj map[string]any) Sound {
	var s Sound
	at := func(key string) string { return jsonvalue.Join(path, key) }
	if raw, ok := obj[KeyCritical]; ok {
		s.Critical, _ = c.flag(at(KeyCritical), raw)
	}
	if raw, ok := obj[KeyName]; ok {
		s.Name, _ = c.str(at(KeyName), raw)
	}
	if raw, ok := obj[KeyVolume]; ok {
		s.Volume, _ = c.ratio(at(KeyVolume), raw)
	}
	c.unknown(path, obj, KeyCritical, KeyName, KeyVolume)
	return s
}

func (c *checker) interruptionLevel(path string, v any) interruptionlevel.InterruptionLevel {
	s, ok := v.(string)
	if !ok {
		c.report(path, CodeInvalidType, "string", v)
		return ""
	}
	if l := interruptionlevel.InterruptionLevel(s); l.Valid() {
		return l
	}
	c.report(path, CodeInvalidEnum, "one of passive, active, time-sensitive, critical", v)
	return ""
}

func (c *checker) events(path string, v any) liveactivity.Event {
	s, ok := v.(string)
	if !ok {
		c.report(path, CodeInvalidType, "string", v)
		return ""
	}
	if e := liveactivity.Event(s); e.Valid() {
		return e
	}
	c.report(path, CodeInvalidEnum, "one of update, end", v)
	return ""
}

func (c *checker) relevanceScore(path string, v any, obj map[string]any) *Ratio {
	if _, live := obj[KeyContentState]; live && c.opts.liveActivityRelevance {
		f, ok := toFloat(v)
		if !ok {
			c.report(path, CodeInvalidType, "number", v)
			return nil
		}
		return NewRatio(f)
	}
	r, _ := c.ratio(path, v)
	return r
}
