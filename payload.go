// package apnscodec validates, encodes and decodes the JSON payload of an
// Apple Push Notification: the `aps` dictionary and the app-defined keys
// next to it.
package apnscodec

import (
	"maps"
	"slices"

	"github.com/takimoto3/apnscodec/internal/jsonvalue"
	"github.com/takimoto3/apnscodec/notification"
	"github.com/takimoto3/apnscodec/payload"
)

// Payload represents the JSON payload of an APNs notification.
// It consists of the standard `aps` dictionary and any custom data.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type Payload struct {
	// APS is the Apple-defined dictionary that contains notification-specific data.
	APS payload.APS

	// CustomData holds the app-specific keys at the root level of the payload,
	// next to `aps`. Its values are passed through unchanged.
	CustomData map[string]any
}

// ValidatePayload checks a decoded payload document. The root must be an
// object holding an `aps` object; every other root key is deep-copied to
// CustomData. Custom values are only checked for nesting deeper than Encode
// accepts.
func ValidatePayload(in any, opts ...payload.Option) (Payload, payload.Violations) {
	return validate(payload.NewValidator(opts...), in)
}

func validate(v *payload.Validator, in any) (Payload, payload.Violations) {
	var p Payload
	root, ok := in.(map[string]any)
	if !ok {
		return p, payload.Violations{{
			Path:     "",
			Code:     payload.CodeInvalidType,
			Expected: "object",
			Actual:   in,
			Severity: payload.SeverityError,
		}}
	}

	var vs payload.Violations
	if raw, ok := root[payloadKeyAPS]; ok {
		p.APS, vs = v.ValidateAt(payloadKeyAPS, raw)
	} else {
		vs = append(vs, payload.Violation{
			Path:     payloadKeyAPS,
			Code:     payload.CodeRequired,
			Expected: "aps object",
			Severity: payload.SeverityError,
		})
	}

	for _, k := range slices.Sorted(maps.Keys(root)) {
		if k == payloadKeyAPS {
			continue
		}
		val, errs := payload.CloneValue(k, root[k])
		if len(errs) > 0 {
			vs = append(vs, errs...)
			continue
		}
		if p.CustomData == nil {
			p.CustomData = make(map[string]any)
		}
		p.CustomData[k] = val
	}
	return p, vs
}

// DecodePayload parses wire JSON text and validates it with ValidatePayload.
// A *payload.ParseError is returned when data is not well-formed JSON. Keys
// repeated within one object anywhere in the document are reported as
// duplicate_key warnings.
func DecodePayload(data []byte, opts ...payload.Option) (Payload, payload.Violations, error) {
	tree, dups, err := jsonvalue.Parse(data)
	if err != nil {
		return Payload{}, nil, &payload.ParseError{Err: err}
	}
	v := payload.NewValidator(opts...)

	var vs payload.Violations
	for _, path := range dups {
		vs = append(vs, payload.DuplicateKey(path))
	}
	if v.Strict() {
		vs = vs.Escalate()
	}
	p, rest := validate(v, tree)
	return p, append(vs, rest...), nil
}

// UnmarshalJSON implements json.Unmarshaler. It fails with a
// *payload.ParseError or with the error-severity Violations; warnings are
// dropped.
func (p *Payload) UnmarshalJSON(data []byte) error {
	v, vs, err := DecodePayload(data)
	if err != nil {
		return err
	}
	if err := vs.Err(); err != nil {
		return err
	}
	*p = v
	return nil
}

// PushType infers the `apns-push-type` the payload should be sent with:
// liveactivity for Live Activity updates, background for silent pushes that
// carry nothing to display, alert otherwise. VoIP pushes cannot be told apart
// by their payload.
func (p *Payload) PushType() notification.PushType {
	aps := &p.APS
	switch {
	case aps.IsLiveActivity():
		return notification.Liveactivity
	case aps.IsSilent() && aps.Alert == nil && aps.Badge == nil && aps.Sound == nil:
		return notification.Background
	default:
		return notification.Alert
	}
}
