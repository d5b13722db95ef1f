package apnscodec

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/takimoto3/apnscodec/notification"
	"github.com/takimoto3/apnscodec/payload"
)

const payloadKeyAPS = "aps"

// ErrPayloadTooLarge is returned by CheckSize when an encoded payload exceeds
// the APNs limit for its push type.
var ErrPayloadTooLarge = errors.New("payload too large")

var payloadBufSize = 1024

var payloadPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, payloadBufSize)
		return &b
	},
}

// Encode returns the canonical JSON encoding of p: `aps` first, then the
// custom keys in sorted order.
func Encode(p Payload) ([]byte, error) {
	apsBytes, err := payload.Encode(p.APS)
	if err != nil {
		return nil, err
	}

	ptr := payloadPool.Get().(*[]byte)
	b := (*ptr)[:0]
	defer func() {
		*ptr = b
		payloadPool.Put(ptr)
	}()

	b = append(b, `{"aps":`...)
	b = append(b, apsBytes...)
	for _, k := range slices.Sorted(maps.Keys(p.CustomData)) {
		if k == payloadKeyAPS {
			return nil, &payload.EncodingError{Path: k, Err: payload.ErrKeyCollision}
		}
		b = append(b, ',')
		nb, err := payload.EncodeValue(b, k)
		if err != nil {
			return nil, err
		}
		b = append(nb, ':')
		if nb, err = payload.EncodeValueAt(b, k, p.CustomData[k]); err != nil {
			return nil, err
		}
		b = nb
	}
	b = append(b, '}')
	return bytes.Clone(b), nil
}

// MarshalJSON implements the `json.Marshaler` interface.
// It merges the `aps` dictionary and the CustomData map at the root level of
// the payload.
func (p Payload) MarshalJSON() ([]byte, error) {
	return Encode(p)
}

// CheckSize reports an error wrapping ErrPayloadTooLarge when body is larger
// than APNs accepts for pushType.
func CheckSize(body []byte, pushType notification.PushType) error {
	limit := notification.MaxSize(pushType)
	if len(body) > limit {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit for %s pushes", ErrPayloadTooLarge, len(body), limit, pushType)
	}
	return nil
}
