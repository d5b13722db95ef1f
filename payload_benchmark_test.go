package apnscodec_test

import (
	"encoding/json"
	"testing"

	"github.com/takimoto3/apnscodec"
	"github.com/takimoto3/apnscodec/payload"
)

func BenchmarkPayloadEncode(b *testing.B) {
	p := apnscodec.Payload{
		APS: payload.APS{
			Alert: payload.AlertDict(payload.Alert{Title: "Game Request", Body: "Bob wants to play poker"}),
			Badge: payload.Int(9),
			Sound: payload.SoundName(payload.DefaultSound),
		},
		CustomData: map[string]any{
			"gameID":  "12345678",
			"players": []any{"bob", "alice"},
		},
	}
	generic := map[string]any{
		"aps": map[string]any{
			"alert": map[string]any{"title": "Game Request", "body": "Bob wants to play poker"},
			"badge": 9,
			"sound": "default",
		},
		"gameID":  "12345678",
		"players": []any{"bob", "alice"},
	}

	b.Run("encoding_json(generic)", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = json.Marshal(generic)
		}
	})
	b.Run("Encode", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = apnscodec.Encode(p)
		}
	})
}

func BenchmarkDecodePayload(b *testing.B) {
	data := []byte(`{"aps":{"alert":{"title":"Game Request","body":"Bob wants to play poker"},"badge":9,"sound":"default"},"gameID":"12345678"}`)
	for i := 0; i < b.N; i++ {
		_, _, _ = apnscodec.DecodePayload(data)
	}
}
