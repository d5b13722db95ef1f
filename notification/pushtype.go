// package notification provides the timestamp and push-type values that
// accompany an APNs payload.
package notification

// PushType corresponds to the `apns-push-type` header field.
type PushType = string

const (
	// Alert push type is used for notifications that display an alert, play a sound, or badge the app's icon.
	Alert PushType = "alert"
	// Background push type is used for notifications that deliver content in the background.
	Background PushType = "background"
	// Liveactivity push type is used for updating a Live Activity.
	Liveactivity PushType = "liveactivity"
	// Voip push type is for VoIP notifications.
	Voip PushType = "voip"
)

const (
	// MaxPayloadSize is the largest body APNs accepts for most push types.
	MaxPayloadSize = 4096
	// MaxVoipPayloadSize is the largest body APNs accepts for VoIP pushes.
	MaxVoipPayloadSize = 5120
)

// MaxSize returns the payload size limit in bytes for the push type.
func MaxSize(t PushType) int {
	if t == Voip {
		return MaxVoipPayloadSize
	}
	return MaxPayloadSize
}
