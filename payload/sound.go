package payload

import "github.com/takimoto3/apnscodec/payload/numericflag"

// DefaultSound plays the system sound.
const DefaultSound = "default"

// Wire keys of the sound dictionary, in encoding order.
const (
	KeyCritical = "critical"
	KeyName     = "name"
	KeyVolume   = "volume"
)

// Sound represents the `sound` dictionary used for configuring notification sounds,
// particularly for critical alerts.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type Sound struct {
	// Critical indicates whether the sound is for a critical alert.
	Critical *numericflag.NumericFlag

	// Name is the name of a sound file in the app's bundle or Library/Sounds
	// folder, or DefaultSound.
	Name string

	// Volume is the volume of the critical alert's sound, from 0 (silent) to 1 (full volume).
	Volume *Ratio
}

// SoundValue holds the `sound` key, which is either the name of a sound file
// or a Sound dictionary. Dict selects the dictionary form; when it is nil the
// value is the string Name. Critical and volume only exist in the dictionary
// form.
type SoundValue struct {
	Name string
	Dict *Sound
}

// SoundName returns the string form of the sound.
func SoundName(name string) *SoundValue {
	return &SoundValue{Name: name}
}

// SoundDict returns the dictionary form of the sound holding a copy of s.
func SoundDict(s Sound) *SoundValue {
	return &SoundValue{Dict: &s}
}

// IsDict reports whether v uses the dictionary form.
func (v *SoundValue) IsDict() bool {
	return v != nil && v.Dict != nil
}
