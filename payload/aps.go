package payload

import (
	"github.com/takimoto3/apnscodec/notification"
	"github.com/takimoto3/apnscodec/payload/interruptionlevel"
	"github.com/takimoto3/apnscodec/payload/liveactivity"
	"github.com/takimoto3/apnscodec/payload/numericflag"
)

// Wire keys of the aps dictionary, in encoding order.
const (
	KeyAlert             = "alert"
	KeyBadge             = "badge"
	KeySound             = "sound"
	KeyThreadID          = "thread-id"
	KeyCategory          = "category"
	KeyContentAvailable  = "content-available"
	KeyMutableContent    = "mutable-content"
	KeyTargetContentID   = "target-content-id"
	KeyInterruptionLevel = "interruption-level"
	KeyRelevanceScore    = "relevance-score"
	KeyFilterCriteria    = "filter-criteria"
	KeyStaleDate         = "stale-date"
	KeyContentState      = "content-state"
	KeyTimestamp         = "timestamp"
	KeyEvents            = "events"
)

// apsKeys lists the keys APS maps to fields. Anything else lands in Extra.
var apsKeys = map[string]struct{}{
	KeyAlert: {}, KeyBadge: {}, KeySound: {}, KeyThreadID: {}, KeyCategory: {},
	KeyContentAvailable: {}, KeyMutableContent: {}, KeyTargetContentID: {},
	KeyInterruptionLevel: {}, KeyRelevanceScore: {}, KeyFilterCriteria: {},
	KeyStaleDate: {}, KeyContentState: {}, KeyTimestamp: {}, KeyEvents: {},
}

// IsAPSKey reports whether key is one of the aps keys APS models.
func IsAPSKey(key string) bool {
	_, ok := apsKeys[key]
	return ok
}

// APS represents the `aps` dictionary, which is the core of an APNs payload.
// It contains system-defined keys that control how the system delivers and
// displays the notification.
//
// Nil pointers, nil maps and empty strings are absent and are never encoded.
// Values obtained from Validate or Decode are complete copies of the input.
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type APS struct {
	// Alert is the content of the alert message, either a string or an Alert dictionary.
	Alert *AlertValue

	// Badge is the number to display in a badge on the app's icon.
	// Set it to 0 to remove the badge.
	Badge *int

	// Sound is the name of a sound file or a Sound dictionary for critical alerts.
	Sound *SoundValue

	// ThreadID is an identifier to group related notifications.
	ThreadID string

	// Category is the identifier for a registered category of actionable notifications.
	Category string

	// ContentAvailable set to 1 marks a silent background update, which should
	// not carry alert, badge or sound.
	ContentAvailable *numericflag.NumericFlag

	// MutableContent set to 1 lets a Notification Service App Extension modify
	// the notification's content.
	MutableContent *numericflag.NumericFlag

	// TargetContentID is the identifier of the window that will be brought forward.
	TargetContentID string

	// InterruptionLevel indicates the importance and delivery timing of a notification.
	InterruptionLevel interruptionlevel.InterruptionLevel

	// RelevanceScore is a value between 0.0 and 1.0 that determines the sorting order
	// of notifications in the Notification Summary.
	RelevanceScore *Ratio

	// FilterCriteria are the criteria that determine whether a notification is
	// shown in a particular Focus mode.
	FilterCriteria string

	// StaleDate is the time at which a Live Activity becomes stale.
	StaleDate *notification.EpochTime

	// ContentState is the dynamic data for a Live Activity. Its shape belongs
	// to the app's ActivityAttributes and is passed through unchecked.
	ContentState map[string]any

	// Timestamp is the time the remote notification that updates or ends a
	// Live Activity was sent.
	Timestamp *notification.EpochTime

	// Events tells whether the push updates or ends a Live Activity.
	Events liveactivity.Event

	// Extra carries aps keys this type does not model, unchanged. APNs adds
	// keys over time (dismissal-date, attributes-type, ...).
	Extra map[string]any
}

// Int returns a pointer to n, for use in optional payload fields such as Badge.
func Int(n int) *int {
	return &n
}

// IsSilent reports whether aps requests a background update.
func (aps *APS) IsSilent() bool {
	return numericflag.IsSet(aps.ContentAvailable)
}

// IsLiveActivity reports whether aps updates or ends a Live Activity.
func (aps *APS) IsLiveActivity() bool {
	return aps.Events != "" || aps.ContentState != nil
}
