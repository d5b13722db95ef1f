package payload

// Wire keys of the alert dictionary, in encoding order.
const (
	KeyTitle           = "title"
	KeySubtitle        = "subtitle"
	KeyBody            = "body"
	KeyLaunchImage     = "launch-image"
	KeyTitleLocKey     = "title-loc-key"
	KeyTitleLocArgs    = "title-loc-args"
	KeySubtitleLocKey  = "subtitle-loc-key"
	KeySubtitleLocArgs = "subtitle-loc-args"
	KeyLocKey          = "loc-key"
	KeyLocArgs         = "loc-args"
	KeyActionLocKey    = "action-loc-key"
	KeyAction          = "action"
)

// Alert represents the `alert` dictionary within the `aps` payload.
// It defines the content and appearance of the user-facing notification.
// An empty string means the key is absent; a nil slice means the key is
// absent, a non-nil empty slice is encoded as [].
//
// For more details, see the Apple Developer Documentation:
// https://developer.apple.com/documentation/usernotifications/generating-a-remote-notification
type Alert struct {
	// Title is the title of the notification.
	Title string

	// Subtitle is the subtitle of the notification.
	Subtitle string

	// Body is the main content of the notification.
	Body string

	// LaunchImage is the name of an image file in the app bundle to be displayed
	// when the user launches the app from the notification.
	LaunchImage string

	// --- Localization ---

	// TitleLocKey is the key for a localized string to be used for the
	// notification's title.
	TitleLocKey string

	// TitleLocArgs are the arguments for `title-loc-key`.
	TitleLocArgs []string

	// SubtitleLocKey is the key for a localized string to be used for the
	// notification's subtitle.
	SubtitleLocKey string

	// SubtitleLocArgs are the arguments for `subtitle-loc-key`.
	SubtitleLocArgs []string

	// LocKey is the key for a localized string in the app's `Localizable.strings`
	// file to be used for the notification's body.
	LocKey string

	// LocArgs are the variable string values to appear in place of the format
	// specifiers in `loc-key`.
	LocArgs []string

	// ActionLocKey is the key for a localized action button title.
	//
	// Deprecated: APNs ignores this key on current systems.
	ActionLocKey string

	// Action is the action button title.
	//
	// Deprecated: APNs ignores this key on current systems.
	Action string
}

// AlertValue holds the `alert` key, which is either a plain string shown as
// the body or an Alert dictionary. Dict selects the dictionary form; when it
// is nil the value is the string Text.
type AlertValue struct {
	Text string
	Dict *Alert
}

// AlertText returns the string form of the alert.
func AlertText(s string) *AlertValue {
	return &AlertValue{Text: s}
}

// AlertDict returns the dictionary form of the alert holding a copy of a.
func AlertDict(a Alert) *AlertValue {
	return &AlertValue{Dict: &a}
}

// IsDict reports whether v uses the dictionary form.
func (v *AlertValue) IsDict() bool {
	return v != nil && v.Dict != nil
}
