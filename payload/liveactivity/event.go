// Package liveactivity holds the values of the `events` key used by remote
// Live Activity updates.
package liveactivity

// Event describes whether a push updates or ends an ongoing Live Activity.
type Event string

const (
	// Update replaces the activity's content-state.
	Update Event = "update"
	// End ends the activity.
	End Event = "end"
)

// Values lists the accepted events.
var Values = []Event{Update, End}

// Valid reports whether e is one of the defined events.
func (e Event) Valid() bool {
	return e == Update || e == End
}
