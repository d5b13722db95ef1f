package interruptionlevel

// InterruptionLevel represents the notification's importance level.
type InterruptionLevel string

const (
	// Passive adds the notification to the notification list without interrupting the user.
	Passive InterruptionLevel = "passive"
	// Active brings the notification to the forefront.
	Active InterruptionLevel = "active"
	// TimeSensitive presents the notification immediately.
	TimeSensitive InterruptionLevel = "time-sensitive"
	// Critical presents the notification immediately and may bypass Do Not Disturb.
	Critical InterruptionLevel = "critical"
)

// Values lists the accepted levels in wire order.
var Values = []InterruptionLevel{Passive, Active, TimeSensitive, Critical}

// Valid reports whether l is one of the defined levels.
func (l InterruptionLevel) Valid() bool {
	switch l {
	case Passive, Active, TimeSensitive, Critical:
		return true
	}
	return false
}
