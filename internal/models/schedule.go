package models

// ScheduleType is the day's bell-schedule variant.
type ScheduleType string

const (
	ScheduleA         ScheduleType = "A"
	ScheduleB         ScheduleType = "B"
	ScheduleBLate     ScheduleType = "B-Late"
	ScheduleBAssembly ScheduleType = "B-Assembly"
	ScheduleBEarly    ScheduleType = "B-Early"
	ScheduleC         ScheduleType = "C"
	ScheduleNone      ScheduleType = "NONE"
)

// ValidScheduleType reports whether t names a known bell schedule.
func ValidScheduleType(t ScheduleType) bool {
	switch t {
	case ScheduleA, ScheduleB, ScheduleBLate, ScheduleBAssembly, ScheduleBEarly, ScheduleC, ScheduleNone:
		return true
	}
	return false
}

// DayClassification is the ephemeral result of classifying one date's
// calendar events. It is recomputed per date, never persisted.
type DayClassification struct {
	ScheduleType ScheduleType `json:"scheduleType"`
	OtherEvents  []string     `json:"otherEvents"`
}

// TimelineSlot is one period or lunch entry of a rendered day schedule.
type TimelineSlot struct {
	Label   string `json:"label"`
	Time    string `json:"time"`
	IsLunch bool   `json:"isLunch"`
}

// ScheduleDetails is a bell schedule rendered for a specific room.
type ScheduleDetails struct {
	Title    string         `json:"title"`
	Timeline []TimelineSlot `json:"timeline"`
}

// LunchTier tells which of the two lunch slots a room is assigned to.
type LunchTier struct {
	Tier       int  `json:"tier"`
	Recognized bool `json:"recognized"`
}
