package schedule

import "github.com/classdeck/classdeck-api/internal/models"

// slot is a literal period entry of the bell-schedule table.
type slot struct {
	label string
	time  string
}

// tieredSlot carries the two time ranges a slot can take depending on the
// room's lunch tier.
type tieredSlot struct {
	label     string
	tier1Time string
	tier2Time string
}

// The lunch slot's label is fixed by tier, not by schedule.
const (
	tier1LunchLabel = "1st LUNCH"
	tier2LunchLabel = "2nd LUNCH"
)

// lunchSlot carries the two lunch time ranges; the label comes from the
// tier constants above.
type lunchSlot struct {
	tier1Time string
	tier2Time string
}

// dayTable is one bell schedule. The opening slots are fixed; lunch and the
// split period swap position and time range by lunch tier; the closing slots
// are fixed again. Schedules without a lunch/split pair (B-Early, NONE) leave
// those nil.
type dayTable struct {
	title   string
	opening []slot
	lunch   *lunchSlot
	split   *tieredSlot
	closing []slot
}

// Static domain data transcribed from the campus bell schedules. Changing a
// time here changes what every board renders; do not derive these.
var dayTables = map[models.ScheduleType]dayTable{
	models.ScheduleA: {
		title:   "Schedule A (Lunch in 3rd)",
		opening: []slot{{"Per 1", "8:10-9:30"}, {"Per 2", "9:40-11:00"}},
		lunch:   &lunchSlot{"11:00-11:30", "12:30-1:00"},
		split:   &tieredSlot{"Per 3", "11:40-1:00", "11:10-12:30"},
		closing: []slot{{"Per 4", "1:10-2:30"}},
	},
	models.ScheduleB: {
		title:   "Schedule B (Lunch in 6th)",
		opening: []slot{{"Per 5", "8:10-9:30"}, {"Community", "9:40-11:00"}},
		lunch:   &lunchSlot{"11:00-11:30", "12:30-1:00"},
		split:   &tieredSlot{"Per 6", "11:40-1:00", "11:10-12:30"},
		closing: []slot{{"Per 7", "1:10-2:30"}},
	},
	models.ScheduleBLate: {
		title:   "Student Late Arrival",
		opening: []slot{{"Faculty", "7:30-9:30"}, {"Per 5", "9:40-11:00"}},
		lunch:   &lunchSlot{"11:00-11:30", "12:30-1:00"},
		split:   &tieredSlot{"Per 6", "11:40-1:00", "11:10-12:30"},
		closing: []slot{{"Per 7", "1:10-2:30"}},
	},
	models.ScheduleBAssembly: {
		title:   "Schedule B (Assembly)",
		opening: []slot{{"Per 5", "8:10-9:30"}, {"Per 7", "9:40-11:00"}},
		lunch:   &lunchSlot{"11:00-11:30", "12:30-1:00"},
		split:   &tieredSlot{"Per 6", "11:40-1:00", "11:10-12:30"},
		closing: []slot{{"Assembly", "1:10-2:30"}},
	},
	models.ScheduleBEarly: {
		title:   "B (Early Dismissal)",
		opening: []slot{{"Per 5", "8:10-9:30"}, {"Per 7", "9:40-11:00"}, {"Per 6", "11:10-12:30"}},
	},
	models.ScheduleC: {
		title:   "Schedule C (45m)",
		opening: []slot{{"Per 1", "8:10-9:00"}, {"Per 2", "9:05-9:50"}, {"Per 3", "9:55-10:40"}},
		lunch:   &lunchSlot{"10:40-11:15", "11:30-12:05"},
		split:   &tieredSlot{"Per 4", "11:20-12:05", "10:45-11:30"},
		closing: []slot{{"Per 5", "12:10-12:55"}, {"Per 6", "1:00-1:45"}, {"Per 7", "1:50-2:35"}},
	},
	models.ScheduleNone: {
		title:   "No School / Break",
		opening: []slot{{"Campus Status", "Closed"}},
	},
}

// Details renders the bell schedule for the given type and room. Unknown
// schedule types fall back to the NONE entry.
func Details(scheduleType models.ScheduleType, room string) models.ScheduleDetails {
	table, ok := dayTables[scheduleType]
	if !ok {
		table = dayTables[models.ScheduleNone]
	}

	tier := LunchTierForRoom(room).Tier

	timeline := make([]models.TimelineSlot, 0, len(table.opening)+3+len(table.closing))
	for _, s := range table.opening {
		timeline = append(timeline, models.TimelineSlot{Label: s.label, Time: s.time})
	}

	if table.lunch != nil && table.split != nil {
		lunch := models.TimelineSlot{Label: tier1LunchLabel, Time: table.lunch.tier1Time, IsLunch: true}
		split := models.TimelineSlot{Label: table.split.label, Time: table.split.tier1Time}
		if tier == 2 {
			lunch = models.TimelineSlot{Label: tier2LunchLabel, Time: table.lunch.tier2Time, IsLunch: true}
			split = models.TimelineSlot{Label: table.split.label, Time: table.split.tier2Time}
			// 2nd-lunch rooms teach the split period first, then eat.
			timeline = append(timeline, split, lunch)
		} else {
			timeline = append(timeline, lunch, split)
		}
	}

	for _, s := range table.closing {
		timeline = append(timeline, models.TimelineSlot{Label: s.label, Time: s.time})
	}

	return models.ScheduleDetails{Title: table.title, Timeline: timeline}
}
