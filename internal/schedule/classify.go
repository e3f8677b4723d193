package schedule

import (
	"strings"

	"github.com/classdeck/classdeck-api/internal/models"
)

// Classify derives the day's bell-schedule type from the calendar event
// titles and collects the titles that are not schedule labels.
//
// Matching is a single left-to-right pass where the last applicable match
// wins; a "Schedule B" match is refined independently by assembly/early/late
// keywords. The asymmetry against an early-break priority order is
// deliberate: days carrying both an A and a later B label resolve to B.
func Classify(titles []string) models.DayClassification {
	result := models.DayClassification{
		ScheduleType: models.ScheduleNone,
		OtherEvents:  []string{},
	}

	for _, title := range titles {
		upper := strings.ToUpper(title)

		switch {
		case strings.Contains(upper, "SCHEDULE A"):
			result.ScheduleType = models.ScheduleA
		case strings.Contains(upper, "SCHEDULE B"):
			result.ScheduleType = models.ScheduleB
			if strings.Contains(upper, "ASSEMBLY") {
				result.ScheduleType = models.ScheduleBAssembly
			} else if strings.Contains(upper, "EARLY") {
				result.ScheduleType = models.ScheduleBEarly
			} else if strings.Contains(upper, "LATE") {
				result.ScheduleType = models.ScheduleBLate
			}
		case strings.Contains(upper, "SCHEDULE C"):
			result.ScheduleType = models.ScheduleC
		case strings.Contains(upper, "NO SCHOOL"), strings.Contains(upper, "BREAK"):
			result.ScheduleType = models.ScheduleNone
		}

		if !isScheduleLabel(upper) && len(title) > 2 {
			result.OtherEvents = append(result.OtherEvents, title)
		}
	}

	return result
}

// isScheduleLabel reports whether the normalized title names a bell schedule
// rather than a regular school event.
func isScheduleLabel(upper string) bool {
	if strings.Contains(upper, "SCHEDULE") {
		return true
	}
	switch upper {
	case "A", "B", "C":
		return true
	}
	return false
}
