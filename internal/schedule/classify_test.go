package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classdeck/classdeck-api/internal/models"
)

func TestClassifyAssemblyDay(t *testing.T) {
	result := Classify([]string{"Schedule B - Assembly Day", "Model UN Meeting"})

	assert.Equal(t, models.ScheduleBAssembly, result.ScheduleType)
	assert.Equal(t, []string{"Model UN Meeting"}, result.OtherEvents)
}

func TestClassifyEmptyInput(t *testing.T) {
	result := Classify(nil)

	assert.Equal(t, models.ScheduleNone, result.ScheduleType)
	assert.Empty(t, result.OtherEvents)
	require.NotNil(t, result.OtherEvents)
}

func TestClassifyTypes(t *testing.T) {
	cases := []struct {
		name   string
		titles []string
		want   models.ScheduleType
	}{
		{"schedule a", []string{"Schedule A"}, models.ScheduleA},
		{"schedule b", []string{"Schedule B"}, models.ScheduleB},
		{"b late", []string{"Schedule B - Late Start"}, models.ScheduleBLate},
		{"b early", []string{"Schedule B Early Dismissal"}, models.ScheduleBEarly},
		{"b assembly", []string{"Schedule B Assembly"}, models.ScheduleBAssembly},
		{"schedule c", []string{"Schedule C Finals"}, models.ScheduleC},
		{"no school", []string{"No School - Staff Day"}, models.ScheduleNone},
		{"fall break", []string{"Fall Break"}, models.ScheduleNone},
		{"unrelated only", []string{"Soccer vs. Central"}, models.ScheduleNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.titles).ScheduleType)
		})
	}
}

func TestClassifyLastMatchWins(t *testing.T) {
	// A day carrying both labels resolves to the later one.
	result := Classify([]string{"Schedule A", "Schedule B"})
	assert.Equal(t, models.ScheduleB, result.ScheduleType)

	// A late NONE keyword also overrides an earlier schedule label.
	result = Classify([]string{"Schedule A", "Thanksgiving Break"})
	assert.Equal(t, models.ScheduleNone, result.ScheduleType)
}

func TestClassifyAssemblyRefinementBeatsEarlyAndLate(t *testing.T) {
	result := Classify([]string{"Schedule B Assembly - Early Release"})
	assert.Equal(t, models.ScheduleBAssembly, result.ScheduleType)
}

func TestClassifyOtherEventsFiltering(t *testing.T) {
	result := Classify([]string{
		"Schedule C",
		"A", // bare letter label, excluded
		"PD", // too short, dropped
		"Chess Club",
		"Spring Break", // affects type but is not a schedule label
	})

	assert.Equal(t, models.ScheduleNone, result.ScheduleType)
	assert.Equal(t, []string{"Chess Club", "Spring Break"}, result.OtherEvents)
}

func TestClassifyPreservesOriginalCasing(t *testing.T) {
	result := Classify([]string{"schedule b", "robotics SCRIMMAGE"})

	assert.Equal(t, models.ScheduleB, result.ScheduleType)
	assert.Equal(t, []string{"robotics SCRIMMAGE"}, result.OtherEvents)
}

func TestClassifyIdempotent(t *testing.T) {
	titles := []string{"Schedule B - Assembly Day", "Model UN Meeting", "Pep Rally"}

	first := Classify(titles)
	second := Classify(titles)

	assert.Equal(t, first, second)
}
