package models

import "time"

// SectionKey identifies one of the six fixed lesson-plan slots.
type SectionKey string

const (
	SectionObjective       SectionKey = "objective"
	SectionBellRinger      SectionKey = "bellRinger"
	SectionMiniLecture     SectionKey = "miniLecture"
	SectionDiscussion      SectionKey = "discussion"
	SectionActivity        SectionKey = "activity"
	SectionIndependentWork SectionKey = "independentWork"
)

// SectionKeys lists the six slots in render order.
var SectionKeys = []SectionKey{
	SectionObjective,
	SectionBellRinger,
	SectionMiniLecture,
	SectionDiscussion,
	SectionActivity,
	SectionIndependentWork,
}

// DefaultSectionLabels are the display names used when a teacher has not
// overridden them.
var DefaultSectionLabels = map[SectionKey]string{
	SectionObjective:       "Lesson Objective",
	SectionBellRinger:      "Bell Ringer",
	SectionMiniLecture:     "Mini-Lecture",
	SectionDiscussion:      "Guided Discussion",
	SectionActivity:        "Activity",
	SectionIndependentWork: "Independent Work",
}

// ValidSectionKey reports whether key is one of the six slots.
func ValidSectionKey(key SectionKey) bool {
	_, ok := DefaultSectionLabels[key]
	return ok
}

// MediaKind discriminates the media union.
type MediaKind string

const (
	MediaImage              MediaKind = "image"
	MediaSlidesEmbed        MediaKind = "slidesEmbed"
	MediaExternalLink       MediaKind = "externalLink"
	MediaExternalAssignment MediaKind = "externalAssignment"
)

// Media is the single optional attachment of a section. When present it is
// displayed instead of the section text; the text itself is untouched.
type Media struct {
	Kind    MediaKind `json:"kind"`
	URL     string    `json:"url,omitempty"`
	EmbedID string    `json:"embedId,omitempty"`
	Title   string    `json:"title,omitempty"`
}

// Section is one editable lesson-plan slot.
type Section struct {
	Text  string `json:"text"`
	Media *Media `json:"media"`
}

// GridWeights holds the fractional column/row weights of the board grid.
type GridWeights struct {
	Col1 float64 `json:"col1"`
	Col2 float64 `json:"col2"`
	Col3 float64 `json:"col3"`
	Row1 float64 `json:"row1"`
	Row2 float64 `json:"row2"`
}

// DefaultGridWeights returns the untouched equal-weight layout.
func DefaultGridWeights() GridWeights {
	return GridWeights{Col1: 1, Col2: 1, Col3: 1, Row1: 1, Row2: 1}
}

const (
	// GridWeightMin and GridWeightMax bound every column/row weight.
	GridWeightMin = 0.5
	GridWeightMax = 3.0
)

// Clamp bounds every weight to the allowed range.
func (g GridWeights) Clamp() GridWeights {
	clamp := func(v float64) float64 {
		if v < GridWeightMin {
			return GridWeightMin
		}
		if v > GridWeightMax {
			return GridWeightMax
		}
		return v
	}
	return GridWeights{
		Col1: clamp(g.Col1),
		Col2: clamp(g.Col2),
		Col3: clamp(g.Col3),
		Row1: clamp(g.Row1),
		Row2: clamp(g.Row2),
	}
}

// BoardKey is the composite identity of a lesson board.
type BoardKey struct {
	TeacherID string `json:"teacherId"`
	Date      string `json:"date"` // ISO calendar day, no time component
	ClassID   string `json:"classId"`
}

// LessonBoard is the in-memory editable model for one teacher/date/class.
// After any load it always carries exactly the six section keys.
type LessonBoard struct {
	Key              BoardKey               `json:"key"`
	Sections         map[SectionKey]Section `json:"sections"`
	Layout           GridWeights            `json:"layout"`
	ThemeID          string                 `json:"themeId"`
	ScheduleOverride *ScheduleType          `json:"scheduleOverride,omitempty"`
	UpdatedAt        *time.Time             `json:"updatedAt,omitempty"`
}

// EmptySections returns the six default-filled section slots.
func EmptySections() map[SectionKey]Section {
	sections := make(map[SectionKey]Section, len(SectionKeys))
	for _, key := range SectionKeys {
		sections[key] = Section{}
	}
	return sections
}

// BoardPatch is a partial merge-write payload. Nil fields are left untouched
// in the stored document. Clearing the schedule override needs its own flag:
// a nil ScheduleOverride alone means "not part of this patch", while
// ClearScheduleOverride writes an explicit null so the merge removes the
// stored value.
type BoardPatch struct {
	Sections              map[SectionKey]Section `json:"sections,omitempty"`
	Layout                *GridWeights           `json:"layout,omitempty"`
	ThemeID               *string                `json:"themeId,omitempty"`
	ScheduleOverride      *ScheduleType          `json:"scheduleOverride,omitempty"`
	ClearScheduleOverride bool                   `json:"-"`
}

// TeacherSettings is the per-teacher settings document. Lifecycle is
// independent from lesson boards and only mutated by explicit saves.
type TeacherSettings struct {
	TeacherID      string                `json:"teacherId"`
	RoomNumber     string                `json:"roomNumber"`
	SectionLabels  map[SectionKey]string `json:"sectionLabels"`
	CourseMappings map[string]string     `json:"courseMappings"`
	UpdatedAt      *time.Time            `json:"updatedAt,omitempty"`
}

// SettingsPatch is a partial merge-write payload for teacher settings.
type SettingsPatch struct {
	RoomNumber     *string               `json:"roomNumber,omitempty"`
	SectionLabels  map[SectionKey]string `json:"sectionLabels,omitempty"`
	CourseMappings map[string]string     `json:"courseMappings,omitempty"`
}
