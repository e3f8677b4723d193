package dto

import "github.com/classdeck/classdeck-api/internal/models"

// SelectBoardRequest switches the session to a new day/class selection.
type SelectBoardRequest struct {
	Date    string `json:"date" binding:"required"`
	ClassID string `json:"classId" binding:"required"`
}

// EditSectionRequest replaces one section's text. Blank text is a valid
// edit (clearing the slot).
type EditSectionRequest struct {
	Text string `json:"text"`
}

// AttachMediaRequest attaches media to a section from a pasted URL.
type AttachMediaRequest struct {
	Kind  models.MediaKind `json:"kind" binding:"required"`
	URL   string           `json:"url" binding:"required"`
	Title string           `json:"title"`
}

// UpdateThemeRequest switches the board theme.
type UpdateThemeRequest struct {
	ThemeID string `json:"themeId" binding:"required"`
}

// ScheduleOverrideRequest sets or clears the manual schedule correction.
// A null override returns the day to its classified type.
type ScheduleOverrideRequest struct {
	ScheduleOverride *models.ScheduleType `json:"scheduleOverride"`
}
