package dto

import "github.com/classdeck/classdeck-api/internal/models"

// GenerateSectionRequest asks for AI-drafted text for one section of the
// currently selected board.
type GenerateSectionRequest struct {
	Topic      string            `json:"topic" binding:"required"`
	Subject    string            `json:"subject"`
	SectionKey models.SectionKey `json:"sectionKey" binding:"required"`
}

// GenerateBoardRequest asks for an AI-drafted full lesson plan.
type GenerateBoardRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Subject string `json:"subject"`
}

// GeneratedSectionResponse is the applied result of a single-section
// generation.
type GeneratedSectionResponse struct {
	SectionKey models.SectionKey `json:"sectionKey"`
	Text       string            `json:"text"`
}
