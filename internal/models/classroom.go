package models

import "time"

// Course is an active course in the external classroom service.
type Course struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// CourseWork is one assignment/task of a course, consumed by the
// assignment-link picker.
type CourseWork struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
}

// ExportJobStatus tracks asynchronous board export progress.
type ExportJobStatus string

const (
	ExportJobQueued    ExportJobStatus = "QUEUED"
	ExportJobCompleted ExportJobStatus = "COMPLETED"
	ExportJobFailed    ExportJobStatus = "FAILED"
)

// ExportJob describes one queued board PDF export.
type ExportJob struct {
	ID          string          `json:"id"`
	Key         BoardKey        `json:"key"`
	Status      ExportJobStatus `json:"status"`
	FileName    string          `json:"fileName,omitempty"`
	DownloadURL string          `json:"downloadUrl,omitempty"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
