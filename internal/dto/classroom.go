package dto

// AnnounceBoardRequest posts a board to a course stream.
type AnnounceBoardRequest struct {
	Date    string `json:"date" binding:"required"`
	ClassID string `json:"classId" binding:"required"`
}

// CreateExportRequest queues a printable PDF export of a board.
type CreateExportRequest struct {
	Date    string `json:"date" binding:"required"`
	ClassID string `json:"classId" binding:"required"`
}
