package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/pkg/config"
)

// ClassroomClient talks to the external classroom REST service. Every call
// is authenticated with the caller's bearer token from the session record;
// the client itself holds no credentials.
type ClassroomClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClassroomClient constructs a classroom client.
func NewClassroomClient(cfg config.ClassroomConfig) *ClassroomClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClassroomClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type coursesResponse struct {
	Courses []models.Course `json:"courses"`
}

type courseWorkResponse struct {
	CourseWork []models.CourseWork `json:"courseWork"`
}

// ListCourses returns the caller's active courses.
func (c *ClassroomClient) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	var payload coursesResponse
	if err := c.get(ctx, token, "/courses?courseStates=ACTIVE", &payload); err != nil {
		return nil, err
	}
	return payload.Courses, nil
}

// ListCourseWork returns the coursework of one course.
func (c *ClassroomClient) ListCourseWork(ctx context.Context, token, courseID string) ([]models.CourseWork, error) {
	var payload courseWorkResponse
	if err := c.get(ctx, token, fmt.Sprintf("/courses/%s/courseWork", courseID), &payload); err != nil {
		return nil, err
	}
	return payload.CourseWork, nil
}

// CreateAnnouncement posts a published announcement with one link material.
func (c *ClassroomClient) CreateAnnouncement(ctx context.Context, token, courseID, text, linkURL string) error {
	body, err := json.Marshal(map[string]interface{}{
		"text":      text,
		"materials": []map[string]interface{}{{"link": map[string]string{"url": linkURL}}},
		"state":     "PUBLISHED",
	})
	if err != nil {
		return fmt.Errorf("marshal announcement: %w", err)
	}

	endpoint := fmt.Sprintf("%s/courses/%s/announcements", c.baseURL, courseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build announcement request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post announcement: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("classroom service returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *ClassroomClient) get(ctx context.Context, token, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build classroom request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call classroom service: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("classroom service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode classroom response: %w", err)
	}
	return nil
}
