package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type completionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationService turns teacher requests into completion prompts and
// normalizes the model output into section text. A failed or malformed
// completion never applies partially: the caller gets an error and the
// board is untouched.
type GenerationService struct {
	provider completionProvider
	logger   *zap.Logger
}

// NewGenerationService constructs the service.
func NewGenerationService(provider completionProvider, logger *zap.Logger) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{provider: provider, logger: logger}
}

// SectionGenerationRequest asks for the content of a single section.
type SectionGenerationRequest struct {
	Topic        string `json:"topic" binding:"required"`
	Subject      string `json:"subject"`
	SectionLabel string `json:"sectionLabel" binding:"required"`
}

// BoardGenerationRequest asks for a full six-section lesson plan.
type BoardGenerationRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Subject string `json:"subject"`
}

// bulkCompletion is the JSON shape the model is asked to produce for a
// whole-board generation.
type bulkCompletion struct {
	Objective       string `json:"objective"`
	BellRinger      string `json:"bellRinger"`
	MiniLecture     string `json:"miniLecture"`
	Discussion      string `json:"discussion"`
	Activity        string `json:"activity"`
	IndependentWork string `json:"independentWork"`
}

// GenerateSection produces paragraph-wrapped text for one section.
func (s *GenerationService) GenerateSection(ctx context.Context, req SectionGenerationRequest) (string, error) {
	if s.provider == nil {
		return "", appErrors.Clone(appErrors.ErrCollaboratorDown, "lesson generation is not configured")
	}

	prompt := fmt.Sprintf(
		"You are an experienced %s teacher. Write the %q portion of a lesson plan about %q. Respond with 2-4 concise sentences of plain text, no headings.",
		subjectOrDefault(req.Subject), req.SectionLabel, req.Topic)

	content, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("section generation failed", zap.String("section", req.SectionLabel), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrCollaboratorDown.Code, appErrors.ErrCollaboratorDown.Status, "lesson generation failed")
	}
	return wrapParagraph(content), nil
}

// GenerateBoard produces text for all six sections at once. Either every
// section comes back well formed or the whole generation fails.
func (s *GenerationService) GenerateBoard(ctx context.Context, req BoardGenerationRequest) (map[models.SectionKey]string, error) {
	if s.provider == nil {
		return nil, appErrors.Clone(appErrors.ErrCollaboratorDown, "lesson generation is not configured")
	}

	prompt := fmt.Sprintf(
		"You are an experienced %s teacher planning a lesson about %q. "+
			"Respond with only a JSON object with exactly these string fields: "+
			"objective, bellRinger, miniLecture, discussion, activity, independentWork. "+
			"Each field holds 2-4 concise sentences of plain text.",
		subjectOrDefault(req.Subject), req.Topic)

	content, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("board generation failed", zap.String("topic", req.Topic), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrCollaboratorDown.Code, appErrors.ErrCollaboratorDown.Status, "lesson generation failed")
	}

	var bulk bulkCompletion
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &bulk); err != nil {
		s.logger.Warn("board generation returned malformed payload", zap.String("topic", req.Topic), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrCollaboratorDown, "lesson generation returned an unusable response")
	}

	sections := map[models.SectionKey]string{
		models.SectionObjective:       bulk.Objective,
		models.SectionBellRinger:      bulk.BellRinger,
		models.SectionMiniLecture:     bulk.MiniLecture,
		models.SectionDiscussion:      bulk.Discussion,
		models.SectionActivity:        bulk.Activity,
		models.SectionIndependentWork: bulk.IndependentWork,
	}
	for key, text := range sections {
		if strings.TrimSpace(text) == "" {
			return nil, appErrors.Clone(appErrors.ErrCollaboratorDown, "lesson generation returned an incomplete plan")
		}
		sections[key] = wrapParagraph(text)
	}
	return sections, nil
}

func subjectOrDefault(subject string) string {
	if strings.TrimSpace(subject) == "" {
		return "high school"
	}
	return subject
}

// wrapParagraph stores generated plain text the same way typed rich text is
// stored.
func wrapParagraph(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "<p>") {
		return trimmed
	}
	return "<p>" + trimmed + "</p>"
}

// stripCodeFence tolerates models that wrap JSON in a markdown fence.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
