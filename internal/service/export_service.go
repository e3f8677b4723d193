package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
	"github.com/classdeck/classdeck-api/pkg/export"
	"github.com/classdeck/classdeck-api/pkg/jobs"
	"github.com/classdeck/classdeck-api/pkg/storage"
)

const exportJobTTL = 24 * time.Hour

func exportJobKey(id string) string {
	return fmt.Sprintf("export:job:%s", id)
}

// ExportService renders printable board PDFs in the background. Requests
// are queued, workers render and store the file, and the finished job
// carries a signed, expiring download link.
type ExportService struct {
	boards   shareBoardLoader
	settings shareSettingsLoader
	exporter *export.PDFExporter
	files    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	cache    *CacheService
	logger   *zap.Logger
	queue    *jobs.Queue
}

// ExportServiceParams bundles the export service dependencies.
type ExportServiceParams struct {
	Boards   shareBoardLoader
	Settings shareSettingsLoader
	Exporter *export.PDFExporter
	Files    *storage.LocalStorage
	Signer   *storage.SignedURLSigner
	Cache    *CacheService
	Logger   *zap.Logger

	WorkerConcurrency int
	WorkerRetries     int
}

// NewExportService constructs the service and its worker queue. Call Start
// before enqueueing.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		boards:   params.Boards,
		settings: params.Settings,
		exporter: params.Exporter,
		files:    params.Files,
		signer:   params.Signer,
		cache:    params.Cache,
		logger:   logger,
	}
	s.queue = jobs.NewQueue("board-exports", s.process, jobs.QueueConfig{
		Workers:    params.WorkerConcurrency,
		MaxRetries: params.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers and a periodic sweep that removes
// files outliving their job records.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.sweepLoop(ctx)
}

func (s *ExportService) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.files.Sweep(exportJobTTL)
			if err != nil {
				s.logger.Warn("export sweep failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("swept expired exports", zap.Int("count", len(deleted)))
			}
		}
	}
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue schedules a board export and returns the queued job record.
func (s *ExportService) Enqueue(ctx context.Context, key models.BoardKey) (*models.ExportJob, error) {
	job := &models.ExportJob{
		ID:        uuid.NewString(),
		Key:       key,
		Status:    models.ExportJobQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, exportJobKey(job.ID), job, exportJobTTL); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist export job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "board_pdf", Payload: key}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export job")
	}
	return job, nil
}

// Job returns the current record for an export job id.
func (s *ExportService) Job(ctx context.Context, id string) (*models.ExportJob, error) {
	var job models.ExportJob
	hit, err := s.cache.Get(ctx, exportJobKey(id), &job)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
	}
	if !hit {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found or expired")
	}
	return &job, nil
}

// Open validates a signed download token and returns the stored file.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "download link is invalid or expired")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file no longer exists")
	}
	return file, relPath, nil
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	key, ok := job.Payload.(models.BoardKey)
	if !ok {
		s.failJob(ctx, job.ID, key, "export payload was malformed")
		return nil
	}

	board, found := s.boards.Load(ctx, key)
	if !found {
		s.failJob(ctx, job.ID, key, "no agenda has been saved for this date")
		return nil
	}

	labels := models.DefaultSectionLabels
	if settings, ok := s.settings.Load(ctx, key.TeacherID); ok {
		labels = settings.SectionLabels
	}

	sheet := export.BoardSheet{
		Title:    fmt.Sprintf("Daily Agenda - %s", humanDate(key.Date)),
		Subtitle: fmt.Sprintf("%s / %s", key.ClassID, key.Date),
		Sections: make([]export.SectionBlock, 0, len(models.SectionKeys)),
	}
	for _, sectionKey := range models.SectionKeys {
		section := board.Sections[sectionKey]
		block := export.SectionBlock{Label: labels[sectionKey], Text: section.Text}
		if section.Media != nil {
			block.MediaNote = mediaNote(section.Media)
		}
		sheet.Sections = append(sheet.Sections, block)
	}

	data, err := s.exporter.Render(sheet)
	if err != nil {
		return fmt.Errorf("render board pdf: %w", err)
	}

	fileName := fmt.Sprintf("%s/%s_%s.pdf", key.TeacherID, key.Date, key.ClassID)
	relPath, err := s.files.Save(fileName, data)
	if err != nil {
		return fmt.Errorf("store board pdf: %w", err)
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return fmt.Errorf("sign download url: %w", err)
	}

	record := &models.ExportJob{
		ID:          job.ID,
		Key:         key,
		Status:      models.ExportJobCompleted,
		FileName:    relPath,
		DownloadURL: fmt.Sprintf("/exports/download?token=%s", token),
		ExpiresAt:   &expiresAt,
		CreatedAt:   job.Enqueued,
	}
	if err := s.cache.Set(ctx, exportJobKey(job.ID), record, exportJobTTL); err != nil {
		s.logger.Warn("failed to record completed export", zap.String("job_id", job.ID), zap.Error(err))
	}
	return nil
}

func (s *ExportService) failJob(ctx context.Context, id string, key models.BoardKey, reason string) {
	record := &models.ExportJob{
		ID:        id,
		Key:       key,
		Status:    models.ExportJobFailed,
		Error:     reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, exportJobKey(id), record, exportJobTTL); err != nil {
		s.logger.Warn("failed to record export failure", zap.String("job_id", id), zap.Error(err))
	}
}

func mediaNote(media *models.Media) string {
	switch media.Kind {
	case models.MediaSlidesEmbed:
		return fmt.Sprintf("Slides: %s", media.EmbedID)
	case models.MediaExternalAssignment:
		return fmt.Sprintf("Assignment: %s (%s)", media.Title, media.URL)
	default:
		return fmt.Sprintf("Attachment: %s", media.URL)
	}
}
