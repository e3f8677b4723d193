package service

import (
	"context"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type boardStore interface {
	Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool)
	Save(ctx context.Context, key models.BoardKey, patch models.BoardPatch) bool
}

type dayClassifier interface {
	ClassifyDate(ctx context.Context, date string) models.DayClassification
}

// SyncState is the synchronizer's position in its edit/save lifecycle.
type SyncState string

const (
	SyncIdle    SyncState = "IDLE"
	SyncLoading SyncState = "LOADING"
	SyncReady   SyncState = "READY"
	SyncDirty   SyncState = "DIRTY"
	SyncSaving  SyncState = "SAVING"
)

// slidesIDPattern matches the presentation id inside a pasted Slides URL.
var slidesIDPattern = regexp.MustCompile(`[-\w]{25,}`)

// Synchronizer owns the editable board state for one signed-in session. It
// loads the board when the selected day or class changes, classifies the
// day against the calendar feed, and writes edits back after a trailing
// debounce. Selection changes while dirty flush synchronously first, so
// navigating away never loses the outgoing day's edits.
type Synchronizer struct {
	mu sync.Mutex

	teacherID  string
	store      boardStore
	classifier dayClassifier
	logger     *zap.Logger
	debounce   time.Duration

	state          SyncState
	selection      models.BoardKey
	board          *models.LessonBoard
	classification models.DayClassification
	dirty          bool
	lastSaveOK     bool
	pending        *time.Timer

	// loadSeq fences late-arriving loads: a result is applied only when no
	// newer selection superseded it meanwhile.
	loadSeq uint64
}

// NewSynchronizer constructs a synchronizer for one teacher session.
func NewSynchronizer(teacherID string, store boardStore, classifier dayClassifier, logger *zap.Logger, debounce time.Duration) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 1500 * time.Millisecond
	}
	return &Synchronizer{
		teacherID:  teacherID,
		store:      store,
		classifier: classifier,
		logger:     logger,
		debounce:   debounce,
		state:      SyncIdle,
		lastSaveOK: true,
	}
}

// SyncSnapshot is a read-only view of the synchronizer's current state.
type SyncSnapshot struct {
	Selection    models.BoardKey     `json:"selection"`
	State        SyncState           `json:"state"`
	Board        *models.LessonBoard `json:"board"`
	ScheduleType models.ScheduleType `json:"scheduleType"`
	OtherEvents  []string            `json:"otherEvents"`
	LastSaveOK   bool                `json:"lastSaveOk"`
}

// Select switches to a new (date, class) selection. Pending edits for the
// outgoing selection are flushed before the new board loads.
func (s *Synchronizer) Select(ctx context.Context, date, classID string) SyncSnapshot {
	s.mu.Lock()
	if s.dirty {
		s.flushLocked(ctx)
	}
	s.loadSeq++
	seq := s.loadSeq
	key := models.BoardKey{TeacherID: s.teacherID, Date: date, ClassID: classID}
	s.selection = key
	s.state = SyncLoading
	s.mu.Unlock()

	board, _ := s.store.Load(ctx, key)
	classification := s.classifier.ClassifyDate(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		// A newer selection won the race; this result is stale.
		return s.snapshotLocked()
	}
	s.board = board
	s.classification = classification
	s.state = SyncReady
	return s.snapshotLocked()
}

// Snapshot returns the current state without mutating anything.
func (s *Synchronizer) Snapshot() SyncSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() SyncSnapshot {
	snapshot := SyncSnapshot{
		Selection:   s.selection,
		State:       s.state,
		LastSaveOK:  s.lastSaveOK,
		OtherEvents: s.classification.OtherEvents,
	}
	snapshot.ScheduleType = s.classification.ScheduleType
	if snapshot.ScheduleType == "" {
		snapshot.ScheduleType = models.ScheduleNone
	}
	if s.board != nil {
		board := *s.board
		board.Sections = make(map[models.SectionKey]models.Section, len(s.board.Sections))
		for key, section := range s.board.Sections {
			board.Sections[key] = section
		}
		snapshot.Board = &board
		// A stored override is the teacher's manual correction; it wins
		// over the classified type across reloads.
		if s.board.ScheduleOverride != nil {
			snapshot.ScheduleType = *s.board.ScheduleOverride
		}
	}
	return snapshot
}

// EditSection replaces the text of one section. The section's media is
// untouched.
func (s *Synchronizer) EditSection(key models.SectionKey, text string) error {
	if !models.ValidSectionKey(key) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown section")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	section := s.board.Sections[key]
	section.Text = text
	s.board.Sections[key] = section
	s.markDirtyLocked()
	return nil
}

// AttachMedia sets the section's media from a user-supplied URL. Slides
// URLs must contain the presentation id; other kinds are taken verbatim.
// The stored text stays in place underneath the media.
func (s *Synchronizer) AttachMedia(key models.SectionKey, kind models.MediaKind, url, title string) error {
	if !models.ValidSectionKey(key) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown section")
	}
	if url == "" {
		return appErrors.Clone(appErrors.ErrInvalidMediaURL, "media url is required")
	}

	var media models.Media
	switch kind {
	case models.MediaSlidesEmbed:
		embedID := slidesIDPattern.FindString(url)
		if embedID == "" {
			return appErrors.Clone(appErrors.ErrInvalidMediaURL, "could not find a presentation id in the url")
		}
		media = models.Media{Kind: kind, EmbedID: embedID, Title: title}
	case models.MediaImage, models.MediaExternalLink, models.MediaExternalAssignment:
		media = models.Media{Kind: kind, URL: url, Title: title}
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown media kind")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	section := s.board.Sections[key]
	section.Media = &media
	s.board.Sections[key] = section
	s.markDirtyLocked()
	return nil
}

// RemoveMedia clears the section's media, revealing the prior text.
func (s *Synchronizer) RemoveMedia(key models.SectionKey) error {
	if !models.ValidSectionKey(key) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown section")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	section := s.board.Sections[key]
	section.Media = nil
	s.board.Sections[key] = section
	s.markDirtyLocked()
	return nil
}

// SetLayout replaces the grid weights, clamped to the allowed range.
func (s *Synchronizer) SetLayout(layout models.GridWeights) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.board.Layout = layout.Clamp()
	s.markDirtyLocked()
	return nil
}

// SetTheme switches the visual theme. Unknown ids fall back to the default.
func (s *Synchronizer) SetTheme(themeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.board.ThemeID = models.ResolveTheme(themeID).ID
	s.markDirtyLocked()
	return nil
}

// SetScheduleOverride records the teacher's manual schedule correction. A
// nil override returns the day to the classified type.
func (s *Synchronizer) SetScheduleOverride(override *models.ScheduleType) error {
	if override != nil && !models.ValidScheduleType(*override) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown schedule type")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.board.ScheduleOverride = override
	s.markDirtyLocked()
	return nil
}

// Flush writes any pending edits immediately. Used on sign-out and before
// selection changes; a no-op when clean.
func (s *Synchronizer) Flush(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// editableLocked gates edits: nothing may touch a board that has not
// finished loading, so a slow load can never clobber a fast edit.
func (s *Synchronizer) editableLocked() error {
	if s.board == nil || s.state == SyncLoading || s.state == SyncIdle {
		return appErrors.Clone(appErrors.ErrValidation, "no board selected")
	}
	return nil
}

// markDirtyLocked re-arms the trailing debounce window. Every edit cancels
// the pending save and schedules a fresh one, so only the most recent state
// at window expiry is written.
func (s *Synchronizer) markDirtyLocked() {
	s.dirty = true
	s.state = SyncDirty
	if s.pending != nil {
		s.pending.Stop()
	}
	seq := s.loadSeq
	s.pending = time.AfterFunc(s.debounce, func() {
		s.debouncedSave(seq)
	})
}

// debouncedSave runs when a debounce window expires without further edits.
func (s *Synchronizer) debouncedSave(seq uint64) {
	s.mu.Lock()
	if !s.dirty || s.loadSeq != seq {
		s.mu.Unlock()
		return
	}
	key, patch := s.patchLocked()
	s.dirty = false
	s.state = SyncSaving
	s.mu.Unlock()

	// The originating request is long gone; the autosave rides its own
	// context.
	ok := s.store.Save(context.Background(), key, patch)
	if !ok {
		s.logger.Warn("autosave did not complete",
			zap.String("date", key.Date), zap.String("class_id", key.ClassID))
	}

	s.mu.Lock()
	s.lastSaveOK = ok
	if s.state == SyncSaving {
		s.state = SyncReady
	}
	s.mu.Unlock()
}

func (s *Synchronizer) flushLocked(ctx context.Context) bool {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	if !s.dirty || s.board == nil {
		return true
	}
	key, patch := s.patchLocked()
	s.dirty = false
	ok := s.store.Save(ctx, key, patch)
	s.lastSaveOK = ok
	s.state = SyncReady
	return ok
}

// patchLocked captures the full current board as a merge payload.
func (s *Synchronizer) patchLocked() (models.BoardKey, models.BoardPatch) {
	sections := make(map[models.SectionKey]models.Section, len(s.board.Sections))
	for key, section := range s.board.Sections {
		sections[key] = section
	}
	layout := s.board.Layout
	themeID := s.board.ThemeID
	patch := models.BoardPatch{
		Sections:              sections,
		Layout:                &layout,
		ThemeID:               &themeID,
		ScheduleOverride:      s.board.ScheduleOverride,
		ClearScheduleOverride: s.board.ScheduleOverride == nil,
	}
	return s.selection, patch
}
