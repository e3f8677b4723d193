package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type recordedSave struct {
	key   models.BoardKey
	patch models.BoardPatch
}

// fakeSyncStore records load/save calls in order and can hold a load open
// until the test releases it.
type fakeSyncStore struct {
	mu     sync.Mutex
	events []string
	saves  []recordedSave

	blockDate string
	gate      chan struct{}
}

func newFakeSyncStore() *fakeSyncStore {
	return &fakeSyncStore{}
}

func (f *fakeSyncStore) Load(ctx context.Context, key models.BoardKey) (*models.LessonBoard, bool) {
	f.mu.Lock()
	gate := f.gate
	blocked := f.blockDate == key.Date
	f.mu.Unlock()
	if blocked && gate != nil {
		<-gate
	}

	f.mu.Lock()
	f.events = append(f.events, "load:"+key.Date+":"+key.ClassID)
	f.mu.Unlock()
	return &models.LessonBoard{
		Key:      key,
		Sections: models.EmptySections(),
		Layout:   models.DefaultGridWeights(),
		ThemeID:  models.DefaultThemeID,
	}, true
}

func (f *fakeSyncStore) Save(ctx context.Context, key models.BoardKey, patch models.BoardPatch) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "save:"+key.Date+":"+key.ClassID)
	f.saves = append(f.saves, recordedSave{key: key, patch: patch})
	return true
}

func (f *fakeSyncStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeSyncStore) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	log := make([]string, len(f.events))
	copy(log, f.events)
	return log
}

type fakeClassifier struct {
	result models.DayClassification
}

func (f *fakeClassifier) ClassifyDate(ctx context.Context, date string) models.DayClassification {
	return f.result
}

func newTestSynchronizer(store *fakeSyncStore, debounce time.Duration) *Synchronizer {
	classifier := &fakeClassifier{result: models.DayClassification{
		ScheduleType: models.ScheduleA,
		OtherEvents:  []string{},
	}}
	return NewSynchronizer("teacher-1", store, classifier, zap.NewNop(), debounce)
}

func TestSynchronizerDebounceCoalescesEdits(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, 40*time.Millisecond)

	s.Select(context.Background(), "2026-01-05", "p1")
	require.NoError(t, s.EditSection(models.SectionObjective, "first"))
	require.NoError(t, s.EditSection(models.SectionObjective, "second"))
	require.NoError(t, s.EditSection(models.SectionObjective, "third"))

	require.Eventually(t, func() bool { return store.saveCount() == 1 },
		time.Second, 5*time.Millisecond)

	// No further edits, so the window must not fire again.
	time.Sleep(120 * time.Millisecond)
	require.Equal(t, 1, store.saveCount())

	saved := store.saves[0]
	assert.Equal(t, "2026-01-05", saved.key.Date)
	assert.Equal(t, "third", saved.patch.Sections[models.SectionObjective].Text)
}

func TestSynchronizerFlushesBeforeSelectionChange(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, time.Minute)

	s.Select(context.Background(), "2026-01-05", "p1")
	require.NoError(t, s.EditSection(models.SectionActivity, "lab day")) // debounce still pending
	snapshot := s.Select(context.Background(), "2026-01-06", "p1")

	assert.Equal(t, SyncReady, snapshot.State)
	assert.Equal(t, []string{
		"load:2026-01-05:p1",
		"save:2026-01-05:p1",
		"load:2026-01-06:p1",
	}, store.eventLog())

	// The pending debounce for the old day was cancelled by the flush.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, store.saveCount())
	assert.Equal(t, "lab day", store.saves[0].patch.Sections[models.SectionActivity].Text)
}

func TestSynchronizerDiscardsStaleLoad(t *testing.T) {
	store := newFakeSyncStore()
	store.blockDate = "2026-01-05"
	store.gate = make(chan struct{})
	s := newTestSynchronizer(store, time.Minute)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Select(context.Background(), "2026-01-05", "p1")
	}()

	// The second selection completes while the first load is still held.
	require.Eventually(t, func() bool {
		return s.Snapshot().Selection.Date == "2026-01-05"
	}, time.Second, time.Millisecond)
	snapshot := s.Select(context.Background(), "2026-01-06", "p1")
	require.Equal(t, "2026-01-06", snapshot.Selection.Date)

	close(store.gate)
	wg.Wait()

	final := s.Snapshot()
	assert.Equal(t, "2026-01-06", final.Selection.Date)
	assert.Equal(t, "2026-01-06", final.Board.Key.Date)
	assert.Equal(t, SyncReady, final.State)
}

func TestSynchronizerRejectsEditsBeforeSelection(t *testing.T) {
	s := newTestSynchronizer(newFakeSyncStore(), time.Minute)

	err := s.EditSection(models.SectionObjective, "too early")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSynchronizerAttachSlidesMedia(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, time.Minute)
	s.Select(context.Background(), "2026-01-05", "p1")

	url := "https://docs.google.com/presentation/d/1aBcDeFgHiJkLmNoPqRsTuVwXyZ0123456789/edit"
	require.NoError(t, s.AttachMedia(models.SectionMiniLecture, models.MediaSlidesEmbed, url, "Google Slides Deck"))

	media := s.Snapshot().Board.Sections[models.SectionMiniLecture].Media
	require.NotNil(t, media)
	assert.Equal(t, models.MediaSlidesEmbed, media.Kind)
	assert.Equal(t, "1aBcDeFgHiJkLmNoPqRsTuVwXyZ0123456789", media.EmbedID)
	assert.Empty(t, media.URL)
}

func TestSynchronizerRejectsSlidesURLWithoutID(t *testing.T) {
	s := newTestSynchronizer(newFakeSyncStore(), time.Minute)
	s.Select(context.Background(), "2026-01-05", "p1")

	err := s.AttachMedia(models.SectionMiniLecture, models.MediaSlidesEmbed, "https://docs.google.com/presentation/short", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidMediaURL.Code, appErrors.FromError(err).Code)
}

func TestSynchronizerMediaPreservesText(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, time.Minute)
	s.Select(context.Background(), "2026-01-05", "p1")

	require.NoError(t, s.EditSection(models.SectionDiscussion, "socratic seminar"))
	require.NoError(t, s.AttachMedia(models.SectionDiscussion, models.MediaImage, "https://example.com/diagram.png", "Visual Aid"))

	section := s.Snapshot().Board.Sections[models.SectionDiscussion]
	require.NotNil(t, section.Media)
	assert.Equal(t, "socratic seminar", section.Text)

	require.NoError(t, s.RemoveMedia(models.SectionDiscussion))
	section = s.Snapshot().Board.Sections[models.SectionDiscussion]
	assert.Nil(t, section.Media)
	assert.Equal(t, "socratic seminar", section.Text)
}

func TestSynchronizerOverrideWinsOverClassification(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, time.Minute)
	s.Select(context.Background(), "2026-01-05", "p1")

	override := models.ScheduleC
	require.NoError(t, s.SetScheduleOverride(&override))
	assert.Equal(t, models.ScheduleC, s.Snapshot().ScheduleType)

	require.NoError(t, s.SetScheduleOverride(nil))
	assert.Equal(t, models.ScheduleA, s.Snapshot().ScheduleType)
}

func TestSynchronizerClearedOverridePersists(t *testing.T) {
	store := newFakeSyncStore()
	s := newTestSynchronizer(store, time.Minute)
	s.Select(context.Background(), "2026-01-05", "p1")

	override := models.ScheduleC
	require.NoError(t, s.SetScheduleOverride(&override))
	require.True(t, s.Flush(context.Background()))

	require.NoError(t, s.SetScheduleOverride(nil))
	require.True(t, s.Flush(context.Background()))

	require.Equal(t, 2, store.saveCount())
	first := store.saves[0].patch
	require.NotNil(t, first.ScheduleOverride)
	assert.Equal(t, models.ScheduleC, *first.ScheduleOverride)

	// The clear must travel in the save payload, or the stored override
	// survives the merge write and resurfaces on the next load.
	second := store.saves[1].patch
	assert.Nil(t, second.ScheduleOverride)
	assert.True(t, second.ClearScheduleOverride)
}

func TestSyncManagerReusesSessionSynchronizer(t *testing.T) {
	store := newFakeSyncStore()
	classifier := &fakeClassifier{result: models.DayClassification{ScheduleType: models.ScheduleNone, OtherEvents: []string{}}}
	manager := NewSyncManager(store, classifier, zap.NewNop(), time.Minute)

	first := manager.ForSession("sess-1", "teacher-1")
	second := manager.ForSession("sess-1", "teacher-1")
	require.Same(t, first, second)

	first.Select(context.Background(), "2026-01-05", "p1")
	require.NoError(t, first.EditSection(models.SectionObjective, "warmup question"))

	// Release flushes the pending edit.
	manager.Release(context.Background(), "sess-1")
	require.Equal(t, 1, store.saveCount())
	require.NotSame(t, first, manager.ForSession("sess-1", "teacher-1"))
}
