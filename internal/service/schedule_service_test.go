package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type fakeCalendarFeed struct {
	titles []string
	err    error
	calls  int
}

func (f *fakeCalendarFeed) EventTitles(ctx context.Context, date string) ([]string, error) {
	f.calls++
	return f.titles, f.err
}

type memoryCacheRepo struct {
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func newTestScheduleService(feed *fakeCalendarFeed, repo CacheRepository) *ScheduleService {
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), repo != nil)
	return NewScheduleService(feed, cache, zap.NewNop(), time.Minute)
}

func TestClassifyDateCachesResult(t *testing.T) {
	feed := &fakeCalendarFeed{titles: []string{"Schedule B - Assembly Day", "Model UN Meeting"}}
	svc := newTestScheduleService(feed, newMemoryCacheRepo())

	first := svc.ClassifyDate(context.Background(), "2026-01-05")
	second := svc.ClassifyDate(context.Background(), "2026-01-05")

	assert.Equal(t, models.ScheduleBAssembly, first.ScheduleType)
	assert.Equal(t, []string{"Model UN Meeting"}, first.OtherEvents)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, feed.calls)
}

func TestClassifyDateDegradesToNoneOnFeedFailure(t *testing.T) {
	feed := &fakeCalendarFeed{err: errors.New("upstream 500")}
	svc := newTestScheduleService(feed, newMemoryCacheRepo())

	result := svc.ClassifyDate(context.Background(), "2026-01-05")
	assert.Equal(t, models.ScheduleNone, result.ScheduleType)
	assert.Empty(t, result.OtherEvents)

	// Failures are not cached; the next call retries the feed.
	feed.err = nil
	feed.titles = []string{"Schedule A"}
	retry := svc.ClassifyDate(context.Background(), "2026-01-05")
	assert.Equal(t, models.ScheduleA, retry.ScheduleType)
	assert.Equal(t, 2, feed.calls)
}

func TestClassifyDateWithoutFeed(t *testing.T) {
	svc := newTestScheduleService(nil, nil)
	svc.feed = nil

	result := svc.ClassifyDate(context.Background(), "2026-01-05")
	assert.Equal(t, models.ScheduleNone, result.ScheduleType)
}

func TestDayScheduleOverrideWins(t *testing.T) {
	feed := &fakeCalendarFeed{titles: []string{"Schedule A"}}
	svc := newTestScheduleService(feed, nil)

	override := models.ScheduleC
	day := svc.DayScheduleFor(context.Background(), "2026-01-05", "117", &override)

	assert.Equal(t, models.ScheduleC, day.ScheduleType)
	assert.True(t, day.Overridden)
	require.NotEmpty(t, day.Details.Timeline)
	assert.Equal(t, 1, day.LunchTier.Tier)
}

func TestDayScheduleIgnoresInvalidOverride(t *testing.T) {
	feed := &fakeCalendarFeed{titles: []string{"Schedule A"}}
	svc := newTestScheduleService(feed, nil)

	bad := models.ScheduleType("D")
	day := svc.DayScheduleFor(context.Background(), "2026-01-05", "310", &bad)

	assert.Equal(t, models.ScheduleA, day.ScheduleType)
	assert.False(t, day.Overridden)
}
