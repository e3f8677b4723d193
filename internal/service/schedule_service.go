package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	"github.com/classdeck/classdeck-api/internal/schedule"
)

type calendarFeed interface {
	EventTitles(ctx context.Context, date string) ([]string, error)
}

// ScheduleService derives the day's bell schedule from the external
// calendar feed. Classification results are cached per date; a failing feed
// degrades to NONE with no other events, never an error.
type ScheduleService struct {
	feed     calendarFeed
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewScheduleService constructs the service.
func NewScheduleService(feed calendarFeed, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &ScheduleService{feed: feed, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// ClassifyDate returns the schedule type and remaining school events for an
// ISO date.
func (s *ScheduleService) ClassifyDate(ctx context.Context, date string) models.DayClassification {
	fallback := models.DayClassification{ScheduleType: models.ScheduleNone, OtherEvents: []string{}}
	if s.feed == nil {
		return fallback
	}

	cacheKey := fmt.Sprintf("classify:%s", date)
	var cached models.DayClassification
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached
	}

	titles, err := s.feed.EventTitles(ctx, date)
	if err != nil {
		s.logger.Warn("calendar feed unavailable, assuming no schedule",
			zap.String("date", date), zap.Error(err))
		return fallback
	}

	result := schedule.Classify(titles)
	_ = s.cache.Set(ctx, cacheKey, result, s.cacheTTL)
	return result
}

// DaySchedule composes the classification with the room-specific timeline.
// A board override takes precedence over the classified type.
type DaySchedule struct {
	ScheduleType models.ScheduleType    `json:"scheduleType"`
	Overridden   bool                   `json:"overridden"`
	Details      models.ScheduleDetails `json:"details"`
	LunchTier    models.LunchTier       `json:"lunchTier"`
	OtherEvents  []string               `json:"otherEvents"`
}

// DayScheduleFor resolves the full rendered schedule for a date and room.
func (s *ScheduleService) DayScheduleFor(ctx context.Context, date, room string, override *models.ScheduleType) DaySchedule {
	classification := s.ClassifyDate(ctx, date)

	scheduleType := classification.ScheduleType
	overridden := false
	if override != nil && models.ValidScheduleType(*override) {
		scheduleType = *override
		overridden = true
	}

	return DaySchedule{
		ScheduleType: scheduleType,
		Overridden:   overridden,
		Details:      schedule.Details(scheduleType, room),
		LunchTier:    schedule.LunchTierForRoom(room),
		OtherEvents:  classification.OtherEvents,
	}
}
