package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/observability"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// Point values per recorded axis. Fixed, not configurable at runtime.
const (
	pointsPresent       = 3
	pointsLate          = 1
	pointsMakeup        = 1.5
	pointsAbsent        = -2
	pointsExcellent     = 3
	pointsGood          = 2
	pointsAverage       = 1
	pointsPoor          = 0
	pointsCalm          = 2
	pointsMedium        = 1
	pointsUndisciplined = -1
	pointsReviewed      = 1
)

// RankingService derives the monthly leaderboard from recorded sessions.
type RankingService interface {
	GetMonthly(ctx context.Context, year int, month time.Month) (dto.RankingResponse, error)
	Invalidate(ctx context.Context, year int, month time.Month)
}

type rankingService struct {
	sessions repository.SessionRepository
	students repository.StudentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRankingService constructs the ranking service.
func NewRankingService(sessions repository.SessionRepository, students repository.StudentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RankingService {
	return &rankingService{
		sessions: sessions,
		students: students,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "ranking_service").Logger(),
		now:      time.Now,
	}
}

func rankingCacheKey(year int, month time.Month) string {
	return fmt.Sprintf("ranking:%04d-%02d", year, int(month))
}

func (s *rankingService) GetMonthly(ctx context.Context, year int, month time.Month) (dto.RankingResponse, error) {
	cacheKey := rankingCacheKey(year, month)
	tracer := otel.Tracer("github.com/alfurqan/tahfiz-api/internal/service/ranking")
	ctx, span := tracer.Start(ctx, "ranking.aggregate", trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attribute.String("ranking.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.RankingResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				observability.RankingCacheHits().Inc()
				span.SetAttributes(attribute.Bool("ranking.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read ranking cache")
			span.RecordError(err)
		}
	}

	observability.RankingCacheMisses().Inc()

	roster, err := s.students.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_active_students_failed")
		return dto.RankingResponse{}, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	sessions, err := s.sessions.ListBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_sessions_failed")
		return dto.RankingResponse{}, err
	}

	response := s.buildRanking(year, month, roster, sessions)
	span.SetAttributes(
		attribute.Int("ranking.roster_size", len(roster)),
		attribute.Int("ranking.session_count", response.SessionCount),
	)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store ranking cache")
				span.RecordError(err)
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached leaderboard for the month, if any.
func (s *rankingService) Invalidate(ctx context.Context, year int, month time.Month) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, rankingCacheKey(year, month)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate ranking cache")
	}
}

// buildRanking walks every record of every in-window session once, adding
// mapped point values and counters per student. Holiday sessions carry no
// records, so they contribute only to the session count.
func (s *rankingService) buildRanking(year int, month time.Month, roster []models.Student, sessions []models.ClassSession) dto.RankingResponse {
	entries := make([]dto.RankingEntry, 0, len(roster))
	index := make(map[uint]int, len(roster))
	for i, student := range roster {
		index[student.ID] = i
		entries = append(entries, dto.RankingEntry{
			StudentID: student.ID,
			FullName:  student.FullName,
		})
	}

	for _, session := range sessions {
		for _, record := range session.Records {
			i, ok := index[record.StudentID]
			if !ok {
				// Student left the active roster; history stays but no longer ranks.
				continue
			}
			scoreRecord(&entries[i], record)
		}
	}

	// Stable keeps roster order for equal scores.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return dto.RankingResponse{
		Year:         year,
		Month:        int(month),
		SessionCount: len(sessions),
		Entries:      entries,
		GeneratedAt:  s.now().UTC(),
	}
}

func scoreRecord(entry *dto.RankingEntry, record models.SessionRecord) {
	switch record.Attendance {
	case models.AttendancePresent:
		entry.Score += pointsPresent
		entry.Stats.Present++
	case models.AttendanceLate:
		entry.Score += pointsLate
		entry.Stats.Late++
	case models.AttendanceMakeup:
		entry.Score += pointsMakeup
		entry.Stats.Makeup++
	case models.AttendanceAbsent:
		entry.Score += pointsAbsent
		entry.Stats.Absent++
	case models.AttendanceNotRequired:
		// Contributes nothing on any axis.
		return
	}

	if record.Memorization != nil {
		switch *record.Memorization {
		case models.MemorizationExcellent:
			entry.Score += pointsExcellent
			entry.Stats.Excellent++
		case models.MemorizationGood:
			entry.Score += pointsGood
			entry.Stats.Good++
		case models.MemorizationAverage:
			entry.Score += pointsAverage
			entry.Stats.Average++
		case models.MemorizationPoor:
			entry.Score += pointsPoor
			entry.Stats.Poor++
		}
	}

	if record.Behavior != nil {
		switch *record.Behavior {
		case models.BehaviorCalm:
			entry.Score += pointsCalm
			entry.Stats.Calm++
		case models.BehaviorMedium:
			entry.Score += pointsMedium
			entry.Stats.Medium++
		case models.BehaviorUndisciplined:
			entry.Score += pointsUndisciplined
			entry.Stats.Undisciplined++
		}
	}

	if record.Review != nil && *record.Review {
		entry.Score += pointsReviewed
		entry.Stats.Reviewed++
	}
}
