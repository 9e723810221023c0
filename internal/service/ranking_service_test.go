package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

func TestRankingServiceMonthlyScores(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad Saleh", Status: models.StudentStatusActive},
		{ID: 2, FullName: "Bilal Hamdan", Status: models.StudentStatusActive},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{
					StudentID:    1,
					Attendance:   models.AttendancePresent,
					Memorization: strPtr(models.MemorizationExcellent),
					Behavior:     strPtr(models.BehaviorCalm),
					Review:       boolPtr(true),
				},
				{
					StudentID:  2,
					Attendance: models.AttendanceAbsent,
				},
			},
		},
	}}

	svc := NewRankingService(sessions, students, nil, 0, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.March)
	require.NoError(t, err)
	require.Equal(t, 2024, response.Year)
	require.Equal(t, 3, response.Month)
	require.Equal(t, 1, response.SessionCount)
	require.False(t, response.CacheHit)
	require.Len(t, response.Entries, 2)

	first := response.Entries[0]
	require.Equal(t, 1, first.Rank)
	require.Equal(t, uint(1), first.StudentID)
	require.InDelta(t, 9.0, first.Score, 0.001)
	require.Equal(t, 1, first.Stats.Present)
	require.Equal(t, 1, first.Stats.Excellent)
	require.Equal(t, 1, first.Stats.Calm)
	require.Equal(t, 1, first.Stats.Reviewed)

	second := response.Entries[1]
	require.Equal(t, 2, second.Rank)
	require.Equal(t, uint(2), second.StudentID)
	require.InDelta(t, -2.0, second.Score, 0.001)
	require.Equal(t, 1, second.Stats.Absent)
}

func TestRankingServiceEmptyMonthKeepsRosterOrder(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 7, FullName: "Omar", Status: models.StudentStatusActive},
		{ID: 3, FullName: "Yusuf", Status: models.StudentStatusLongAbsent},
	}}
	sessions := &fakeSessionRepo{}

	svc := NewRankingService(sessions, students, nil, 0, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.January)
	require.NoError(t, err)
	require.Equal(t, 0, response.SessionCount)
	require.Len(t, response.Entries, 2)
	require.Equal(t, uint(7), response.Entries[0].StudentID)
	require.Equal(t, uint(3), response.Entries[1].StudentID)
	for i, entry := range response.Entries {
		require.Equal(t, i+1, entry.Rank)
		require.Zero(t, entry.Score)
	}
}

func TestRankingServiceNotRequiredContributesNothing(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendanceNotRequired},
			},
		},
	}}

	svc := NewRankingService(sessions, students, nil, 0, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.March)
	require.NoError(t, err)
	require.Len(t, response.Entries, 1)
	require.Zero(t, response.Entries[0].Score)
	require.Zero(t, response.Entries[0].Stats.Present)
	require.Zero(t, response.Entries[0].Stats.Absent)
}

func TestRankingServiceCachingAndInvalidation(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendancePresent},
			},
		},
	}}

	svc := NewRankingService(sessions, students, client, time.Minute, testLogger())
	ctx := context.Background()

	first, err := svc.GetMonthly(ctx, 2024, time.March)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := svc.GetMonthly(ctx, 2024, time.March)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Entries, second.Entries)

	svc.Invalidate(ctx, 2024, time.March)

	third, err := svc.GetMonthly(ctx, 2024, time.March)
	require.NoError(t, err)
	require.False(t, third.CacheHit)
}

func TestRankingServiceSkipsDepartedStudents(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
		{ID: 2, FullName: "Bilal", Status: models.StudentStatusExpelled},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendancePresent},
				{StudentID: 2, Attendance: models.AttendancePresent},
			},
		},
	}}

	svc := NewRankingService(sessions, students, nil, 0, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.March)
	require.NoError(t, err)
	require.Len(t, response.Entries, 1)
	require.Equal(t, uint(1), response.Entries[0].StudentID)
}
