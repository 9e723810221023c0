package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
)

func TestEvaluateGroupRubric(t *testing.T) {
	cases := []struct {
		name   string
		inputs dto.EvaluationInputs
		score  *int
		rating string
	}{
		{
			name:   "no activity yields null score",
			inputs: dto.EvaluationInputs{},
			score:  nil,
			rating: dto.RatingNoData,
		},
		{
			name: "strong month scores full marks",
			inputs: dto.EvaluationInputs{
				AttendanceRate:   92,
				AverageProgress:  6,
				ReportsThisMonth: 12,
				Complaints:       0,
				InactiveStudents: 0,
				SessionCount:     20,
			},
			score:  intPtr(100),
			rating: dto.RatingExcellent,
		},
		{
			name: "middling month lands in good",
			inputs: dto.EvaluationInputs{
				AttendanceRate:   80,
				AverageProgress:  3,
				ReportsThisMonth: 6,
				Complaints:       1,
				InactiveStudents: 1,
				SessionCount:     15,
			},
			score:  intPtr(55),
			rating: dto.RatingWeak,
		},
		{
			name: "recorded zero is not no-data",
			inputs: dto.EvaluationInputs{
				AttendanceRate:   0,
				AverageProgress:  0,
				ReportsThisMonth: 0,
				Complaints:       2,
				InactiveStudents: 5,
				SessionCount:     4,
			},
			score:  intPtr(10),
			rating: dto.RatingWeak,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, rating, suggestions := evaluateGroup(tc.inputs)
			require.Equal(t, tc.rating, rating)
			require.NotEmpty(t, suggestions)
			if tc.score == nil {
				require.Nil(t, score)
				return
			}
			require.NotNil(t, score)
			require.Equal(t, *tc.score, *score)
		})
	}
}

func TestEvaluateGroupSuggestionsTargetWeakFactors(t *testing.T) {
	score, rating, suggestions := evaluateGroup(dto.EvaluationInputs{
		AttendanceRate:   60,
		AverageProgress:  1,
		ReportsThisMonth: 2,
		Complaints:       4,
		InactiveStudents: 3,
		SessionCount:     10,
	})
	require.NotNil(t, score)
	require.Equal(t, dto.RatingWeak, rating)
	// Band message plus one suggestion per failing factor.
	require.Len(t, suggestions, 6)
}

func TestEvaluationServiceGetMonthly(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive, MemorizedSurahs: 6},
		{ID: 2, FullName: "Bilal", Status: models.StudentStatusActive, MemorizedSurahs: 6},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendancePresent},
				{StudentID: 2, Attendance: models.AttendanceLate},
			},
		},
	}}
	reports := &fakeReportRepo{}
	for day := 1; day <= 12; day++ {
		reports.reports = append(reports.reports, models.DailyReport{
			ID:       uint(day),
			Date:     time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
			Note:     "daily note",
			Category: models.ReportCategoryGeneral,
		})
	}

	svc := NewEvaluationService(sessions, students, reports, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.March)
	require.NoError(t, err)
	require.Equal(t, 2024, response.Year)
	require.Equal(t, 3, response.Month)
	require.InDelta(t, 100.0, response.Inputs.AttendanceRate, 0.001)
	require.InDelta(t, 6.0, response.Inputs.AverageProgress, 0.001)
	require.Equal(t, 12, response.Inputs.ReportsThisMonth)
	require.Equal(t, 0, response.Inputs.Complaints)
	require.Equal(t, 0, response.Inputs.InactiveStudents)
	require.Equal(t, 1, response.Inputs.SessionCount)
	require.NotNil(t, response.Score)
	require.Equal(t, 100, *response.Score)
	require.Equal(t, dto.RatingExcellent, response.Rating)
	require.Len(t, response.Suggestions, 1)
}

func TestEvaluationServiceNoData(t *testing.T) {
	svc := NewEvaluationService(&fakeSessionRepo{}, &fakeStudentRepo{}, &fakeReportRepo{}, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.July)
	require.NoError(t, err)
	require.Nil(t, response.Score)
	require.Equal(t, dto.RatingNoData, response.Rating)
	require.NotEmpty(t, response.Suggestions)
}

func TestEvaluationServiceCountsComplaintsAndInactive(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive, MemorizedSurahs: 2},
		{ID: 2, FullName: "Bilal", Status: models.StudentStatusLongAbsent, MemorizedSurahs: 1},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendancePresent},
			},
		},
	}}
	reports := &fakeReportRepo{reports: []models.DailyReport{
		{ID: 1, Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), Category: models.ReportCategoryComplaint},
		{ID: 2, Date: time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC), Category: models.ReportCategoryGeneral},
	}}

	svc := NewEvaluationService(sessions, students, reports, testLogger())

	response, err := svc.GetMonthly(context.Background(), 2024, time.May)
	require.NoError(t, err)
	require.Equal(t, 2, response.Inputs.ReportsThisMonth)
	require.Equal(t, 1, response.Inputs.Complaints)
	require.Equal(t, 1, response.Inputs.InactiveStudents)
}
