package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

func TestExportServiceMonthlyRanking(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad Saleh", Status: models.StudentStatusActive},
	}}
	sessions := &fakeSessionRepo{sessions: []models.ClassSession{
		{
			ID:   1,
			Date: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			Type: models.SessionTypeBasic,
			Records: []models.SessionRecord{
				{StudentID: 1, Attendance: models.AttendancePresent},
			},
		},
	}}
	ranking := NewRankingService(sessions, students, nil, 0, testLogger())
	svc := NewExportService(ranking, students, newFakeProgressRepo(), testLogger())

	artifact, err := svc.MonthlyRanking(context.Background(), 2025, time.December)
	require.NoError(t, err)
	require.Equal(t, "monthly_ranking_12_2025.xlsx", artifact.FileName)
	require.NotEmpty(t, artifact.Content)

	workbook, err := excelize.OpenReader(bytes.NewReader(artifact.Content))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Ranking 2025-12")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Rank", rows[0][0])
	require.Equal(t, "Ahmad Saleh", rows[1][1])
	require.Equal(t, "3", rows[1][2])
}

func TestExportServiceStudentProgress(t *testing.T) {
	students := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad Saleh", Status: models.StudentStatusActive, MemorizedSurahs: 3},
	}}
	progress := newFakeProgressRepo()
	progress.rows[1] = models.SurahProgress{
		ID:          1,
		StudentID:   1,
		SurahID:     2,
		SurahName:   "Al-Baqarah",
		Status:      models.ProgressStatusInProgress,
		FromVerse:   1,
		ToVerse:     40,
		TotalVerses: 286,
		StartDate:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	ranking := NewRankingService(&fakeSessionRepo{}, students, nil, 0, testLogger())
	svc := NewExportService(ranking, students, progress, testLogger())

	artifact, err := svc.StudentProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, artifact.FileName, "student_progress_Ahmad_Saleh_")
	require.NotEmpty(t, artifact.Content)

	workbook, err := excelize.OpenReader(bytes.NewReader(artifact.Content))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Progress")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Al-Baqarah", rows[1][1])
}

func TestExportServiceStudentProgressMissingStudent(t *testing.T) {
	students := &fakeStudentRepo{}
	ranking := NewRankingService(&fakeSessionRepo{}, students, nil, 0, testLogger())
	svc := NewExportService(ranking, students, newFakeProgressRepo(), testLogger())

	_, err := svc.StudentProgress(context.Background(), 9)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
