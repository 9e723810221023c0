package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/export"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// ExportArtifact is a downloadable file produced by an exporter.
type ExportArtifact struct {
	FileName string
	Content  []byte
}

// ExportService renders report data into spreadsheet artifacts.
type ExportService interface {
	MonthlyRanking(ctx context.Context, year int, month time.Month) (ExportArtifact, error)
	StudentProgress(ctx context.Context, studentID uint) (ExportArtifact, error)
}

type exportService struct {
	ranking  RankingService
	students repository.StudentRepository
	progress repository.ProgressRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(ranking RankingService, students repository.StudentRepository, progress repository.ProgressRepository, logger zerolog.Logger) ExportService {
	return &exportService{
		ranking:  ranking,
		students: students,
		progress: progress,
		logger:   logger.With().Str("component", "export_service").Logger(),
		now:      time.Now,
	}
}

func (s *exportService) MonthlyRanking(ctx context.Context, year int, month time.Month) (ExportArtifact, error) {
	ranking, err := s.ranking.GetMonthly(ctx, year, month)
	if err != nil {
		return ExportArtifact{}, err
	}

	rows := make([][]string, 0, len(ranking.Entries))
	for _, entry := range ranking.Entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.Rank),
			entry.FullName,
			strconv.FormatFloat(entry.Score, 'f', -1, 64),
			strconv.Itoa(entry.Stats.Present),
			strconv.Itoa(entry.Stats.Absent),
			strconv.Itoa(entry.Stats.Late),
			strconv.Itoa(entry.Stats.Makeup),
			strconv.Itoa(entry.Stats.Excellent),
			strconv.Itoa(entry.Stats.Good),
			strconv.Itoa(entry.Stats.Average),
			strconv.Itoa(entry.Stats.Reviewed),
		})
	}

	content, err := export.WorkbookBytes([]export.SheetSpec{{
		Title: fmt.Sprintf("Ranking %04d-%02d", year, int(month)),
		Header: []string{
			"Rank", "Student", "Score",
			"Present", "Absent", "Late", "Makeup",
			"Excellent", "Good", "Average", "Reviewed",
		},
		Rows: rows,
	}})
	if err != nil {
		return ExportArtifact{}, err
	}

	return ExportArtifact{
		FileName: export.FileName("monthly_ranking", "", month, year, "xlsx"),
		Content:  content,
	}, nil
}

func (s *exportService) StudentProgress(ctx context.Context, studentID uint) (ExportArtifact, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExportArtifact{}, ErrStudentNotFound
		}
		return ExportArtifact{}, err
	}

	progress, err := s.progress.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExportArtifact{}, ErrProgressNotFound
		}
		return ExportArtifact{}, err
	}

	completion := ""
	if progress.CompletionDate != nil {
		completion = progress.CompletionDate.Format("2006-01-02")
	}

	content, err := export.WorkbookBytes([]export.SheetSpec{{
		Title: "Progress",
		Header: []string{
			"Student", "Surah", "Status", "From Verse", "To Verse",
			"Total Verses", "Start Date", "Completion Date", "Retakes", "Memorized Surahs",
		},
		Rows: [][]string{{
			student.FullName,
			progress.SurahName,
			progress.Status,
			strconv.Itoa(progress.FromVerse),
			strconv.Itoa(progress.ToVerse),
			strconv.Itoa(progress.TotalVerses),
			progress.StartDate.Format("2006-01-02"),
			completion,
			strconv.Itoa(progress.RetakeCount),
			strconv.Itoa(student.MemorizedSurahs),
		}},
	}})
	if err != nil {
		return ExportArtifact{}, err
	}

	now := s.now()
	return ExportArtifact{
		FileName: export.FileName("student_progress", student.FullName, now.Month(), now.Year(), "xlsx"),
		Content:  content,
	}, nil
}
