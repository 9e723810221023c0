package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

// EvaluationService derives a monthly 0-100 composite verdict for the class.
type EvaluationService interface {
	GetMonthly(ctx context.Context, year int, month time.Month) (dto.EvaluationResponse, error)
}

type evaluationService struct {
	sessions repository.SessionRepository
	students repository.StudentRepository
	reports  repository.ReportRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewEvaluationService constructs the evaluation service.
func NewEvaluationService(sessions repository.SessionRepository, students repository.StudentRepository, reports repository.ReportRepository, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		sessions: sessions,
		students: students,
		reports:  reports,
		logger:   logger.With().Str("component", "evaluation_service").Logger(),
		now:      time.Now,
	}
}

func (s *evaluationService) GetMonthly(ctx context.Context, year int, month time.Month) (dto.EvaluationResponse, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	sessions, err := s.sessions.ListBetween(ctx, start, end)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	roster, err := s.students.ListActive(ctx)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	reportCount, err := s.reports.CountBetween(ctx, start, end, "")
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	complaintCount, err := s.reports.CountBetween(ctx, start, end, models.ReportCategoryComplaint)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	inactiveCount, err := s.students.CountByStatus(ctx, models.StudentStatusLongAbsent)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	inputs := dto.EvaluationInputs{
		AttendanceRate:   attendanceRate(sessions),
		AverageProgress:  averageProgress(roster),
		ReportsThisMonth: int(reportCount),
		Complaints:       int(complaintCount),
		InactiveStudents: int(inactiveCount),
		SessionCount:     len(sessions),
	}

	score, rating, suggestions := evaluateGroup(inputs)

	return dto.EvaluationResponse{
		Year:        year,
		Month:       int(month),
		Score:       score,
		Rating:      rating,
		Suggestions: suggestions,
		Inputs:      inputs,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// attendanceRate is the share of attended records (present, late, makeup)
// among the records where attendance was expected.
func attendanceRate(sessions []models.ClassSession) float64 {
	expected := 0
	attended := 0
	for _, session := range sessions {
		for _, record := range session.Records {
			if record.Attendance == models.AttendanceNotRequired {
				continue
			}
			expected++
			switch record.Attendance {
			case models.AttendancePresent, models.AttendanceLate, models.AttendanceMakeup:
				attended++
			}
		}
	}
	if expected == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(expected)*10000) / 100
}

func averageProgress(roster []models.Student) float64 {
	if len(roster) == 0 {
		return 0
	}
	total := 0
	for _, student := range roster {
		total += student.MemorizedSurahs
	}
	return float64(total) / float64(len(roster))
}

// evaluateGroup applies the fixed rubric. A nil score means no activity was
// recorded at all, which is not the same as a recorded zero.
func evaluateGroup(in dto.EvaluationInputs) (*int, string, []string) {
	if in.AttendanceRate == 0 && in.AverageProgress == 0 && in.ReportsThisMonth == 0 && in.SessionCount == 0 {
		return nil, dto.RatingNoData, []string{"No activity recorded this month, start recording sessions and reports to evaluate the group."}
	}

	score := 0

	switch {
	case in.AttendanceRate >= 90:
		score += 25
	case in.AttendanceRate >= 75:
		score += 20
	case in.AttendanceRate >= 50:
		score += 10
	}

	switch {
	case in.AverageProgress >= 5:
		score += 25
	case in.AverageProgress >= 3:
		score += 15
	default:
		score += 5
	}

	switch {
	case in.ReportsThisMonth >= 10:
		score += 20
	case in.ReportsThisMonth >= 5:
		score += 10
	}

	switch {
	case in.Complaints == 0:
		score += 15
	case in.Complaints <= 2:
		score += 5
	}

	switch {
	case in.InactiveStudents == 0:
		score += 15
	case in.InactiveStudents <= 2:
		score += 5
	}

	if score > 100 {
		score = 100
	}

	var rating string
	switch {
	case score >= 90:
		rating = dto.RatingExcellent
	case score >= 75:
		rating = dto.RatingVeryGood
	case score >= 60:
		rating = dto.RatingGood
	default:
		rating = dto.RatingWeak
	}

	suggestions := make([]string, 0, 6)
	switch rating {
	case dto.RatingVeryGood:
		suggestions = append(suggestions, "Strong month overall, a small push on the weaker factors would reach excellence.")
	case dto.RatingGood:
		suggestions = append(suggestions, "Acceptable month, review the weaker factors below and set targets for the next one.")
	case dto.RatingWeak:
		suggestions = append(suggestions, "Weak month, sit down with the group and rebuild the routine before scores slip further.")
	}

	if in.AttendanceRate < 70 {
		suggestions = append(suggestions, "Attendance is low, contact guardians of frequently absent students.")
	}
	if in.AverageProgress < 2 {
		suggestions = append(suggestions, "Average memorization progress is low, consider reducing the daily amount to rebuild consistency.")
	}
	if in.Complaints >= 3 {
		suggestions = append(suggestions, "Several complaints were filed this month, address their causes directly.")
	}
	if in.InactiveStudents >= 2 {
		suggestions = append(suggestions, "Multiple students are inactive, reach out before they drop out entirely.")
	}
	if in.ReportsThisMonth < 5 {
		suggestions = append(suggestions, "Few reports were written this month, daily notes keep guardians engaged.")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Outstanding month, keep the current pace and celebrate the group's achievement.")
	}

	return &score, rating, suggestions
}
