package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/models"
	"github.com/alfurqan/tahfiz-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type recorderStub struct {
	entries []ActivityEntry
}

func (r *recorderStub) Record(_ context.Context, entry ActivityEntry) {
	r.entries = append(r.entries, entry)
}

type fakeStudentRepo struct {
	students   []models.Student
	longAbsent int64
	nextID     uint
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	f.nextID++
	student.ID = f.nextID
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) List(_ context.Context, filter repository.StudentFilter) ([]models.Student, int64, error) {
	result := make([]models.Student, 0, len(f.students))
	for _, student := range f.students {
		if !filter.IncludeInactive && filter.Status == "" && !models.IsActiveStatus(student.Status) {
			continue
		}
		if filter.Status != "" && student.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(student.FullName, filter.Search) {
			continue
		}
		result = append(result, student)
	}
	return result, int64(len(result)), nil
}

func (f *fakeStudentRepo) ListActive(_ context.Context) ([]models.Student, error) {
	result := make([]models.Student, 0, len(f.students))
	for _, student := range f.students {
		if models.IsActiveStatus(student.Status) {
			result = append(result, student)
		}
	}
	return result, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	for _, student := range f.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) Update(_ context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	for i := range f.students {
		if f.students[i].ID != id {
			continue
		}
		if value, ok := updates["status"].(string); ok {
			f.students[i].Status = value
		}
		if value, ok := updates["action_reason"].(string); ok {
			f.students[i].ActionReason = value
		}
		if value, ok := updates["full_name"].(string); ok {
			f.students[i].FullName = value
		}
		if value, ok := updates["notes"].(string); ok {
			f.students[i].Notes = value
		}
		if value, ok := updates["memorized_surahs"].(int); ok {
			f.students[i].MemorizedSurahs = value
		}
		return f.students[i], nil
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	if status == models.StudentStatusLongAbsent && f.longAbsent > 0 {
		return f.longAbsent, nil
	}
	count := int64(0)
	for _, student := range f.students {
		if student.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	sessions []models.ClassSession
	nextID   uint
}

func (f *fakeSessionRepo) Upsert(_ context.Context, session *models.ClassSession) error {
	for i := range f.sessions {
		if f.sessions[i].Date.Equal(session.Date) {
			session.ID = f.sessions[i].ID
			f.sessions[i] = *session
			return nil
		}
	}
	f.nextID++
	session.ID = f.nextID
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) GetByDate(_ context.Context, date time.Time) (models.ClassSession, error) {
	for _, session := range f.sessions {
		if session.Date.Equal(date) {
			return session, nil
		}
	}
	return models.ClassSession{}, gorm.ErrRecordNotFound
}

func (f *fakeSessionRepo) ListBetween(_ context.Context, start, end time.Time) ([]models.ClassSession, error) {
	result := make([]models.ClassSession, 0, len(f.sessions))
	for _, session := range f.sessions {
		if !session.Date.Before(start) && session.Date.Before(end) {
			result = append(result, session)
		}
	}
	return result, nil
}

type fakeProgressRepo struct {
	rows map[uint]models.SurahProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[uint]models.SurahProgress)}
}

func (f *fakeProgressRepo) GetByStudentID(_ context.Context, studentID uint) (models.SurahProgress, error) {
	progress, ok := f.rows[studentID]
	if !ok {
		return models.SurahProgress{}, gorm.ErrRecordNotFound
	}
	return progress, nil
}

func (f *fakeProgressRepo) Save(_ context.Context, progress *models.SurahProgress) error {
	if progress.ID == 0 {
		progress.ID = uint(len(f.rows) + 1)
	}
	f.rows[progress.StudentID] = *progress
	return nil
}

func (f *fakeProgressRepo) ListByStudentIDs(_ context.Context, studentIDs []uint) ([]models.SurahProgress, error) {
	result := make([]models.SurahProgress, 0, len(studentIDs))
	for _, id := range studentIDs {
		if progress, ok := f.rows[id]; ok {
			result = append(result, progress)
		}
	}
	return result, nil
}

type fakeReportRepo struct {
	reports []models.DailyReport
	nextID  uint
}

func (f *fakeReportRepo) Create(_ context.Context, report *models.DailyReport) error {
	f.nextID++
	report.ID = f.nextID
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id uint) (models.DailyReport, error) {
	for _, report := range f.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.DailyReport{}, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) Delete(_ context.Context, id uint) error {
	for i, report := range f.reports {
		if report.ID == id {
			f.reports = append(f.reports[:i], f.reports[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) ListBetween(_ context.Context, start, end time.Time, category string) ([]models.DailyReport, error) {
	result := make([]models.DailyReport, 0, len(f.reports))
	for _, report := range f.reports {
		if report.Date.Before(start) || !report.Date.Before(end) {
			continue
		}
		if category != "" && report.Category != category {
			continue
		}
		result = append(result, report)
	}
	return result, nil
}

func (f *fakeReportRepo) CountBetween(ctx context.Context, start, end time.Time, category string) (int64, error) {
	reports, err := f.ListBetween(ctx, start, end, category)
	if err != nil {
		return 0, err
	}
	return int64(len(reports)), nil
}

func strPtr(value string) *string { return &value }

func boolPtr(value bool) *bool { return &value }

func intPtr(value int) *int { return &value }
