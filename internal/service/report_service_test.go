package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
)

func TestReportServiceCreateSanitizesNote(t *testing.T) {
	repo := &fakeReportRepo{}
	recorder := &recorderStub{}
	svc := NewReportService(repo, validator.New(), recorder, testLogger())

	response, err := svc.Create(context.Background(), dto.ReportCreateRequest{
		Date: "2024-03-05",
		Note: "Great recitation today <script>alert('x')</script>",
	}, ActivityActor{Email: "teacher@example.com", Name: "Ustadh Kareem"})
	require.NoError(t, err)
	require.NotContains(t, response.Note, "<script>")
	require.Contains(t, response.Note, "Great recitation today")
	require.Equal(t, models.ReportCategoryGeneral, response.Category)
	require.Equal(t, "teacher@example.com", response.AuthorID)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, "report.created", recorder.entries[0].Action)
}

func TestReportServiceCreateRejectsMarkupOnlyNote(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, validator.New(), nil, testLogger())

	_, err := svc.Create(context.Background(), dto.ReportCreateRequest{
		Date: "2024-03-05",
		Note: "<img src=x onerror=alert(1)>",
	}, ActivityActor{})
	require.ErrorIs(t, err, ErrEmptyNote)
}

func TestReportServiceListMonthFiltersCategory(t *testing.T) {
	repo := &fakeReportRepo{reports: []models.DailyReport{
		{ID: 1, Date: time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), Note: "a", Category: models.ReportCategoryGeneral},
		{ID: 2, Date: time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), Note: "b", Category: models.ReportCategoryComplaint},
		{ID: 3, Date: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), Note: "c", Category: models.ReportCategoryComplaint},
	}}
	svc := NewReportService(repo, validator.New(), nil, testLogger())

	response, err := svc.ListMonth(context.Background(), dto.ReportListRequest{
		Year:     2024,
		Month:    3,
		Category: models.ReportCategoryComplaint,
	})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	require.Equal(t, uint(2), response.Items[0].ID)
}

func TestReportServiceDeleteMissing(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, validator.New(), nil, testLogger())

	err := svc.Delete(context.Background(), 99, ActivityActor{})
	require.ErrorIs(t, err, ErrReportNotFound)
}
