package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/models"
)

func TestStudentServiceCreate(t *testing.T) {
	repo := &fakeStudentRepo{}
	recorder := &recorderStub{}
	svc := NewStudentService(repo, validator.New(), recorder, testLogger())

	response, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		FullName:        "  Ahmad Saleh  ",
		Phone1:          "0790000001",
		BirthDate:       "2012-06-15",
		MemorizedSurahs: 3,
		DailyAmount:     models.DailyAmountHalfPage,
	}, ActivityActor{Email: "teacher@example.com"})
	require.NoError(t, err)
	require.Equal(t, "Ahmad Saleh", response.FullName)
	require.Equal(t, models.StudentStatusActive, response.Status)
	require.Equal(t, 3, response.MemorizedSurahs)
	require.NotZero(t, response.ID)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, "student.created", recorder.entries[0].Action)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, validator.New(), nil, testLogger())

	_, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		FullName: "A",
		Phone1:   "123",
	}, ActivityActor{})
	require.Error(t, err)
}

func TestStudentServiceChangeStatusRequiresReason(t *testing.T) {
	repo := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
	}}
	svc := NewStudentService(repo, validator.New(), nil, testLogger())
	ctx := context.Background()

	_, err := svc.ChangeStatus(ctx, 1, dto.StudentStatusRequest{Status: models.StudentStatusExpelled}, ActivityActor{})
	require.ErrorIs(t, err, ErrReasonRequired)

	_, err = svc.ChangeStatus(ctx, 1, dto.StudentStatusRequest{Status: models.StudentStatusDeleted}, ActivityActor{})
	require.ErrorIs(t, err, ErrReasonRequired)

	response, err := svc.ChangeStatus(ctx, 1, dto.StudentStatusRequest{
		Status: models.StudentStatusExpelled,
		Reason: "repeated unexcused absences",
	}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusExpelled, response.Status)
	require.Equal(t, "repeated unexcused absences", response.ActionReason)
}

func TestStudentServiceChangeStatusLongAbsentNeedsNoReason(t *testing.T) {
	repo := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
	}}
	svc := NewStudentService(repo, validator.New(), nil, testLogger())

	response, err := svc.ChangeStatus(context.Background(), 1, dto.StudentStatusRequest{
		Status: models.StudentStatusLongAbsent,
	}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusLongAbsent, response.Status)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	repo := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive, MemorizedSurahs: 2},
	}}
	recorder := &recorderStub{}
	svc := NewStudentService(repo, validator.New(), recorder, testLogger())

	response, err := svc.Update(context.Background(), 1, dto.StudentUpdateRequest{
		FullName:        strPtr("Ahmad S. Saleh"),
		MemorizedSurahs: intPtr(4),
	}, ActivityActor{})
	require.NoError(t, err)
	require.Equal(t, "Ahmad S. Saleh", response.FullName)
	require.Equal(t, 4, response.MemorizedSurahs)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, "student.updated", recorder.entries[0].Action)
}

func TestStudentServiceGetMissing(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, validator.New(), nil, testLogger())

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentServiceListDefaultsToActiveRoster(t *testing.T) {
	repo := &fakeStudentRepo{students: []models.Student{
		{ID: 1, FullName: "Ahmad", Status: models.StudentStatusActive},
		{ID: 2, FullName: "Bilal", Status: models.StudentStatusLongAbsent},
		{ID: 3, FullName: "Omar", Status: models.StudentStatusExpelled},
	}}
	svc := NewStudentService(repo, validator.New(), nil, testLogger())

	response, err := svc.List(context.Background(), dto.StudentListRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, response.Items, 2)
	require.Equal(t, int64(2), response.Pagination.TotalItems)
	require.Equal(t, 1, response.Pagination.TotalPages)
}
