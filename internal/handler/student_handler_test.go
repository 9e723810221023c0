package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/handler"
	"github.com/alfurqan/tahfiz-api/internal/service"
)

type mockStudentService struct {
	created   dto.StudentCreateRequest
	lastActor service.ActivityActor
	response  dto.StudentResponse
	getErr    error
	statusErr error
}

func (m *mockStudentService) Create(_ context.Context, req dto.StudentCreateRequest, actor service.ActivityActor) (dto.StudentResponse, error) {
	m.created = req
	m.lastActor = actor
	return m.response, nil
}

func (m *mockStudentService) List(_ context.Context, _ dto.StudentListRequest) (dto.StudentListResponse, error) {
	return dto.StudentListResponse{Items: []dto.StudentResponse{m.response}}, nil
}

func (m *mockStudentService) Get(_ context.Context, _ uint) (dto.StudentResponse, error) {
	if m.getErr != nil {
		return dto.StudentResponse{}, m.getErr
	}
	return m.response, nil
}

func (m *mockStudentService) Update(_ context.Context, _ uint, _ dto.StudentUpdateRequest, _ service.ActivityActor) (dto.StudentResponse, error) {
	return m.response, nil
}

func (m *mockStudentService) ChangeStatus(_ context.Context, _ uint, _ dto.StudentStatusRequest, _ service.ActivityActor) (dto.StudentResponse, error) {
	if m.statusErr != nil {
		return dto.StudentResponse{}, m.statusErr
	}
	return m.response, nil
}

func newStudentApp(svc service.StudentService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/students", func(c *fiber.Ctx) error {
		c.Locals("user_email", "teacher@example.com")
		c.Locals("user_name", "Ustadh Kareem")
		return c.Next()
	})
	handler.NewStudentHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestStudentHandler_CreateSuccess(t *testing.T) {
	svc := &mockStudentService{response: dto.StudentResponse{ID: 1, FullName: "Ahmad Saleh", Status: "active"}}
	app := newStudentApp(svc)

	payload := dto.StudentCreateRequest{
		FullName:  "Ahmad Saleh",
		Phone1:    "0790000001",
		BirthDate: "2012-06-15",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.StudentResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "student created", response.Message)
	require.Equal(t, uint(1), response.Data.ID)
	require.Equal(t, "Ahmad Saleh", svc.created.FullName)
	require.Equal(t, "teacher@example.com", svc.lastActor.Email)
}

func TestStudentHandler_GetNotFound(t *testing.T) {
	svc := &mockStudentService{getErr: service.ErrStudentNotFound}
	app := newStudentApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/99", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStudentHandler_GetInvalidID(t *testing.T) {
	svc := &mockStudentService{}
	app := newStudentApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/abc", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentHandler_StatusReasonRequired(t *testing.T) {
	svc := &mockStudentService{statusErr: service.ErrReasonRequired}
	app := newStudentApp(svc)

	body, err := json.Marshal(dto.StudentStatusRequest{Status: "expelled"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
