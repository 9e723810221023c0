package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/tahfiz-api/internal/dto"
	"github.com/alfurqan/tahfiz-api/internal/handler"
)

type mockRankingService struct {
	lastYear  int
	lastMonth time.Month
	response  dto.RankingResponse
}

func (m *mockRankingService) GetMonthly(_ context.Context, year int, month time.Month) (dto.RankingResponse, error) {
	m.lastYear = year
	m.lastMonth = month
	return m.response, nil
}

func (m *mockRankingService) Invalidate(_ context.Context, _ int, _ time.Month) {}

func TestRankingHandler_GetMonthly(t *testing.T) {
	svc := &mockRankingService{response: dto.RankingResponse{
		Year:         2024,
		Month:        3,
		SessionCount: 12,
		Entries: []dto.RankingEntry{
			{Rank: 1, StudentID: 1, FullName: "Ahmad Saleh", Score: 42},
		},
	}}
	app := fiber.New()
	handler.NewRankingHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/rankings"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings?year=2024&month=3", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 2024, svc.lastYear)
	require.Equal(t, time.March, svc.lastMonth)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.RankingResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Len(t, response.Data.Entries, 1)
	require.Equal(t, "Ahmad Saleh", response.Data.Entries[0].FullName)
}

func TestRankingHandler_InvalidMonth(t *testing.T) {
	svc := &mockRankingService{}
	app := fiber.New()
	handler.NewRankingHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/rankings"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rankings?year=2024&month=13", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
