package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// ReportRepository provides access to daily teacher reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.DailyReport) error
	GetByID(ctx context.Context, id uint) (models.DailyReport, error)
	Delete(ctx context.Context, id uint) error
	ListBetween(ctx context.Context, start, end time.Time, category string) ([]models.DailyReport, error)
	CountBetween(ctx context.Context, start, end time.Time, category string) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs a report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (models.DailyReport, error) {
	var report models.DailyReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return models.DailyReport{}, err
	}

	return report, nil
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.DailyReport{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *reportRepository) ListBetween(ctx context.Context, start, end time.Time, category string) ([]models.DailyReport, error) {
	query := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Order("date DESC, id DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var reports []models.DailyReport
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) CountBetween(ctx context.Context, start, end time.Time, category string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DailyReport{}).
		Where("date >= ? AND date < ?", start, end)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
