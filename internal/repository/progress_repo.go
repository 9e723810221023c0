package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// ProgressRepository provides access to per-student surah progress.
type ProgressRepository interface {
	GetByStudentID(ctx context.Context, studentID uint) (models.SurahProgress, error)
	Save(ctx context.Context, progress *models.SurahProgress) error
	ListByStudentIDs(ctx context.Context, studentIDs []uint) ([]models.SurahProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository constructs a progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetByStudentID(ctx context.Context, studentID uint) (models.SurahProgress, error) {
	var progress models.SurahProgress
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&progress).Error
	if err != nil {
		return models.SurahProgress{}, err
	}

	return progress, nil
}

func (r *progressRepository) Save(ctx context.Context, progress *models.SurahProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *progressRepository) ListByStudentIDs(ctx context.Context, studentIDs []uint) ([]models.SurahProgress, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var entries []models.SurahProgress
	err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("student_id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
