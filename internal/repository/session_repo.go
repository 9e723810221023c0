package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alfurqan/tahfiz-api/internal/models"
)

// SessionRepository provides access to daily class sessions.
type SessionRepository interface {
	Upsert(ctx context.Context, session *models.ClassSession) error
	GetByDate(ctx context.Context, date time.Time) (models.ClassSession, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]models.ClassSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Upsert replaces the session stored for the given date, records included,
// in a single transaction.
func (r *sessionRepository) Upsert(ctx context.Context, session *models.ClassSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ClassSession
		err := tx.Where("date = ?", session.Date).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("session_id = ?", existing.ID).Delete(&models.SessionRecord{}).Error; err != nil {
				return err
			}
			session.ID = existing.ID
			session.CreatedAt = existing.CreatedAt
			for i := range session.Records {
				session.Records[i].SessionID = existing.ID
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(session).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(session).Error
		default:
			return err
		}
	})
}

func (r *sessionRepository) GetByDate(ctx context.Context, date time.Time) (models.ClassSession, error) {
	var session models.ClassSession
	err := r.db.WithContext(ctx).
		Preload("Records").
		Where("date = ?", date).
		First(&session).Error
	if err != nil {
		return models.ClassSession{}, err
	}

	return session, nil
}

// ListBetween returns sessions with start <= date < end, oldest first.
func (r *sessionRepository) ListBetween(ctx context.Context, start, end time.Time) ([]models.ClassSession, error) {
	var sessions []models.ClassSession
	err := r.db.WithContext(ctx).
		Preload("Records").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}
