package repositories

import (
	"errors"
	"time"

	"subsmanager-miniapp/internal/models"
)

// ErrViewSessionNotFound is returned when a user has no stored preferences yet
var ErrViewSessionNotFound = errors.New("view session not found")

// ViewSessionRepositoryInterface defines the contract for stored UI preferences
type ViewSessionRepositoryInterface interface {
	Get(userID int64) (*models.ViewSession, error)
	Save(session *models.ViewSession) error
	Delete(userID int64) error
}

// ActionLogRepositoryInterface defines the contract for the user action journal
type ActionLogRepositoryInterface interface {
	Create(log *models.ActionLog) error
	GetByUserID(userID int64, offset, limit int) ([]*models.ActionLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.ActionLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}
