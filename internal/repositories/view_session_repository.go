package repositories

import (
	"errors"
	"fmt"

	"subsmanager-miniapp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewSessionRepository handles database operations for stored UI preferences
type ViewSessionRepository struct {
	db *gorm.DB
}

// NewViewSessionRepository creates a new view session repository
func NewViewSessionRepository(db *gorm.DB) ViewSessionRepositoryInterface {
	return &ViewSessionRepository{
		db: db,
	}
}

// Get retrieves the preferences of a user
func (r *ViewSessionRepository) Get(userID int64) (*models.ViewSession, error) {
	session := &models.ViewSession{}
	if err := r.db.Where("user_id = ?", userID).First(session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrViewSessionNotFound
		}
		return nil, fmt.Errorf("failed to get view session: %w", err)
	}

	return session, nil
}

// Save inserts or replaces the preferences of a user
func (r *ViewSessionRepository) Save(session *models.ViewSession) error {
	if session == nil {
		return errors.New("view session cannot be nil")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "current_tab", "selected_subscription_id", "updated_at"}),
	}).Create(session).Error
	if err != nil {
		return fmt.Errorf("failed to save view session: %w", err)
	}

	return nil
}

// Delete forgets the preferences of a user
func (r *ViewSessionRepository) Delete(userID int64) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.ViewSession{}).Error; err != nil {
		return fmt.Errorf("failed to delete view session: %w", err)
	}
	return nil
}
