package repositories

import (
	"errors"
	"fmt"
	"time"

	"subsmanager-miniapp/internal/models"

	"gorm.io/gorm"
)

// ActionLogRepository handles database operations for the action journal
type ActionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new action log repository
func NewActionLogRepository(db *gorm.DB) ActionLogRepositoryInterface {
	return &ActionLogRepository{
		db: db,
	}
}

// Create creates a new action log entry
func (r *ActionLogRepository) Create(log *models.ActionLog) error {
	if log == nil {
		return errors.New("action log cannot be nil")
	}

	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create action log: %w", err)
	}

	return nil
}

// GetByUserID retrieves action logs for a specific user, newest first
func (r *ActionLogRepository) GetByUserID(userID int64, offset, limit int) ([]*models.ActionLog, int64, error) {
	var logs []*models.ActionLog
	var total int64

	query := r.db.Model(&models.ActionLog{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count action logs: %w", err)
	}

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get action logs for user: %w", err)
	}

	return logs, total, nil
}

// GetByAction retrieves action logs for a specific action
func (r *ActionLogRepository) GetByAction(action string, offset, limit int) ([]*models.ActionLog, int64, error) {
	var logs []*models.ActionLog
	var total int64

	query := r.db.Model(&models.ActionLog{}).Where("action = ?", action)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count action logs: %w", err)
	}

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get action logs by action: %w", err)
	}

	return logs, total, nil
}

// DeleteOlderThan removes action logs older than the specified duration
func (r *ActionLogRepository) DeleteOlderThan(duration time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-duration)

	result := r.db.Where("created_at < ?", cutoffTime).Delete(&models.ActionLog{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old action logs: %w", result.Error)
	}

	return result.RowsAffected, nil
}
