package repository

import (
	"office-backend/internal/models"

	"gorm.io/gorm"
)

// ActionLogRepository writes the append-only audit trail. There is no update
// or delete on purpose.
type ActionLogRepository struct {
	db *gorm.DB
}

func NewActionLogRepository(db *gorm.DB) *ActionLogRepository {
	return &ActionLogRepository{db: db}
}

func (r *ActionLogRepository) Append(entry *models.ActionLog) error {
	return r.db.Create(entry).Error
}

// FindPage returns a page of entries, newest first, with the total count.
func (r *ActionLogRepository) FindPage(page, limit int) ([]*models.ActionLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.db.Model(&models.ActionLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*models.ActionLog
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
