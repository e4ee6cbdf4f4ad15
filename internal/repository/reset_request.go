package repository

import (
	"errors"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

type ResetRequestRepository struct {
	db *gorm.DB
}

func NewResetRequestRepository(db *gorm.DB) *ResetRequestRepository {
	return &ResetRequestRepository{db: db}
}

// Create queues a help ticket. One pending ticket per employee is enough.
func (r *ResetRequestRepository) Create(request *models.ResetRequest) (*models.ResetRequest, error) {
	var existing models.ResetRequest
	err := r.db.Where("employee_id = ? AND status = ?", request.EmployeeID, models.ResetEnAttente).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *ResetRequestRepository) FindByID(id uint) (*models.ResetRequest, error) {
	var request models.ResetRequest
	err := r.db.Preload("Employee").First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ResetRequestRepository) FindPending() ([]*models.ResetRequest, error) {
	var requests []*models.ResetRequest
	err := r.db.Preload("Employee").
		Where("status = ?", models.ResetEnAttente).
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Delete removes the ticket once actioned (approved or rejected).
func (r *ResetRequestRepository) Delete(id uint) error {
	result := r.db.Delete(&models.ResetRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
