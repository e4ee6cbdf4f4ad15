package repository

import (
	"errors"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(resource *models.Resource) (*models.Resource, error) {
	if resource.SerialNumber != nil {
		var count int64
		err := r.db.Model(&models.Resource{}).
			Where("serial_number = ?", *resource.SerialNumber).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicate
		}
	}

	if err := r.db.Create(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

func (r *ResourceRepository) FindByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.Preload("Borrower").First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (r *ResourceRepository) FindAll() ([]*models.Resource, error) {
	var resources []*models.Resource
	if err := r.db.Preload("Borrower").Order("name").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) FindByState(state string) ([]*models.Resource, error) {
	var resources []*models.Resource
	if err := r.db.Where("state = ?", state).Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) Update(resource *models.Resource) (*models.Resource, error) {
	if err := r.db.Save(resource).Error; err != nil {
		return nil, err
	}
	return resource, nil
}

// UpdateState flips only the state column, used by incident resolution.
func (r *ResourceRepository) UpdateState(id uint, state string) error {
	result := r.db.Model(&models.Resource{}).Where("id = ?", id).Update("state", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(id uint) error {
	var count int64
	err := r.db.Model(&models.Incident{}).
		Where("resource_id = ? AND status = ?", id, models.IncidentEnAttente).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	result := r.db.Delete(&models.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
