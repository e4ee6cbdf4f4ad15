package repository

import (
	"errors"
	"time"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(incident *models.Incident) (*models.Incident, error) {
	if err := r.db.Create(incident).Error; err != nil {
		return nil, err
	}
	return incident, nil
}

func (r *IncidentRepository) FindByID(id uint) (*models.Incident, error) {
	var incident models.Incident
	err := r.db.Preload("Employee").Preload("Resource").First(&incident, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &incident, nil
}

func (r *IncidentRepository) FindAll() ([]*models.Incident, error) {
	var incidents []*models.Incident
	err := r.db.Preload("Employee").Preload("Resource").
		Order("created_at DESC").
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *IncidentRepository) FindPending() ([]*models.Incident, error) {
	var incidents []*models.Incident
	err := r.db.Preload("Employee").Preload("Resource").
		Where("status = ?", models.IncidentEnAttente).
		Order("created_at").
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

// Resolve marks the incident RESOLU and records when.
func (r *IncidentRepository) Resolve(id uint) (*models.Incident, error) {
	incident, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if incident.Status == models.IncidentResolu {
		return incident, nil
	}

	now := time.Now()
	incident.Status = models.IncidentResolu
	incident.ResolvedAt = &now
	if err := r.db.Save(incident).Error; err != nil {
		return nil, err
	}
	return incident, nil
}
