package repository

import (
	"errors"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *models.Project) (*models.Project, error) {
	if err := r.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.db.Order("start_date DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Update(project *models.Project) (*models.Project, error) {
	if err := r.db.Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) Delete(id uint) error {
	var count int64
	if err := r.db.Model(&models.Reservation{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// Team memberships go with the project.
		if err := tx.Where("project_id = ?", id).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddMember links an employee to a project. The (employee, project) pair is
// unique: adding an existing member returns ErrDuplicate.
func (r *ProjectRepository) AddMember(participation *models.Participation) (*models.Participation, error) {
	var count int64
	err := r.db.Model(&models.Participation{}).
		Where("employee_id = ? AND project_id = ?", participation.EmployeeID, participation.ProjectID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	if err := r.db.Create(participation).Error; err != nil {
		return nil, err
	}
	return participation, nil
}

func (r *ProjectRepository) RemoveMember(projectID, employeeID uint) error {
	result := r.db.Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&models.Participation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) FindTeam(projectID uint) ([]*models.Participation, error) {
	var team []*models.Participation
	err := r.db.Preload("Employee").
		Where("project_id = ?", projectID).
		Find(&team).Error
	if err != nil {
		return nil, err
	}
	return team, nil
}
