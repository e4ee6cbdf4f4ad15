package repository

import (
	"errors"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique-key violations surfaced before insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a delete is blocked by dependent rows.
	ErrReferenced = errors.New("record is referenced by other records")
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(employee *models.Employee) (*models.Employee, error) {
	if err := r.db.Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *EmployeeRepository) FindByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("email = ?", email).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	if err := r.db.Order("last_name, first_name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(employee *models.Employee) (*models.Employee, error) {
	if err := r.db.Save(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// UpdatePassword stores a new hash and credential state in one statement.
func (r *EmployeeRepository) UpdatePassword(id uint, hash, credentialState string) error {
	result := r.db.Model(&models.Employee{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":         hash,
		"credential_state": credentialState,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) UpdateLastLogin(id uint) error {
	return r.db.Model(&models.Employee{}).Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Delete removes the employee unless dependent rows reference it.
func (r *EmployeeRepository) Delete(id uint) error {
	var count int64
	if err := r.db.Model(&models.Participation{}).Where("employee_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}
	if err := r.db.Model(&models.Reservation{}).Where("created_by_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	result := r.db.Delete(&models.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
