package services

import (
	"fmt"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

// EmployeeService manages the directory. New accounts get a generated
// temporary password by email and must change it at first login.
type EmployeeService struct {
	employees *repository.EmployeeRepository
	mailer    Sender
	audit     *AuditService
}

func NewEmployeeService(employees *repository.EmployeeRepository, mailer Sender, audit *AuditService) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		mailer:    mailer,
		audit:     audit,
	}
}

type CreateEmployeeRequest struct {
	LastName   string     `json:"nom" validate:"required,min=1,max=100"`
	FirstName  string     `json:"prenom" validate:"required,min=1,max=100"`
	Email      string     `json:"email" validate:"required,email"`
	Role       string     `json:"role" validate:"required,oneof=ADMIN CHEF_DE_PROJET RH DEVELOPPEUR STAGIAIRE EMPLOYE"`
	ValidFrom  *time.Time `json:"date_debut_validite,omitempty"`
	ValidUntil *time.Time `json:"date_fin_validite,omitempty"`
}

type UpdateEmployeeRequest struct {
	LastName   string     `json:"nom,omitempty" validate:"omitempty,min=1,max=100"`
	FirstName  string     `json:"prenom,omitempty" validate:"omitempty,min=1,max=100"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	Role       string     `json:"role,omitempty" validate:"omitempty,oneof=ADMIN CHEF_DE_PROJET RH DEVELOPPEUR STAGIAIRE EMPLOYE"`
	ValidFrom  *time.Time `json:"date_debut_validite,omitempty"`
	ValidUntil *time.Time `json:"date_fin_validite,omitempty"`
}

func (s *EmployeeService) GetAll() ([]*models.Employee, error) {
	return s.employees.FindAll()
}

func (s *EmployeeService) GetByID(id uint) (*models.Employee, error) {
	return s.employees.FindByID(id)
}

// Create registers the employee, emails the generated initial password, and
// flags the account so the first login forces a change.
func (s *EmployeeService) Create(req *CreateEmployeeRequest, actor string) (*models.Employee, error) {
	if existing, _ := s.employees.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return nil, ErrInvalidRange
	}

	tempPassword, err := password.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		Email:           req.Email,
		Password:        string(hash),
		Role:            req.Role,
		CredentialState: models.CredentialMustChangePassword,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
	}

	created, err := s.employees.Create(employee)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendTemporaryPassword(created.Email, tempPassword); err != nil {
		return nil, fmt.Errorf("employee created but email failed: %w", err)
	}

	s.audit.Record(models.ActionCreationEmploye,
		fmt.Sprintf("Creation de l'employe %s %s (%s)", created.FirstName, created.LastName, created.Email),
		actor)

	return created, nil
}

func (s *EmployeeService) Update(id uint, req *UpdateEmployeeRequest, actor string) (*models.Employee, error) {
	employee, err := s.employees.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != employee.Email {
		if existing, _ := s.employees.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailTaken
		}
		employee.Email = req.Email
	}
	if req.LastName != "" {
		employee.LastName = req.LastName
	}
	if req.FirstName != "" {
		employee.FirstName = req.FirstName
	}
	if req.Role != "" {
		employee.Role = req.Role
	}
	if req.ValidFrom != nil {
		employee.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		employee.ValidUntil = req.ValidUntil
	}
	if employee.ValidFrom != nil && employee.ValidUntil != nil && employee.ValidUntil.Before(*employee.ValidFrom) {
		return nil, ErrInvalidRange
	}

	updated, err := s.employees.Update(employee)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionModificationEmploye,
		fmt.Sprintf("Modification de l'employe %s", updated.Email),
		actor)

	return updated, nil
}

func (s *EmployeeService) Delete(id uint, actor string) error {
	employee, err := s.employees.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.employees.Delete(id); err != nil {
		return err
	}

	s.audit.Record(models.ActionSuppressionEmploye,
		fmt.Sprintf("Suppression de l'employe %s", employee.Email),
		actor)

	return nil
}
