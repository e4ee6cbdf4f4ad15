package services

import (
	"fmt"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"
)

type ProjectService struct {
	projects  *repository.ProjectRepository
	employees *repository.EmployeeRepository
	audit     *AuditService
}

func NewProjectService(projects *repository.ProjectRepository, employees *repository.EmployeeRepository, audit *AuditService) *ProjectService {
	return &ProjectService{
		projects:  projects,
		employees: employees,
		audit:     audit,
	}
}

type CreateProjectRequest struct {
	Name        string     `json:"nom" validate:"required,min=1,max=150"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"date_debut" validate:"required"`
	EndDate     *time.Time `json:"date_fin" validate:"required"`
	Status      string     `json:"statut" validate:"omitempty,oneof=EN_COURS TERMINE EN_ATTENTE ANNULE"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"nom,omitempty" validate:"omitempty,min=1,max=150"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"date_debut,omitempty"`
	EndDate     *time.Time `json:"date_fin,omitempty"`
	Status      string     `json:"statut,omitempty" validate:"omitempty,oneof=EN_COURS TERMINE EN_ATTENTE ANNULE"`
}

type AddMemberRequest struct {
	EmployeeID uint   `json:"id_employe" validate:"required"`
	RoleLabel  string `json:"role_projet"`
}

func (s *ProjectService) GetAll() ([]*models.Project, error) {
	return s.projects.FindAll()
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	return s.projects.FindByID(id)
}

func (s *ProjectService) Create(req *CreateProjectRequest, actor string) (*models.Project, error) {
	if req.StartDate == nil || req.EndDate == nil {
		return nil, ErrInvalidInput
	}
	if !req.EndDate.After(*req.StartDate) {
		return nil, ErrInvalidRange
	}

	status := req.Status
	if status == "" {
		status = models.ProjectEnAttente
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   *req.StartDate,
		EndDate:     *req.EndDate,
		Status:      status,
	}

	created, err := s.projects.Create(project)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionCreationProjet,
		fmt.Sprintf("Creation du projet %q", created.Name),
		actor)

	return created, nil
}

func (s *ProjectService) Update(id uint, req *UpdateProjectRequest, actor string) (*models.Project, error) {
	project, err := s.projects.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if !project.EndDate.After(project.StartDate) {
		return nil, ErrInvalidRange
	}

	updated, err := s.projects.Update(project)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionModificationProjet,
		fmt.Sprintf("Modification du projet %q", updated.Name),
		actor)

	return updated, nil
}

func (s *ProjectService) Delete(id uint, actor string) error {
	project, err := s.projects.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.projects.Delete(id); err != nil {
		return err
	}

	s.audit.Record(models.ActionSuppressionProjet,
		fmt.Sprintf("Suppression du projet %q", project.Name),
		actor)

	return nil
}

// AddMember adds an employee to the project team. Re-adding an existing
// member is a conflict, not a duplicate row.
func (s *ProjectService) AddMember(projectID uint, req *AddMemberRequest, actor string) (*models.Participation, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.FindByID(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	participation, err := s.projects.AddMember(&models.Participation{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		RoleLabel:  req.RoleLabel,
	})
	if err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.audit.Record(models.ActionAjoutMembre,
		fmt.Sprintf("Ajout de %s au projet %q", employee.Email, project.Name),
		actor)

	return participation, nil
}

func (s *ProjectService) RemoveMember(projectID, employeeID uint, actor string) error {
	if err := s.projects.RemoveMember(projectID, employeeID); err != nil {
		return err
	}

	s.audit.Record(models.ActionRetraitMembre,
		fmt.Sprintf("Retrait de l'employe %d du projet %d", employeeID, projectID),
		actor)

	return nil
}

func (s *ProjectService) Team(projectID uint) ([]*models.Participation, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, err
	}
	return s.projects.FindTeam(projectID)
}
