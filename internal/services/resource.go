package services

import (
	"fmt"

	"office-backend/internal/models"
	"office-backend/internal/repository"
)

type ResourceService struct {
	resources *repository.ResourceRepository
	employees *repository.EmployeeRepository
	audit     *AuditService
}

func NewResourceService(resources *repository.ResourceRepository, employees *repository.EmployeeRepository, audit *AuditService) *ResourceService {
	return &ResourceService{
		resources: resources,
		employees: employees,
		audit:     audit,
	}
}

type CreateResourceRequest struct {
	Name         string  `json:"nom" validate:"required,min=1,max=150"`
	Type         string  `json:"type" validate:"required,oneof=ORDINATEUR TELEPHONE VEHICULE IMPRIMANTE AUTRE"`
	State        string  `json:"etat" validate:"omitempty,oneof=DISPONIBLE EN_UTILISATION EN_MAINTENANCE HORS_SERVICE"`
	SerialNumber *string `json:"numero_serie,omitempty"`
	BorrowerID   *uint   `json:"id_emprunteur,omitempty"`
	Location     string  `json:"localisation"`
}

type UpdateResourceRequest struct {
	Name         string  `json:"nom,omitempty" validate:"omitempty,min=1,max=150"`
	Type         string  `json:"type,omitempty" validate:"omitempty,oneof=ORDINATEUR TELEPHONE VEHICULE IMPRIMANTE AUTRE"`
	State        string  `json:"etat,omitempty" validate:"omitempty,oneof=DISPONIBLE EN_UTILISATION EN_MAINTENANCE HORS_SERVICE"`
	SerialNumber *string `json:"numero_serie,omitempty"`
	BorrowerID   *uint   `json:"id_emprunteur,omitempty"`
	Location     string  `json:"localisation,omitempty"`
}

func (s *ResourceService) GetAll() ([]*models.Resource, error) {
	return s.resources.FindAll()
}

func (s *ResourceService) GetByID(id uint) (*models.Resource, error) {
	return s.resources.FindByID(id)
}

func (s *ResourceService) Create(req *CreateResourceRequest, actor string) (*models.Resource, error) {
	if req.BorrowerID != nil {
		if _, err := s.employees.FindByID(*req.BorrowerID); err != nil {
			return nil, err
		}
	}

	state := req.State
	if state == "" {
		state = models.ResourceDisponible
	}

	resource := &models.Resource{
		Name:         req.Name,
		Type:         req.Type,
		State:        state,
		SerialNumber: req.SerialNumber,
		BorrowerID:   req.BorrowerID,
		Location:     req.Location,
	}

	created, err := s.resources.Create(resource)
	if err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrSerialTaken
		}
		return nil, err
	}

	s.audit.Record(models.ActionCreationRessource,
		fmt.Sprintf("Creation de la ressource %q (%s)", created.Name, created.Type),
		actor)

	return created, nil
}

func (s *ResourceService) Update(id uint, req *UpdateResourceRequest, actor string) (*models.Resource, error) {
	resource, err := s.resources.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		resource.Name = req.Name
	}
	if req.Type != "" {
		resource.Type = req.Type
	}
	if req.State != "" {
		resource.State = req.State
	}
	if req.SerialNumber != nil {
		resource.SerialNumber = req.SerialNumber
	}
	if req.BorrowerID != nil {
		if _, err := s.employees.FindByID(*req.BorrowerID); err != nil {
			return nil, err
		}
		resource.BorrowerID = req.BorrowerID
	}
	if req.Location != "" {
		resource.Location = req.Location
	}

	updated, err := s.resources.Update(resource)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionModificationRessource,
		fmt.Sprintf("Modification de la ressource %q", updated.Name),
		actor)

	return updated, nil
}

func (s *ResourceService) Delete(id uint, actor string) error {
	resource, err := s.resources.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.resources.Delete(id); err != nil {
		return err
	}

	s.audit.Record(models.ActionSuppressionRessource,
		fmt.Sprintf("Suppression de la ressource %q", resource.Name),
		actor)

	return nil
}
