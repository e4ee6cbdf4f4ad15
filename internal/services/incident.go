package services

import (
	"fmt"

	"office-backend/internal/events"
	"office-backend/internal/models"
	"office-backend/internal/repository"
)

type IncidentService struct {
	incidents *repository.IncidentRepository
	resources *repository.ResourceRepository
	audit     *AuditService
	feed      events.Broadcaster
}

func NewIncidentService(
	incidents *repository.IncidentRepository,
	resources *repository.ResourceRepository,
	audit *AuditService,
	feed events.Broadcaster,
) *IncidentService {
	return &IncidentService{
		incidents: incidents,
		resources: resources,
		audit:     audit,
		feed:      feed,
	}
}

type ReportIncidentRequest struct {
	ResourceID  uint   `json:"id_ressource" validate:"required"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

type ResolveIncidentRequest struct {
	// Optional new state for the resource once the incident is closed, e.g.
	// back to DISPONIBLE after a repair or HORS_SERVICE when written off.
	ResourceState string `json:"etat_ressource,omitempty" validate:"omitempty,oneof=DISPONIBLE EN_UTILISATION EN_MAINTENANCE HORS_SERVICE"`
}

func (s *IncidentService) GetAll() ([]*models.Incident, error) {
	return s.incidents.FindAll()
}

func (s *IncidentService) GetPending() ([]*models.Incident, error) {
	return s.incidents.FindPending()
}

func (s *IncidentService) GetByID(id uint) (*models.Incident, error) {
	return s.incidents.FindByID(id)
}

// Report files an incident against a resource.
func (s *IncidentService) Report(req *ReportIncidentRequest, reporterID uint, actor string) (*models.Incident, error) {
	resource, err := s.resources.FindByID(req.ResourceID)
	if err != nil {
		return nil, err
	}

	incident := &models.Incident{
		EmployeeID:  reporterID,
		ResourceID:  req.ResourceID,
		Description: req.Description,
		Status:      models.IncidentEnAttente,
	}

	created, err := s.incidents.Create(incident)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionSignalement,
		fmt.Sprintf("Signalement sur la ressource %q", resource.Name),
		actor)

	s.feed.Broadcast(events.Event{
		Type:     events.EventIncidentReported,
		EntityID: created.ID,
		Data:     created,
	})

	return created, nil
}

// Resolve closes the incident and optionally flips the resource's state.
func (s *IncidentService) Resolve(id uint, req *ResolveIncidentRequest, actor string) (*models.Incident, error) {
	incident, err := s.incidents.Resolve(id)
	if err != nil {
		return nil, err
	}

	if req != nil && req.ResourceState != "" {
		if err := s.resources.UpdateState(incident.ResourceID, req.ResourceState); err != nil {
			return nil, err
		}
	}

	s.audit.Record(models.ActionResolutionSignalement,
		fmt.Sprintf("Resolution du signalement %d", incident.ID),
		actor)

	s.feed.Broadcast(events.Event{
		Type:     events.EventIncidentResolved,
		EntityID: incident.ID,
	})

	return incident, nil
}
