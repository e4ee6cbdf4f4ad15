package services

import (
	"errors"
	"fmt"
	"time"

	"office-backend/internal/events"
	"office-backend/internal/models"
	"office-backend/internal/repository"
)

// ReservationService validates and books room time slots. The overlap check
// lives in the repository so it shares a transaction with the insert.
type ReservationService struct {
	reservations *repository.ReservationRepository
	rooms        *repository.RoomRepository
	projects     *repository.ProjectRepository
	audit        *AuditService
	feed         events.Broadcaster
}

func NewReservationService(
	reservations *repository.ReservationRepository,
	rooms *repository.RoomRepository,
	projects *repository.ProjectRepository,
	audit *AuditService,
	feed events.Broadcaster,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		projects:     projects,
		audit:        audit,
		feed:         feed,
	}
}

type BookingRequest struct {
	RoomID    uint   `json:"id_salle" validate:"required"`
	ProjectID uint   `json:"id_projet" validate:"required"`
	StartTime string `json:"date_debut" validate:"required"`
	EndTime   string `json:"date_fin" validate:"required"`
	Purpose   string `json:"objet" validate:"max=500"`
}

func (r *BookingRequest) parseTimes() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return start, end, ErrInvalidInput
	}
	end, err = time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return start, end, ErrInvalidInput
	}
	return start, end, nil
}

// Book creates a confirmed reservation when the slot is free. Intervals are
// half-open: a booking ending at 12:00 does not conflict with one starting
// at 12:00.
func (s *ReservationService) Book(req *BookingRequest, createdBy uint, actor string) (*models.Reservation, error) {
	start, end, err := req.parseTimes()
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	room, err := s.rooms.FindByID(req.RoomID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(req.ProjectID); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		RoomID:      req.RoomID,
		ProjectID:   req.ProjectID,
		StartTime:   start,
		EndTime:     end,
		Purpose:     req.Purpose,
		Status:      models.ReservationConfirmee,
		CreatedByID: createdBy,
	}

	created, err := s.reservations.CreateIfFree(reservation)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.audit.Record(models.ActionReservation,
		fmt.Sprintf("Reservation de la salle %q le %s de %s a %s",
			room.Name,
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04")),
		actor)

	s.feed.Broadcast(events.Event{
		Type:     events.EventReservationCreated,
		EntityID: created.ID,
		Data:     created,
	})

	return created, nil
}

// Update edits a reservation and re-runs the overlap check against every
// other booking of the target room.
func (s *ReservationService) Update(id uint, req *BookingRequest, actor string) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(id)
	if err != nil {
		return nil, err
	}

	start, end, err := req.parseTimes()
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	if req.RoomID != reservation.RoomID {
		if _, err := s.rooms.FindByID(req.RoomID); err != nil {
			return nil, err
		}
	}
	if req.ProjectID != reservation.ProjectID {
		if _, err := s.projects.FindByID(req.ProjectID); err != nil {
			return nil, err
		}
	}

	reservation.RoomID = req.RoomID
	reservation.ProjectID = req.ProjectID
	reservation.StartTime = start
	reservation.EndTime = end
	reservation.Purpose = req.Purpose
	reservation.Room = nil
	reservation.Project = nil

	updated, err := s.reservations.UpdateIfFree(reservation)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.audit.Record(models.ActionModificationReservation,
		fmt.Sprintf("Modification de la reservation %d", updated.ID),
		actor)

	s.feed.Broadcast(events.Event{
		Type:     events.EventReservationUpdated,
		EntityID: updated.ID,
		Data:     updated,
	})

	return updated, nil
}

// Cancel frees the slot. Cancellation needs no conflict re-check, it only
// releases capacity.
func (s *ReservationService) Cancel(id uint, actor string) error {
	if err := s.reservations.Cancel(id); err != nil {
		return err
	}

	s.audit.Record(models.ActionAnnulationReservation,
		fmt.Sprintf("Annulation de la reservation %d", id),
		actor)

	s.feed.Broadcast(events.Event{
		Type:     events.EventReservationCancelled,
		EntityID: id,
	})

	return nil
}

func (s *ReservationService) GetAll() ([]*models.Reservation, error) {
	return s.reservations.FindAll()
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	return s.reservations.FindByID(id)
}

func (s *ReservationService) GetByEmployee(employeeID uint) ([]*models.Reservation, error) {
	return s.reservations.FindByEmployee(employeeID)
}

func (s *ReservationService) GetByRoom(roomID uint) ([]*models.Reservation, error) {
	if _, err := s.rooms.FindByID(roomID); err != nil {
		return nil, err
	}
	return s.reservations.FindByRoom(roomID)
}
