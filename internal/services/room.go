package services

import (
	"fmt"

	"office-backend/internal/models"
	"office-backend/internal/repository"
)

type RoomService struct {
	rooms *repository.RoomRepository
	audit *AuditService
}

func NewRoomService(rooms *repository.RoomRepository, audit *AuditService) *RoomService {
	return &RoomService{rooms: rooms, audit: audit}
}

type CreateRoomRequest struct {
	Name      string `json:"nom" validate:"required,min=1,max=100"`
	Capacity  int    `json:"capacite" validate:"required,min=1"`
	Equipment string `json:"equipements"`
	Location  string `json:"localisation"`
}

type UpdateRoomRequest struct {
	Name      string `json:"nom,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity  int    `json:"capacite,omitempty" validate:"omitempty,min=1"`
	Equipment string `json:"equipements,omitempty"`
	Location  string `json:"localisation,omitempty"`
}

func (s *RoomService) GetAll() ([]*models.Room, error) {
	return s.rooms.FindAll()
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	return s.rooms.FindByID(id)
}

func (s *RoomService) Create(req *CreateRoomRequest, actor string) (*models.Room, error) {
	if existing, _ := s.rooms.FindByName(req.Name); existing != nil {
		return nil, ErrRoomNameTaken
	}

	room := &models.Room{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		Location:  req.Location,
	}

	created, err := s.rooms.Create(room)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionCreationSalle,
		fmt.Sprintf("Creation de la salle %q", created.Name),
		actor)

	return created, nil
}

func (s *RoomService) Update(id uint, req *UpdateRoomRequest, actor string) (*models.Room, error) {
	room, err := s.rooms.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != room.Name {
		if existing, _ := s.rooms.FindByName(req.Name); existing != nil {
			return nil, ErrRoomNameTaken
		}
		room.Name = req.Name
	}
	if req.Capacity > 0 {
		room.Capacity = req.Capacity
	}
	if req.Equipment != "" {
		room.Equipment = req.Equipment
	}
	if req.Location != "" {
		room.Location = req.Location
	}

	updated, err := s.rooms.Update(room)
	if err != nil {
		return nil, err
	}

	s.audit.Record(models.ActionModificationSalle,
		fmt.Sprintf("Modification de la salle %q", updated.Name),
		actor)

	return updated, nil
}

func (s *RoomService) Delete(id uint, actor string) error {
	room, err := s.rooms.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.rooms.Delete(id); err != nil {
		return err
	}

	s.audit.Record(models.ActionSuppressionSalle,
		fmt.Sprintf("Suppression de la salle %q", room.Name),
		actor)

	return nil
}
