package repository

import (
	"errors"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *models.Room) (*models.Room, error) {
	if err := r.db.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepository) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByName(name string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("name = ?", name).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindAll() ([]*models.Room, error) {
	var rooms []*models.Room
	if err := r.db.Order("name").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Update(room *models.Room) (*models.Room, error) {
	if err := r.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepository) Delete(id uint) error {
	var count int64
	err := r.db.Model(&models.Reservation{}).
		Where("room_id = ? AND status <> ?", id, models.ReservationAnnulee).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	result := r.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
