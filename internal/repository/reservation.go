package repository

import (
	"errors"
	"strings"
	"time"

	"office-backend/internal/models"

	"gorm.io/gorm"
)

// ErrSlotTaken is returned when a booking would overlap a confirmed
// reservation of the same room.
var ErrSlotTaken = errors.New("room already booked on this slot")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateIfFree inserts the reservation only when no non-cancelled reservation
// of the same room overlaps [StartTime, EndTime). Check and insert run in one
// transaction; on postgres the reservations_no_overlap exclusion constraint
// backs the check up, so a concurrent insert slipping past the count still
// fails with ErrSlotTaken instead of double-booking.
func (r *ReservationRepository) CreateIfFree(reservation *models.Reservation) (*models.Reservation, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countOverlapping(tx, reservation.RoomID,
			reservation.StartTime, reservation.EndTime, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Create(reservation).Error
	})
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return reservation, nil
}

// UpdateIfFree re-validates the overlap check against everything except the
// reservation itself, then saves.
func (r *ReservationRepository) UpdateIfFree(reservation *models.Reservation) (*models.Reservation, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countOverlapping(tx, reservation.RoomID,
			reservation.StartTime, reservation.EndTime, reservation.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Save(reservation).Error
	})
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return reservation, nil
}

// countOverlapping applies the half-open interval test: an existing booking
// [s, e) conflicts with [start, end) iff s < end AND e > start. Cancelled
// rows never conflict. excludeID skips the row being edited.
func countOverlapping(tx *gorm.DB, roomID uint, start, end time.Time, excludeID uint) (int64, error) {
	var count int64
	query := tx.Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", models.ReservationAnnulee).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

func isExclusionViolation(err error) bool {
	// pgx surfaces SQLSTATE 23P01 (exclusion_violation) in the error text.
	return err != nil && (strings.Contains(err.Error(), "23P01") ||
		strings.Contains(err.Error(), "reservations_no_overlap"))
}

func (r *ReservationRepository) FindByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Preload("Room").Preload("Project").First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) FindAll() ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.Preload("Room").Preload("Project").
		Order("start_time DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) FindByRoom(roomID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.Where("room_id = ?", roomID).
		Order("start_time").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) FindByEmployee(employeeID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.Preload("Room").Preload("Project").
		Where("created_by_id = ?", employeeID).
		Order("start_time DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// Cancel flips the reservation to ANNULEE. Cancelled rows keep their history
// but stop counting against the room's availability.
func (r *ReservationRepository) Cancel(id uint) error {
	result := r.db.Model(&models.Reservation{}).
		Where("id = ? AND status <> ?", id, models.ReservationAnnulee).
		Update("status", models.ReservationAnnulee)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
