package models

import "time"

// Reservation statuses
const (
	ReservationConfirmee = "CONFIRMEE"
	ReservationAnnulee   = "ANNULEE"
)

// Reservation books a room for a project over [StartTime, EndTime). No two
// non-cancelled reservations of the same room may overlap on that half-open
// interval.
type Reservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomID      uint      `gorm:"not null;index" json:"id_salle"`
	Room        *Room     `gorm:"foreignKey:RoomID" json:"salle,omitempty"`
	ProjectID   uint      `gorm:"not null;index" json:"id_projet"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"projet,omitempty"`
	StartTime   time.Time `gorm:"not null;index" json:"date_debut"`
	EndTime     time.Time `gorm:"not null" json:"date_fin"`
	Purpose     string    `json:"objet"`
	Status      string    `gorm:"not null;default:CONFIRMEE" json:"statut"`
	CreatedByID uint      `json:"id_employe"`
	CreatedBy   *Employee `gorm:"foreignKey:CreatedByID" json:"employe,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Overlaps reports whether [StartTime, EndTime) intersects [start, end).
// Touching boundaries do not overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
