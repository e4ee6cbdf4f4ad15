package models

import "time"

// Reset request statuses
const (
	ResetEnAttente = "EN_ATTENTE"
)

// ResetRequest is a standing "employee asked for a password reset" ticket in
// the admin queue. It carries no token; approving it triggers an admin reset
// (temporary password emailed, forced change), rejecting it just deletes it.
// Self-service reset tokens live in redis, not here.
type ResetRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;index" json:"id_employe"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employe,omitempty"`
	Status     string    `gorm:"not null;default:EN_ATTENTE" json:"statut"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ResetRequest) TableName() string {
	return "demandes_reset"
}
