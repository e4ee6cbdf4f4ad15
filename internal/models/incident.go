package models

import "time"

// Incident statuses
const (
	IncidentEnAttente = "EN_ATTENTE"
	IncidentResolu    = "RESOLU"
)

// Incident is a problem report filed by an employee against a resource.
type Incident struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EmployeeID  uint       `gorm:"not null;index" json:"id_employe"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID" json:"employe,omitempty"`
	ResourceID  uint       `gorm:"not null;index" json:"id_ressource"`
	Resource    *Resource  `gorm:"foreignKey:ResourceID" json:"ressource,omitempty"`
	Description string     `gorm:"not null" json:"description" validate:"required,min=1,max=2000"`
	Status      string     `gorm:"not null;default:EN_ATTENTE" json:"statut"`
	ResolvedAt  *time.Time `json:"date_resolution,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Incident) TableName() string {
	return "signalements"
}
