package models

import "time"

// Resource types
const (
	ResourceOrdinateur = "ORDINATEUR"
	ResourceTelephone  = "TELEPHONE"
	ResourceVehicule   = "VEHICULE"
	ResourceImprimante = "IMPRIMANTE"
	ResourceAutre      = "AUTRE"
)

// Resource states
const (
	ResourceDisponible    = "DISPONIBLE"
	ResourceEnUtilisation = "EN_UTILISATION"
	ResourceEnMaintenance = "EN_MAINTENANCE"
	ResourceHorsService   = "HORS_SERVICE"
)

type Resource struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;index" json:"nom" validate:"required,min=1,max=150"`
	Type         string    `gorm:"not null" json:"type" validate:"required,oneof=ORDINATEUR TELEPHONE VEHICULE IMPRIMANTE AUTRE"`
	State        string    `gorm:"not null;default:DISPONIBLE" json:"etat" validate:"omitempty,oneof=DISPONIBLE EN_UTILISATION EN_MAINTENANCE HORS_SERVICE"`
	SerialNumber *string   `gorm:"uniqueIndex" json:"numero_serie,omitempty"`
	BorrowerID   *uint     `json:"id_emprunteur,omitempty"`
	Borrower     *Employee `gorm:"foreignKey:BorrowerID" json:"emprunteur,omitempty"`
	Location     string    `json:"localisation"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Resource) TableName() string {
	return "ressources"
}
