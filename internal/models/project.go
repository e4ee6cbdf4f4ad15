package models

import "time"

// Project statuses
const (
	ProjectEnCours   = "EN_COURS"
	ProjectTermine   = "TERMINE"
	ProjectEnAttente = "EN_ATTENTE"
	ProjectAnnule    = "ANNULE"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"nom" validate:"required,min=1,max=150"`
	Description string    `json:"description"`
	StartDate   time.Time `gorm:"not null" json:"date_debut"`
	EndDate     time.Time `gorm:"not null" json:"date_fin"`
	Status      string    `gorm:"not null;default:EN_ATTENTE" json:"statut" validate:"omitempty,oneof=EN_COURS TERMINE EN_ATTENTE ANNULE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projets"
}

// Participation links an employee to a project with a role label. The
// (employee, project) pair is unique: re-adding a member is a conflict.
type Participation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_participation_pair" json:"id_employe" validate:"required"`
	ProjectID  uint      `gorm:"not null;uniqueIndex:idx_participation_pair" json:"id_projet" validate:"required"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employe,omitempty"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"projet,omitempty"`
	RoleLabel  string    `json:"role_projet"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Participation) TableName() string {
	return "participations"
}
