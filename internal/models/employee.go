package models

import (
	"time"
)

// Employee roles
const (
	RoleAdmin        = "ADMIN"
	RoleChefDeProjet = "CHEF_DE_PROJET"
	RoleRH           = "RH"
	RoleDeveloppeur  = "DEVELOPPEUR"
	RoleStagiaire    = "STAGIAIRE"
	RoleEmploye      = "EMPLOYE"
)

// Credential states. MUST_CHANGE_PASSWORD blocks the 2FA login path until the
// employee rotates the password handed out by an admin.
const (
	CredentialActive             = "ACTIVE"
	CredentialMustChangePassword = "MUST_CHANGE_PASSWORD"
)

type Employee struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	LastName        string     `gorm:"index;not null" json:"nom" validate:"required,min=1,max=100"`
	FirstName       string     `gorm:"not null" json:"prenom" validate:"required,min=1,max=100"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password        string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"not null;default:EMPLOYE" json:"role" validate:"required,oneof=ADMIN CHEF_DE_PROJET RH DEVELOPPEUR STAGIAIRE EMPLOYE"`
	CredentialState string     `gorm:"not null;default:ACTIVE" json:"-"`
	ValidFrom       *time.Time `json:"date_debut_validite,omitempty"`
	ValidUntil      *time.Time `json:"date_fin_validite,omitempty"`
	LastLogin       *time.Time `json:"dernier_login,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employes"
}

// AuthEmployee is the session-facing view of an employee, echoed to the
// client after 2FA and embedded in the session claims.
type AuthEmployee struct {
	ID        uint   `json:"id_employe"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

func (e *Employee) AuthView() *AuthEmployee {
	return &AuthEmployee{
		ID:        e.ID,
		LastName:  e.LastName,
		FirstName: e.FirstName,
		Role:      e.Role,
		Email:     e.Email,
	}
}
