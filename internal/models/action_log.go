package models

import "time"

// Action kinds recorded in the audit trail.
const (
	ActionConnexion               = "CONNEXION"
	ActionCreationEmploye         = "CREATION_EMPLOYE"
	ActionModificationEmploye     = "MODIFICATION_EMPLOYE"
	ActionSuppressionEmploye      = "SUPPRESSION_EMPLOYE"
	ActionCreationProjet          = "CREATION_PROJET"
	ActionModificationProjet      = "MODIFICATION_PROJET"
	ActionSuppressionProjet       = "SUPPRESSION_PROJET"
	ActionAjoutMembre             = "AJOUT_MEMBRE"
	ActionRetraitMembre           = "RETRAIT_MEMBRE"
	ActionCreationSalle           = "CREATION_SALLE"
	ActionModificationSalle       = "MODIFICATION_SALLE"
	ActionSuppressionSalle        = "SUPPRESSION_SALLE"
	ActionCreationRessource       = "CREATION_RESSOURCE"
	ActionModificationRessource   = "MODIFICATION_RESSOURCE"
	ActionSuppressionRessource    = "SUPPRESSION_RESSOURCE"
	ActionReservation             = "RESERVATION"
	ActionModificationReservation = "MODIFICATION_RESERVATION"
	ActionAnnulationReservation   = "ANNULATION_RESERVATION"
	ActionSignalement             = "SIGNALEMENT"
	ActionResolutionSignalement   = "RESOLUTION_SIGNALEMENT"
	ActionReinitialisationMDP     = "REINITIALISATION_MDP"
	ActionChangementMDP           = "CHANGEMENT_MDP"
)

// ActionLog is the append-only audit trail. Rows are only ever inserted.
type ActionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"not null;index" json:"action"`
	Details   string    `json:"details"`
	Author    string    `gorm:"not null" json:"auteur"`
	CreatedAt time.Time `gorm:"index" json:"date"`
}

func (ActionLog) TableName() string {
	return "journal_actions"
}
