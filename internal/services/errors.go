package services

import "errors"

// Auth errors
var (
	ErrInvalidCredentials  = errors.New("identifiants invalides")
	ErrAccountNotYetActive = errors.New("compte pas encore actif")
	ErrAccountExpired      = errors.New("compte expire")
	ErrInvalidCode         = errors.New("code invalide")
	ErrCodeExpired         = errors.New("code expire")
	ErrInvalidToken        = errors.New("lien de reinitialisation invalide")
	ErrTokenExpired        = errors.New("lien de reinitialisation expire")
)

// Validation errors
var (
	ErrInvalidInput = errors.New("champs requis manquants ou invalides")
	ErrInvalidRange = errors.New("la date de fin doit etre posterieure a la date de debut")
)

// Conflict errors
var (
	ErrEmailTaken      = errors.New("un compte existe deja avec cet email")
	ErrRoomNameTaken   = errors.New("une salle existe deja avec ce nom")
	ErrSerialTaken     = errors.New("une ressource existe deja avec ce numero de serie")
	ErrAlreadyMember   = errors.New("cet employe fait deja partie du projet")
	ErrSlotUnavailable = errors.New("la salle est deja reservee sur ce creneau")
)
