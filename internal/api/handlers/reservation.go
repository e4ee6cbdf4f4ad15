package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReservationHandler struct {
	service   *services.ReservationService
	validator *validator.Validate
}

func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service, validator: validator.New()}
}

func (h *ReservationHandler) GetAll(c *gin.Context) {
	reservations, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des reservations", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Reservations recuperees", reservations)
}

func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Reservation introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Reservation recuperee", reservation)
}

// Mine lists the authenticated employee's own reservations.
func (h *ReservationHandler) Mine(c *gin.Context) {
	employeeID, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Non authentifie", nil)
		return
	}

	reservations, err := h.service.GetByEmployee(employeeID)
	if err != nil {
		serviceError(c, "Echec de la recuperation des reservations", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Reservations recuperees", reservations)
}

// Create books a slot. A conflicting live reservation on the same room
// yields 409 and leaves the planning untouched.
func (h *ReservationHandler) Create(c *gin.Context) {
	employeeID, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Non authentifie", nil)
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	reservation, err := h.service.Book(&req, employeeID, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la reservation", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Reservation creee", reservation)
}

// Update moves or re-purposes a reservation. The overlap check runs again
// against every other live reservation of the target room.
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	reservation, err := h.service.Update(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la modification de la reservation", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reservation modifiee", reservation)
}

// Cancel marks the reservation ANNULEE. The row stays, the slot frees up.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de l'annulation de la reservation", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reservation annulee", nil)
}
