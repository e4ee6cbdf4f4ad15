package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RoomHandler struct {
	service            *services.RoomService
	reservationService *services.ReservationService
	validator          *validator.Validate
}

func NewRoomHandler(service *services.RoomService, reservationService *services.ReservationService) *RoomHandler {
	return &RoomHandler{
		service:            service,
		reservationService: reservationService,
		validator:          validator.New(),
	}
}

func (h *RoomHandler) GetAll(c *gin.Context) {
	rooms, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des salles", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Salles recuperees", rooms)
}

func (h *RoomHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	room, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Salle introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Salle recuperee", room)
}

// Reservations lists a room's planning, cancelled slots included so the
// client can render history.
func (h *RoomHandler) Reservations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetByID(id); err != nil {
		serviceError(c, "Salle introuvable", err)
		return
	}

	reservations, err := h.reservationService.GetByRoom(id)
	if err != nil {
		serviceError(c, "Echec de la recuperation du planning", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Planning recupere", reservations)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	room, err := h.service.Create(&req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la creation de la salle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Salle creee", room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	room, err := h.service.Update(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la mise a jour de la salle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Salle mise a jour", room)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de la suppression de la salle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Salle supprimee", nil)
}
