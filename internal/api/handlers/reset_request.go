package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ResetRequestHandler serves the admin-mediated reset queue: employees who
// cannot use the email flow file a ticket, an admin approves or rejects it.
type ResetRequestHandler struct {
	service   *services.ResetService
	validator *validator.Validate
}

func NewResetRequestHandler(service *services.ResetService) *ResetRequestHandler {
	return &ResetRequestHandler{service: service, validator: validator.New()}
}

type queueResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Queue files a reset ticket. Unauthenticated: the requester is locked out.
// Like the email flow, the response never reveals whether the account exists.
func (h *ResetRequestHandler) Queue(c *gin.Context) {
	var req queueResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.service.QueueRequest(req.Email); err != nil {
		serviceError(c, "Echec de la demande", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Demande enregistree", nil)
}

func (h *ResetRequestHandler) Pending(c *gin.Context) {
	requests, err := h.service.PendingRequests()
	if err != nil {
		serviceError(c, "Echec de la recuperation des demandes", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Demandes recuperees", requests)
}

// Approve generates a temporary password, emails it to the employee and
// closes the ticket.
func (h *ResetRequestHandler) Approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ApproveRequest(c.Request.Context(), id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de l'approbation de la demande", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Demande approuvee", nil)
}

func (h *ResetRequestHandler) Reject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RejectRequest(id); err != nil {
		serviceError(c, "Echec du rejet de la demande", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Demande rejetee", nil)
}

// AdminReset resets an employee's password directly, outside the queue.
func (h *ResetRequestHandler) AdminReset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.AdminReset(c.Request.Context(), id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de la reinitialisation", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mot de passe temporaire envoye", nil)
}
