package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type IncidentHandler struct {
	service   *services.IncidentService
	validator *validator.Validate
}

func NewIncidentHandler(service *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service, validator: validator.New()}
}

func (h *IncidentHandler) GetAll(c *gin.Context) {
	// ?status=pending narrows to unresolved reports.
	if c.Query("status") == "pending" {
		incidents, err := h.service.GetPending()
		if err != nil {
			serviceError(c, "Echec de la recuperation des signalements", err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "Signalements recuperes", incidents)
		return
	}

	incidents, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des signalements", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Signalements recuperes", incidents)
}

func (h *IncidentHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	incident, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Signalement introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Signalement recupere", incident)
}

// Report files an incident against a resource on behalf of the
// authenticated employee.
func (h *IncidentHandler) Report(c *gin.Context) {
	employeeID, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Non authentifie", nil)
		return
	}

	var req services.ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	incident, err := h.service.Report(&req, employeeID, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec du signalement", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Signalement enregistre", incident)
}

// Resolve closes an incident, optionally flipping the resource back to a
// usable state in the same call.
func (h *IncidentHandler) Resolve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.ResolveIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	incident, err := h.service.Resolve(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la resolution du signalement", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Signalement resolu", incident)
}
