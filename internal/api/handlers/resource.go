package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ResourceHandler struct {
	service   *services.ResourceService
	validator *validator.Validate
}

func NewResourceHandler(service *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service, validator: validator.New()}
}

func (h *ResourceHandler) GetAll(c *gin.Context) {
	resources, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des ressources", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ressources recuperees", resources)
}

func (h *ResourceHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	resource, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Ressource introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ressource recuperee", resource)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req services.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	resource, err := h.service.Create(&req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la creation de la ressource", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Ressource creee", resource)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	resource, err := h.service.Update(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la mise a jour de la ressource", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ressource mise a jour", resource)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de la suppression de la ressource", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ressource supprimee", nil)
}
