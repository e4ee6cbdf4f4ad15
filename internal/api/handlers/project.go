package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ProjectHandler struct {
	service   *services.ProjectService
	validator *validator.Validate
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service, validator: validator.New()}
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des projets", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Projets recuperes", projects)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	project, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Projet introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Projet recupere", project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	project, err := h.service.Create(&req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la creation du projet", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Projet cree", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	project, err := h.service.Update(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la mise a jour du projet", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Projet mis a jour", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de la suppression du projet", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Projet supprime", nil)
}

// Team lists the project's members with their assigned roles.
func (h *ProjectHandler) Team(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	team, err := h.service.Team(id)
	if err != nil {
		serviceError(c, "Echec de la recuperation de l'equipe", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Equipe recuperee", team)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	participation, err := h.service.AddMember(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de l'ajout du membre", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Membre ajoute", participation)
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	employeeID, ok := idParam(c, "employeeId")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(projectID, employeeID, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec du retrait du membre", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Membre retire", nil)
}
