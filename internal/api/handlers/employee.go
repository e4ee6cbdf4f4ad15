package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type EmployeeHandler struct {
	service   *services.EmployeeService
	validator *validator.Validate
}

func NewEmployeeHandler(service *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service, validator: validator.New()}
}

func (h *EmployeeHandler) GetAll(c *gin.Context) {
	employees, err := h.service.GetAll()
	if err != nil {
		serviceError(c, "Echec de la recuperation des employes", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Employes recuperes", employees)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.service.GetByID(id)
	if err != nil {
		serviceError(c, "Employe introuvable", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Employe recupere", employee)
}

// Create registers a new account. Passwords are never supplied here: a
// temporary one is generated and sent to the employee by email.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	employee, err := h.service.Create(&req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la creation de l'employe", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Employe cree", employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	employee, err := h.service.Update(id, &req, middleware.CurrentActor(c))
	if err != nil {
		serviceError(c, "Echec de la mise a jour de l'employe", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employe mis a jour", employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id, middleware.CurrentActor(c)); err != nil {
		serviceError(c, "Echec de la suppression de l'employe", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employe supprime", nil)
}
