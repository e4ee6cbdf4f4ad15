package handlers

import (
	"net/http"
	"strconv"

	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ActionLogHandler struct {
	service *services.AuditService
}

func NewActionLogHandler(service *services.AuditService) *ActionLogHandler {
	return &ActionLogHandler{service: service}
}

// GetAll returns the action log newest-first, paginated via ?page= and
// ?limit=.
func (h *ActionLogHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, total, err := h.service.Page(page, limit)
	if err != nil {
		serviceError(c, "Echec de la recuperation du journal", err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	utils.PaginatedResponse(c, http.StatusOK, "Journal recupere", entries, utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
