package handlers

import (
	"net/http"

	appredis "office-backend/pkg/redis"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *appredis.Client
}

func NewHealthHandler(db *gorm.DB, redis *appredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Check reports the state of the backing stores. The endpoint answers 200
// as long as the database is reachable; a degraded redis is reported but
// does not fail the probe since sessions simply stop being issued.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "up"
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	status := gin.H{
		"database": dbStatus,
		"redis":    h.redis.HealthCheck(),
	}

	if dbStatus == "down" {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Service indisponible", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service operationnel", status)
}
