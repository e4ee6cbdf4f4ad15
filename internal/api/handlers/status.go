package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"office-backend/internal/repository"
	"office-backend/internal/services"
	"office-backend/pkg/password"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service and repository errors onto the HTTP taxonomy:
// validation 400, auth 401, account validity 403, not-found 404, conflicts
// and blocked deletes 409, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrCodeExpired),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenExpired),
		password.IsPolicyViolation(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountNotYetActive),
		errors.Is(err, services.ErrAccountExpired):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRoomNameTaken),
		errors.Is(err, services.ErrSerialTaken),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrReferenced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// serviceError renders a failed service call. Internal errors are logged
// server-side and the client only gets a generic message.
func serviceError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.ErrorResponse(c, status, "Erreur interne du serveur", nil)
		return
	}
	utils.ErrorResponse(c, status, message, err)
}

// idParam parses a numeric route parameter, answering 400 itself when the
// value is unusable.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Identifiant invalide", nil)
		return 0, false
	}
	return uint(id), true
}
