package handlers

import (
	"net/http"

	"office-backend/internal/api/middleware"
	"office-backend/internal/services"
	"office-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.ResetService
	validator    *validator.Validate
}

func NewAuthHandler(authService *services.AuthService, resetService *services.ResetService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		validator:    validator.New(),
	}
}

// Login handles the credential step. Depending on the account's credential
// state the response demands either a 2FA code or a password change.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, "Echec de l'authentification", err)
		return
	}

	if result.RequirePasswordChange {
		utils.SuccessResponse(c, http.StatusOK, "Changement de mot de passe requis", result)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Code de verification envoye", result)
}

// Verify2FA redeems the one-time code and opens the session.
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req services.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	session, err := h.authService.VerifyCode(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, "Echec de la verification", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, session.MaxAge, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "Connexion reussie", session.Employee)
}

// UpdatePassword handles the forced-rotation step. On success the client
// must log in again: the full 2FA path applies to the new password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req services.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.authService.ForcedPasswordReset(c.Request.Context(), &req); err != nil {
		// Policy violations read as 400 with the failing rule's message.
		serviceError(c, "Echec du changement de mot de passe", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mot de passe mis a jour, veuillez vous reconnecter", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword starts the self-service reset flow. The response is the
// same whether or not the email matches an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		serviceError(c, "Echec de la demande", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK,
		"Si un compte existe pour cet email, un lien de reinitialisation a ete envoye", nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPassword redeems a reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Format de requete invalide", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.resetService.RedeemReset(c.Request.Context(), req.Token, req.Password); err != nil {
		// Invalid/expired token and weak password all read as 400 here.
		serviceError(c, "Echec de la reinitialisation", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mot de passe reinitialise", nil)
}

// Logout clears the cookie and revokes the server-side session. It is
// idempotent: repeating it, or calling it with a stale or missing cookie,
// still clears the cookie and answers 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.LogoutToken(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		serviceError(c, "Echec de la deconnexion", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "Deconnexion reussie", nil)
}

// Profile echoes the authenticated employee from the session claims.
func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := middleware.CurrentEmployeeID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Non authentifie", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profil", gin.H{
		"id_employe": id,
		"nom":        c.GetString(middleware.CtxLastName),
		"prenom":     c.GetString(middleware.CtxFirstName),
		"role":       c.GetString(middleware.CtxRole),
		"email":      c.GetString(middleware.CtxEmail),
	})
}
