package middleware

import (
	"net/http"
	"strings"

	"office-backend/pkg/jwt"
	"office-backend/pkg/sessions"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// Context keys set for downstream handlers.
const (
	CtxEmployeeID = "employee_id"
	CtxEmail      = "email"
	CtxRole       = "role"
	CtxLastName   = "nom"
	CtxFirstName  = "prenom"
	CtxSessionJTI = "session_jti"
)

// Session authenticates the request from the session cookie (or a Bearer
// header for non-browser clients). The token must carry a valid signature
// AND its jti must still be registered server-side, so logout takes effect
// immediately even though the cookie itself has not expired.
func Session(signer *jwt.Signer, store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := SessionToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification requise"})
			c.Abort()
			return
		}

		claims, err := signer.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session invalide ou expiree"})
			c.Abort()
			return
		}

		live, err := store.IsLive(c.Request.Context(), claims.ID)
		if err != nil || !live {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session invalide ou expiree"})
			c.Abort()
			return
		}

		c.Set(CtxEmployeeID, claims.EmployeeID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxLastName, claims.LastName)
		c.Set(CtxFirstName, claims.FirstName)
		c.Set(CtxSessionJTI, claims.ID)
		c.Next()
	}
}

// SessionToken returns the raw session token from the cookie or the
// Authorization header, empty when the request carries neither.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// CurrentEmployeeID returns the authenticated employee's id.
func CurrentEmployeeID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxEmployeeID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentActor returns the audit-trail author label for the request.
func CurrentActor(c *gin.Context) string {
	return c.GetString(CtxEmail)
}
