package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"office-backend/internal/api/middleware"
	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/internal/services"
	"office-backend/pkg/jwt"
	"office-backend/pkg/password"
	"office-backend/pkg/sessions"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mailerStub records outbound mail instead of sending it.
type mailerStub struct {
	mock.Mock
}

func (m *mailerStub) SendTwoFactorCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *mailerStub) SendPasswordResetLink(to, token string) error {
	args := m.Called(to, token)
	return args.Error(0)
}

func (m *mailerStub) SendTemporaryPassword(to, tempPassword string) error {
	args := m.Called(to, tempPassword)
	return args.Error(0)
}

type authEnv struct {
	router *gin.Engine
	db     *gorm.DB
	redis  *redis.Client
	mailer *mailerStub
}

func setupAuthEnv(t *testing.T) *authEnv {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.ResetRequest{}, &models.ActionLog{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	employees := repository.NewEmployeeRepository(db)
	audit := services.NewAuditService(repository.NewActionLogRepository(db))
	signer := jwt.NewSigner("test-secret", time.Hour)
	store := sessions.NewStore(redisClient, time.Hour)
	mailer := new(mailerStub)

	authService := services.NewAuthService(employees, redisClient, signer, store, mailer, audit)
	resetService := services.NewResetService(employees, repository.NewResetRequestRepository(db), redisClient, mailer, audit)
	handler := NewAuthHandler(authService, resetService)

	session := middleware.Session(signer, store)

	router := gin.New()
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/verify-2fa", handler.Verify2FA)
		auth.POST("/update-password", handler.UpdatePassword)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password", handler.ResetPassword)
		auth.POST("/logout", handler.Logout)
		auth.GET("/profile", session, handler.Profile)
	}

	return &authEnv{router: router, db: db, redis: redisClient, mailer: mailer}
}

func (e *authEnv) seedEmployee(t *testing.T, email, plain, role, state string) *models.Employee {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	employee := &models.Employee{
		LastName: "Durand", FirstName: "Claire",
		Email: email, Password: string(hash),
		Role: role, CredentialState: state,
	}
	require.NoError(t, e.db.Create(employee).Error)
	return employee
}

func (e *authEnv) post(path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *authEnv) storedCode(t *testing.T, email string) string {
	payload, err := e.redis.Get(context.Background(), "2fa:"+email).Bytes()
	require.NoError(t, err)
	var challenge struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(payload, &challenge))
	return challenge.Code
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginThenVerifyOpensSession(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleAdmin, models.CredentialActive)
	env.mailer.On("SendTwoFactorCode", "claire@entreprise.fr", mock.AnythingOfType("string")).Return(nil)

	w := env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Bon.Mot2Passe!"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "require2fa")

	code := env.storedCode(t, "claire@entreprise.fr")
	w = env.post("/api/v1/auth/verify-2fa", gin.H{"email": "claire@entreprise.fr", "code": code})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// The cookie opens protected endpoints.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.AddCookie(cookie)
	profile := httptest.NewRecorder()
	env.router.ServeHTTP(profile, req)
	assert.Equal(t, http.StatusOK, profile.Code)
	assert.Contains(t, profile.Body.String(), "claire@entreprise.fr")
}

func TestLoginBadCredentials(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)

	w := env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "faux"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMustChangePassword(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "nouveau@entreprise.fr", "MotTemporaire1!", models.RoleEmploye, models.CredentialMustChangePassword)

	w := env.post("/api/v1/auth/login", gin.H{"email": "nouveau@entreprise.fr", "password": "MotTemporaire1!"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "requirePasswordChange")
}

func TestVerifyWrongCode(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	env.mailer.On("SendTwoFactorCode", mock.Anything, mock.Anything).Return(nil)

	w := env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Bon.Mot2Passe!"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.post("/api/v1/auth/verify-2fa", gin.H{"email": "claire@entreprise.fr", "code": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesCookie(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	env.mailer.On("SendTwoFactorCode", mock.Anything, mock.Anything).Return(nil)

	env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Bon.Mot2Passe!"})
	code := env.storedCode(t, "claire@entreprise.fr")
	w := env.post("/api/v1/auth/verify-2fa", gin.H{"email": "claire@entreprise.fr", "code": code})
	cookie := sessionCookie(t, w)

	w = env.post("/api/v1/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// The same cookie no longer works.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.AddCookie(cookie)
	profile := httptest.NewRecorder()
	env.router.ServeHTTP(profile, req)
	assert.Equal(t, http.StatusUnauthorized, profile.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	env.mailer.On("SendTwoFactorCode", mock.Anything, mock.Anything).Return(nil)

	env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Bon.Mot2Passe!"})
	code := env.storedCode(t, "claire@entreprise.fr")
	w := env.post("/api/v1/auth/verify-2fa", gin.H{"email": "claire@entreprise.fr", "code": code})
	cookie := sessionCookie(t, w)

	// Logging out twice with the same cookie succeeds both times.
	assert.Equal(t, http.StatusOK, env.post("/api/v1/auth/logout", nil, cookie).Code)
	w = env.post("/api/v1/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)

	// So does logging out with no session at all.
	assert.Equal(t, http.StatusOK, env.post("/api/v1/auth/logout", nil).Code)
}

func TestForgotPasswordUniformResponse(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	env.mailer.On("SendPasswordResetLink", "claire@entreprise.fr", mock.AnythingOfType("string")).Return(nil)

	known := env.post("/api/v1/auth/forgot-password", gin.H{"email": "claire@entreprise.fr"})
	unknown := env.post("/api/v1/auth/forgot-password", gin.H{"email": "personne@entreprise.fr"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestResetPasswordFlow(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Ancien.Secret1!", models.RoleEmploye, models.CredentialActive)

	var token string
	env.mailer.On("SendPasswordResetLink", "claire@entreprise.fr", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { token = args.String(1) }).
		Return(nil)

	require.Equal(t, http.StatusOK, env.post("/api/v1/auth/forgot-password", gin.H{"email": "claire@entreprise.fr"}).Code)
	require.NotEmpty(t, token)

	w := env.post("/api/v1/auth/reset-password", gin.H{"token": token, "password": "Nouveau.Secret42"})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password is gone, new one works.
	w = env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Ancien.Secret1!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.mailer.On("SendTwoFactorCode", mock.Anything, mock.Anything).Return(nil)
	w = env.post("/api/v1/auth/login", gin.H{"email": "claire@entreprise.fr", "password": "Nouveau.Secret42"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "claire@entreprise.fr", "Ancien.Secret1!", models.RoleEmploye, models.CredentialActive)

	var token string
	env.mailer.On("SendPasswordResetLink", "claire@entreprise.fr", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { token = args.String(1) }).
		Return(nil)

	require.Equal(t, http.StatusOK, env.post("/api/v1/auth/forgot-password", gin.H{"email": "claire@entreprise.fr"}).Code)
	require.NotEmpty(t, token)

	// A password below policy is a client error carrying the failing rule.
	w := env.post("/api/v1/auth/reset-password", gin.H{"token": token, "password": "court"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), password.ErrTooShort.Error())

	// The token survives the rejected attempt.
	w = env.post("/api/v1/auth/reset-password", gin.H{"token": token, "password": "Nouveau.Secret42"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	env := setupAuthEnv(t)
	env.seedEmployee(t, "nouveau@entreprise.fr", "MotTemporaire1!", models.RoleEmploye, models.CredentialMustChangePassword)

	w := env.post("/api/v1/auth/update-password", gin.H{
		"email":       "nouveau@entreprise.fr",
		"oldPassword": "MotTemporaire1!",
		"newPassword": "court",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.post("/api/v1/auth/update-password", gin.H{
		"email":       "nouveau@entreprise.fr",
		"oldPassword": "MotTemporaire1!",
		"newPassword": "Nouveau.Secret42",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The account is back on the normal path.
	env.mailer.On("SendTwoFactorCode", mock.Anything, mock.Anything).Return(nil)
	w = env.post("/api/v1/auth/login", gin.H{"email": "nouveau@entreprise.fr", "password": "Nouveau.Secret42"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "require2fa")
}
