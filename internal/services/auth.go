package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/pkg/jwt"
	"office-backend/pkg/password"
	"office-backend/pkg/sessions"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Sender is the outbound mail dependency, mockable in tests.
type Sender interface {
	SendTwoFactorCode(to, code string) error
	SendPasswordResetLink(to, token string) error
	SendTemporaryPassword(to, tempPassword string) error
}

const (
	twoFactorKeyPrefix = "2fa:"
	twoFactorValidity  = 10 * time.Minute
	// Keys outlive the validity window so an expired code can be told apart
	// from a never-issued one; redis garbage-collects afterwards.
	twoFactorKeyTTL = 30 * time.Minute
)

// twoFactorChallenge is the redis value behind a pending 2FA login.
type twoFactorChallenge struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService drives the credential state machine: credentials, one-time
// code, forced rotation, session issuance and revocation.
type AuthService struct {
	employees *repository.EmployeeRepository
	redis     *redis.Client
	signer    *jwt.Signer
	sessions  *sessions.Store
	mailer    Sender
	audit     *AuditService
	now       func() time.Time
}

func NewAuthService(
	employees *repository.EmployeeRepository,
	redisClient *redis.Client,
	signer *jwt.Signer,
	sessionStore *sessions.Store,
	mailer Sender,
	audit *AuditService,
) *AuthService {
	return &AuthService{
		employees: employees,
		redis:     redisClient,
		signer:    signer,
		sessions:  sessionStore,
		mailer:    mailer,
		audit:     audit,
		now:       time.Now,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult tells the client which step comes next.
type LoginResult struct {
	Require2FA            bool   `json:"require2fa,omitempty"`
	RequirePasswordChange bool   `json:"requirePasswordChange,omitempty"`
	Email                 string `json:"email"`
}

// Login checks credentials and account validity, then either demands a
// password change or issues a 6-digit one-time code by email. Identity and
// validity checks run before the forced-change branch on purpose: a
// deactivated account must not learn its password still matches.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	employee, err := s.employees.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if employee.ValidFrom != nil && now.Before(*employee.ValidFrom) {
		return nil, ErrAccountNotYetActive
	}
	if employee.ValidUntil != nil && now.After(*employee.ValidUntil) {
		return nil, ErrAccountExpired
	}

	if employee.CredentialState == models.CredentialMustChangePassword {
		return &LoginResult{RequirePasswordChange: true, Email: employee.Email}, nil
	}

	code, err := generateNumericCode(6)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	challenge := twoFactorChallenge{
		Code:      code,
		ExpiresAt: now.Add(twoFactorValidity),
	}
	payload, err := json.Marshal(challenge)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, twoFactorKeyPrefix+employee.Email, payload, twoFactorKeyTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.mailer.SendTwoFactorCode(employee.Email, code); err != nil {
		return nil, fmt.Errorf("failed to send code: %w", err)
	}

	return &LoginResult{Require2FA: true, Email: employee.Email}, nil
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// SessionResult carries the signed session artifact and its cookie lifetime.
type SessionResult struct {
	Token    string
	MaxAge   int
	Employee *models.AuthEmployee
}

// VerifyCode redeems the one-time code. The code is deleted on first
// successful use; a second attempt with the same code fails.
func (s *AuthService) VerifyCode(ctx context.Context, req *VerifyCodeRequest) (*SessionResult, error) {
	key := twoFactorKeyPrefix + req.Email

	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	var challenge twoFactorChallenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, ErrInvalidCode
	}

	if s.now().After(challenge.ExpiresAt) {
		s.redis.Del(ctx, key)
		return nil, ErrCodeExpired
	}
	if challenge.Code != req.Code {
		return nil, ErrInvalidCode
	}

	// Single use.
	s.redis.Del(ctx, key)

	employee, err := s.employees.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCode
	}

	if err := s.employees.UpdateLastLogin(employee.ID); err != nil {
		return nil, err
	}

	token, jti, err := s.signer.Issue(employee.ID, employee.LastName, employee.FirstName, employee.Role, employee.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	entry := sessions.Entry{
		EmployeeID: employee.ID,
		Email:      employee.Email,
		Role:       employee.Role,
		IssuedAt:   s.now(),
	}
	if err := s.sessions.Register(ctx, jti, entry); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	s.audit.Record(models.ActionConnexion,
		fmt.Sprintf("Connexion de %s %s", employee.FirstName, employee.LastName),
		employee.Email)

	return &SessionResult{
		Token:    token,
		MaxAge:   int(s.signer.TTL().Seconds()),
		Employee: employee.AuthView(),
	}, nil
}

type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ForcedPasswordReset rotates a password flagged for mandatory change and
// returns the account to the normal login path. No session is issued: the
// employee logs in again and goes through 2FA with the new password.
func (s *AuthService) ForcedPasswordReset(ctx context.Context, req *UpdatePasswordRequest) error {
	employee, err := s.employees.FindByEmail(req.Email)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if err := password.Validate(req.NewPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employees.UpdatePassword(employee.ID, string(hash), models.CredentialActive); err != nil {
		return err
	}

	s.audit.Record(models.ActionChangementMDP,
		fmt.Sprintf("Changement de mot de passe obligatoire effectue pour %s", employee.Email),
		employee.Email)

	return nil
}

// Logout revokes the session; unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, jti)
}

// LogoutToken revokes the session behind a raw token. Tokens that do not
// verify are ignored: the caller clears the cookie either way, so logging
// out twice, or with a stale cookie, still succeeds.
func (s *AuthService) LogoutToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil
	}
	return s.Logout(ctx, claims.ID)
}

// SessionAlive reports whether a jti is still registered.
func (s *AuthService) SessionAlive(ctx context.Context, jti string) (bool, error) {
	return s.sessions.IsLive(ctx, jti)
}

func generateNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
