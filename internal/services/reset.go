package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/pkg/password"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenPrefix   = "pwreset:"
	resetEmployeeIndex = "pwreset:emp:"
	resetValidity      = time.Hour
	resetKeyTTL        = 2 * time.Hour
)

type resetTicket struct {
	EmployeeID uint      `json:"employeeId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ResetService owns both password-recovery paths: the self-service token
// flow (redis-backed single-use tokens) and the admin queue (temporary
// password + forced change).
type ResetService struct {
	employees *repository.EmployeeRepository
	requests  *repository.ResetRequestRepository
	redis     *redis.Client
	mailer    Sender
	audit     *AuditService
	now       func() time.Time
}

func NewResetService(
	employees *repository.EmployeeRepository,
	requests *repository.ResetRequestRepository,
	redisClient *redis.Client,
	mailer Sender,
	audit *AuditService,
) *ResetService {
	return &ResetService{
		employees: employees,
		requests:  requests,
		redis:     redisClient,
		mailer:    mailer,
		audit:     audit,
		now:       time.Now,
	}
}

// RequestReset issues a fresh reset token and emails the link. An unknown
// email returns nil so the endpoint's response is uniform and account
// existence cannot be probed. Any previous token for the employee is purged:
// at most one token is active at a time.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	employee, err := s.employees.FindByEmail(email)
	if err != nil {
		log.Printf("Password reset requested for unknown email")
		return nil
	}

	indexKey := fmt.Sprintf("%s%d", resetEmployeeIndex, employee.ID)
	if previous, err := s.redis.Get(ctx, indexKey).Result(); err == nil && previous != "" {
		s.redis.Del(ctx, resetTokenPrefix+previous)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	ticket := resetTicket{
		EmployeeID: employee.ID,
		ExpiresAt:  s.now().Add(resetValidity),
	}
	payload, err := json.Marshal(ticket)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, resetTokenPrefix+token, payload, resetKeyTTL).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := s.redis.Set(ctx, indexKey, token, resetKeyTTL).Err(); err != nil {
		return fmt.Errorf("failed to index reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetLink(employee.Email, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// RedeemReset consumes the token and sets the new password. The token is
// deleted on success (single use) and on expiry.
func (s *ResetService) RedeemReset(ctx context.Context, token, newPassword string) error {
	key := resetTokenPrefix + token

	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidToken
		}
		return err
	}

	var ticket resetTicket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		return ErrInvalidToken
	}

	indexKey := fmt.Sprintf("%s%d", resetEmployeeIndex, ticket.EmployeeID)

	if s.now().After(ticket.ExpiresAt) {
		s.redis.Del(ctx, key, indexKey)
		return ErrTokenExpired
	}

	if err := password.Validate(newPassword); err != nil {
		return err
	}

	employee, err := s.employees.FindByID(ticket.EmployeeID)
	if err != nil {
		s.redis.Del(ctx, key, indexKey)
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employees.UpdatePassword(employee.ID, string(hash), models.CredentialActive); err != nil {
		return err
	}

	// Single use.
	s.redis.Del(ctx, key, indexKey)

	s.audit.Record(models.ActionReinitialisationMDP,
		fmt.Sprintf("Mot de passe reinitialise en libre-service pour %s", employee.Email),
		employee.Email)

	return nil
}

// AdminReset hands the employee a generated temporary password and flags the
// account for forced change. Invoked directly by an admin or as the approval
// of a queued help ticket.
func (s *ResetService) AdminReset(ctx context.Context, employeeID uint, actor string) error {
	employee, err := s.employees.FindByID(employeeID)
	if err != nil {
		return err
	}

	tempPassword, err := password.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employees.UpdatePassword(employee.ID, string(hash), models.CredentialMustChangePassword); err != nil {
		return err
	}

	if err := s.mailer.SendTemporaryPassword(employee.Email, tempPassword); err != nil {
		// The hash is already stored; surface the partial failure instead of
		// leaving the employee with a password nobody knows.
		return fmt.Errorf("password reset but email failed: %w", err)
	}

	s.audit.Record(models.ActionReinitialisationMDP,
		fmt.Sprintf("Mot de passe temporaire envoye a %s", employee.Email),
		actor)

	return nil
}

// QueueRequest files a help ticket for an admin to action later.
func (s *ResetService) QueueRequest(email string) error {
	employee, err := s.employees.FindByEmail(email)
	if err != nil {
		// Uniform behavior with RequestReset.
		return nil
	}

	_, err = s.requests.Create(&models.ResetRequest{
		EmployeeID: employee.ID,
		Status:     models.ResetEnAttente,
	})
	return err
}

// PendingRequests lists the admin queue.
func (s *ResetService) PendingRequests() ([]*models.ResetRequest, error) {
	return s.requests.FindPending()
}

// ApproveRequest performs the admin reset for a queued ticket and deletes it.
func (s *ResetService) ApproveRequest(ctx context.Context, requestID uint, actor string) error {
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return err
	}

	if err := s.AdminReset(ctx, request.EmployeeID, actor); err != nil {
		return err
	}

	return s.requests.Delete(requestID)
}

// RejectRequest deletes the ticket without touching the password.
func (s *ResetService) RejectRequest(requestID uint) error {
	return s.requests.Delete(requestID)
}
