package services

import (
	"log"

	"office-backend/internal/models"
	"office-backend/internal/repository"
)

// AuditService appends entries to the action log. A failed audit write is
// logged server-side but never fails the operation that produced it.
type AuditService struct {
	logs *repository.ActionLogRepository
}

func NewAuditService(logs *repository.ActionLogRepository) *AuditService {
	return &AuditService{logs: logs}
}

func (s *AuditService) Record(action, details, author string) {
	if author == "" {
		author = "systeme"
	}
	entry := &models.ActionLog{
		Action:  action,
		Details: details,
		Author:  author,
	}
	if err := s.logs.Append(entry); err != nil {
		log.Printf("Failed to write action log (%s): %v", action, err)
	}
}

func (s *AuditService) Page(page, limit int) ([]*models.ActionLog, int64, error) {
	return s.logs.FindPage(page, limit)
}
