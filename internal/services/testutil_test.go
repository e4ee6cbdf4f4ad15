package services

import (
	"fmt"
	"testing"
	"time"

	"office-backend/internal/events"
	"office-backend/internal/models"
	"office-backend/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendTwoFactorCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockSender) SendPasswordResetLink(to, token string) error {
	args := m.Called(to, token)
	return args.Error(0)
}

func (m *MockSender) SendTemporaryPassword(to, tempPassword string) error {
	args := m.Called(to, tempPassword)
	return args.Error(0)
}

// nopFeed discards events; feed delivery has its own tests.
type nopFeed struct{}

func (nopFeed) Broadcast(events.Event) {}

func setupTestDB(t *testing.T) *gorm.DB {
	// A named in-memory database so every pool connection sees the same
	// data, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Employee{},
		&models.Project{},
		&models.Participation{},
		&models.Room{},
		&models.Resource{},
		&models.Reservation{},
		&models.Incident{},
		&models.ResetRequest{},
		&models.ActionLog{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func newAuditService(db *gorm.DB) *AuditService {
	return NewAuditService(repository.NewActionLogRepository(db))
}

func seedEmployee(t *testing.T, db *gorm.DB, email, plainPassword, role, state string) *models.Employee {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.MinCost)
	require.NoError(t, err)

	employee := &models.Employee{
		LastName:        "Durand",
		FirstName:       "Claire",
		Email:           email,
		Password:        string(hash),
		Role:            role,
		CredentialState: state,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func seedRoom(t *testing.T, db *gorm.DB, name string) *models.Room {
	room := &models.Room{Name: name, Capacity: 8, Location: "Batiment A"}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedProject(t *testing.T, db *gorm.DB, name string) *models.Project {
	project := &models.Project{
		Name:      name,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    models.ProjectEnCours,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
