package services

import (
	"testing"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"
	"office-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupEmployee(t *testing.T) (*EmployeeService, *MockSender, *gorm.DB) {
	db := setupTestDB(t)
	mailer := new(MockSender)
	svc := NewEmployeeService(repository.NewEmployeeRepository(db), mailer, newAuditService(db))
	return svc, mailer, db
}

func TestCreateEmployeeSendsTemporaryPassword(t *testing.T) {
	svc, mailer, db := setupEmployee(t)

	var tempPassword string
	mailer.On("SendTemporaryPassword", "claire@entreprise.fr", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { tempPassword = args.String(1) }).
		Return(nil)

	employee, err := svc.Create(&CreateEmployeeRequest{
		LastName:  "Durand",
		FirstName: "Claire",
		Email:     "claire@entreprise.fr",
		Role:      models.RoleDeveloppeur,
	}, "rh@entreprise.fr")
	require.NoError(t, err)

	// The generated password satisfies the policy and the account demands a
	// change on first login.
	require.NotEmpty(t, tempPassword)
	assert.NoError(t, password.Validate(tempPassword))

	var stored models.Employee
	require.NoError(t, db.First(&stored, employee.ID).Error)
	assert.Equal(t, models.CredentialMustChangePassword, stored.CredentialState)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(tempPassword)))
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	svc, mailer, db := setupEmployee(t)
	seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)

	_, err := svc.Create(&CreateEmployeeRequest{
		LastName:  "Autre",
		FirstName: "Claire",
		Email:     "claire@entreprise.fr",
		Role:      models.RoleEmploye,
	}, "rh@entreprise.fr")
	assert.ErrorIs(t, err, ErrEmailTaken)
	mailer.AssertNotCalled(t, "SendTemporaryPassword", mock.Anything, mock.Anything)
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, db := setupEmployee(t)
	employee := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleDeveloppeur, models.CredentialActive)

	updated, err := svc.Update(employee.ID, &UpdateEmployeeRequest{Role: models.RoleChefDeProjet}, "rh@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChefDeProjet, updated.Role)
	assert.Equal(t, "Durand", updated.LastName)
}

func TestUpdateEmployeeEmailConflict(t *testing.T) {
	svc, _, db := setupEmployee(t)
	seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	paul := &models.Employee{
		LastName: "Martin", FirstName: "Paul",
		Email: "paul@entreprise.fr", Password: "x",
		Role: models.RoleEmploye, CredentialState: models.CredentialActive,
	}
	require.NoError(t, db.Create(paul).Error)

	_, err := svc.Update(paul.ID, &UpdateEmployeeRequest{Email: "claire@entreprise.fr"}, "rh@entreprise.fr")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteEmployee(t *testing.T) {
	svc, _, db := setupEmployee(t)
	employee := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)

	require.NoError(t, svc.Delete(employee.ID, "rh@entreprise.fr"))

	_, err := svc.GetByID(employee.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteEmployeeBlockedByReservations(t *testing.T) {
	svc, _, db := setupEmployee(t)
	employee := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)
	room := seedRoom(t, db, "Salle Turing")
	project := seedProject(t, db, "Refonte intranet")

	reservation := &models.Reservation{
		RoomID:      room.ID,
		ProjectID:   project.ID,
		StartTime:   time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		Status:      models.ReservationConfirmee,
		CreatedByID: employee.ID,
	}
	require.NoError(t, db.Create(reservation).Error)

	err := svc.Delete(employee.ID, "rh@entreprise.fr")
	assert.ErrorIs(t, err, repository.ErrReferenced)
}
