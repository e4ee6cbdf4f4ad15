package services

import (
	"testing"
	"time"

	"office-backend/internal/models"
	"office-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProject(t *testing.T) (*ProjectService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewEmployeeRepository(db),
		newAuditService(db),
	)
	return svc, db
}

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCreateProject(t *testing.T) {
	svc, _ := setupProject(t)

	project, err := svc.Create(&CreateProjectRequest{
		Name:      "Migration messagerie",
		StartDate: datePtr(2026, 3, 1),
		EndDate:   datePtr(2026, 6, 30),
	}, "admin@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectEnAttente, project.Status)
}

func TestCreateProjectEndBeforeStart(t *testing.T) {
	svc, _ := setupProject(t)

	_, err := svc.Create(&CreateProjectRequest{
		Name:      "Projet impossible",
		StartDate: datePtr(2026, 6, 1),
		EndDate:   datePtr(2026, 3, 1),
	}, "admin@entreprise.fr")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUpdateProjectKeepsDatesConsistent(t *testing.T) {
	svc, _ := setupProject(t)

	project, err := svc.Create(&CreateProjectRequest{
		Name:      "Refonte intranet",
		StartDate: datePtr(2026, 3, 1),
		EndDate:   datePtr(2026, 6, 30),
	}, "admin@entreprise.fr")
	require.NoError(t, err)

	// Moving the end before the existing start is rejected.
	_, err = svc.Update(project.ID, &UpdateProjectRequest{EndDate: datePtr(2026, 1, 1)}, "admin@entreprise.fr")
	assert.ErrorIs(t, err, ErrInvalidRange)

	updated, err := svc.Update(project.ID, &UpdateProjectRequest{Status: models.ProjectEnCours}, "admin@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectEnCours, updated.Status)
}

func TestAddMemberTwiceFails(t *testing.T) {
	svc, db := setupProject(t)
	employee := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleDeveloppeur, models.CredentialActive)
	project := seedProject(t, db, "Refonte intranet")

	_, err := svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: employee.ID, RoleLabel: "Developpeuse"}, "chef@entreprise.fr")
	require.NoError(t, err)

	_, err = svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: employee.ID}, "chef@entreprise.fr")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestAddMemberUnknownEmployee(t *testing.T) {
	svc, db := setupProject(t)
	project := seedProject(t, db, "Refonte intranet")

	_, err := svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: 999}, "chef@entreprise.fr")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTeamListsMembers(t *testing.T) {
	svc, db := setupProject(t)
	project := seedProject(t, db, "Refonte intranet")
	claire := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleDeveloppeur, models.CredentialActive)

	paul := seedEmployee(t, db, "paul@entreprise.fr", "Autre.Secret3!", models.RoleStagiaire, models.CredentialActive)

	_, err := svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: claire.ID, RoleLabel: "Lead"}, "chef@entreprise.fr")
	require.NoError(t, err)
	_, err = svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: paul.ID}, "chef@entreprise.fr")
	require.NoError(t, err)

	team, err := svc.Team(project.ID)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.NotNil(t, team[0].Employee)
}

func TestRemoveMember(t *testing.T) {
	svc, db := setupProject(t)
	project := seedProject(t, db, "Refonte intranet")
	claire := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleDeveloppeur, models.CredentialActive)

	_, err := svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: claire.ID}, "chef@entreprise.fr")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(project.ID, claire.ID, "chef@entreprise.fr"))

	team, err := svc.Team(project.ID)
	require.NoError(t, err)
	assert.Empty(t, team)

	// Removed members can rejoin.
	_, err = svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: claire.ID}, "chef@entreprise.fr")
	assert.NoError(t, err)
}

func TestDeleteProjectRemovesParticipations(t *testing.T) {
	svc, db := setupProject(t)
	project := seedProject(t, db, "Refonte intranet")
	claire := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleDeveloppeur, models.CredentialActive)

	_, err := svc.AddMember(project.ID, &AddMemberRequest{EmployeeID: claire.ID}, "chef@entreprise.fr")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(project.ID, "admin@entreprise.fr"))

	var count int64
	require.NoError(t, db.Model(&models.Participation{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteProjectBlockedByReservations(t *testing.T) {
	svc, db := setupProject(t)
	project := seedProject(t, db, "Refonte intranet")
	room := seedRoom(t, db, "Salle Turing")

	reservation := &models.Reservation{
		RoomID:    room.ID,
		ProjectID: project.ID,
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		Status:    models.ReservationConfirmee,
	}
	require.NoError(t, db.Create(reservation).Error)

	err := svc.Delete(project.ID, "admin@entreprise.fr")
	assert.ErrorIs(t, err, repository.ErrReferenced)
}
