package services

import (
	"testing"

	"office-backend/internal/models"
	"office-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupResource(t *testing.T) (*ResourceService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewResourceService(
		repository.NewResourceRepository(db),
		repository.NewEmployeeRepository(db),
		newAuditService(db),
	)
	return svc, db
}

func strPtr(s string) *string { return &s }

func TestCreateResourceDefaultsToAvailable(t *testing.T) {
	svc, _ := setupResource(t)

	resource, err := svc.Create(&CreateResourceRequest{
		Name: "Portable Dell 14",
		Type: models.ResourceOrdinateur,
	}, "admin@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceDisponible, resource.State)
}

func TestCreateResourceDuplicateSerial(t *testing.T) {
	svc, _ := setupResource(t)

	_, err := svc.Create(&CreateResourceRequest{
		Name:         "Portable Dell 14",
		Type:         models.ResourceOrdinateur,
		SerialNumber: strPtr("SN-001"),
	}, "admin@entreprise.fr")
	require.NoError(t, err)

	_, err = svc.Create(&CreateResourceRequest{
		Name:         "Portable Dell 15",
		Type:         models.ResourceOrdinateur,
		SerialNumber: strPtr("SN-001"),
	}, "admin@entreprise.fr")
	assert.ErrorIs(t, err, ErrSerialTaken)
}

func TestCreateResourceUnknownBorrower(t *testing.T) {
	svc, _ := setupResource(t)

	borrower := uint(999)
	_, err := svc.Create(&CreateResourceRequest{
		Name:       "Clio de service",
		Type:       models.ResourceVehicule,
		BorrowerID: &borrower,
	}, "admin@entreprise.fr")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateResourceAssignsBorrower(t *testing.T) {
	svc, db := setupResource(t)
	claire := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)

	resource, err := svc.Create(&CreateResourceRequest{
		Name: "Portable Dell 14",
		Type: models.ResourceOrdinateur,
	}, "admin@entreprise.fr")
	require.NoError(t, err)

	updated, err := svc.Update(resource.ID, &UpdateResourceRequest{
		State:      models.ResourceEnUtilisation,
		BorrowerID: &claire.ID,
	}, "admin@entreprise.fr")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceEnUtilisation, updated.State)
	require.NotNil(t, updated.BorrowerID)
	assert.Equal(t, claire.ID, *updated.BorrowerID)
}

func TestDeleteResourceBlockedByPendingIncident(t *testing.T) {
	svc, db := setupResource(t)
	claire := seedEmployee(t, db, "claire@entreprise.fr", "Bon.Mot2Passe!", models.RoleEmploye, models.CredentialActive)

	resource, err := svc.Create(&CreateResourceRequest{
		Name: "Imprimante RDC",
		Type: models.ResourceImprimante,
	}, "admin@entreprise.fr")
	require.NoError(t, err)

	incident := &models.Incident{
		EmployeeID:  claire.ID,
		ResourceID:  resource.ID,
		Description: "Bourrage papier permanent",
		Status:      models.IncidentEnAttente,
	}
	require.NoError(t, db.Create(incident).Error)

	assert.ErrorIs(t, svc.Delete(resource.ID, "admin@entreprise.fr"), repository.ErrReferenced)
}
