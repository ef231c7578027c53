// services/certificate_service_test.go
package services

import (
	"testing"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_DefaultsWhenUnset(t *testing.T) {
	s := store.NewMemory()
	svc := NewCertificateService(s)

	cfg, err := svc.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "Certificate of Appreciation", cfg.Title)
	assert.Equal(t, "HackSphere 2025", cfg.EventName)
}

func TestUpdateConfig_SingletonUpsert(t *testing.T) {
	s := store.NewMemory()
	svc := NewCertificateService(s)

	first, err := svc.UpdateConfig(&models.CertificateConfig{
		Title:           "Certificate of Excellence",
		EventName:       "HackSphere 2025",
		Signature1Label: "Organizer",
	})
	require.NoError(t, err)

	second, err := svc.UpdateConfig(&models.CertificateConfig{
		Title:           "Certificate of Merit",
		EventName:       "HackSphere 2025",
		Signature1Label: "Organizer",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	cfg, err := svc.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "Certificate of Merit", cfg.Title)
}

func TestGenerate_PerUserAndPerTeam(t *testing.T) {
	s := store.NewMemory()
	svc := NewCertificateService(s)

	solo := newStudent(t, s, "solo@nit01.edu", "NIT01")
	m1 := newStudent(t, s, "m1@nit01.edu", "NIT01")
	m2 := newStudent(t, s, "m2@nit01.edu", "NIT01")
	teamID := uint(5)
	require.NoError(t, s.Users().SetTeam(m1.ID, &teamID))
	require.NoError(t, s.Users().SetTeam(m2.ID, &teamID))

	records, err := svc.Generate(GenerateInput{
		Category: models.CertParticipation,
		UserIDs:  []uint{solo.ID},
		TeamIDs:  []uint{teamID},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	serials := make(map[string]bool)
	for _, r := range records {
		assert.NotEmpty(t, r.Serial)
		assert.False(t, serials[r.Serial], "serials must be unique")
		serials[r.Serial] = true
		assert.Contains(t, r.PDFURL, r.Serial)
	}

	mine, err := svc.MyCertificates(m1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].TeamID)
	assert.Equal(t, teamID, *mine[0].TeamID)
}

func TestGenerate_Rejections(t *testing.T) {
	s := store.NewMemory()
	svc := NewCertificateService(s)

	_, err := svc.Generate(GenerateInput{Category: "gold-star", UserIDs: []uint{1}})
	require.Error(t, err)

	_, err = svc.Generate(GenerateInput{Category: models.CertWinner})
	require.Error(t, err)

	_, err = svc.Generate(GenerateInput{Category: models.CertWinner, UserIDs: []uint{404}})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDownload_OwnerOrAdminOnly(t *testing.T) {
	s := store.NewMemory()
	svc := NewCertificateService(s)

	owner := newStudent(t, s, "owner@nit01.edu", "NIT01")
	other := newStudent(t, s, "other@nit01.edu", "NIT01")

	records, err := svc.Generate(GenerateInput{Category: models.CertWinner, UserIDs: []uint{owner.ID}})
	require.NoError(t, err)
	rec := records[0]

	got, err := svc.Download(rec.ID, owner.ID, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, rec.Serial, got.Serial)

	_, err = svc.Download(rec.ID, other.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Download(rec.ID, other.ID, models.RoleAdmin)
	assert.NoError(t, err)
}
