// services/certificate_service.go - Certificate config and issuance
package services

import (
	"errors"
	"fmt"
	"time"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/google/uuid"
)

type CertificateService struct {
	store store.Store
}

func NewCertificateService(s store.Store) *CertificateService {
	return &CertificateService{store: s}
}

// GetConfig returns the published template, falling back to defaults when
// the admin has not saved one yet.
func (s *CertificateService) GetConfig() (*models.CertificateConfig, error) {
	cfg, err := s.store.Certificates().GetConfig()
	if errors.Is(err, store.ErrNotFound) {
		return &models.CertificateConfig{
			Title:           "Certificate of Appreciation",
			Subtitle:        "This certificate is proudly presented to",
			EventName:       "HackSphere 2025",
			Description:     "For their outstanding performance and dedication.",
			Signature1Label: "Organizer",
			Signature2Label: "Director",
		}, nil
	}
	return cfg, err
}

func (s *CertificateService) UpdateConfig(update *models.CertificateConfig) (*models.CertificateConfig, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.Certificates().GetConfig()
	if err == nil {
		update.ID = existing.ID
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err := s.store.Certificates().SaveConfig(update); err != nil {
		return nil, err
	}
	return update, nil
}

type GenerateInput struct {
	Category models.CertificateCategory `json:"category"`
	UserIDs  []uint                     `json:"user_ids"`
	// TeamIDs expands to each team's current members.
	TeamIDs []uint `json:"team_ids"`
}

// Generate bulk-issues one record per resolved user. Each issuance gets its
// own serial; repeated generation is a new issuance event, never a dedupe.
func (s *CertificateService) Generate(in GenerateInput) ([]models.CertificateRecord, error) {
	if !models.ValidCertificateCategory(in.Category) {
		return nil, &models.ValidationError{Field: "category", Reason: "unknown certificate category"}
	}

	type target struct {
		userID uint
		teamID *uint
	}
	var targets []target
	for _, id := range in.UserIDs {
		if _, err := s.store.Users().GetByID(id); err != nil {
			return nil, err
		}
		targets = append(targets, target{userID: id})
	}
	for _, teamID := range in.TeamIDs {
		teamID := teamID
		members, err := s.store.Users().ListByTeam(teamID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			targets = append(targets, target{userID: m.ID, teamID: &teamID})
		}
	}
	if len(targets) == 0 {
		return nil, &models.ValidationError{Field: "user_ids", Reason: "no recipients resolved"}
	}

	var issued []models.CertificateRecord
	err := s.store.Tx(func(tx store.Store) error {
		for _, t := range targets {
			serial := uuid.New().String()
			rec := models.CertificateRecord{
				UserID:   t.userID,
				TeamID:   t.teamID,
				Category: in.Category,
				Serial:   serial,
				PDFURL:   fmt.Sprintf("/certificates/%s.pdf", serial),
				IssuedAt: time.Now(),
			}
			if err := rec.Validate(); err != nil {
				return err
			}
			if err := tx.Certificates().CreateRecord(&rec); err != nil {
				return err
			}
			issued = append(issued, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (s *CertificateService) MyCertificates(userID uint) ([]models.CertificateRecord, error) {
	return s.store.Certificates().ListByUser(userID)
}

// Download resolves a record for retrieval. Owners and admins only.
func (s *CertificateService) Download(id, userID uint, role models.Role) (*models.CertificateRecord, error) {
	rec, err := s.store.Certificates().GetRecord(id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID && role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return rec, nil
}
