// services/rubric_service.go - Evaluation rubrics
package services

import (
	"math"
	"sort"

	"hacksphere/models"
	"hacksphere/store"
)

type RubricService struct {
	store store.Store
}

func NewRubricService(s store.Store) *RubricService {
	return &RubricService{store: s}
}

// List returns rubrics ascending by order, ties broken by creation time.
func (s *RubricService) List(activeOnly bool) ([]models.Rubric, error) {
	rubrics, err := s.store.Rubrics().List(activeOnly)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rubrics, func(i, j int) bool {
		if rubrics[i].Order != rubrics[j].Order {
			return rubrics[i].Order < rubrics[j].Order
		}
		return rubrics[i].CreatedAt.Before(rubrics[j].CreatedAt)
	})
	return rubrics, nil
}

func (s *RubricService) Create(r *models.Rubric) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.store.Rubrics().Create(r)
}

func (s *RubricService) Update(id uint, update *models.Rubric) (*models.Rubric, error) {
	existing, err := s.store.Rubrics().GetByID(id)
	if err != nil {
		return nil, err
	}
	existing.Title = update.Title
	existing.Description = update.Description
	existing.MaxScore = update.MaxScore
	existing.Weight = update.Weight
	existing.IsActive = update.IsActive
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Rubrics().Save(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *RubricService) Delete(id uint) error {
	return s.store.Rubrics().Delete(id)
}

// Reorder assigns each rubric the order of its position in ids.
func (s *RubricService) Reorder(ids []uint) ([]models.Rubric, error) {
	for idx, id := range ids {
		if err := s.store.Rubrics().SetOrder(id, idx); err != nil {
			return nil, err
		}
	}
	return s.List(true)
}

// WeightReport is the on-demand reconciliation of active rubric weights
// against the normalization target of 1.0.
type WeightReport struct {
	TotalWeight float64 `json:"total_weight"`
	IsValid     bool    `json:"is_valid"`
	RubricCount int     `json:"rubric_count"`
}

// ValidateWeights sums weights across active rubrics. Advisory only: an
// imbalance is reported, never enforced at write time.
func (s *RubricService) ValidateWeights() (*WeightReport, error) {
	rubrics, err := s.store.Rubrics().List(true)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, r := range rubrics {
		total += r.Weight
	}

	return &WeightReport{
		TotalWeight: total,
		IsValid:     math.Abs(total-1.0) < models.WeightTolerance,
		RubricCount: len(rubrics),
	}, nil
}
