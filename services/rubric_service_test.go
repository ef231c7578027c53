// services/rubric_service_test.go
package services

import (
	"testing"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRubric(t *testing.T, svc *RubricService, title string, weight float64, order int) *models.Rubric {
	t.Helper()
	r := &models.Rubric{Title: title, MaxScore: 10, Weight: weight, Order: order, IsActive: true}
	require.NoError(t, svc.Create(r))
	return r
}

func TestValidateWeights_Balanced(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	seedRubric(t, svc, "Innovation", 0.3, 0)
	seedRubric(t, svc, "Execution", 0.3, 1)
	seedRubric(t, svc, "Impact", 0.4, 2)

	report, err := svc.ValidateWeights()
	require.NoError(t, err)
	assert.True(t, report.IsValid)
	assert.InDelta(t, 1.0, report.TotalWeight, models.WeightTolerance)
	assert.Equal(t, 3, report.RubricCount)
}

func TestValidateWeights_Imbalanced(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	seedRubric(t, svc, "Innovation", 0.3, 0)
	seedRubric(t, svc, "Execution", 0.3, 1)

	report, err := svc.ValidateWeights()
	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.InDelta(t, 0.6, report.TotalWeight, 1e-9)
	assert.Equal(t, 2, report.RubricCount)
}

func TestValidateWeights_IgnoresInactive(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	seedRubric(t, svc, "Innovation", 0.5, 0)
	seedRubric(t, svc, "Execution", 0.5, 1)
	retired := seedRubric(t, svc, "Legacy", 0.5, 2)

	retired.IsActive = false
	_, err := svc.Update(retired.ID, retired)
	require.NoError(t, err)

	report, err := svc.ValidateWeights()
	require.NoError(t, err)
	assert.True(t, report.IsValid)
	assert.Equal(t, 2, report.RubricCount)
}

func TestReorder_RenumbersByPosition(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	a := seedRubric(t, svc, "A", 0.3, 0)
	b := seedRubric(t, svc, "B", 0.3, 1)
	c := seedRubric(t, svc, "C", 0.4, 2)

	reordered, err := svc.Reorder([]uint{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, "C", reordered[0].Title)
	assert.Equal(t, "A", reordered[1].Title)
	assert.Equal(t, "B", reordered[2].Title)
	assert.Equal(t, 0, reordered[0].Order)
	assert.Equal(t, 1, reordered[1].Order)
	assert.Equal(t, 2, reordered[2].Order)
}

func TestList_OrderWithCreationTiebreak(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	first := seedRubric(t, svc, "First", 0.5, 1)
	second := seedRubric(t, svc, "Second", 0.5, 1)

	list, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestCreate_RejectsOutOfRange(t *testing.T) {
	s := store.NewMemory()
	svc := NewRubricService(s)

	err := svc.Create(&models.Rubric{Title: "Bad", MaxScore: 0, Weight: 0.5})
	require.Error(t, err)

	err = svc.Create(&models.Rubric{Title: "Bad", MaxScore: 10, Weight: 1.5})
	require.Error(t, err)
}
