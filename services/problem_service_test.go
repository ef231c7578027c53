// services/problem_service_test.go
package services

import (
	"testing"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProblem(t *testing.T, s store.Store, title, category string) *models.Problem {
	t.Helper()
	p := &models.Problem{
		Title:       title,
		Description: "Build " + title,
		Category:    category,
		Difficulty:  models.DifficultyMedium,
		Type:        models.ProblemBoth,
	}
	require.NoError(t, s.Problems().Create(p))
	return p
}

func approvedTeam(t *testing.T, s store.Store, teamSvc *TeamService, name, leaderEmail string) (*models.Team, *models.User) {
	t.Helper()
	team := registerTeam(t, teamSvc, name, leaderEmail, "nit01")
	team.Status = models.TeamStatusApproved
	require.NoError(t, s.Teams().Save(team))
	leader, err := s.Users().GetByEmail(leaderEmail)
	require.NoError(t, err)
	return team, leader
}

func TestCreateProblem_DefaultsAndValidation(t *testing.T) {
	s := store.NewMemory()
	svc := NewProblemService(s)

	p := &models.Problem{Title: "Smart Irrigation", Description: "Water only when needed", Category: "Agriculture"}
	require.NoError(t, svc.Create(p))
	assert.Equal(t, models.DifficultyMedium, p.Difficulty)
	assert.Equal(t, models.ProblemBoth, p.Type)

	err := svc.Create(&models.Problem{Title: "", Description: "d", Category: "c"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	err = svc.Create(&models.Problem{Title: "t", Description: "d", Category: "c", Difficulty: "extreme"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "difficulty", verr.Field)
}

func TestSelectProblem_LeaderOfApprovedTeam(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	problem := seedProblem(t, s, "Smart Irrigation", "Agriculture")
	team, leader := approvedTeam(t, s, teamSvc, "Quantum Leap", "leader@nit01.edu")

	selected, err := svc.Select(leader.ID, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, problem.ID, selected.ID)

	saved, err := s.Teams().GetByID(team.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.ProblemID)
	assert.Equal(t, problem.ID, *saved.ProblemID)
}

func TestSelectProblem_Rules(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	problem := seedProblem(t, s, "Telemedicine Kiosk", "Health")

	// Not a leader of any team.
	outsider := newStudent(t, s, "outsider@nit01.edu", "NIT01")
	_, err := svc.Select(outsider.ID, problem.ID)
	assert.ErrorIs(t, err, ErrNotLeader)

	// Pending team cannot select.
	registerTeam(t, teamSvc, "Pending Crew", "pending@nit01.edu", "nit01")
	pendingLeader, err := s.Users().GetByEmail("pending@nit01.edu")
	require.NoError(t, err)
	_, err = svc.Select(pendingLeader.ID, problem.ID)
	assert.ErrorIs(t, err, ErrTeamNotApproved)

	// Unknown problem.
	_, leader := approvedTeam(t, s, teamSvc, "Quantum Leap", "leader@nit01.edu")
	_, err = svc.Select(leader.ID, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSelectProblem_WindowClosed(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	problem := seedProblem(t, s, "Flood Alerts", "Disaster")
	_, leader := approvedTeam(t, s, teamSvc, "Quantum Leap", "leader@nit01.edu")

	// The window defaults to open.
	open, err := svc.SelectionOpen()
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, svc.SetSelectionOpen(false))
	_, err = svc.Select(leader.ID, problem.ID)
	assert.ErrorIs(t, err, ErrSelectionClosed)

	require.NoError(t, svc.SetSelectionOpen(true))
	_, err = svc.Select(leader.ID, problem.ID)
	assert.NoError(t, err)
}

func TestListProblems_TeamCounts(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	first := seedProblem(t, s, "Smart Irrigation", "Agriculture")
	second := seedProblem(t, s, "Telemedicine Kiosk", "Health")

	_, alpha := approvedTeam(t, s, teamSvc, "Alpha", "alpha@nit01.edu")
	_, beta := approvedTeam(t, s, teamSvc, "Beta", "beta@nit01.edu")
	_, err := svc.Select(alpha.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Select(beta.ID, first.ID)
	require.NoError(t, err)

	problems, err := svc.List()
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, first.Title, problems[0].Title)
	assert.Equal(t, 2, problems[0].TeamCount)
	assert.Equal(t, second.Title, problems[1].Title)
	assert.Equal(t, 0, problems[1].TeamCount)
}

func TestMySelection(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	problem := seedProblem(t, s, "Smart Irrigation", "Agriculture")
	team, leader := approvedTeam(t, s, teamSvc, "Quantum Leap", "leader@nit01.edu")

	// Before any choice: open window, leader can select, nothing chosen.
	sel, err := svc.MySelection(leader.ID)
	require.NoError(t, err)
	assert.Nil(t, sel.Problem)
	assert.True(t, sel.IsSelectionOpen)
	assert.True(t, sel.CanSelect)

	_, err = svc.Select(leader.ID, problem.ID)
	require.NoError(t, err)

	sel, err = svc.MySelection(leader.ID)
	require.NoError(t, err)
	require.NotNil(t, sel.Problem)
	assert.Equal(t, problem.ID, sel.Problem.ID)

	// A plain member sees the choice but cannot change it.
	member := newStudent(t, s, "member@nit01.edu", "NIT01")
	require.NoError(t, s.Users().SetTeam(member.ID, &team.ID))
	sel, err = svc.MySelection(member.ID)
	require.NoError(t, err)
	require.NotNil(t, sel.Problem)
	assert.False(t, sel.CanSelect)

	// Closing the window flips CanSelect for the leader too.
	require.NoError(t, svc.SetSelectionOpen(false))
	sel, err = svc.MySelection(leader.ID)
	require.NoError(t, err)
	assert.False(t, sel.IsSelectionOpen)
	assert.False(t, sel.CanSelect)

	// No team at all.
	loner := newStudent(t, s, "loner@nit01.edu", "NIT01")
	_, err = svc.MySelection(loner.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAllSelections_GroupsByProblem(t *testing.T) {
	s := store.NewMemory()
	teamSvc := NewTeamService(s)
	svc := NewProblemService(s)

	first := seedProblem(t, s, "Smart Irrigation", "Agriculture")
	second := seedProblem(t, s, "Telemedicine Kiosk", "Health")

	_, alpha := approvedTeam(t, s, teamSvc, "Alpha", "alpha@nit01.edu")
	_, beta := approvedTeam(t, s, teamSvc, "Beta", "beta@nit01.edu")
	approvedTeam(t, s, teamSvc, "Gamma", "gamma@nit01.edu")
	registerTeam(t, teamSvc, "Delta", "delta@nit01.edu", "nit01") // pending, excluded

	_, err := svc.Select(alpha.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Select(beta.ID, first.ID)
	require.NoError(t, err)

	report, err := svc.AllSelections()
	require.NoError(t, err)
	assert.True(t, report.IsSelectionOpen)
	assert.Equal(t, 3, report.TotalApprovedTeams)
	assert.Equal(t, 2, report.TeamsWithSelection)
	require.Len(t, report.Selections, 1)
	assert.Equal(t, first.ID, report.Selections[0].Problem.ID)
	assert.Len(t, report.Selections[0].Teams, 2)
	require.Len(t, report.UnselectedTeams, 1)
	assert.Equal(t, "Gamma", report.UnselectedTeams[0].Name)

	require.Len(t, report.Problems, 2)
	assert.Equal(t, 2, report.Problems[0].TeamCount)
	assert.Equal(t, second.ID, report.Problems[1].ID)
}
