// services/team_service_test.go
package services

import (
	"fmt"
	"sync"
	"testing"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudent(t *testing.T, s store.Store, email, instituteID string) *models.User {
	t.Helper()
	u := &models.User{
		Name:          "Student " + email,
		Email:         email,
		Password:      "hashed",
		Role:          models.RoleStudent,
		InstituteID:   instituteID,
		InstituteCode: instituteID,
		InstituteName: "Institute " + instituteID,
	}
	require.NoError(t, s.Users().Create(u))
	return u
}

func registerTeam(t *testing.T, svc *TeamService, name, leaderEmail, instituteID string) *models.Team {
	t.Helper()
	team, err := svc.Register(RegisterTeamInput{
		TeamName:       name,
		LeaderName:     "Leader " + name,
		LeaderEmail:    leaderEmail,
		LeaderPassword: "secret123",
		InstituteCode:  instituteID,
		InstituteName:  "Institute " + instituteID,
	})
	require.NoError(t, err)
	return team
}

func TestRegister_CreatesLeaderAndPendingTeam(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Quantum Leap", "leader@nit01.edu", "nit01")

	assert.Equal(t, models.TeamStatusPending, team.Status)
	assert.Len(t, team.TeamCode, 8)
	assert.Equal(t, "NIT01", team.InstituteID)

	leader, err := s.Users().GetByEmail("leader@nit01.edu")
	require.NoError(t, err)
	require.NotNil(t, leader.TeamID)
	assert.Equal(t, team.ID, *leader.TeamID)
	assert.Equal(t, leader.ID, team.LeaderID)
}

func TestRegister_PendingMemberCap(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	in := RegisterTeamInput{
		TeamName:       "Oversized",
		LeaderName:     "Leader",
		LeaderEmail:    "lead@nit01.edu",
		LeaderPassword: "secret123",
		InstituteCode:  "NIT01",
		InstituteName:  "NIT",
	}
	for i := 0; i < models.MaxTeamSize; i++ {
		in.PendingMembers = append(in.PendingMembers, struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}{Name: fmt.Sprintf("m%d", i), Email: fmt.Sprintf("m%d@nit01.edu", i)})
	}

	_, err := svc.Register(in)
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestRegister_DuplicateLeaderEmail(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	registerTeam(t, svc, "First", "same@nit01.edu", "NIT01")
	_, err := svc.Register(RegisterTeamInput{
		TeamName:       "Second",
		LeaderName:     "Leader",
		LeaderEmail:    "same@nit01.edu",
		LeaderPassword: "secret123",
		InstituteCode:  "NIT01",
		InstituteName:  "NIT",
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestSendInvite_OnlyLeader(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	free := newStudent(t, s, "free@nit01.edu", "NIT01")
	stranger := newStudent(t, s, "stranger@nit01.edu", "NIT01")

	_, err := svc.SendInvite(stranger.ID, free.ID)
	assert.ErrorIs(t, err, ErrNotLeader)
}

func TestSendInvite_CrossInstitute(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Locals", "lead@nit01.edu", "NIT01")
	outsider := newStudent(t, s, "out@iiit01.edu", "IIIT01")

	_, err := svc.SendInvite(team.LeaderID, outsider.ID)
	assert.ErrorIs(t, err, ErrCrossInstitute)
}

func TestSendInvite_TargetAlreadyInTeam(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Alpha", "alpha@nit01.edu", "NIT01")
	other := registerTeam(t, svc, "Beta", "beta@nit01.edu", "NIT01")

	_, err := svc.SendInvite(team.LeaderID, other.LeaderID)
	assert.ErrorIs(t, err, ErrAlreadyInTeam)
}

func TestRespondInvite_AcceptJoinsTeamOnce(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Gamma", "gamma@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")

	invite, err := svc.SendInvite(team.LeaderID, free.ID)
	require.NoError(t, err)

	accepted, err := svc.RespondInvite(invite.ID, free.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)

	joined, err := s.Users().GetByID(free.ID)
	require.NoError(t, err)
	require.NotNil(t, joined.TeamID)
	assert.Equal(t, team.ID, *joined.TeamID)

	// A second response is rejected: the invite is one-shot.
	_, err = svc.RespondInvite(invite.ID, free.ID, true)
	assert.ErrorIs(t, err, ErrAlreadyHandled)
}

func TestRespondInvite_OnlyRecipient(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Delta", "delta@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")
	other := newStudent(t, s, "other@nit01.edu", "NIT01")

	invite, err := svc.SendInvite(team.LeaderID, free.ID)
	require.NoError(t, err)

	_, err = svc.RespondInvite(invite.ID, other.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRespondInvite_Decline(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Epsilon", "eps@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")

	invite, err := svc.SendInvite(team.LeaderID, free.ID)
	require.NoError(t, err)

	declined, err := svc.RespondInvite(invite.ID, free.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, declined.Status)

	still, err := s.Users().GetByID(free.ID)
	require.NoError(t, err)
	assert.Nil(t, still.TeamID)
}

func TestSendJoinRequest_DuplicatePending(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Zeta", "zeta@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")

	_, err := svc.SendJoinRequest(free.ID, team.ID)
	require.NoError(t, err)

	_, err = svc.SendJoinRequest(free.ID, team.ID)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestSendJoinRequest_ConcurrentExactlyOneWins(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Eta", "eta@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SendJoinRequest(free.ID, team.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, store.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestSendJoinRequest_CrossInstitute(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Theta", "theta@nit01.edu", "NIT01")
	outsider := newStudent(t, s, "out@iiit01.edu", "IIIT01")

	_, err := svc.SendJoinRequest(outsider.ID, team.ID)
	assert.ErrorIs(t, err, ErrCrossInstitute)
}

func TestRespondJoinRequest_LeaderOnly(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Iota", "iota@nit01.edu", "NIT01")
	free := newStudent(t, s, "free@nit01.edu", "NIT01")
	stranger := newStudent(t, s, "stranger@nit01.edu", "NIT01")

	req, err := svc.SendJoinRequest(free.ID, team.ID)
	require.NoError(t, err)

	_, err = svc.RespondJoinRequest(req.ID, stranger.ID, true)
	assert.ErrorIs(t, err, ErrNotLeader)

	accepted, err := svc.RespondJoinRequest(req.ID, team.LeaderID, true)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)

	joined, err := s.Users().GetByID(free.ID)
	require.NoError(t, err)
	require.NotNil(t, joined.TeamID)
	assert.Equal(t, team.ID, *joined.TeamID)
}

func TestRespondJoinRequest_FullTeam(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Kappa", "kappa@nit01.edu", "NIT01")
	for i := 1; i < models.MaxTeamSize; i++ {
		member := newStudent(t, s, fmt.Sprintf("member%d@nit01.edu", i), "NIT01")
		require.NoError(t, s.Users().SetTeam(member.ID, &team.ID))
	}

	late := newStudent(t, s, "late@nit01.edu", "NIT01")
	_, err := svc.SendJoinRequest(late.ID, team.ID)
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestPendingJoinRequests_NonLeaderGetsEmptyList(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	free := newStudent(t, s, "free@nit01.edu", "NIT01")
	reqs, err := svc.PendingJoinRequests(free.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestListFor_RoleScoping(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	a := registerTeam(t, svc, "A-Team", "a@nit01.edu", "NIT01")
	registerTeam(t, svc, "B-Team", "b@iiit01.edu", "IIIT01")

	all, err := svc.ListFor(models.RoleAdmin, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListFor(models.RoleSpoc, "NIT01", 0)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "A-Team", scoped[0].Name)

	own, err := svc.ListFor(models.RoleStudent, "NIT01", a.LeaderID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, a.ID, own[0].ID)

	mentor := &models.User{Name: "Mentor", Email: "mentor@nit01.edu", Password: "x", Role: models.RoleMentor, InstituteID: "NIT01"}
	require.NoError(t, s.Users().Create(mentor))
	require.NoError(t, s.Users().AssignTeams(mentor.ID, []uint{a.ID}))

	assigned, err := svc.ListFor(models.RoleMentor, "NIT01", mentor.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, a.ID, assigned[0].ID)
}

func TestApproveAndReject(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Lambda", "lambda@nit01.edu", "NIT01")

	approved, err := svc.Approve(team.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, models.TeamStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(99), *approved.ApprovedBy)

	rejected, err := svc.Reject(team.ID, 99, "incomplete submission")
	require.NoError(t, err)
	assert.Equal(t, models.TeamStatusRejected, rejected.Status)
	assert.Equal(t, "incomplete submission", rejected.RejectionReason)
}

func TestUpdate_LeaderOnly(t *testing.T) {
	s := store.NewMemory()
	svc := NewTeamService(s)

	team := registerTeam(t, svc, "Mu", "mu@nit01.edu", "NIT01")
	stranger := newStudent(t, s, "stranger@nit01.edu", "NIT01")

	name := "Mu Prime"
	_, err := svc.Update(team.ID, stranger.ID, TeamUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotLeader)

	progress := 40
	updated, err := svc.Update(team.ID, team.LeaderID, TeamUpdate{Name: &name, Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, "Mu Prime", updated.Name)
	assert.Equal(t, 40, updated.Progress)
}
