// services/team_service.go - Team registration, invites, join requests
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyInTeam  = errors.New("user is already in a team")
	ErrTeamFull       = errors.New("team is full")
	ErrCrossInstitute = errors.New("cross-institute team membership is not allowed")
	ErrNotLeader      = errors.New("only the team leader can do this")
	ErrAlreadyHandled = errors.New("request has already been responded to")
)

type TeamService struct {
	store store.Store
}

func NewTeamService(s store.Store) *TeamService {
	return &TeamService{store: s}
}

type RegisterTeamInput struct {
	TeamName       string `json:"team_name"`
	LeaderName     string `json:"leader_name"`
	LeaderEmail    string `json:"leader_email"`
	LeaderPassword string `json:"leader_password"`
	InstituteCode  string `json:"institute_code"`
	InstituteName  string `json:"institute_name"`
	MentorName     string `json:"mentor_name"`
	MentorEmail    string `json:"mentor_email"`
	SpocName       string `json:"spoc_name"`
	SpocEmail      string `json:"spoc_email"`
	PendingMembers []struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"pending_members"`
}

// Register creates the leader account and the team in one transaction. The
// team starts pending until an admin or SPOC approves it.
func (s *TeamService) Register(in RegisterTeamInput) (*models.Team, error) {
	if len(in.PendingMembers) > models.MaxTeamSize-1 {
		return nil, ErrTeamFull
	}
	if len(in.LeaderPassword) < 6 {
		return nil, &models.ValidationError{Field: "leader_password", Reason: "password must be at least 6 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.LeaderPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	instituteID := strings.ToUpper(strings.TrimSpace(in.InstituteCode))

	var team *models.Team
	err = s.store.Tx(func(tx store.Store) error {
		leader := &models.User{
			Name:          in.LeaderName,
			Email:         strings.ToLower(strings.TrimSpace(in.LeaderEmail)),
			Password:      string(hashed),
			Role:          models.RoleStudent,
			InstituteID:   instituteID,
			InstituteCode: instituteID,
			InstituteName: in.InstituteName,
		}
		if err := leader.Validate(); err != nil {
			return err
		}
		if err := tx.Users().Create(leader); err != nil {
			return err
		}

		team = &models.Team{
			Name:          in.TeamName,
			TeamCode:      newTeamCode(),
			LeaderID:      leader.ID,
			Status:        models.TeamStatusPending,
			InstituteID:   instituteID,
			InstituteCode: instituteID,
			InstituteName: in.InstituteName,
			MentorName:    in.MentorName,
			MentorEmail:   in.MentorEmail,
			SpocName:      in.SpocName,
			SpocEmail:     in.SpocEmail,
		}
		if err := team.Validate(); err != nil {
			return err
		}
		if err := tx.Teams().Create(team); err != nil {
			return err
		}

		if err := tx.Users().SetTeam(leader.ID, &team.ID); err != nil {
			return err
		}

		for _, pm := range in.PendingMembers {
			member := &models.TeamPendingMember{
				TeamID: team.ID,
				Name:   pm.Name,
				Email:  strings.ToLower(strings.TrimSpace(pm.Email)),
			}
			if err := tx.Teams().AddPendingMember(member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func newTeamCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func (s *TeamService) Get(teamID uint) (*models.Team, error) {
	return s.store.Teams().GetByID(teamID)
}

// ListFor scopes the team listing by role: admins see everything, SPOCs
// their institute, everyone else their own team.
func (s *TeamService) ListFor(role models.Role, instituteID string, userID uint) ([]models.Team, error) {
	switch role {
	case models.RoleAdmin:
		return s.store.Teams().List(store.TeamFilter{})
	case models.RoleSpoc:
		return s.store.Teams().List(store.TeamFilter{InstituteID: instituteID})
	case models.RoleMentor:
		return s.store.Users().AssignedTeams(userID)
	default:
		user, err := s.store.Users().GetByID(userID)
		if err != nil {
			return nil, err
		}
		if user.TeamID == nil {
			return []models.Team{}, nil
		}
		team, err := s.store.Teams().GetByID(*user.TeamID)
		if err != nil {
			return nil, err
		}
		return []models.Team{*team}, nil
	}
}

type TeamUpdate struct {
	Name      *string `json:"name"`
	ProblemID *uint   `json:"problem_id"`
	Progress  *int    `json:"progress"`
}

// Update applies leader-editable fields. Only the leader may call it.
func (s *TeamService) Update(teamID, byUserID uint, in TeamUpdate) (*models.Team, error) {
	team, err := s.store.Teams().GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != byUserID {
		return nil, ErrNotLeader
	}

	if in.Name != nil {
		team.Name = *in.Name
	}
	if in.ProblemID != nil {
		team.ProblemID = in.ProblemID
	}
	if in.Progress != nil {
		team.Progress = *in.Progress
	}
	if err := team.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Teams().Save(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Approve(teamID, byUserID uint) (*models.Team, error) {
	team, err := s.store.Teams().GetByID(teamID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	team.Status = models.TeamStatusApproved
	team.ApprovedBy = &byUserID
	team.ApprovedAt = &now
	team.RejectionReason = ""
	if err := s.store.Teams().Save(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Reject(teamID, byUserID uint, reason string) (*models.Team, error) {
	team, err := s.store.Teams().GetByID(teamID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	team.Status = models.TeamStatusRejected
	team.RejectionReason = reason
	team.RejectedAt = &now
	if err := s.store.Teams().Save(team); err != nil {
		return nil, err
	}
	return team, nil
}

// SendInvite lets a team leader invite a free student from the same
// institute. The pending-pair index rejects a duplicate pending invite.
func (s *TeamService) SendInvite(fromUserID, toUserID uint) (*models.TeamInvite, error) {
	team, err := s.store.Teams().GetByLeader(fromUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotLeader
		}
		return nil, err
	}

	target, err := s.store.Users().GetByID(toUserID)
	if err != nil {
		return nil, err
	}
	if target.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}
	if target.InstituteID != team.InstituteID {
		return nil, ErrCrossInstitute
	}
	if len(team.Members) >= models.MaxTeamSize {
		return nil, ErrTeamFull
	}

	invite := &models.TeamInvite{
		TeamID:      team.ID,
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		Status:      models.RequestPending,
		InstituteID: team.InstituteID,
	}
	if err := invite.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Invites().Create(invite); err != nil {
		return nil, err
	}

	s.notify(toUserID, fromUserID, "Team Invite",
		fmt.Sprintf("You have been invited to join team %q", team.Name), &team.ID)
	return invite, nil
}

func (s *TeamService) MyInvites(userID uint) ([]models.TeamInvite, error) {
	return s.store.Invites().ListForUser(userID, models.RequestPending)
}

// RespondInvite accepts or declines a pending invite addressed to userID.
// Accepting flips the invite, joins the team and notifies the leader in a
// single transaction.
func (s *TeamService) RespondInvite(inviteID, userID uint, accept bool) (*models.TeamInvite, error) {
	invite, err := s.store.Invites().GetByID(inviteID)
	if err != nil {
		return nil, err
	}
	if invite.ToUserID != userID {
		return nil, ErrForbidden
	}
	if invite.Status != models.RequestPending {
		return nil, ErrAlreadyHandled
	}

	err = s.store.Tx(func(tx store.Store) error {
		now := time.Now()
		if !accept {
			invite.Status = models.RequestRejected
			invite.RespondedAt = &now
			return tx.Invites().Save(invite)
		}

		user, err := tx.Users().GetByID(userID)
		if err != nil {
			return err
		}
		if user.TeamID != nil {
			return ErrAlreadyInTeam
		}
		members, err := tx.Users().ListByTeam(invite.TeamID)
		if err != nil {
			return err
		}
		if len(members) >= models.MaxTeamSize {
			return ErrTeamFull
		}

		invite.Status = models.RequestAccepted
		invite.RespondedAt = &now
		if err := tx.Invites().Save(invite); err != nil {
			return err
		}
		return tx.Users().SetTeam(userID, &invite.TeamID)
	})
	if err != nil {
		return nil, err
	}

	verb := "declined"
	if accept {
		verb = "accepted"
	}
	s.notify(invite.FromUserID, userID, "Invite Response",
		fmt.Sprintf("Your team invite was %s", verb), &invite.TeamID)
	return invite, nil
}

// SendJoinRequest creates a pending join request. Two concurrent calls for
// the same (team, user) pair race at the storage layer; the loser gets
// store.ErrConflict.
func (s *TeamService) SendJoinRequest(fromUserID, toTeamID uint) (*models.TeamJoinRequest, error) {
	user, err := s.store.Users().GetByID(fromUserID)
	if err != nil {
		return nil, err
	}
	if user.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	team, err := s.store.Teams().GetByID(toTeamID)
	if err != nil {
		return nil, err
	}
	if user.InstituteID != team.InstituteID {
		return nil, ErrCrossInstitute
	}
	if len(team.Members) >= models.MaxTeamSize {
		return nil, ErrTeamFull
	}

	req := &models.TeamJoinRequest{
		ToTeamID:   toTeamID,
		FromUserID: fromUserID,
		Status:     models.RequestPending,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.JoinRequests().Create(req); err != nil {
		return nil, err
	}

	s.notify(team.LeaderID, fromUserID, "New Join Request",
		fmt.Sprintf("%s wants to join your team %q", user.Name, team.Name), &team.ID)
	return req, nil
}

// PendingJoinRequests lists pending requests for the caller's team. Callers
// who lead no team get an empty list.
func (s *TeamService) PendingJoinRequests(leaderID uint) ([]models.TeamJoinRequest, error) {
	team, err := s.store.Teams().GetByLeader(leaderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.TeamJoinRequest{}, nil
		}
		return nil, err
	}
	return s.store.JoinRequests().ListForTeam(team.ID, models.RequestPending)
}

// RespondJoinRequest accepts or rejects a pending request. Only the team's
// leader may respond; accepting adds the requester to the team in the same
// transaction that flips the request status.
func (s *TeamService) RespondJoinRequest(requestID, leaderID uint, accept bool) (*models.TeamJoinRequest, error) {
	req, err := s.store.JoinRequests().GetByID(requestID)
	if err != nil {
		return nil, err
	}
	team, err := s.store.Teams().GetByID(req.ToTeamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderID != leaderID {
		return nil, ErrNotLeader
	}
	if req.Status != models.RequestPending {
		return nil, ErrAlreadyHandled
	}

	err = s.store.Tx(func(tx store.Store) error {
		if !accept {
			req.Status = models.RequestRejected
			return tx.JoinRequests().Save(req)
		}

		user, err := tx.Users().GetByID(req.FromUserID)
		if err != nil {
			return err
		}
		if user.TeamID != nil {
			return ErrAlreadyInTeam
		}
		members, err := tx.Users().ListByTeam(req.ToTeamID)
		if err != nil {
			return err
		}
		if len(members) >= models.MaxTeamSize {
			return ErrTeamFull
		}

		req.Status = models.RequestAccepted
		if err := tx.JoinRequests().Save(req); err != nil {
			return err
		}
		return tx.Users().SetTeam(req.FromUserID, &req.ToTeamID)
	})
	if err != nil {
		return nil, err
	}

	verb := "rejected"
	if accept {
		verb = "accepted"
	}
	s.notify(req.FromUserID, leaderID, "Join Request Update",
		fmt.Sprintf("Your request to join %q was %s", team.Name, verb), &team.ID)
	return req, nil
}

// notify is best effort: a failed notification never fails the operation
// that triggered it.
func (s *TeamService) notify(recipientID, triggeredBy uint, title, message string, teamID *uint) {
	n := models.Notification{
		RecipientID:   recipientID,
		Title:         title,
		Message:       message,
		Type:          models.NotificationTeam,
		TriggeredBy:   triggeredBy,
		RelatedTeamID: teamID,
	}
	_ = s.store.Notifications().CreateBatch([]models.Notification{n})
}
