// store/teams.go - Teams, invites, join requests
package store

import (
	"hacksphere/models"

	"gorm.io/gorm"
)

type TeamFilter struct {
	Status      models.TeamStatus
	InstituteID string
}

type TeamStore interface {
	Create(t *models.Team) error
	GetByID(id uint) (*models.Team, error)
	GetByLeader(leaderID uint) (*models.Team, error)
	List(f TeamFilter) ([]models.Team, error)
	Save(t *models.Team) error
	AddPendingMember(m *models.TeamPendingMember) error
	Delete(id uint) error
}

type InviteStore interface {
	Create(i *models.TeamInvite) error
	GetByID(id uint) (*models.TeamInvite, error)
	ListForUser(toUserID uint, status models.RequestStatus) ([]models.TeamInvite, error)
	HasPending(teamID, toUserID uint) (bool, error)
	Save(i *models.TeamInvite) error
}

type JoinRequestStore interface {
	// Create inserts a join request. A second pending request for the same
	// (team, user) pair fails with ErrConflict at the storage layer.
	Create(r *models.TeamJoinRequest) error
	GetByID(id uint) (*models.TeamJoinRequest, error)
	ListForTeam(teamID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error)
	ListForUser(fromUserID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error)
	Save(r *models.TeamJoinRequest) error
}

type gormTeams struct {
	db *gorm.DB
}

func (s *gormTeams) Create(t *models.Team) error {
	return translate(s.db.Create(t).Error)
}

func (s *gormTeams) GetByID(id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Members").Preload("PendingMembers").Preload("Leader").First(&team, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (s *gormTeams) GetByLeader(leaderID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Where("leader_id = ?", leaderID).Preload("Members").First(&team).Error
	if err != nil {
		return nil, translate(err)
	}
	return &team, nil
}

func (s *gormTeams) List(f TeamFilter) ([]models.Team, error) {
	query := s.db.Preload("Members").Order("created_at desc")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.InstituteID != "" {
		query = query.Where("institute_id = ?", f.InstituteID)
	}
	var teams []models.Team
	err := query.Find(&teams).Error
	return teams, translate(err)
}

func (s *gormTeams) Save(t *models.Team) error {
	return translate(s.db.Save(t).Error)
}

func (s *gormTeams) AddPendingMember(m *models.TeamPendingMember) error {
	return translate(s.db.Create(m).Error)
}

func (s *gormTeams) Delete(id uint) error {
	res := s.db.Delete(&models.Team{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormInvites struct {
	db *gorm.DB
}

func (s *gormInvites) Create(i *models.TeamInvite) error {
	return translate(s.db.Create(i).Error)
}

func (s *gormInvites) GetByID(id uint) (*models.TeamInvite, error) {
	var invite models.TeamInvite
	if err := s.db.Preload("Team").First(&invite, id).Error; err != nil {
		return nil, translate(err)
	}
	return &invite, nil
}

func (s *gormInvites) ListForUser(toUserID uint, status models.RequestStatus) ([]models.TeamInvite, error) {
	query := s.db.Where("to_user_id = ?", toUserID).Preload("Team").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var invites []models.TeamInvite
	err := query.Find(&invites).Error
	return invites, translate(err)
}

func (s *gormInvites) HasPending(teamID, toUserID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.TeamInvite{}).
		Where("team_id = ? AND to_user_id = ? AND status = ?", teamID, toUserID, models.RequestPending).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *gormInvites) Save(i *models.TeamInvite) error {
	return translate(s.db.Save(i).Error)
}

type gormJoinRequests struct {
	db *gorm.DB
}

func (s *gormJoinRequests) Create(r *models.TeamJoinRequest) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormJoinRequests) GetByID(id uint) (*models.TeamJoinRequest, error) {
	var req models.TeamJoinRequest
	if err := s.db.Preload("Team").Preload("FromUser").First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *gormJoinRequests) ListForTeam(teamID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error) {
	query := s.db.Where("to_team_id = ?", teamID).Preload("FromUser").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reqs []models.TeamJoinRequest
	err := query.Find(&reqs).Error
	return reqs, translate(err)
}

func (s *gormJoinRequests) ListForUser(fromUserID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error) {
	query := s.db.Where("from_user_id = ?", fromUserID).Preload("Team").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reqs []models.TeamJoinRequest
	err := query.Find(&reqs).Error
	return reqs, translate(err)
}

func (s *gormJoinRequests) Save(r *models.TeamJoinRequest) error {
	return translate(s.db.Save(r).Error)
}
