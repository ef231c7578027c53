// store/users.go
package store

import (
	"hacksphere/models"

	"gorm.io/gorm"
)

// UserFilter narrows List. Zero values mean "no filter".
type UserFilter struct {
	Role        models.Role
	InstituteID string
	Search      string
	Page        int
	Limit       int
}

type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(f UserFilter) ([]models.User, int64, error)
	ListByTeam(teamID uint) ([]models.User, error)
	Save(u *models.User) error
	SetTeam(userID uint, teamID *uint) error
	SetPassword(userID uint, hashed string) error
	Delete(id uint) error
	// SearchAvailable finds students in the institute who are not yet on a
	// team, matching name or email.
	SearchAvailable(instituteID, query string) ([]models.User, error)
	// AssignTeams adds teams to a mentor's assignment set; existing
	// assignments are kept.
	AssignTeams(mentorID uint, teamIDs []uint) error
	UnassignTeams(mentorID uint, teamIDs []uint) error
	AssignedTeams(mentorID uint) ([]models.Team, error)
}

type InstituteStore interface {
	Create(i *models.Institute) error
	GetByCode(code string) (*models.Institute, error)
	List(activeOnly bool) ([]models.Institute, error)
	Save(i *models.Institute) error
	Delete(id uint) error
}

type PasswordResetStore interface {
	Create(r *models.PasswordResetRequest) error
	GetByID(id uint) (*models.PasswordResetRequest, error)
	List(status models.ResetStatus) ([]models.PasswordResetRequest, error)
	Save(r *models.PasswordResetRequest) error
}

type gormUsers struct {
	db *gorm.DB
}

func (s *gormUsers) Create(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *gormUsers) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) List(f UserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})
	if f.Role != "" {
		query = query.Where("role = ?", f.Role)
	}
	if f.InstituteID != "" {
		query = query.Where("institute_id = ?", f.InstituteID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var users []models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

func (s *gormUsers) ListByTeam(teamID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("team_id = ?", teamID).Find(&users).Error
	return users, translate(err)
}

func (s *gormUsers) Save(u *models.User) error {
	return translate(s.db.Save(u).Error)
}

func (s *gormUsers) SetTeam(userID uint, teamID *uint) error {
	return translate(s.db.Model(&models.User{}).Where("id = ?", userID).Update("team_id", teamID).Error)
}

func (s *gormUsers) SetPassword(userID uint, hashed string) error {
	return translate(s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed).Error)
}

func (s *gormUsers) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormUsers) SearchAvailable(instituteID, query string) ([]models.User, error) {
	q := s.db.Where("role = ? AND team_id IS NULL AND institute_id = ?", models.RoleStudent, instituteID)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	var users []models.User
	err := q.Limit(20).Find(&users).Error
	return users, translate(err)
}

func (s *gormUsers) AssignTeams(mentorID uint, teamIDs []uint) error {
	mentor := models.User{ID: mentorID}
	teams := make([]models.Team, len(teamIDs))
	for i, id := range teamIDs {
		teams[i] = models.Team{ID: id}
	}
	return translate(s.db.Model(&mentor).Association("AssignedTeams").Append(&teams))
}

func (s *gormUsers) UnassignTeams(mentorID uint, teamIDs []uint) error {
	mentor := models.User{ID: mentorID}
	teams := make([]models.Team, len(teamIDs))
	for i, id := range teamIDs {
		teams[i] = models.Team{ID: id}
	}
	return translate(s.db.Model(&mentor).Association("AssignedTeams").Delete(&teams))
}

func (s *gormUsers) AssignedTeams(mentorID uint) ([]models.Team, error) {
	mentor := models.User{ID: mentorID}
	var teams []models.Team
	err := s.db.Model(&mentor).Preload("Members").Association("AssignedTeams").Find(&teams)
	return teams, translate(err)
}

type gormInstitutes struct {
	db *gorm.DB
}

func (s *gormInstitutes) Create(i *models.Institute) error {
	return translate(s.db.Create(i).Error)
}

func (s *gormInstitutes) GetByCode(code string) (*models.Institute, error) {
	var inst models.Institute
	if err := s.db.Where("code = ?", code).First(&inst).Error; err != nil {
		return nil, translate(err)
	}
	return &inst, nil
}

func (s *gormInstitutes) List(activeOnly bool) ([]models.Institute, error) {
	query := s.db.Order("name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var insts []models.Institute
	err := query.Find(&insts).Error
	return insts, translate(err)
}

func (s *gormInstitutes) Save(i *models.Institute) error {
	return translate(s.db.Save(i).Error)
}

func (s *gormInstitutes) Delete(id uint) error {
	res := s.db.Delete(&models.Institute{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormPasswordResets struct {
	db *gorm.DB
}

func (s *gormPasswordResets) Create(r *models.PasswordResetRequest) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormPasswordResets) GetByID(id uint) (*models.PasswordResetRequest, error) {
	var req models.PasswordResetRequest
	if err := s.db.First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (s *gormPasswordResets) List(status models.ResetStatus) ([]models.PasswordResetRequest, error) {
	query := s.db.Order("requested_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reqs []models.PasswordResetRequest
	err := query.Find(&reqs).Error
	return reqs, translate(err)
}

func (s *gormPasswordResets) Save(r *models.PasswordResetRequest) error {
	return translate(s.db.Save(r).Error)
}
