// store/problems.go - Problem catalog and event settings
package store

import (
	"hacksphere/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProblemStore interface {
	Create(p *models.Problem) error
	GetByID(id uint) (*models.Problem, error)
	// List returns the catalog with per-problem counts of teams that
	// selected each statement.
	List() ([]models.Problem, error)
	Save(p *models.Problem) error
}

type SettingStore interface {
	// Get returns the value for key or ErrNotFound when it was never set.
	Get(key string) (string, error)
	// Set upserts the value for key.
	Set(key, value string) error
}

type gormProblems struct {
	db *gorm.DB
}

func (s *gormProblems) Create(p *models.Problem) error {
	return translate(s.db.Create(p).Error)
}

func (s *gormProblems) GetByID(id uint) (*models.Problem, error) {
	var p models.Problem
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormProblems) List() ([]models.Problem, error) {
	var problems []models.Problem
	if err := s.db.Order("created_at asc, id asc").Find(&problems).Error; err != nil {
		return nil, translate(err)
	}

	type row struct {
		ProblemID uint
		N         int
	}
	var counts []row
	err := s.db.Model(&models.Team{}).
		Select("problem_id, count(*) as n").
		Where("problem_id IS NOT NULL").
		Group("problem_id").
		Scan(&counts).Error
	if err != nil {
		return nil, translate(err)
	}
	byProblem := make(map[uint]int, len(counts))
	for _, r := range counts {
		byProblem[r.ProblemID] = r.N
	}
	for i := range problems {
		problems[i].TeamCount = byProblem[problems[i].ID]
	}
	return problems, nil
}

func (s *gormProblems) Save(p *models.Problem) error {
	return translate(s.db.Save(p).Error)
}

type gormSettings struct {
	db *gorm.DB
}

func (s *gormSettings) Get(key string) (string, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", translate(err)
	}
	return setting.Value, nil
}

func (s *gormSettings) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	return translate(err)
}
