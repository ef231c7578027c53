// store/content.go - Rubrics, certificates, timeline, countdown
package store

import (
	"hacksphere/models"

	"gorm.io/gorm"
)

type RubricStore interface {
	Create(r *models.Rubric) error
	GetByID(id uint) (*models.Rubric, error)
	// List returns rubrics ascending by order, ties broken by creation time.
	List(activeOnly bool) ([]models.Rubric, error)
	Save(r *models.Rubric) error
	SetOrder(id uint, order int) error
	Delete(id uint) error
}

type CertificateStore interface {
	GetConfig() (*models.CertificateConfig, error)
	SaveConfig(c *models.CertificateConfig) error
	CreateRecord(r *models.CertificateRecord) error
	GetRecord(id uint) (*models.CertificateRecord, error)
	ListByUser(userID uint) ([]models.CertificateRecord, error)
}

type TimelineStore interface {
	Create(e *models.TimelineEvent) error
	GetByID(id uint) (*models.TimelineEvent, error)
	// List returns events ascending by order, ties broken by creation time.
	List() ([]models.TimelineEvent, error)
	Save(e *models.TimelineEvent) error
	Delete(id uint) error
}

type CountdownStore interface {
	// Get returns the current countdown or ErrNotFound when none is set.
	Get() (*models.Countdown, error)
	Save(c *models.Countdown) error
}

type gormRubrics struct {
	db *gorm.DB
}

func (s *gormRubrics) Create(r *models.Rubric) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormRubrics) GetByID(id uint) (*models.Rubric, error) {
	var r models.Rubric
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormRubrics) List(activeOnly bool) ([]models.Rubric, error) {
	query := s.db.Order("display_order asc, created_at asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rubrics []models.Rubric
	err := query.Find(&rubrics).Error
	return rubrics, translate(err)
}

func (s *gormRubrics) Save(r *models.Rubric) error {
	return translate(s.db.Save(r).Error)
}

func (s *gormRubrics) SetOrder(id uint, order int) error {
	res := s.db.Model(&models.Rubric{}).Where("id = ?", id).Update("display_order", order)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormRubrics) Delete(id uint) error {
	res := s.db.Delete(&models.Rubric{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormCertificates struct {
	db *gorm.DB
}

func (s *gormCertificates) GetConfig() (*models.CertificateConfig, error) {
	var cfg models.CertificateConfig
	if err := s.db.Order("id asc").First(&cfg).Error; err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (s *gormCertificates) SaveConfig(c *models.CertificateConfig) error {
	return translate(s.db.Save(c).Error)
}

func (s *gormCertificates) CreateRecord(r *models.CertificateRecord) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormCertificates) GetRecord(id uint) (*models.CertificateRecord, error) {
	var rec models.CertificateRecord
	if err := s.db.First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *gormCertificates) ListByUser(userID uint) ([]models.CertificateRecord, error) {
	var recs []models.CertificateRecord
	err := s.db.Where("user_id = ?", userID).Order("issued_at desc").Find(&recs).Error
	return recs, translate(err)
}

type gormTimeline struct {
	db *gorm.DB
}

func (s *gormTimeline) Create(e *models.TimelineEvent) error {
	return translate(s.db.Create(e).Error)
}

func (s *gormTimeline) GetByID(id uint) (*models.TimelineEvent, error) {
	var e models.TimelineEvent
	if err := s.db.First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *gormTimeline) List() ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := s.db.Order("display_order asc, created_at asc").Find(&events).Error
	return events, translate(err)
}

func (s *gormTimeline) Save(e *models.TimelineEvent) error {
	return translate(s.db.Save(e).Error)
}

func (s *gormTimeline) Delete(id uint) error {
	res := s.db.Delete(&models.TimelineEvent{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormCountdowns struct {
	db *gorm.DB
}

func (s *gormCountdowns) Get() (*models.Countdown, error) {
	var c models.Countdown
	if err := s.db.Order("updated_at desc").First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormCountdowns) Save(c *models.Countdown) error {
	return translate(s.db.Save(c).Error)
}
