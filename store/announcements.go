// store/announcements.go - Announcements, read markers, notifications
package store

import (
	"time"

	"hacksphere/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnnouncementStore interface {
	Create(a *models.Announcement) error
	GetByID(id uint) (*models.Announcement, error)
	// ListAll returns every announcement, newest first (admin view).
	ListAll() ([]models.Announcement, error)
	// ListVisible returns announcements whose audience covers the given
	// institute/team scope, newest first.
	ListVisible(instituteID string, teamID *uint) ([]models.Announcement, error)
	Save(a *models.Announcement) error
	Delete(id uint) error

	// MarkRead upserts the (announcement, user) read marker. Calling it
	// twice leaves exactly one row.
	MarkRead(announcementID, userID uint) error
	ReadIDs(userID uint) (map[uint]bool, error)
}

type NotificationStore interface {
	CreateBatch(ns []models.Notification) error
	ListForUser(userID uint) ([]models.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
	SoftDelete(id uint) error
}

type gormAnnouncements struct {
	db *gorm.DB
}

func (s *gormAnnouncements) Create(a *models.Announcement) error {
	return translate(s.db.Create(a).Error)
}

func (s *gormAnnouncements) GetByID(id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormAnnouncements) ListAll() ([]models.Announcement, error) {
	var list []models.Announcement
	err := s.db.Order("created_at desc").Find(&list).Error
	return list, translate(err)
}

func (s *gormAnnouncements) ListVisible(instituteID string, teamID *uint) ([]models.Announcement, error) {
	query := s.db.Where("audience = ?", models.AudienceAll)
	if instituteID != "" {
		query = query.Or("audience = ? AND target_institute_id = ?", models.AudienceInstitute, instituteID)
	}
	if teamID != nil {
		query = query.Or("audience = ? AND target_team_id = ?", models.AudienceTeam, *teamID)
	}
	var list []models.Announcement
	err := s.db.Where(query).Order("created_at desc").Find(&list).Error
	return list, translate(err)
}

func (s *gormAnnouncements) Save(a *models.Announcement) error {
	return translate(s.db.Save(a).Error)
}

func (s *gormAnnouncements) Delete(id uint) error {
	res := s.db.Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormAnnouncements) MarkRead(announcementID, userID uint) error {
	now := time.Now()
	rec := models.AnnouncementRead{
		AnnouncementID: announcementID,
		UserID:         userID,
		IsRead:         true,
		ReadAt:         &now,
	}
	// ON CONFLICT on the compound key keeps the operation idempotent.
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "announcement_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_read", "read_at", "updated_at"}),
	}).Create(&rec).Error
	return translate(err)
}

func (s *gormAnnouncements) ReadIDs(userID uint) (map[uint]bool, error) {
	var reads []models.AnnouncementRead
	if err := s.db.Where("user_id = ? AND is_read = ?", userID, true).Find(&reads).Error; err != nil {
		return nil, translate(err)
	}
	ids := make(map[uint]bool, len(reads))
	for _, r := range reads {
		ids[r.AnnouncementID] = true
	}
	return ids, nil
}

type gormNotifications struct {
	db *gorm.DB
}

func (s *gormNotifications) CreateBatch(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return translate(s.db.Create(&ns).Error)
}

func (s *gormNotifications) ListForUser(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.Where("recipient_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Limit(100).Find(&list).Error
	return list, translate(err)
}

func (s *gormNotifications) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Count(&count).Error
	return count, translate(err)
}

func (s *gormNotifications) MarkRead(id, userID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormNotifications) MarkAllRead(userID uint) error {
	return translate(s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()}).Error)
}

func (s *gormNotifications) SoftDelete(id uint) error {
	res := s.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
