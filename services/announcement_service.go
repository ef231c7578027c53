// services/announcement_service.go - Audience-scoped announcements
package services

import (
	"hacksphere/models"
	"hacksphere/store"
)

type AnnouncementService struct {
	store store.Store
	feed  *FeedHub
}

func NewAnnouncementService(s store.Store, feed *FeedHub) *AnnouncementService {
	return &AnnouncementService{store: s, feed: feed}
}

// ListForUser returns announcements visible to the user's scope, newest
// first, each annotated with the user's read state.
func (s *AnnouncementService) ListForUser(userID uint, instituteID string) ([]models.Announcement, error) {
	var teamID *uint
	user, err := s.store.Users().GetByID(userID)
	if err == nil {
		teamID = user.TeamID
	}

	list, err := s.store.Announcements().ListVisible(instituteID, teamID)
	if err != nil {
		return nil, err
	}

	readIDs, err := s.store.Announcements().ReadIDs(userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].IsRead = readIDs[list[i].ID]
	}
	return list, nil
}

func (s *AnnouncementService) ListAll() ([]models.Announcement, error) {
	return s.store.Announcements().ListAll()
}

func (s *AnnouncementService) Create(a *models.Announcement) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.store.Announcements().Create(a); err != nil {
		return err
	}
	if s.feed != nil {
		s.feed.Broadcast(a)
	}
	return nil
}

func (s *AnnouncementService) Update(id uint, update *models.Announcement) (*models.Announcement, error) {
	existing, err := s.store.Announcements().GetByID(id)
	if err != nil {
		return nil, err
	}
	existing.Title = update.Title
	existing.Message = update.Message
	existing.Type = update.Type
	existing.Audience = update.Audience
	existing.TargetInstituteID = update.TargetInstituteID
	existing.TargetTeamID = update.TargetTeamID
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Announcements().Save(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *AnnouncementService) Delete(id uint) error {
	return s.store.Announcements().Delete(id)
}

// MarkRead is idempotent: repeated calls leave a single read marker.
func (s *AnnouncementService) MarkRead(announcementID, userID uint) error {
	if _, err := s.store.Announcements().GetByID(announcementID); err != nil {
		return err
	}
	return s.store.Announcements().MarkRead(announcementID, userID)
}

// MarkAllRead marks every announcement currently visible to the user.
func (s *AnnouncementService) MarkAllRead(userID uint, instituteID string) error {
	list, err := s.ListForUser(userID, instituteID)
	if err != nil {
		return err
	}
	for _, a := range list {
		if a.IsRead {
			continue
		}
		if err := s.store.Announcements().MarkRead(a.ID, userID); err != nil {
			return err
		}
	}
	return nil
}
