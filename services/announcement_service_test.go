// services/announcement_service_test.go
package services

import (
	"testing"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func announcement(title string, audience models.Audience) *models.Announcement {
	return &models.Announcement{
		Title:    title,
		Message:  "message body",
		Type:     models.AnnouncementInfo,
		Audience: audience,
	}
}

func TestListForUser_AudienceScoping(t *testing.T) {
	s := store.NewMemory()
	svc := NewAnnouncementService(s, nil)

	teamID := uint(7)
	user := newStudent(t, s, "scoped@nit01.edu", "NIT01")
	require.NoError(t, s.Users().SetTeam(user.ID, &teamID))

	require.NoError(t, svc.Create(announcement("global", models.AudienceAll)))

	mine := announcement("our institute", models.AudienceInstitute)
	mine.TargetInstituteID = "NIT01"
	require.NoError(t, svc.Create(mine))

	theirs := announcement("other institute", models.AudienceInstitute)
	theirs.TargetInstituteID = "IIIT01"
	require.NoError(t, svc.Create(theirs))

	forTeam := announcement("our team", models.AudienceTeam)
	forTeam.TargetTeamID = &teamID
	require.NoError(t, svc.Create(forTeam))

	otherTeam := uint(99)
	notOurTeam := announcement("other team", models.AudienceTeam)
	notOurTeam.TargetTeamID = &otherTeam
	require.NoError(t, svc.Create(notOurTeam))

	list, err := svc.ListForUser(user.ID, "NIT01")
	require.NoError(t, err)

	titles := make([]string, len(list))
	for i, a := range list {
		titles[i] = a.Title
	}
	assert.ElementsMatch(t, []string{"global", "our institute", "our team"}, titles)
}

func TestMarkRead_Idempotent(t *testing.T) {
	s := store.NewMemory()
	svc := NewAnnouncementService(s, nil)

	user := newStudent(t, s, "reader@nit01.edu", "NIT01")
	a := announcement("read me", models.AudienceAll)
	require.NoError(t, svc.Create(a))

	require.NoError(t, svc.MarkRead(a.ID, user.ID))
	require.NoError(t, svc.MarkRead(a.ID, user.ID))
	require.NoError(t, svc.MarkRead(a.ID, user.ID))

	readIDs, err := s.Announcements().ReadIDs(user.ID)
	require.NoError(t, err)
	assert.Len(t, readIDs, 1)
	assert.True(t, readIDs[a.ID])

	list, err := svc.ListForUser(user.ID, "NIT01")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}

func TestMarkRead_UnknownAnnouncement(t *testing.T) {
	s := store.NewMemory()
	svc := NewAnnouncementService(s, nil)

	user := newStudent(t, s, "reader@nit01.edu", "NIT01")
	err := svc.MarkRead(12345, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	s := store.NewMemory()
	svc := NewAnnouncementService(s, nil)

	user := newStudent(t, s, "reader@nit01.edu", "NIT01")
	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, svc.Create(announcement(title, models.AudienceAll)))
	}

	require.NoError(t, svc.MarkAllRead(user.ID, "NIT01"))

	list, err := svc.ListForUser(user.ID, "NIT01")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, a := range list {
		assert.True(t, a.IsRead, a.Title)
	}
}

func TestCreate_BroadcastsToFeed(t *testing.T) {
	s := store.NewMemory()
	hub := NewFeedHub()
	svc := NewAnnouncementService(s, hub)

	events := hub.Subscribe()
	defer hub.Unsubscribe(events)

	a := announcement("live", models.AudienceAll)
	require.NoError(t, svc.Create(a))

	got := <-events
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "live", got.Title)
}

func TestCreate_RejectsMissingTarget(t *testing.T) {
	s := store.NewMemory()
	svc := NewAnnouncementService(s, nil)

	a := announcement("bad", models.AudienceInstitute)
	err := svc.Create(a)
	require.Error(t, err)
	verr, ok := err.(*models.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "target_institute_id", verr.Field)
}

func TestNotificationFanout(t *testing.T) {
	s := store.NewMemory()
	svc := NewNotificationService(s)

	a := newStudent(t, s, "a@nit01.edu", "NIT01")
	b := newStudent(t, s, "b@nit01.edu", "NIT01")

	count, err := svc.Create(99, CreateNotificationInput{
		Title:      "Heads up",
		Message:    "Submissions close tonight",
		Type:       models.NotificationWarning,
		Recipients: []uint{a.ID, b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	forA, err := svc.ListForUser(a.ID)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, "Heads up", forA[0].Title)

	unread, err := svc.UnreadCount(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestNotification_MarkReadAndSoftDelete(t *testing.T) {
	s := store.NewMemory()
	svc := NewNotificationService(s)

	u := newStudent(t, s, "u@nit01.edu", "NIT01")
	_, err := svc.Create(99, CreateNotificationInput{
		Title:      "One",
		Message:    "first",
		Type:       models.NotificationInfo,
		Recipients: []uint{u.ID},
	})
	require.NoError(t, err)

	list, err := svc.ListForUser(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.MarkRead(list[0].ID, u.ID))
	unread, err := svc.UnreadCount(u.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Marking someone else's notification is a not-found, not a leak.
	other := newStudent(t, s, "other@nit01.edu", "NIT01")
	err = svc.MarkRead(list[0].ID, other.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.SoftDelete(list[0].ID))
	list, err = svc.ListForUser(u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotification_RoleBroadcast(t *testing.T) {
	s := store.NewMemory()
	svc := NewNotificationService(s)

	newStudent(t, s, "s1@nit01.edu", "NIT01")
	newStudent(t, s, "s2@nit01.edu", "NIT01")
	mentor := &models.User{Name: "Mentor", Email: "m@nit01.edu", Password: "x", Role: models.RoleMentor}
	require.NoError(t, s.Users().Create(mentor))

	count, err := svc.Create(99, CreateNotificationInput{
		Title:   "Students only",
		Message: "check your dashboard",
		Type:    models.NotificationSystem,
		Role:    models.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	none, err := svc.ListForUser(mentor.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
