// store/memory.go - In-memory Store
//
// Backs the test suite. Uniqueness constraints mirror the Postgres indexes
// (user email, institute code, team name, pending join-request pairs,
// announcement-read pairs, certificate serials) and are checked under one
// mutex so concurrent writers see the same exactly-one-wins behavior.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"hacksphere/models"
)

type Memory struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID uint

	users          map[uint]models.User
	institutes     map[uint]models.Institute
	teams          map[uint]models.Team
	pendingMembers map[uint]models.TeamPendingMember
	invites        map[uint]models.TeamInvite
	joinRequests   map[uint]models.TeamJoinRequest
	announcements  map[uint]models.Announcement
	reads          map[uint]models.AnnouncementRead
	notifications  map[uint]models.Notification
	rubrics        map[uint]models.Rubric
	certRecords    map[uint]models.CertificateRecord
	certConfig     *models.CertificateConfig
	timeline       map[uint]models.TimelineEvent
	countdown      *models.Countdown
	passwordResets map[uint]models.PasswordResetRequest
	mentorTeams    map[uint]map[uint]bool
	problems       map[uint]models.Problem
	settings       map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		users:          make(map[uint]models.User),
		institutes:     make(map[uint]models.Institute),
		teams:          make(map[uint]models.Team),
		pendingMembers: make(map[uint]models.TeamPendingMember),
		invites:        make(map[uint]models.TeamInvite),
		joinRequests:   make(map[uint]models.TeamJoinRequest),
		announcements:  make(map[uint]models.Announcement),
		reads:          make(map[uint]models.AnnouncementRead),
		notifications:  make(map[uint]models.Notification),
		rubrics:        make(map[uint]models.Rubric),
		certRecords:    make(map[uint]models.CertificateRecord),
		timeline:       make(map[uint]models.TimelineEvent),
		passwordResets: make(map[uint]models.PasswordResetRequest),
		mentorTeams:    make(map[uint]map[uint]bool),
		problems:       make(map[uint]models.Problem),
		settings:       make(map[string]string),
	}
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

func (m *Memory) Users() UserStore                   { return &memUsers{m} }
func (m *Memory) Institutes() InstituteStore         { return &memInstitutes{m} }
func (m *Memory) Teams() TeamStore                   { return &memTeams{m} }
func (m *Memory) Invites() InviteStore               { return &memInvites{m} }
func (m *Memory) JoinRequests() JoinRequestStore     { return &memJoinRequests{m} }
func (m *Memory) Announcements() AnnouncementStore   { return &memAnnouncements{m} }
func (m *Memory) Notifications() NotificationStore   { return &memNotifications{m} }
func (m *Memory) Rubrics() RubricStore               { return &memRubrics{m} }
func (m *Memory) Certificates() CertificateStore     { return &memCertificates{m} }
func (m *Memory) Timeline() TimelineStore            { return &memTimeline{m} }
func (m *Memory) Countdowns() CountdownStore         { return &memCountdowns{m} }
func (m *Memory) PasswordResets() PasswordResetStore { return &memPasswordResets{m} }
func (m *Memory) Problems() ProblemStore             { return &memProblems{m} }
func (m *Memory) Settings() SettingStore             { return &memSettings{m} }

// Tx serializes multi-step mutations. There is no rollback; tests assert on
// the success paths and on constraint failures, which abort before writing.
func (m *Memory) Tx(fn func(Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

func matchFold(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// ---- users ----

type memUsers struct{ m *Memory }

func (s *memUsers) Create(u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.users {
		if existing.Email == u.Email {
			return ErrConflict
		}
	}
	u.ID = s.m.id()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.m.users[u.ID] = *u
	return nil
}

func (s *memUsers) GetByID(id uint) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memUsers) GetByEmail(email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) List(f UserFilter) ([]models.User, int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.User
	for _, u := range s.m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.InstituteID != "" && u.InstituteID != f.InstituteID {
			continue
		}
		if f.Search != "" && !matchFold(u.Name, f.Search) && !matchFold(u.Email, f.Search) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (s *memUsers) ListByTeam(teamID uint) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.User
	for _, u := range s.m.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memUsers) Save(u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[u.ID]; !ok {
		return ErrNotFound
	}
	for _, other := range s.m.users {
		if other.ID != u.ID && other.Email == u.Email {
			return ErrConflict
		}
	}
	u.UpdatedAt = time.Now()
	s.m.users[u.ID] = *u
	return nil
}

func (s *memUsers) SetTeam(userID uint, teamID *uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.TeamID = teamID
	s.m.users[userID] = u
	return nil
}

func (s *memUsers) SetPassword(userID uint, hashed string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Password = hashed
	s.m.users[userID] = u
	return nil
}

func (s *memUsers) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.users, id)
	return nil
}

func (s *memUsers) SearchAvailable(instituteID, query string) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.User
	for _, u := range s.m.users {
		if u.Role != models.RoleStudent || u.TeamID != nil || u.InstituteID != instituteID {
			continue
		}
		if query != "" && !matchFold(u.Name, query) && !matchFold(u.Email, query) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *memUsers) AssignTeams(mentorID uint, teamIDs []uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[mentorID]; !ok {
		return ErrNotFound
	}
	set := s.m.mentorTeams[mentorID]
	if set == nil {
		set = make(map[uint]bool)
		s.m.mentorTeams[mentorID] = set
	}
	for _, id := range teamIDs {
		set[id] = true
	}
	return nil
}

func (s *memUsers) UnassignTeams(mentorID uint, teamIDs []uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	set := s.m.mentorTeams[mentorID]
	for _, id := range teamIDs {
		delete(set, id)
	}
	return nil
}

func (s *memUsers) AssignedTeams(mentorID uint) ([]models.Team, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []models.Team{}
	for id := range s.m.mentorTeams[mentorID] {
		if t, ok := s.m.teams[id]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- institutes ----

type memInstitutes struct{ m *Memory }

func (s *memInstitutes) Create(i *models.Institute) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.institutes {
		if existing.Code == i.Code {
			return ErrConflict
		}
	}
	i.ID = s.m.id()
	i.CreatedAt = time.Now()
	s.m.institutes[i.ID] = *i
	return nil
}

func (s *memInstitutes) GetByCode(code string) (*models.Institute, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, i := range s.m.institutes {
		if i.Code == code {
			i := i
			return &i, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memInstitutes) List(activeOnly bool) ([]models.Institute, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Institute
	for _, i := range s.m.institutes {
		if activeOnly && !i.IsActive {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memInstitutes) Save(i *models.Institute) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.institutes[i.ID]; !ok {
		return ErrNotFound
	}
	s.m.institutes[i.ID] = *i
	return nil
}

func (s *memInstitutes) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.institutes[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.institutes, id)
	return nil
}

// ---- teams ----

type memTeams struct{ m *Memory }

func (s *memTeams) Create(t *models.Team) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.teams {
		if existing.Name == t.Name {
			return ErrConflict
		}
		if t.TeamCode != "" && existing.TeamCode == t.TeamCode {
			return ErrConflict
		}
	}
	t.ID = s.m.id()
	t.CreatedAt = time.Now()
	s.m.teams[t.ID] = *t
	return nil
}

func (s *memTeams) withMembers(t models.Team) *models.Team {
	var members []models.User
	for _, u := range s.m.users {
		if u.TeamID != nil && *u.TeamID == t.ID {
			members = append(members, u)
		}
	}
	t.Members = members
	var pending []models.TeamPendingMember
	for _, p := range s.m.pendingMembers {
		if p.TeamID == t.ID {
			pending = append(pending, p)
		}
	}
	t.PendingMembers = pending
	return &t
}

func (s *memTeams) GetByID(id uint) (*models.Team, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.teams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.withMembers(t), nil
}

func (s *memTeams) GetByLeader(leaderID uint) (*models.Team, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, t := range s.m.teams {
		if t.LeaderID == leaderID {
			return s.withMembers(t), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memTeams) List(f TeamFilter) ([]models.Team, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Team
	for _, t := range s.m.teams {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.InstituteID != "" && t.InstituteID != f.InstituteID {
			continue
		}
		out = append(out, *s.withMembers(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memTeams) Save(t *models.Team) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.teams[t.ID]; !ok {
		return ErrNotFound
	}
	stored := *t
	stored.Members = nil
	stored.PendingMembers = nil
	stored.UpdatedAt = time.Now()
	s.m.teams[t.ID] = stored
	return nil
}

func (s *memTeams) AddPendingMember(m *models.TeamPendingMember) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	m.ID = s.m.id()
	m.CreatedAt = time.Now()
	s.m.pendingMembers[m.ID] = *m
	return nil
}

func (s *memTeams) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.teams[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.teams, id)
	return nil
}

// ---- invites ----

type memInvites struct{ m *Memory }

func (s *memInvites) Create(i *models.TeamInvite) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if i.Status == "" {
		i.Status = models.RequestPending
	}
	if i.Status == models.RequestPending {
		for _, existing := range s.m.invites {
			if existing.TeamID == i.TeamID && existing.ToUserID == i.ToUserID &&
				existing.Status == models.RequestPending {
				return ErrConflict
			}
		}
	}
	i.ID = s.m.id()
	i.CreatedAt = time.Now()
	s.m.invites[i.ID] = *i
	return nil
}

func (s *memInvites) GetByID(id uint) (*models.TeamInvite, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	inv, ok := s.m.invites[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t, ok := s.m.teams[inv.TeamID]; ok {
		t := t
		inv.Team = &t
	}
	return &inv, nil
}

func (s *memInvites) ListForUser(toUserID uint, status models.RequestStatus) ([]models.TeamInvite, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.TeamInvite
	for _, inv := range s.m.invites {
		if inv.ToUserID != toUserID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		if t, ok := s.m.teams[inv.TeamID]; ok {
			t := t
			inv.Team = &t
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memInvites) HasPending(teamID, toUserID uint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, inv := range s.m.invites {
		if inv.TeamID == teamID && inv.ToUserID == toUserID && inv.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *memInvites) Save(i *models.TeamInvite) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.invites[i.ID]; !ok {
		return ErrNotFound
	}
	stored := *i
	stored.Team = nil
	stored.UpdatedAt = time.Now()
	s.m.invites[i.ID] = stored
	return nil
}

// ---- join requests ----

type memJoinRequests struct{ m *Memory }

func (s *memJoinRequests) Create(r *models.TeamJoinRequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if r.Status == "" {
		r.Status = models.RequestPending
	}
	if r.Status == models.RequestPending {
		for _, existing := range s.m.joinRequests {
			if existing.ToTeamID == r.ToTeamID && existing.FromUserID == r.FromUserID &&
				existing.Status == models.RequestPending {
				return ErrConflict
			}
		}
	}
	r.ID = s.m.id()
	r.CreatedAt = time.Now()
	s.m.joinRequests[r.ID] = *r
	return nil
}

func (s *memJoinRequests) GetByID(id uint) (*models.TeamJoinRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.joinRequests[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t, ok := s.m.teams[r.ToTeamID]; ok {
		t := t
		r.Team = &t
	}
	if u, ok := s.m.users[r.FromUserID]; ok {
		u := u
		r.FromUser = &u
	}
	return &r, nil
}

func (s *memJoinRequests) ListForTeam(teamID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.TeamJoinRequest
	for _, r := range s.m.joinRequests {
		if r.ToTeamID != teamID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memJoinRequests) ListForUser(fromUserID uint, status models.RequestStatus) ([]models.TeamJoinRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.TeamJoinRequest
	for _, r := range s.m.joinRequests {
		if r.FromUserID != fromUserID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memJoinRequests) Save(r *models.TeamJoinRequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.joinRequests[r.ID]; !ok {
		return ErrNotFound
	}
	stored := *r
	stored.Team = nil
	stored.FromUser = nil
	stored.UpdatedAt = time.Now()
	s.m.joinRequests[r.ID] = stored
	return nil
}

// ---- announcements ----

type memAnnouncements struct{ m *Memory }

func (s *memAnnouncements) Create(a *models.Announcement) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a.ID = s.m.id()
	a.CreatedAt = time.Now()
	s.m.announcements[a.ID] = *a
	return nil
}

func (s *memAnnouncements) GetByID(id uint) (*models.Announcement, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.announcements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *memAnnouncements) ListAll() ([]models.Announcement, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Announcement
	for _, a := range s.m.announcements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memAnnouncements) ListVisible(instituteID string, teamID *uint) ([]models.Announcement, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Announcement
	for _, a := range s.m.announcements {
		if a.VisibleTo(instituteID, teamID) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memAnnouncements) Save(a *models.Announcement) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.announcements[a.ID]; !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now()
	s.m.announcements[a.ID] = *a
	return nil
}

func (s *memAnnouncements) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.announcements[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.announcements, id)
	return nil
}

func (s *memAnnouncements) MarkRead(announcementID, userID uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	for id, r := range s.m.reads {
		if r.AnnouncementID == announcementID && r.UserID == userID {
			r.IsRead = true
			r.ReadAt = &now
			s.m.reads[id] = r
			return nil
		}
	}
	rec := models.AnnouncementRead{
		ID:             s.m.id(),
		AnnouncementID: announcementID,
		UserID:         userID,
		IsRead:         true,
		ReadAt:         &now,
		CreatedAt:      now,
	}
	s.m.reads[rec.ID] = rec
	return nil
}

func (s *memAnnouncements) ReadIDs(userID uint) (map[uint]bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	ids := make(map[uint]bool)
	for _, r := range s.m.reads {
		if r.UserID == userID && r.IsRead {
			ids[r.AnnouncementID] = true
		}
	}
	return ids, nil
}

// ---- notifications ----

type memNotifications struct{ m *Memory }

func (s *memNotifications) CreateBatch(ns []models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range ns {
		ns[i].ID = s.m.id()
		ns[i].CreatedAt = time.Now()
		s.m.notifications[ns[i].ID] = ns[i]
	}
	return nil
}

func (s *memNotifications) ListForUser(userID uint) ([]models.Notification, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Notification
	for _, n := range s.m.notifications {
		if n.RecipientID == userID && !n.IsDeleted {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memNotifications) UnreadCount(userID uint) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var count int64
	for _, n := range s.m.notifications {
		if n.RecipientID == userID && !n.IsRead && !n.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (s *memNotifications) MarkRead(id, userID uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n, ok := s.m.notifications[id]
	if !ok || n.RecipientID != userID {
		return ErrNotFound
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	s.m.notifications[id] = n
	return nil
}

func (s *memNotifications) MarkAllRead(userID uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := time.Now()
	for id, n := range s.m.notifications {
		if n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
			s.m.notifications[id] = n
		}
	}
	return nil
}

func (s *memNotifications) SoftDelete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n, ok := s.m.notifications[id]
	if !ok {
		return ErrNotFound
	}
	n.IsDeleted = true
	s.m.notifications[id] = n
	return nil
}

// ---- rubrics ----

type memRubrics struct{ m *Memory }

func (s *memRubrics) Create(r *models.Rubric) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r.ID = s.m.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.m.rubrics[r.ID] = *r
	return nil
}

func (s *memRubrics) GetByID(id uint) (*models.Rubric, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.rubrics[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memRubrics) List(activeOnly bool) ([]models.Rubric, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Rubric
	for _, r := range s.m.rubrics {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memRubrics) Save(r *models.Rubric) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.rubrics[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now()
	s.m.rubrics[r.ID] = *r
	return nil
}

func (s *memRubrics) SetOrder(id uint, order int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.rubrics[id]
	if !ok {
		return ErrNotFound
	}
	r.Order = order
	s.m.rubrics[id] = r
	return nil
}

func (s *memRubrics) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.rubrics[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.rubrics, id)
	return nil
}

// ---- certificates ----

type memCertificates struct{ m *Memory }

func (s *memCertificates) GetConfig() (*models.CertificateConfig, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.certConfig == nil {
		return nil, ErrNotFound
	}
	cfg := *s.m.certConfig
	return &cfg, nil
}

func (s *memCertificates) SaveConfig(c *models.CertificateConfig) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.m.id()
	}
	c.UpdatedAt = time.Now()
	cfg := *c
	s.m.certConfig = &cfg
	return nil
}

func (s *memCertificates) CreateRecord(r *models.CertificateRecord) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.certRecords {
		if existing.Serial == r.Serial {
			return ErrConflict
		}
	}
	r.ID = s.m.id()
	r.CreatedAt = time.Now()
	s.m.certRecords[r.ID] = *r
	return nil
}

func (s *memCertificates) GetRecord(id uint) (*models.CertificateRecord, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.certRecords[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memCertificates) ListByUser(userID uint) ([]models.CertificateRecord, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.CertificateRecord
	for _, r := range s.m.certRecords {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

// ---- timeline ----

type memTimeline struct{ m *Memory }

func (s *memTimeline) Create(e *models.TimelineEvent) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	e.ID = s.m.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.m.timeline[e.ID] = *e
	return nil
}

func (s *memTimeline) GetByID(id uint) (*models.TimelineEvent, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	e, ok := s.m.timeline[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *memTimeline) List() ([]models.TimelineEvent, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.TimelineEvent
	for _, e := range s.m.timeline {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memTimeline) Save(e *models.TimelineEvent) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.timeline[e.ID]; !ok {
		return ErrNotFound
	}
	e.UpdatedAt = time.Now()
	s.m.timeline[e.ID] = *e
	return nil
}

func (s *memTimeline) Delete(id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.timeline[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.timeline, id)
	return nil
}

// ---- countdown ----

type memCountdowns struct{ m *Memory }

func (s *memCountdowns) Get() (*models.Countdown, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.countdown == nil {
		return nil, ErrNotFound
	}
	c := *s.m.countdown
	return &c, nil
}

func (s *memCountdowns) Save(c *models.Countdown) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.m.id()
	}
	c.UpdatedAt = time.Now()
	stored := *c
	s.m.countdown = &stored
	return nil
}

// ---- password resets ----

type memPasswordResets struct{ m *Memory }

func (s *memPasswordResets) Create(r *models.PasswordResetRequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r.ID = s.m.id()
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now()
	}
	r.CreatedAt = time.Now()
	s.m.passwordResets[r.ID] = *r
	return nil
}

func (s *memPasswordResets) GetByID(id uint) (*models.PasswordResetRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	r, ok := s.m.passwordResets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memPasswordResets) List(status models.ResetStatus) ([]models.PasswordResetRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.PasswordResetRequest
	for _, r := range s.m.passwordResets {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func (s *memPasswordResets) Save(r *models.PasswordResetRequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.passwordResets[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now()
	s.m.passwordResets[r.ID] = *r
	return nil
}

// ---- problems and settings ----

type memProblems struct{ m *Memory }

func (s *memProblems) Create(p *models.Problem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p.ID = s.m.id()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.m.problems[p.ID] = *p
	return nil
}

func (s *memProblems) GetByID(id uint) (*models.Problem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.problems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *memProblems) List() ([]models.Problem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	counts := make(map[uint]int)
	for _, team := range s.m.teams {
		if team.ProblemID != nil {
			counts[*team.ProblemID]++
		}
	}
	var out []models.Problem
	for _, p := range s.m.problems {
		p.TeamCount = counts[p.ID]
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memProblems) Save(p *models.Problem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.problems[p.ID]; !ok {
		return ErrNotFound
	}
	s.m.problems[p.ID] = *p
	return nil
}

type memSettings struct{ m *Memory }

func (s *memSettings) Get(key string) (string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	value, ok := s.m.settings[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *memSettings) Set(key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.settings[key] = value
	return nil
}
