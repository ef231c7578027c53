// store/store.go - Storage abstraction over the domain entities
//
// Handlers and services depend on these interfaces, not on gorm directly.
// Gorm{} is the Postgres-backed implementation; Memory{} (memory.go) backs
// the tests and enforces the same uniqueness contracts.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert violates a uniqueness
	// constraint. Uniqueness is enforced by the storage indexes, never by
	// check-then-insert, so concurrent writers race at the database.
	ErrConflict = errors.New("record already exists")
)

type Store interface {
	Users() UserStore
	Institutes() InstituteStore
	Teams() TeamStore
	Invites() InviteStore
	JoinRequests() JoinRequestStore
	Announcements() AnnouncementStore
	Notifications() NotificationStore
	Rubrics() RubricStore
	Certificates() CertificateStore
	Timeline() TimelineStore
	Countdowns() CountdownStore
	PasswordResets() PasswordResetStore
	Problems() ProblemStore
	Settings() SettingStore

	// Tx runs fn against a transactional view of the store. Multi-step
	// mutations (accept invite, accept join request) commit or fail as one.
	Tx(fn func(Store) error) error
}

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Users() UserStore                   { return &gormUsers{db: s.db} }
func (s *Gorm) Institutes() InstituteStore         { return &gormInstitutes{db: s.db} }
func (s *Gorm) Teams() TeamStore                   { return &gormTeams{db: s.db} }
func (s *Gorm) Invites() InviteStore               { return &gormInvites{db: s.db} }
func (s *Gorm) JoinRequests() JoinRequestStore     { return &gormJoinRequests{db: s.db} }
func (s *Gorm) Announcements() AnnouncementStore   { return &gormAnnouncements{db: s.db} }
func (s *Gorm) Notifications() NotificationStore   { return &gormNotifications{db: s.db} }
func (s *Gorm) Rubrics() RubricStore               { return &gormRubrics{db: s.db} }
func (s *Gorm) Certificates() CertificateStore     { return &gormCertificates{db: s.db} }
func (s *Gorm) Timeline() TimelineStore            { return &gormTimeline{db: s.db} }
func (s *Gorm) Countdowns() CountdownStore         { return &gormCountdowns{db: s.db} }
func (s *Gorm) PasswordResets() PasswordResetStore { return &gormPasswordResets{db: s.db} }
func (s *Gorm) Problems() ProblemStore             { return &gormProblems{db: s.db} }
func (s *Gorm) Settings() SettingStore             { return &gormSettings{db: s.db} }

func (s *Gorm) Tx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGorm(tx))
	})
}

// translate maps gorm errors into the store taxonomy. Requires
// TranslateError on the gorm config so driver duplicate-key errors arrive
// as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
