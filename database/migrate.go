// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"hacksphere/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Institute{},
		&models.Team{},
		&models.TeamPendingMember{},
		&models.TeamInvite{},
		&models.TeamJoinRequest{},
		&models.Announcement{},
		&models.AnnouncementRead{},
		&models.Notification{},
		&models.Rubric{},
		&models.CertificateRecord{},
		&models.CertificateConfig{},
		&models.TimelineEvent{},
		&models.Countdown{},
		&models.PasswordResetRequest{},
		&models.Problem{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes adds the indexes AutoMigrate cannot express. The partial
// unique index is what makes two concurrent join requests for the same
// (team, user) pair race at the database: exactly one insert wins, the
// loser gets a duplicate-key error.
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_join_requests_pending_pair
		ON team_join_requests (to_team_id, from_user_id)
		WHERE status = 'pending'`)

	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_invites_pending_pair
		ON team_invites (team_id, to_user_id)
		WHERE status = 'pending'`)

	db.Exec("CREATE INDEX IF NOT EXISTS idx_announcements_created ON announcements(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_rubrics_active_order ON rubrics(is_active, display_order)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_password_resets_status ON password_reset_requests(status)")

	log.Println("✅ Indexes created successfully")
}
