package server

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

// Open or create the session DB
func openDB(log logs.Log, config dbh.DBConfig) (*gorm.DB, error) {
	log.Infof("Opening console DB")
	return dbh.OpenDB(log, config, migrations(log), 0)
}

func migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE admin_session(
			key TEXT PRIMARY KEY,
			admin_id INT NOT NULL,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			role_id INT NOT NULL,
			is_super_admin BOOLEAN NOT NULL DEFAULT FALSE,
			bearer_sealed TEXT NOT NULL,
			created_at INT NOT NULL,
			expires_at INT NOT NULL);
		CREATE INDEX idx_admin_session_expires_at ON admin_session(expires_at);
	`))

	return migs
}
