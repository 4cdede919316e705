package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OpenMemory opens a migrated, named in-memory SQLite database. Used by tests and
// by local runs with DB_DRIVER=sqlite and DB_DSN unset.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite handle")
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return db, nil
}
