// Package store persists transfer-session records between pipeline runs.
package store

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewDB opens (and migrates) the sqlite database at path.
func NewDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, err
	}
	return db, nil
}
