package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Remote is the primary store, backed by the hosted MySQL database. Every
// write publishes a change event, which stands in for the hosted backend's
// realtime notifications.
type Remote struct {
	gormStore
}

func OpenRemote(dsn string) (*Remote, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Remote{gormStore: newGormStore(db)}, nil
}
