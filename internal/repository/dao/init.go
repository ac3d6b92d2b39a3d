package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Skill{},
		&Order{},
		&PointsTransaction{},
		&PointsPackage{},
		&Review{},
		&ChatRoom{},
		&Message{},
		&Notification{},
		&Payment{},
	)
}
