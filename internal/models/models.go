package models

import "gorm.io/gorm"

// AllModels returns every model for migration, parents before dependents.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&CircuitCourt{},
		&MagisterialCourt{},
		&Staff{},
		&SystemLog{},
	}
}

// AutoMigrate runs GORM auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
