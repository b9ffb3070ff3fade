package models

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path                   string
	BootstrapAdminPassword string
}

// InitDB opens the embedded store and brings it to the current schema.
//
// Legacy installations created the accounts table before role-based access
// existed. There is no data worth preserving in that shape, so the table is
// dropped and recreated when the role column is missing.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	// foreign_keys goes through the DSN so every connection in the pool gets
	// the pragma, not just the one that would run an Exec.
	db, err := gorm.Open(sqlite.Open(config.Path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	migrator := db.Migrator()
	if migrator.HasTable(&Account{}) && !migrator.HasColumn(&Account{}, "role") {
		if err := migrator.DropTable(&Account{}); err != nil {
			return nil, fmt.Errorf("failed to drop legacy accounts table: %w", err)
		}
	}

	err = db.AutoMigrate(
		&Account{},
		&AMERecord{},
		&LowMedicalRecord{},
		&Prescription{},
		&PrescriptionMedication{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedBootstrapAdmin(db, config.BootstrapAdminPassword); err != nil {
		return nil, err
	}

	return db, nil
}

// seedBootstrapAdmin creates the default admin account on first start so the
// app is usable before anyone has registered.
func seedBootstrapAdmin(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&Account{}).Where("identity = ?", BootstrapAdminIdentity).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := Account{
		FullName: "Default Administrator",
		Rank:     "ADM",
		Identity: BootstrapAdminIdentity,
		Role:     RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return db.Create(&admin).Error
}
