package models

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testConfig(t *testing.T) DatabaseConfig {
	t.Helper()
	return DatabaseConfig{
		Path:                   filepath.Join(t.TempDir(), "test.db"),
		BootstrapAdminPassword: "Admin@123",
	}
}

func TestInitDB_SeedsBootstrapAdmin(t *testing.T) {
	db, err := InitDB(testConfig(t))
	require.NoError(t, err)

	var admin Account
	require.NoError(t, db.Where("identity = ?", BootstrapAdminIdentity).First(&admin).Error)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.NotEqual(t, "Admin@123", admin.Password)
	assert.True(t, admin.CheckPassword("Admin@123"))
}

func TestInitDB_EnablesForeignKeys(t *testing.T) {
	db, err := InitDB(testConfig(t))
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestInitDB_Idempotent(t *testing.T) {
	cfg := testConfig(t)

	db, err := InitDB(cfg)
	require.NoError(t, err)

	rec := AMERecord{PersonnelID: "123456789", FullName: "John Carter"}
	require.NoError(t, db.Create(&rec).Error)

	// A second initialization neither errors nor resets existing data, and
	// does not seed a second admin.
	db2, err := InitDB(cfg)
	require.NoError(t, err)

	var records int64
	require.NoError(t, db2.Model(&AMERecord{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)

	var admins int64
	require.NoError(t, db2.Model(&Account{}).Where("identity = ?", BootstrapAdminIdentity).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestInitDB_DropsLegacyAccountsTable(t *testing.T) {
	cfg := testConfig(t)

	// Simulate the pre-role schema: an accounts table without a role column.
	legacy, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, legacy.Exec(
		"CREATE TABLE accounts (id INTEGER PRIMARY KEY, identity TEXT, password TEXT)").Error)
	require.NoError(t, legacy.Exec(
		"INSERT INTO accounts (identity, password) VALUES ('olduser', 'oldpass')").Error)
	legacyConn, err := legacy.DB()
	require.NoError(t, err)
	require.NoError(t, legacyConn.Close())

	db, err := InitDB(cfg)
	require.NoError(t, err)

	// The legacy table was dropped, so only the reseeded admin remains.
	assert.True(t, db.Migrator().HasColumn(&Account{}, "role"))

	var count int64
	require.NoError(t, db.Model(&Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var admin Account
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, BootstrapAdminIdentity, admin.Identity)
}

func TestAccountPasswordHashing(t *testing.T) {
	var account Account
	require.NoError(t, account.SetPassword("Secret@123"))
	assert.NotEqual(t, "Secret@123", account.Password)
	assert.True(t, account.CheckPassword("Secret@123"))
	assert.False(t, account.CheckPassword("secret@123"))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleDoctor))
	assert.True(t, ValidRole(RolePersonnel))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
