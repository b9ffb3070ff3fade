package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

const testAdminPassword = "Admin@123"

// setupTestDB opens a fresh on-disk store in a per-test temp dir. A file is
// used rather than :memory: so the connection pool sees one database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.InitDB(models.DatabaseConfig{
		Path:                   filepath.Join(t.TempDir(), "test.db"),
		BootstrapAdminPassword: testAdminPassword,
	})
	require.NoError(t, err)
	return db
}

func setupAccountRepo(t *testing.T) (*AccountRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	repo, err := NewAccountRepository(db, zap.NewNop(), `[0-9]{8,9}`, `[0-9]{8,9}`)
	require.NoError(t, err)
	return repo, db
}

// bootstrapAdminID fetches the id of the seeded default admin.
func bootstrapAdminID(t *testing.T, repo *AccountRepository) uint {
	t.Helper()
	admin, err := repo.GetByIdentity(models.BootstrapAdminIdentity, models.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	return admin.ID
}
