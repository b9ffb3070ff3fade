package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milmed-app-server/internal/models"
)

func TestValidatePassword(t *testing.T) {
	valid := []string{"Secret@123", "a1!aaaaa", "Pass-word9", "xyz12345#"}
	for _, p := range valid {
		assert.NoError(t, ValidatePassword(p), "password %q", p)
	}

	invalid := []string{
		"Sh0rt!!",     // too short
		"12345678!",   // no letter
		"Password!",   // no digit
		"Password1",   // no symbol
		"",            // empty
	}
	for _, p := range invalid {
		assert.ErrorIs(t, ValidatePassword(p), ErrWeakPassword, "password %q", p)
	}
}

func TestRegister(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	id, err := repo.Register(adminID, RegisterInput{
		FullName: "John Carter",
		Rank:     "SGT",
		Identity: "123456789",
		Password: "Secret@123",
		Role:     models.RolePersonnel,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	created, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.RolePersonnel, created.Role)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, adminID, *created.CreatedBy)
	// Credential is stored hashed, never the plaintext.
	assert.NotEqual(t, "Secret@123", created.Password)
	assert.True(t, created.CheckPassword("Secret@123"))
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	input := RegisterInput{
		FullName: "John Carter",
		Identity: "123456789",
		Password: "Secret@123",
		Role:     models.RolePersonnel,
	}
	_, err := repo.Register(adminID, input)
	require.NoError(t, err)

	_, err = repo.Register(adminID, input)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// A different identity is fine.
	input.Identity = "987654321"
	_, err = repo.Register(adminID, input)
	assert.NoError(t, err)
}

func TestRegister_Gates(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	// Acting account does not exist.
	_, err := repo.Register(9999, RegisterInput{
		FullName: "X", Identity: "111111111", Password: "Secret@123", Role: models.RolePersonnel,
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// Acting account is not an admin.
	personnelID, err := repo.Register(adminID, RegisterInput{
		FullName: "John Carter", Identity: "123456789", Password: "Secret@123", Role: models.RolePersonnel,
	})
	require.NoError(t, err)
	_, err = repo.Register(personnelID, RegisterInput{
		FullName: "X", Identity: "222222222", Password: "Secret@123", Role: models.RolePersonnel,
	})
	assert.ErrorIs(t, err, ErrNotAdmin)

	// Weak password.
	_, err = repo.Register(adminID, RegisterInput{
		FullName: "X", Identity: "333333333", Password: "password", Role: models.RolePersonnel,
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	// Unknown role.
	_, err = repo.Register(adminID, RegisterInput{
		FullName: "X", Identity: "444444444", Password: "Secret@123", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin_Admin(t *testing.T) {
	repo, _ := setupAccountRepo(t)

	account, err := repo.Login(models.BootstrapAdminIdentity, testAdminPassword, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)

	_, err = repo.Login(models.BootstrapAdminIdentity, "wrong-password", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repo.Login("no-such-identity", testAdminPassword, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RoleCompatibility(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	mustRegister := func(identity string, role models.Role) {
		t.Helper()
		_, err := repo.Register(adminID, RegisterInput{
			FullName: "Account " + identity, Identity: identity, Password: "Secret@123", Role: role,
		})
		require.NoError(t, err)
	}

	mustRegister("12345678", models.RoleDoctor)
	mustRegister("AB1234", models.RoleDoctor) // alphanumeric doctor id
	mustRegister("987654321", models.RolePersonnel)

	// Doctor portal: doctor role plus service-number format gate.
	_, err := repo.Login("12345678", "Secret@123", models.RoleDoctor)
	assert.NoError(t, err)
	_, err = repo.Login("AB1234", "Secret@123", models.RoleDoctor)
	assert.ErrorIs(t, err, ErrInvalidIdentityFormat)
	_, err = repo.Login("987654321", "Secret@123", models.RoleDoctor)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	// Personnel portal: personnel accounts pass the format gate, admins are
	// accepted as-is.
	_, err = repo.Login("987654321", "Secret@123", models.RolePersonnel)
	assert.NoError(t, err)
	_, err = repo.Login(models.BootstrapAdminIdentity, testAdminPassword, models.RolePersonnel)
	assert.NoError(t, err)
	_, err = repo.Login("12345678", "Secret@123", models.RolePersonnel)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	// Admin portal rejects everyone else.
	_, err = repo.Login("12345678", "Secret@123", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestGetByIdentity_RoleFilter(t *testing.T) {
	repo, _ := setupAccountRepo(t)

	account, err := repo.GetByIdentity(models.BootstrapAdminIdentity, "")
	require.NoError(t, err)
	require.NotNil(t, account)

	account, err = repo.GetByIdentity(models.BootstrapAdminIdentity, models.RoleDoctor)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestUpdateAccount(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	id, err := repo.Register(adminID, RegisterInput{
		FullName: "John Carter", Identity: "123456789", Password: "Secret@123", Role: models.RolePersonnel,
	})
	require.NoError(t, err)

	name := "  John W. Carter  "
	require.NoError(t, repo.Update(id, AccountPatch{FullName: &name}))

	updated, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "John W. Carter", updated.FullName)
	assert.Equal(t, "123456789", updated.Identity)

	badRole := models.Role("superuser")
	assert.ErrorIs(t, repo.Update(id, AccountPatch{Role: &badRole}), ErrInvalidRole)

	weak := "short"
	assert.ErrorIs(t, repo.Update(id, AccountPatch{Password: &weak}), ErrWeakPassword)

	strong := "Fresh@456"
	require.NoError(t, repo.Update(id, AccountPatch{Password: &strong}))
	updated, err = repo.GetByID(id)
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("Fresh@456"))
}

func TestDeleteCreator_LeavesCreatedAccounts(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	secondAdminID, err := repo.Register(adminID, RegisterInput{
		FullName: "Second Admin", Identity: "admin002", Password: "Secret@123", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	createdID, err := repo.Register(secondAdminID, RegisterInput{
		FullName: "John Carter", Identity: "123456789", Password: "Secret@123", Role: models.RolePersonnel,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(secondAdminID))

	// The created account survives with its weak creator reference intact.
	survivor, err := repo.GetByID(createdID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	require.NotNil(t, survivor.CreatedBy)
	assert.Equal(t, secondAdminID, *survivor.CreatedBy)
}

func TestAccountCount(t *testing.T) {
	repo, _ := setupAccountRepo(t)
	adminID := bootstrapAdminID(t, repo)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count) // bootstrap admin

	_, err = repo.Register(adminID, RegisterInput{
		FullName: "John Carter", Identity: "123456789", Password: "Secret@123", Role: models.RolePersonnel,
	})
	require.NoError(t, err)

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
