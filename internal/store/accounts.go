package store

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

// AccountRepository gates every mutating operation on the account table by
// role and owns the login rules.
type AccountRepository struct {
	db          *gorm.DB
	log         *zap.Logger
	doctorID    *regexp.Regexp
	personnelID *regexp.Regexp
}

// NewAccountRepository creates an AccountRepository. The identity patterns
// are the format gates applied at doctor and personnel login.
func NewAccountRepository(db *gorm.DB, log *zap.Logger, doctorPattern, personnelPattern string) (*AccountRepository, error) {
	doctorID, err := regexp.Compile(doctorPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor identity pattern: %w", err)
	}
	personnelID, err := regexp.Compile(personnelPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid personnel identity pattern: %w", err)
	}
	return &AccountRepository{db: db, log: log, doctorID: doctorID, personnelID: personnelID}, nil
}

// RegisterInput carries the fields of a new account registration.
type RegisterInput struct {
	FullName     string
	Rank         string
	RegtIDIrlaNo string
	Identity     string
	Password     string
	Role         models.Role
}

// Register creates a new account on behalf of an acting admin and returns
// the new account id. Personnel never self-register.
func (r *AccountRepository) Register(actingAdminID uint, input RegisterInput) (uint, error) {
	var acting models.Account
	if err := r.db.First(&acting, actingAdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAccountNotFound
		}
		r.log.Error("failed to load acting account", zap.Uint("account_id", actingAdminID), zap.Error(err))
		return 0, err
	}
	if acting.Role != models.RoleAdmin {
		return 0, ErrNotAdmin
	}

	if !models.ValidRole(input.Role) {
		return 0, ErrInvalidRole
	}
	if err := ValidatePassword(input.Password); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.Model(&models.Account{}).Where("identity = ?", input.Identity).Count(&count).Error; err != nil {
		r.log.Error("failed to check identity uniqueness", zap.Error(err))
		return 0, err
	}
	if count > 0 {
		return 0, ErrDuplicateIdentity
	}

	account := models.Account{
		FullName:     CleanField(input.FullName),
		Rank:         CleanField(input.Rank),
		RegtIDIrlaNo: CleanField(input.RegtIDIrlaNo),
		Identity:     CleanField(input.Identity),
		Role:         input.Role,
		CreatedBy:    &actingAdminID,
	}
	if err := account.SetPassword(input.Password); err != nil {
		return 0, err
	}

	if err := r.db.Create(&account).Error; err != nil {
		r.log.Error("failed to create account", zap.String("identity", account.Identity), zap.Error(err))
		return 0, err
	}
	return account.ID, nil
}

// Login authenticates identity+password and cross-checks the stored role
// against the portal the caller is logging in to: the admin portal requires
// an admin account; the doctor portal requires a doctor account whose
// identity passes the format gate; the personnel portal accepts personnel
// accounts (format-gated) and admin accounts.
func (r *AccountRepository) Login(identity, password string, expectedRole models.Role) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("identity = ?", identity).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		r.log.Error("failed to look up account", zap.Error(err))
		return nil, err
	}
	if !account.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	switch expectedRole {
	case models.RoleAdmin:
		if account.Role != models.RoleAdmin {
			return nil, ErrRoleMismatch
		}
	case models.RoleDoctor:
		if account.Role != models.RoleDoctor {
			return nil, ErrRoleMismatch
		}
		if !r.doctorID.MatchString(account.Identity) {
			return nil, ErrInvalidIdentityFormat
		}
	case models.RolePersonnel:
		if account.Role != models.RolePersonnel && account.Role != models.RoleAdmin {
			return nil, ErrRoleMismatch
		}
		if account.Role == models.RolePersonnel && !r.personnelID.MatchString(account.Identity) {
			return nil, ErrInvalidIdentityFormat
		}
	default:
		return nil, ErrInvalidRole
	}

	return &account, nil
}

// GetByID fetches an account by id, nil when absent.
func (r *AccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to fetch account", zap.Uint("account_id", id), zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// GetByIdentity fetches an account by its login identity, optionally
// restricted to a role. Returns nil when absent.
func (r *AccountRepository) GetByIdentity(identity string, role models.Role) (*models.Account, error) {
	query := r.db.Where("identity = ?", identity)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var account models.Account
	if err := query.First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to fetch account by identity", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// GetAll returns all accounts, newest first.
func (r *AccountRepository) GetAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		r.log.Error("failed to list accounts", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

// AccountPatch describes a partial account update; only populated fields are
// written.
type AccountPatch struct {
	FullName     *string
	Rank         *string
	RegtIDIrlaNo *string
	Role         *models.Role
	Password     *string
}

// Update applies a patch to an account.
func (r *AccountRepository) Update(id uint, patch AccountPatch) error {
	updates := map[string]interface{}{}
	if patch.FullName != nil {
		updates["full_name"] = CleanField(*patch.FullName)
	}
	if patch.Rank != nil {
		updates["rank"] = CleanField(*patch.Rank)
	}
	if patch.RegtIDIrlaNo != nil {
		updates["regt_id_irla_no"] = CleanField(*patch.RegtIDIrlaNo)
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return ErrInvalidRole
		}
		updates["role"] = *patch.Role
	}
	if patch.Password != nil {
		if err := ValidatePassword(*patch.Password); err != nil {
			return err
		}
		var account models.Account
		if err := account.SetPassword(*patch.Password); err != nil {
			return err
		}
		updates["password"] = account.Password
	}
	if len(updates) == 0 {
		return nil
	}

	if err := r.db.Model(&models.Account{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		r.log.Error("failed to update account", zap.Uint("account_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes an account by id. Accounts it registered keep their weak
// creator reference untouched.
func (r *AccountRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Account{}, id).Error; err != nil {
		r.log.Error("failed to delete account", zap.Uint("account_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Count returns the number of accounts.
func (r *AccountRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		r.log.Error("failed to count accounts", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ValidatePassword enforces the minimum-strength policy: at least 8
// characters with a letter, a digit and a symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsSpace(r):
			hasSymbol = true
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
