package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RolePersonnel Role = "personnel"
)

// BootstrapAdminIdentity is the login identity of the seeded default admin.
const BootstrapAdminIdentity = "admin001"

// ValidRole reports whether r is one of the three enumerated roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePersonnel
}

// Account represents a credential-bearing identity in the system.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:255" json:"fullName"`
	Rank         string    `gorm:"size:50" json:"rank"`
	RegtIDIrlaNo string    `gorm:"size:100" json:"regtIdIrlaNo"`
	Identity     string    `gorm:"uniqueIndex;size:100;not null" json:"identity"`
	Password     string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never the plaintext
	Role         Role      `gorm:"size:20;not null;check:chk_accounts_role,role IN ('admin','doctor','personnel')" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	// Weak reference to the admin that registered this account. Deleting the
	// creator must not touch the accounts it created.
	CreatedBy *uint `json:"createdBy,omitempty"`
}

// AccountSanitized represents the account data that is safe to send in API responses.
type AccountSanitized struct {
	ID           uint      `json:"id"`
	FullName     string    `json:"fullName"`
	Rank         string    `json:"rank"`
	RegtIDIrlaNo string    `json:"regtIdIrlaNo"`
	Identity     string    `json:"identity"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    *uint     `json:"createdBy,omitempty"`
}

// SetPassword hashes a password and sets it on the account
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the account's hashed password
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// Sanitize creates an AccountSanitized struct from an Account, excluding the credential.
func (a *Account) Sanitize() AccountSanitized {
	return AccountSanitized{
		ID:           a.ID,
		FullName:     a.FullName,
		Rank:         a.Rank,
		RegtIDIrlaNo: a.RegtIDIrlaNo,
		Identity:     a.Identity,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}
