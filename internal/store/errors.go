package store

import "errors"

// Authorization and validation failures surface as sentinel errors so the
// HTTP layer can translate them into user-facing alerts. Not-found reads do
// not error; they return nil or an empty slice.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrRoleMismatch          = errors.New("account role does not permit this login")
	ErrInvalidIdentityFormat = errors.New("identity does not match the expected service number format")
	ErrAccountNotFound       = errors.New("account not found")
	ErrNotAdmin              = errors.New("only an admin can register new accounts")
	ErrWeakPassword          = errors.New("password must be at least 8 characters and contain a letter, a digit and a symbol")
	ErrDuplicateIdentity     = errors.New("an account with this identity already exists")
	ErrInvalidRole           = errors.New("role must be admin, doctor or personnel")
)
