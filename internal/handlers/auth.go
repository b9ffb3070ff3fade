package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/middleware"
	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
	"milmed-app-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Accounts *store.AccountRepository
	Cfg      *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *store.AccountRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Cfg: cfg}
}

// LoginRequest represents the request body for login. Role selects the
// portal being logged in to: admin, doctor or personnel.
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin doctor personnel"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string                  `json:"accessToken"`
	Account     models.AccountSanitized `json:"account"`
}

// Login handles login for all three portals.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	account, err := h.Accounts.Login(req.Identity, req.Password, models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidCredentials),
			errors.Is(err, store.ErrRoleMismatch),
			errors.Is(err, store.ErrInvalidIdentityFormat):
			utils.Unauthorized(c, err.Error())
		case errors.Is(err, store.ErrInvalidRole):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Login failed: "+err.Error())
		}
		return
	}

	accessToken, err := utils.GenerateToken(account, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: accessToken,
		Account:     account.Sanitize(),
	})
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Rank         string `json:"rank"`
	RegtIDIrlaNo string `json:"regtIdIrlaNo"`
	Identity     string `json:"identity" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=admin doctor personnel"`
}

// Register handles account registration. Only admins reach this handler; the
// repository re-checks the acting account regardless.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actingAdminID, exists := middleware.GetAccountIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Account not authenticated")
		return
	}

	id, err := h.Accounts.Register(actingAdminID, store.RegisterInput{
		FullName:     req.FullName,
		Rank:         req.Rank,
		RegtIDIrlaNo: req.RegtIDIrlaNo,
		Identity:     req.Identity,
		Password:     req.Password,
		Role:         models.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotAdmin):
			utils.Forbidden(c, err.Error())
		case errors.Is(err, store.ErrAccountNotFound):
			utils.Unauthorized(c, err.Error())
		case errors.Is(err, store.ErrDuplicateIdentity):
			utils.Conflict(c, err.Error())
		case errors.Is(err, store.ErrWeakPassword), errors.Is(err, store.ErrInvalidRole):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to register account: "+err.Error())
		}
		return
	}

	utils.Created(c, "Account registered successfully", gin.H{"id": id})
}

// GetProfile handles fetching the currently authenticated account's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	accountID, exists := middleware.GetAccountIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Account not authenticated")
		return
	}

	account, err := h.Accounts.GetByID(accountID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if account == nil {
		utils.NotFound(c, "Account profile not found")
		return
	}

	utils.Success(c, "Profile fetched successfully", account.Sanitize())
}
