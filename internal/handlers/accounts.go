package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
	"milmed-app-server/internal/utils"
)

// AccountHandler handles account management requests (admin operations).
type AccountHandler struct {
	Accounts *store.AccountRepository
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *store.AccountRepository) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

// GetAccounts handles fetching all accounts.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.Accounts.GetAll()
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch accounts: "+err.Error())
		return
	}

	sanitized := make([]models.AccountSanitized, len(accounts))
	for i, a := range accounts {
		sanitized[i] = a.Sanitize()
	}

	utils.Success(c, "Accounts fetched successfully", sanitized)
}

// GetAccountByIdentity handles looking up an account by login identity, with
// an optional role filter.
func (h *AccountHandler) GetAccountByIdentity(c *gin.Context) {
	identity := c.Query("identity")
	if identity == "" {
		utils.BadRequest(c, "identity query parameter is required")
		return
	}

	role := models.Role(c.Query("role"))
	if role != "" && !models.ValidRole(role) {
		utils.BadRequest(c, store.ErrInvalidRole.Error())
		return
	}

	account, err := h.Accounts.GetByIdentity(identity, role)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if account == nil {
		utils.NotFound(c, "Account not found")
		return
	}

	utils.Success(c, "Account fetched successfully", account.Sanitize())
}

// UpdateAccountRequest represents the request body for a partial account
// update. Absent fields are left untouched.
type UpdateAccountRequest struct {
	FullName     *string `json:"fullName"`
	Rank         *string `json:"rank"`
	RegtIDIrlaNo *string `json:"regtIdIrlaNo"`
	Role         *string `json:"role"`
	Password     *string `json:"password"`
}

// UpdateAccount handles updating an account by id.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	patch := store.AccountPatch{
		FullName:     req.FullName,
		Rank:         req.Rank,
		RegtIDIrlaNo: req.RegtIDIrlaNo,
		Password:     req.Password,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		patch.Role = &role
	}

	if err := h.Accounts.Update(id, patch); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidRole), errors.Is(err, store.ErrWeakPassword):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to update account: "+err.Error())
		}
		return
	}

	utils.Success(c, "Account updated successfully", nil)
}

// DeleteAccount handles deleting an account by id.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.Accounts.Delete(id); err != nil {
		utils.InternalServerError(c, "Failed to delete account: "+err.Error())
		return
	}

	utils.Success(c, "Account deleted successfully", nil)
}

// GetAccountCount handles fetching the total number of accounts.
func (h *AccountHandler) GetAccountCount(c *gin.Context) {
	count, err := h.Accounts.Count()
	if err != nil {
		utils.InternalServerError(c, "Failed to count accounts: "+err.Error())
		return
	}

	utils.Success(c, "Account count fetched successfully", gin.H{"count": count})
}

// parseIDParam parses the :id path parameter, responding with 400 on garbage.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
