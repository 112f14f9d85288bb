package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/poofware/equity-registry/internal/dtos"
	"github.com/poofware/equity-registry/internal/middleware"
	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/services"
	"github.com/poofware/equity-registry/internal/utils"
)

type RegistryController struct {
	svc services.RegistryService
}

func NewRegistryController(s services.RegistryService) *RegistryController {
	return &RegistryController{svc: s}
}

var validate = validator.New()

// -----------------------------------------------------------------------------
// POST /api/v1/accounts
// -----------------------------------------------------------------------------
func (c *RegistryController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing caller identity", nil,
		)
		return
	}

	var req dtos.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Display name and role are required", nil, err,
		)
		return
	}

	id, msg, err := c.svc.CreateAccount(
		r.Context(), caller, req.DisplayName, models.Role(req.Role), req.InitialBalance,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.CreateAccountResponse{ID: id, Message: msg})
}

// -----------------------------------------------------------------------------
// GET /api/v1/accounts/{id}
// -----------------------------------------------------------------------------
func (c *RegistryController) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	acc, err := c.svc.GetAccount(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.NewAccountFromModel(acc))
}

// -----------------------------------------------------------------------------
// GET /api/v1/accounts/{id}/balance
// -----------------------------------------------------------------------------
func (c *RegistryController) CheckBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	balance, err := c.svc.CheckBalance(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.BalanceResponse{
		Balance: balance,
		Message: "Your current balance is " + formatAmount(balance),
	})
}

// -----------------------------------------------------------------------------
// POST /api/v1/accounts/{id}/property
// -----------------------------------------------------------------------------
func (c *RegistryController) CreateProperty(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing caller identity", nil,
		)
		return
	}
	id, ok := pathAccountID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Property name and a positive value are required", nil, err,
		)
		return
	}

	msg, err := c.svc.CreateProperty(r.Context(), caller, id, req.Name, req.Value)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.MessageResponse{Message: msg})
}

// -----------------------------------------------------------------------------
// POST /api/v1/investments
// -----------------------------------------------------------------------------
func (c *RegistryController) Invest(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing caller identity", nil,
		)
		return
	}

	var req dtos.InvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Owner id, buyer id and a percentage between 1 and 100 are required", nil, err,
		)
		return
	}

	msg, err := c.svc.Invest(r.Context(), caller, req.OwnerID, req.BuyerID, req.Percentage)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: msg})
}

// -----------------------------------------------------------------------------
// shared helpers
// -----------------------------------------------------------------------------

func formatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}

func pathAccountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Account id must be a valid UUID", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}
