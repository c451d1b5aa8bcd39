package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for balance views
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/groups/{groupID}", h.GroupBalances)
	r.Get("/groups/{groupID}/net", h.GroupNetBalances)
	r.Get("/users/{userID}", h.UserBalances)
	r.Get("/totals", h.AllUserTotals)

	return r
}

// GroupBalances handles GET /balances/groups/{groupID}
// @Summary      Get pairwise balances within a group
// @Description  Returns who owes whom across all of the group's expenses
// @Tags         balances
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]EntryResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupID} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	entries, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// GroupNetBalances handles GET /balances/groups/{groupID}/net
// @Summary      Get net balances for group members
// @Description  Returns each member's net position; positive means the group owes them
// @Tags         balances
// @Produce      json
// @Param        groupID path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]NetBalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      500 {object} response.APIResponse
// @Router       /balances/groups/{groupID}/net [get]
func (h *Handler) GroupNetBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GroupNetBalances(r.Context(), groupID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// UserBalances handles GET /balances/users/{userID}
// @Summary      Get a user's balances
// @Description  Returns who the user owes and who owes the user, across all groups
// @Tags         balances
// @Produce      json
// @Param        userID path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserBalancesResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/users/{userID} [get]
func (h *Handler) UserBalances(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	balances, err := h.service.UserBalances(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// AllUserTotals handles GET /balances/totals
// @Summary      Get balance totals for all users
// @Description  Returns each user's total owed and total due across all groups
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]UserTotalsResponse}
// @Failure      500 {object} response.APIResponse
// @Router       /balances/totals [get]
func (h *Handler) AllUserTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.AllUserTotals(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, totals)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var consistency *ledger.ConsistencyError
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, "Group not found")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.As(err, &consistency):
		response.DataInconsistent(w, "Stored splits do not reconcile with expense amounts")
	default:
		response.InternalError(w, "Something went wrong")
	}
}
