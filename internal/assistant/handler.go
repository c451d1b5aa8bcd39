package assistant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/pkg/response"
	"github.com/splitledger/splitledger/pkg/validate"
)

// Handler handles HTTP requests for the assistant proxy
type Handler struct {
	client *Client
}

// NewHandler creates a new assistant handler with client dependency injected
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns the router for assistant endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/query", h.Query)

	return r
}

// Query handles POST /agent/query
// @Summary      Ask the assistant a question
// @Description  Forwards a natural-language question about users, groups, expenses, or balances to the assistant service
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        request body QueryRequest true "Assistant query"
// @Success      200 {object} response.APIResponse{data=QueryResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /agent/query [post]
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validate.Struct(&req); details != nil {
		response.ValidationFailed(w, details)
		return
	}

	answer, err := h.client.Query(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			response.BadGateway(w, "Assistant service is unavailable")
			return
		}
		response.InternalError(w, "Something went wrong")
		return
	}

	response.JSON(w, http.StatusOK, QueryResponse{Response: answer})
}
