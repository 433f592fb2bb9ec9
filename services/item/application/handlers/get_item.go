package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/dune-crafting-api/pkg/errhttp"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
)

// GetItemHandler handles GET /v1/items/{item_id} requests.
type GetItemHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns a single item.
//
//	@Summary		Get item by ID
//	@Description	Returns a single item, including calculated Deep Desert costs.
//	@Tags			items
//	@Produce		json
//	@Param			item_id	path		int	true	"Item ID"
//	@Success		200		{object}	ItemResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/v1/items/{item_id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "item_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: %q is not an integer", itemdomain.ErrInvalidItemID, raw))
		return
	}

	item, err := h.svc.Item.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}
