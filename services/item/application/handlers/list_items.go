package handlers

import (
	"net/http"

	"github.com/ghuser/dune-crafting-api/pkg/errhttp"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
)

// ListItemsHandler handles GET /v1/items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists every craftable item.
//
//	@Summary		Get all craftable items
//	@Description	Returns every craftable item, including calculated Deep Desert costs.
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		429	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/v1/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponses(items))
}
