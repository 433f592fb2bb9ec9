package handlers

import (
	"net/http"

	"github.com/ghuser/dune-crafting-api/pkg/errhttp"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	pkgvalidator "github.com/ghuser/dune-crafting-api/pkg/validator"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
)

// SearchItemsQuery holds the query parameters of a name search. Name is nil
// when the parameter is absent; an empty term matches every item.
type SearchItemsQuery struct {
	Name *string `json:"name" validate:"required"`
}

// SearchItemsHandler handles GET /v1/items/search/ requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute searches items by name.
//
//	@Summary		Search for items by name
//	@Description	Case-insensitive substring match on item names, with calculated Deep Desert costs.
//	@Tags			items
//	@Produce		json
//	@Param			name	query		string	true	"Part of the item name"
//	@Success		200		{array}		ItemResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/v1/items/search/ [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var q SearchItemsQuery
	if query := r.URL.Query(); query.Has("name") {
		name := query.Get("name")
		q.Name = &name
	}
	if !pkgvalidator.ValidateRequest(w, &q) {
		return
	}

	items, err := h.svc.Item.Search(r.Context(), *q.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponses(items))
}
