package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/dune-crafting-api/pkg/app"
	"github.com/ghuser/dune-crafting-api/pkg/ratelimit"
	"github.com/ghuser/dune-crafting-api/services/item/application/handlers"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router. Each
// endpoint carries its own per-IP rate limit; the search limit is shared by
// the slash and no-slash spellings of the path.
func ItemRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	policy := ratelimit.NewPolicy(a.Config, a.Logger)

	list := handlers.NewListItemsHandler(svcs)
	get := handlers.NewGetItemHandler(svcs)
	search := handlers.NewSearchItemsHandler(svcs)

	r.Route("/v1/items", func(r chi.Router) {
		r.With(policy.Middleware(policy.ListItems)).Get("/", list.Execute)

		r.Route("/search", func(r chi.Router) {
			r.Use(policy.Middleware(policy.SearchItems))
			r.Get("/", search.Execute)
		})

		r.With(policy.Middleware(policy.GetItem)).Get("/{item_id}", get.Execute)
	})
}
