// Package errhttp renders item domain errors as JSON HTTP responses.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	"github.com/ghuser/dune-crafting-api/pkg/telemetry"
	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
)

// WriteError writes err as {"error": message} with the status its sentinel
// maps to. Unrecognized errors become a 500 whose message is replaced by the
// status text; the original is reported to Sentry.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(err)
	}
	httpx.JSONError(w, status, clientMessage(err, status))
}

// clientMessage prefers the text of a NotFoundError over the wrapped chain,
// so "get item: Item with ID 7 not found" is shown as "Item with ID 7 not found".
func clientMessage(err error, status int) string {
	var nf *itemdomain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Message
	}
	return httpx.SafeError(err, status)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItemName),
		errors.Is(err, itemdomain.ErrInvalidItemType),
		errors.Is(err, itemdomain.ErrInvalidItemID),
		errors.Is(err, itemdomain.ErrInvalidMaterial):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
