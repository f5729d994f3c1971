package checkout

import (
	"net/http"

	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	"github.com/prakashthakuri/Happy-Hours/api/responses"
	"github.com/prakashthakuri/Happy-Hours/api/validators"
	checkoutsvc "github.com/prakashthakuri/Happy-Hours/internal/checkout"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

// CheckoutSubmit records billing details and the chosen payment option, then
// points the client at the payment route for that option.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := middleware.ShopperID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// field validation happens in the service after normalization
		var input checkoutsvc.Input
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		directive, err := svc.SubmitCheckout(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, directive)
	}
}
