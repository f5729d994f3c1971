package payments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	"github.com/prakashthakuri/Happy-Hours/api/responses"
	"github.com/prakashthakuri/Happy-Hours/api/validators"
	orderssvc "github.com/prakashthakuri/Happy-Hours/internal/orders"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

// PayRequest carries the processor token minted client-side.
type PayRequest struct {
	Token string `json:"token" validate:"required,max=512"`
}

// Pay charges the open order with the method named in the route and places it.
func Pay(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		userID, err := middleware.ShopperID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(chi.URLParam(r, "method"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidPaymentOption, err, "unknown payment route"))
			return
		}

		var payload PayRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Pay(r.Context(), userID, method, payload.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
