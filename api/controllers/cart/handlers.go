package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	"github.com/prakashthakuri/Happy-Hours/api/responses"
	"github.com/prakashthakuri/Happy-Hours/api/validators"
	cartsvc "github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

const maxSlugLength = 200

type mutation func(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error)

// CartAddItem adds one unit of the item named by {slug} to the open order.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, http.StatusCreated, func(s cartsvc.Service) mutation { return s.AddItem })
}

// CartRemoveItem drops the whole line for {slug}.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, http.StatusOK, func(s cartsvc.Service) mutation { return s.RemoveItem })
}

// CartDecrementItem removes one unit of {slug}, dropping the line at zero.
func CartDecrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, http.StatusOK, func(s cartsvc.Service) mutation { return s.DecrementItem })
}

// CartSummary returns the priced open order for the shopper.
func CartSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := middleware.ShopperID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOpenOrder(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartsvc.NewOrderDTO(order))
	}
}

func mutate(svc cartsvc.Service, logg *logger.Logger, status int, pick func(cartsvc.Service) mutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := middleware.ShopperID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), maxSlugLength)
		order, err := pick(svc)(r.Context(), userID, slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, status, cartsvc.NewOrderDTO(order))
	}
}
