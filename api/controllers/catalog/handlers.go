package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/prakashthakuri/Happy-Hours/api/responses"
	"github.com/prakashthakuri/Happy-Hours/api/validators"
	catalogsvc "github.com/prakashthakuri/Happy-Hours/internal/catalog"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	"github.com/prakashthakuri/Happy-Hours/pkg/pagination"
)

const maxSlugLength = 200

// ItemList serves the paginated catalog, optionally narrowed by category or
// merchandising type.
func ItemList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		filters, err := parseFilters(query.Get("category"), query.Get("type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.ParseParams(query.Get("page"), query.Get("limit"))

		result, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ItemDetail serves a single catalog item by slug.
func ItemDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), maxSlugLength)
		item, err := svc.FindBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalogsvc.NewItemDTO(item))
	}
}

func parseFilters(rawCategory, rawType string) (catalogsvc.ListFilters, error) {
	var filters catalogsvc.ListFilters
	if value := strings.ToLower(strings.TrimSpace(rawCategory)); value != "" {
		category, err := enums.ParseItemCategory(value)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
				WithDetails(map[string]any{"field": "category"})
		}
		filters.Category = &category
	}
	if value := strings.ToLower(strings.TrimSpace(rawType)); value != "" {
		itemType, err := enums.ParseItemType(value)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type").
				WithDetails(map[string]any{"field": "type"})
		}
		filters.Type = &itemType
	}
	return filters, nil
}
