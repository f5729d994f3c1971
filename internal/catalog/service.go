package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/pagination"
)

type itemRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Item, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Item, int64, error)
}

// ListFilters narrows the browse listing.
type ListFilters struct {
	Category *enums.ItemCategory
	Type     *enums.ItemType
}

// ListResult is one page of catalog items.
type ListResult struct {
	Items []ItemDTO       `json:"items"`
	Page  pagination.Page `json:"page"`
}

// Service exposes read-only catalog lookups to the cart and the API.
type Service interface {
	FindBySlug(ctx context.Context, slug string) (*models.Item, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error)
}

type service struct {
	repo itemRepository
}

// NewService builds a catalog service.
func NewService(repo itemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) FindBySlug(ctx context.Context, slug string) (*models.Item, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item slug is required")
	}
	item, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").WithDetails(map[string]any{"slug": slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	items, total, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, NewItemDTO(&items[i]))
	}
	return &ListResult{Items: dtos, Page: pagination.NewPage(params, total)}, nil
}
