package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	"github.com/prakashthakuri/Happy-Hours/pkg/pagination"
)

// Repository reads catalog items. Writes exist only for seeding.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a catalog item.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Label == "" {
		item.Label = enums.ItemLabelPrimary
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindBySlug loads the item identified by slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns one page of items ordered newest first, plus the total row count.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Item{})
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params = params.Normalize()
	var items []models.Item
	if err := query.
		Order("created_at DESC").
		Order("id ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
