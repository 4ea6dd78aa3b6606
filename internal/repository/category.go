package repository

import (
	"context"

	"bazaar/internal/cache"
	"bazaar/internal/models"
	"bazaar/internal/observability"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	ListWithAdsCount(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Category, error)
}

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	defer r.metrics.TrackQuery("list", "categories")()
	// Non-nil so an empty result serializes as [] rather than null.
	categories := make([]*models.Category, 0)
	err := cache.CacheAside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListWithAdsCount returns all categories with the number of active ads
// in each. Categories with no active ads report zero.
func (r *categoryRepository) ListWithAdsCount(ctx context.Context) ([]*models.Category, error) {
	defer r.metrics.TrackQuery("list_with_counts", "categories")()
	categories := make([]*models.Category, 0)
	err := cache.CacheAside(ctx, cache.CategoryCountsKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Category{}).
			Select("categories.*, COUNT(ads.id) as ads_count").
			Joins("LEFT JOIN ads ON ads.category_id = categories.id AND ads.status = ?", models.AdStatusActive).
			Group("categories.id").
			Order("categories.id").
			Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	defer r.metrics.TrackQuery("get", "categories")()
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	defer r.metrics.TrackQuery("get_by_slug", "categories")()
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []*models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}
