// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"bazaar/internal/cache"
	"bazaar/internal/models"
	"bazaar/internal/observability"

	"gorm.io/gorm"
)

// maxListResults caps unpaginated listing queries.
const maxListResults = 1000

// AdFilter describes the predicates applied to an ad listing query.
// Zero values mean "no constraint"; list fields are OR-ed within the
// field and AND-ed across fields.
type AdFilter struct {
	UserID      *uint
	Status      string
	CategoryIDs []uint
	Conditions  []string
	MinPrice    *float64
	MaxPrice    *float64
	Location    string
	Search      string
	Sort        string
}

// AdRepository defines the interface for ad data operations
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id uint) (*models.Ad, error)
	List(ctx context.Context, filter AdFilter) ([]*models.Ad, error)
	Patch(ctx context.Context, id uint, patch *models.AdPatch) (*models.Ad, error)
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*models.Stats, error)
}

// adRepository implements AdRepository
type adRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewAdRepository creates a new ad repository
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	defer r.metrics.TrackQuery("create", "ads")()
	err := r.db.WithContext(ctx).Create(ad).Error
	if err == nil {
		cache.InvalidateAdAggregates(ctx)
	}
	return err
}

// applyAdDetails adds the message count subquery used by the detail view.
func (r *adRepository) applyAdDetails(db *gorm.DB) *gorm.DB {
	return db.Select("ads.*, " +
		"(SELECT COUNT(*) FROM messages WHERE messages.ad_id = ads.id) as messages_count")
}

func (r *adRepository) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	defer r.metrics.TrackQuery("get", "ads")()
	var ad models.Ad
	err := r.applyAdDetails(r.db.WithContext(ctx)).First(&ad, id).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) List(ctx context.Context, filter AdFilter) ([]*models.Ad, error) {
	defer r.metrics.TrackQuery("list", "ads")()
	// Non-nil so an empty result serializes as [] rather than null.
	ads := make([]*models.Ad, 0)
	q := r.db.WithContext(ctx).Model(&models.Ad{})

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if len(filter.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.Conditions) > 0 {
		q = q.Where("condition IN ?", filter.Conditions)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}

	err := r.applySort(q, filter.Sort).
		Limit(maxListResults).
		Find(&ads).Error
	if err != nil {
		return nil, err
	}
	return ads, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// Unrecognized values fall back to newest-first.
func (r *adRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "price-low":
		return db.Order("price ASC")
	case "price-high":
		return db.Order("price DESC")
	case "oldest":
		return db.Order("created_at ASC")
	case "popular":
		return db.Order("views DESC")
	default: // "newest" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

func (r *adRepository) Patch(ctx context.Context, id uint, patch *models.AdPatch) (*models.Ad, error) {
	defer r.metrics.TrackQuery("patch", "ads")()
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Images != nil {
		updates["images"] = *patch.Images
	}
	if patch.ContactPrefs != nil {
		updates["contact_info"] = *patch.ContactPrefs
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Ad{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		cache.InvalidateAdAggregates(ctx)
	}

	return r.GetByID(ctx, id)
}

func (r *adRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete", "ads")()
	res := r.db.WithContext(ctx).Delete(&models.Ad{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateAdAggregates(ctx)
	return nil
}

func (r *adRepository) IncrementViews(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("increment_views", "ads")()
	return r.db.WithContext(ctx).
		Model(&models.Ad{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *adRepository) Stats(ctx context.Context) (*models.Stats, error) {
	defer r.metrics.TrackQuery("stats", "ads")()
	var stats models.Stats
	err := cache.CacheAside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		db := r.db.WithContext(ctx)
		if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Ad{}).Count(&stats.TotalAds).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
			return err
		}
		return db.Model(&models.Ad{}).Where("status = ?", models.AdStatusActive).Count(&stats.ActiveAds).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
