// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"bazaar/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumAds      int
	ShouldClean bool
}

// baselineCategories is the fixed category tree every deployment starts with.
var baselineCategories = []models.Category{
	{Name: "Электроника", Slug: "electronics", Icon: "📱"},
	{Name: "Недвижимость", Slug: "real-estate", Icon: "🏠"},
	{Name: "Автомобили", Slug: "vehicles", Icon: "🚗"},
	{Name: "Одежда", Slug: "clothes", Icon: "👕"},
	{Name: "Мебель", Slug: "furniture", Icon: "🪑"},
	{Name: "Спорт", Slug: "sports", Icon: "⚽"},
}

var sampleImages = models.ImageList{
	"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1589492477829-5e65395b66cc?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1603891128711-11b4b03bb138?w=800&h=600&fit=crop",
	"https://images.unsplash.com/photo-1565849904461-04a58ad377e0?w=800&h=600&fit=crop",
}

// Baseline ensures the fixed reference data exists: the category tree,
// a demo seller and one sample ad. It is idempotent and only inserts
// into empty tables.
func Baseline(db *gorm.DB) error {
	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount == 0 {
		categories := make([]models.Category, len(baselineCategories))
		copy(categories, baselineCategories)
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		log.Printf("✓ %d categories seeded", len(categories))
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Demo_password1"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		demo := &models.User{
			Username: "alexey_k",
			Email:    "alexey@example.com",
			Password: string(hashed),
			Name:     "Алексей К.",
			Phone:    "+7 (999) 123-45-67",
			Rating:   5.0,
			Verified: true,
		}
		if err := db.Create(demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
		log.Printf("✓ demo user %s seeded", demo.Username)
	}

	var adCount int64
	if err := db.Model(&models.Ad{}).Count(&adCount).Error; err != nil {
		return fmt.Errorf("failed to count ads: %w", err)
	}
	if adCount == 0 {
		var user models.User
		if err := db.Where("username = ?", "alexey_k").First(&user).Error; err != nil {
			return err
		}
		var category models.Category
		if err := db.Where("slug = ?", "electronics").First(&category).Error; err != nil {
			return err
		}

		ad := &models.Ad{
			Title:       "iPhone 14 Pro, 256 ГБ",
			Description: "Отличное состояние, полный комплект, чек из магазина.",
			Price:       85000,
			CategoryID:  category.ID,
			UserID:      user.ID,
			Location:    "Москва",
			Condition:   "excellent",
			Status:      models.AdStatusActive,
			Views:       156,
			Images:      sampleImages,
			ContactPrefs: &models.ContactPrefs{
				ShowPhone:     true,
				AllowMessages: true,
			},
		}
		if err := db.Create(ad).Error; err != nil {
			return fmt.Errorf("failed to seed sample ad: %w", err)
		}
		log.Println("✓ sample ad seeded")
	}

	return nil
}

// Seed populates the database with generated test data on top of the
// baseline reference data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d ads...", opts.NumUsers, opts.NumAds)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Baseline(db); err != nil {
		return err
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	for i := 0; i < opts.NumAds; i++ {
		user := users[i%len(users)]
		category := categories[i%len(categories)]
		if _, err := factory.CreateAd(user, &category); err != nil {
			return fmt.Errorf("failed to create ad: %w", err)
		}
	}
	log.Printf("✓ %d ads created", opts.NumAds)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	for _, table := range []string{"messages", "ads", "categories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
