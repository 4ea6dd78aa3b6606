// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"bazaar/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

var seedLocations = []string{
	"Москва", "Санкт-Петербург", "Казань", "Новосибирск",
	"Екатеринбург", "Нижний Новгород", "Краснодар",
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Name:     gofakeit.Name(),
		Phone:    gofakeit.Phone(),
		Rating:   float64(gofakeit.Number(30, 50)) / 10,
		Verified: gofakeit.Bool(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAd constructs and persists a sample `models.Ad` owned by the
// given user in the given category.
func (f *Factory) CreateAd(user *models.User, category *models.Category, overrides ...func(*models.Ad)) (*models.Ad, error) {
	ad := &models.Ad{
		Title:       gofakeit.ProductName(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Price:       float64(gofakeit.Number(500, 200000)),
		CategoryID:  category.ID,
		UserID:      user.ID,
		Location:    seedLocations[f.r.Intn(len(seedLocations))],
		Condition:   models.AdConditions[f.r.Intn(len(models.AdConditions))],
		Status:      models.AdStatusActive,
		Views:       gofakeit.Number(0, 500),
		Images: models.ImageList{
			fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		},
		ContactPrefs: &models.ContactPrefs{
			ShowPhone:     gofakeit.Bool(),
			AllowMessages: true,
			AcceptBargain: gofakeit.Bool(),
		},
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	ad.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(ad)
	}

	if err := f.db.Create(ad).Error; err != nil {
		return nil, err
	}
	return ad, nil
}

// CreateMessage constructs and persists a sample inquiry on the ad.
func (f *Factory) CreateMessage(ad *models.Ad, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		AdID:        ad.ID,
		SenderName:  gofakeit.Name(),
		SenderPhone: gofakeit.Phone(),
		SenderEmail: gofakeit.Email(),
		Body:        gofakeit.Sentence(12),
	}
	if ad.UserID != 0 {
		ownerID := ad.UserID
		message.RecipientID = &ownerID
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
