package service

import (
	"context"
	"errors"
	"strings"

	"bazaar/internal/models"
	"bazaar/internal/observability"
	"bazaar/internal/repository"

	"gorm.io/gorm"
)

// AdService implements the ad read and write flows. Listings are stored
// rows; the service assembles the read model by attaching seller and
// category projections, resolving dangling references to null.
type AdService struct {
	adRepo       repository.AdRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	messageRepo  repository.MessageRepository
}

type CreateAdInput struct {
	UserID       uint
	Title        string
	Description  string
	Price        float64
	CategoryID   uint
	Location     string
	Condition    string
	Images       models.ImageList
	ContactPrefs *models.ContactPrefs
}

type SendMessageInput struct {
	SenderName  string
	SenderPhone string
	SenderEmail string
	Body        string
}

func NewAdService(
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	messageRepo repository.MessageRepository,
) *AdService {
	return &AdService{
		adRepo:       adRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		messageRepo:  messageRepo,
	}
}

const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
)

func (s *AdService) CreateAd(ctx context.Context, in CreateAdInput) (*models.Ad, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}
	if in.Price < 0 {
		return nil, models.NewValidationError("Price cannot be negative")
	}
	if in.Condition != "" && !models.ValidAdCondition(in.Condition) {
		return nil, models.NewValidationError("Invalid condition")
	}

	var categorySlug string
	if in.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("Invalid category_id")
			}
			return nil, err
		}
		categorySlug = category.Slug
	}

	ad := &models.Ad{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		CategoryID:   in.CategoryID,
		UserID:       in.UserID,
		Location:     in.Location,
		Condition:    in.Condition,
		Status:       models.AdStatusActive,
		Images:       in.Images,
		ContactPrefs: in.ContactPrefs,
	}
	if ad.Images == nil {
		ad.Images = models.ImageList{}
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	observability.AdsCreatedTotal.WithLabelValues(categorySlug).Inc()

	if err := s.attachRefs(ctx, []*models.Ad{ad}); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdService) ListAds(ctx context.Context, filter repository.AdFilter) ([]*models.Ad, error) {
	ads, err := s.adRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attachRefs(ctx, ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// GetAdDetail records a view and returns the detail read model. The
// increment happens before the read so the returned count includes
// this visit.
func (s *AdService) GetAdDetail(ctx context.Context, id uint) (*models.AdDetail, error) {
	if err := s.adRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	observability.AdViewsTotal.Inc()

	if err := s.attachRefs(ctx, []*models.Ad{ad}); err != nil {
		return nil, err
	}

	detail := &models.AdDetail{Ad: *ad, Messages: ad.MessagesCount}
	if ad.UserID != 0 {
		if user, err := s.userRepo.GetByID(ctx, ad.UserID); err == nil {
			detail.User = user.PublicDetail()
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return detail, nil
}

func (s *AdService) UpdateAd(ctx context.Context, userID, adID uint, patch *models.AdPatch) (*models.Ad, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only update your own ads")
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*patch.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
	}
	if patch.Description != nil && len(*patch.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, models.NewValidationError("Price cannot be negative")
	}
	if patch.Condition != nil && *patch.Condition != "" && !models.ValidAdCondition(*patch.Condition) {
		return nil, models.NewValidationError("Invalid condition")
	}
	if patch.Status != nil && !models.ValidAdStatus(*patch.Status) {
		return nil, models.NewValidationError("Invalid status (want active, sold or closed)")
	}
	if patch.CategoryID != nil && *patch.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, *patch.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("Invalid category_id")
			}
			return nil, err
		}
	}

	updated, err := s.adRepo.Patch(ctx, adID, patch)
	if err != nil {
		return nil, err
	}
	if err := s.attachRefs(ctx, []*models.Ad{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AdService) DeleteAd(ctx context.Context, userID, adID uint) error {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own ads")
	}
	return s.adRepo.Delete(ctx, adID)
}

// SendMessage records an inquiry addressed to the ad's current owner.
func (s *AdService) SendMessage(ctx context.Context, adID uint, in SendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.SenderName) == "" || strings.TrimSpace(in.SenderPhone) == "" ||
		strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Name, phone and message are required")
	}

	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		AdID:        adID,
		SenderName:  in.SenderName,
		SenderPhone: in.SenderPhone,
		SenderEmail: in.SenderEmail,
		Body:        in.Body,
	}
	if ad.UserID != 0 {
		ownerID := ad.UserID
		message.RecipientID = &ownerID
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.MessagesSentTotal.Inc()
	return message, nil
}

func (s *AdService) ListMessages(ctx context.Context, adID uint) ([]*models.Message, error) {
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByAd(ctx, adID)
}

func (s *AdService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.adRepo.Stats(ctx)
}

// attachRefs resolves seller and category projections for a batch of
// ads in two queries. Dangling references stay nil.
func (s *AdService) attachRefs(ctx context.Context, ads []*models.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	userIDs := make([]uint, 0, len(ads))
	categoryIDs := make([]uint, 0, len(ads))
	seenUsers := map[uint]struct{}{}
	seenCategories := map[uint]struct{}{}
	for _, ad := range ads {
		if ad.UserID != 0 {
			if _, ok := seenUsers[ad.UserID]; !ok {
				seenUsers[ad.UserID] = struct{}{}
				userIDs = append(userIDs, ad.UserID)
			}
		}
		if ad.CategoryID != 0 {
			if _, ok := seenCategories[ad.CategoryID]; !ok {
				seenCategories[ad.CategoryID] = struct{}{}
				categoryIDs = append(categoryIDs, ad.CategoryID)
			}
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	categories, err := s.categoryRepo.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}

	usersByID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	categoriesByID := make(map[uint]*models.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	for _, ad := range ads {
		if u := usersByID[ad.UserID]; u != nil {
			ad.User = u.Public()
		}
		if c := categoriesByID[ad.CategoryID]; c != nil {
			ad.Category = c.ForAd()
		}
	}
	return nil
}
