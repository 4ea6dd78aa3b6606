package server

import (
	"strconv"
	"strings"

	"bazaar/internal/models"
	"bazaar/internal/repository"
	"bazaar/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAds handles GET /api/ads with filtering, search and sorting.
func (s *Server) GetAds(c *fiber.Ctx) error {
	filter := repository.AdFilter{
		Status:      c.Query("status"),
		CategoryIDs: parseUintList(c.Query("category_id")),
		Conditions:  parseConditionList(c.Query("condition")),
		Location:    c.Query("location"),
		Search:      c.Query("search"),
		Sort:        c.Query("sort", "newest"),
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	ads, err := s.adService.ListAds(c.Context(), filter)
	if err != nil {
		return respondInternalError(c, err)
	}

	return models.RespondWithCount(c, ads, len(ads))
}

// GetAd handles GET /api/ads/:id. Every hit counts as a view.
func (s *Server) GetAd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.adService.GetAdDetail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Ad", id)
	}

	return models.Respond(c, fiber.StatusOK, detail)
}

type createAdRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Price        float64              `json:"price"`
	CategoryID   uint                 `json:"category_id"`
	Location     string               `json:"location"`
	Condition    string               `json:"condition"`
	Images       models.ImageList     `json:"images"`
	ContactPrefs *models.ContactPrefs `json:"contact_info"`
}

// CreateAd handles POST /api/ads
func (s *Server) CreateAd(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req createAdRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" || req.Price == 0 ||
		req.CategoryID == 0 || req.Location == "" || req.Condition == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	ad, err := s.adService.CreateAd(c.Context(), service.CreateAdInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		Location:     req.Location,
		Condition:    req.Condition,
		Images:       req.Images,
		ContactPrefs: req.ContactPrefs,
	})
	if err != nil {
		return respondServiceError(c, err, "Ad", 0)
	}

	return models.RespondWithMessage(c, fiber.StatusCreated, ad, "Ad created successfully")
}

// CreateAdBySlug handles POST /api/ads/create, the variant used by the
// publish form: the category arrives as a slug and contact preferences
// as individual flags.
func (s *Server) CreateAdBySlug(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Category      string           `json:"category"`
		Title         string           `json:"title"`
		Description   string           `json:"description"`
		Price         float64          `json:"price"`
		Location      string           `json:"location"`
		Condition     string           `json:"condition"`
		Images        models.ImageList `json:"images"`
		ShowPhone     bool             `json:"showPhone"`
		AllowMessages bool             `json:"allowMessages"`
		AcceptBargain bool             `json:"acceptBargain"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Description == "" || req.Price == 0 ||
		req.Category == "" || req.Location == "" || req.Condition == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields"))
	}

	category, err := s.categoryRepo.GetBySlug(c.Context(), req.Category)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category not found"))
	}

	ad, err := s.adService.CreateAd(c.Context(), service.CreateAdInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  category.ID,
		Location:    req.Location,
		Condition:   req.Condition,
		Images:      req.Images,
		ContactPrefs: &models.ContactPrefs{
			ShowPhone:     req.ShowPhone,
			AllowMessages: req.AllowMessages,
			AcceptBargain: req.AcceptBargain,
		},
	})
	if err != nil {
		return respondServiceError(c, err, "Ad", 0)
	}

	return models.RespondWithMessage(c, fiber.StatusCreated, ad, "Ad created successfully")
}

// UpdateAd handles PUT /api/ads/:id. The body is a partial update; only
// present fields change. An empty patch returns the current row.
func (s *Server) UpdateAd(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.AdPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adService.UpdateAd(c.Context(), userID, id, &patch)
	if err != nil {
		return respondServiceError(c, err, "Ad", id)
	}

	return models.RespondWithMessage(c, fiber.StatusOK, ad, "Ad updated successfully")
}

// DeleteAd handles DELETE /api/ads/:id
func (s *Server) DeleteAd(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adService.DeleteAd(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err, "Ad", id)
	}

	return models.RespondWithMessage(c, fiber.StatusOK, nil, "Ad deleted successfully")
}

// SendAdMessage handles POST /api/ads/:id/message
func (s *Server) SendAdMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.adService.SendMessage(c.Context(), id, service.SendMessageInput{
		SenderName:  req.Name,
		SenderPhone: req.Phone,
		SenderEmail: req.Email,
		Body:        req.Message,
	})
	if err != nil {
		return respondServiceError(c, err, "Ad", id)
	}

	return models.RespondWithMessage(c, fiber.StatusCreated, message, "Message sent successfully")
}

// GetAdMessages handles GET /api/ads/:id/messages. Only the ad's owner
// may read its inbox.
func (s *Server) GetAdMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ad, err := s.adRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Ad", id)
	}
	if ad.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only read messages for your own ads"))
	}

	messages, err := s.adService.ListMessages(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Ad", id)
	}

	return models.RespondWithCount(c, messages, len(messages))
}

// GetStats handles GET /api/ads/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.adService.Stats(c.Context())
	if err != nil {
		return respondInternalError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, stats)
}

// parseUintList splits a comma-separated list of IDs, silently dropping
// tokens that do not parse.
func parseUintList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if id, err := strconv.ParseUint(tok, 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// parseConditionList splits a comma-separated condition filter. The
// literal "any" means no constraint.
func parseConditionList(raw string) []string {
	if raw == "" || raw == "any" {
		return nil
	}
	var conds []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			conds = append(conds, tok)
		}
	}
	return conds
}
