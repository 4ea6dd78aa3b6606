package server

import (
	"bazaar/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return respondInternalError(c, err)
	}
	return models.RespondWithCount(c, categories, len(categories))
}

// GetCategoriesWithCounts handles GET /api/categories/with-counts,
// returning each category with its number of active ads.
func (s *Server) GetCategoriesWithCounts(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.ListWithAdsCount(c.Context())
	if err != nil {
		return respondInternalError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, "Category", id)
	}

	return models.Respond(c, fiber.StatusOK, category)
}
