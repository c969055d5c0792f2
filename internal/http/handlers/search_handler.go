package handlers

import (
	"strings"

	"campusmart/internal/domain"
	"campusmart/internal/log"
	"campusmart/internal/services"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// GET /search?q=&category=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	u := currentUser(c)

	rawQ := c.Query("q")
	q := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		q, ok = validate.Q(rawQ)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return jsonErr(c, fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
		}
	}
	category := strings.TrimSpace(c.Query("category"))
	if len(category) > 50 {
		return jsonErr(c, fiber.StatusBadRequest, "invalid category")
	}

	products, err := h.Catalog.Search(u, q, category)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load results")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(fiber.Map{
		"query": q, "category": category,
		"products": products, "count": len(products),
	})
}
