package handlers

import (
	"campusmart/internal/pricing"

	"github.com/gofiber/fiber/v2"
)

type PricingHandler struct{}

type suggestReq struct {
	OriginalPrice *float64 `json:"original_price"`
	Condition     string   `json:"condition"`
	BrandTier     string   `json:"brand_tier"`
}

// POST /api/v1/price-suggestion
// Unknown condition or brand tier values fall back to defaults; only a
// missing original price is an error.
func (h *PricingHandler) Suggest(c *fiber.Ctx) error {
	var req suggestReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	tier := req.BrandTier
	if tier == "" {
		tier = "medium"
	}
	suggested := pricing.SuggestedPrice(req.OriginalPrice, req.Condition, tier)
	if suggested == nil {
		return jsonErr(c, fiber.StatusBadRequest, "original_price is required")
	}
	return c.JSON(fiber.Map{"suggested_price": *suggested})
}
