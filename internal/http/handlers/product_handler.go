package handlers

import (
	"database/sql"
	"errors"

	"campusmart/internal/domain"
	"campusmart/internal/log"
	"campusmart/internal/services"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type listingReq struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Condition     string   `json:"condition"`
	OriginalPrice *float64 `json:"original_price"`
	SellingPrice  float64  `json:"selling_price"`
	Images        []string `json:"images"` // storage paths, first is primary
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var req listingReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	title, ok := validate.Title(req.Title)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid title")
	}
	if req.Category == "" || req.Condition == "" {
		return jsonErr(c, fiber.StatusBadRequest, "category and condition are required")
	}
	if req.SellingPrice <= 0 {
		return jsonErr(c, fiber.StatusBadRequest, "selling price must be positive")
	}
	if req.OriginalPrice != nil && *req.OriginalPrice <= 0 {
		return jsonErr(c, fiber.StatusBadRequest, "original price must be positive")
	}
	for _, img := range req.Images {
		if _, ok := validate.ImagePath(img); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "images", "value": img})
			return jsonErr(c, fiber.StatusBadRequest, "invalid image path")
		}
	}

	p, err := h.Catalog.CreateListing(u.ID, services.ListingInput{
		Title:         title,
		Description:   req.Description,
		Category:      req.Category,
		Brand:         req.Brand,
		Condition:     req.Condition,
		OriginalPrice: req.OriginalPrice,
		SellingPrice:  req.SellingPrice,
		ImagePaths:    req.Images,
	})
	if err != nil {
		log.Error(c, "listing.create.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not create listing")
	}
	log.Audit(c, "listing.create", map[string]any{"product_id": p.ID, "category": p.Category})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

// GET /products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	d, err := h.Catalog.Detail(u, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	case errors.Is(err, services.ErrOtherCollege):
		log.Security(c, "product.cross_college.block", map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		log.Error(c, "product.detail.error", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(d)
}

// GET /me/products
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	products, err := h.Catalog.ListMine(u.ID)
	if err != nil {
		log.Error(c, "listing.mine.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load your listings")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}
