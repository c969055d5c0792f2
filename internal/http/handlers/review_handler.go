package handlers

import (
	"database/sql"
	"errors"

	"campusmart/internal/log"
	"campusmart/internal/services"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /products/:id/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return jsonErr(c, fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	rv, err := h.Reviews.Add(u, id, req.Rating, req.Comment)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	case errors.Is(err, services.ErrDuplicateReview):
		// the original review stands
		return jsonErr(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrOwnReview):
		return jsonErr(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		log.Error(c, "review.create.error", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "could not add review")
	}

	log.Audit(c, "review.create", map[string]any{"product_id": id, "rating": req.Rating})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": rv})
}
