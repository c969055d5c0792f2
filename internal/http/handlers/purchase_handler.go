package handlers

import (
	"database/sql"
	"errors"

	"campusmart/internal/log"
	"campusmart/internal/payments"
	"campusmart/internal/services"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	Purchase *services.PurchaseService
}

// GET /products/:id/buy: checkout preview with the money split.
func (h *PurchaseHandler) Checkout(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	p, commission, sellerAmount, err := h.Purchase.Quote(id)
	if errors.Is(err, sql.ErrNoRows) {
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	if err != nil {
		log.Error(c, "checkout.error", err, map[string]any{"product_id": id})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load checkout")
	}
	if p.IsSold {
		return jsonErr(c, fiber.StatusConflict, services.ErrAlreadySold.Error())
	}
	if p.SellerID == u.ID {
		return jsonErr(c, fiber.StatusForbidden, services.ErrOwnProduct.Error())
	}
	return c.JSON(fiber.Map{
		"product":       p,
		"commission":    commission,
		"seller_amount": sellerAmount,
	})
}

type purchaseReq struct {
	ProductID int64  `json:"product_id"`
	PaymentID string `json:"payment_id"` // confirmation token from the payment collaborator
}

// POST /purchases
func (h *PurchaseHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)
	var req purchaseReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ProductID < 1 {
		return jsonErr(c, fiber.StatusBadRequest, "missing product_id")
	}

	t, err := h.Purchase.Buy(u, req.ProductID, req.PaymentID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return jsonErr(c, fiber.StatusNotFound, "this item is no longer available")
	case errors.Is(err, services.ErrAlreadySold):
		log.Info(c, "purchase.reject.sold", map[string]any{"product_id": req.ProductID})
		return jsonErr(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrOwnProduct):
		log.Security(c, "purchase.reject.self", map[string]any{"product_id": req.ProductID})
		return jsonErr(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, payments.ErrNoConfirmation):
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		log.Error(c, "purchase.error", err, map[string]any{"product_id": req.ProductID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not complete purchase")
	}

	log.Audit(c, "purchase.complete", map[string]any{
		"transaction_id": t.ID, "product_id": t.ProductID, "amount": t.Amount, "commission": t.Commission,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": t})
}
