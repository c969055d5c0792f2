package handlers

import (
	"database/sql"
	"errors"

	applog "campusmart/internal/log"
	"campusmart/internal/repos"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users *repos.UserRepo
	Prods *repos.ProductRepo
	Txns  *repos.TransactionRepo
}

// GET /admin: platform-wide dashboard stats.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	users, err := h.Users.Count()
	if err != nil {
		return h.fail(c, "admin.dashboard.fail", err)
	}
	products, err := h.Prods.Count()
	if err != nil {
		return h.fail(c, "admin.dashboard.fail", err)
	}
	completed, err := h.Txns.CompletedCount()
	if err != nil {
		return h.fail(c, "admin.dashboard.fail", err)
	}
	commission, err := h.Txns.CommissionTotal()
	if err != nil {
		return h.fail(c, "admin.dashboard.fail", err)
	}
	recent, err := h.Txns.ListRecentCompleted(10)
	if err != nil {
		return h.fail(c, "admin.dashboard.fail", err)
	}
	return c.JSON(fiber.Map{
		"total_users":         users,
		"total_products":      products,
		"total_transactions":  completed,
		"total_commission":    commission,
		"recent_transactions": recent,
	})
}

// POST /admin/products/:id/featured: flip the featured flag.
func (h *AdminHandler) ToggleFeatured(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid product id")
	}
	if _, err := h.Prods.Get(id); errors.Is(err, sql.ErrNoRows) {
		return jsonErr(c, fiber.StatusNotFound, "product not found")
	} else if err != nil {
		return h.fail(c, "admin.featured.fail", err)
	}
	featured, err := h.Prods.ToggleFeatured(id)
	if err != nil {
		return h.fail(c, "admin.featured.fail", err)
	}
	applog.Audit(c, "admin.featured.toggle", map[string]any{"product_id": id, "featured": featured})
	return c.JSON(fiber.Map{"product_id": id, "featured": featured})
}

// GET /admin/users: regular accounts only.
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.ListNonAdmin()
	if err != nil {
		return h.fail(c, "admin.users.list.fail", err)
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, viewOf(&users[i]))
	}
	return c.JSON(fiber.Map{"users": out})
}

func (h *AdminHandler) fail(c *fiber.Ctx, action string, err error) error {
	applog.Error(c, action, err, nil)
	return jsonErr(c, fiber.StatusInternalServerError, "admin operation failed")
}
