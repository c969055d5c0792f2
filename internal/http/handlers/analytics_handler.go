package handlers

import (
	"time"

	"campusmart/internal/log"
	"campusmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// GET /analytics: the caller's college over the trailing 30 days.
func (h *AnalyticsHandler) Snapshot(c *fiber.Ctx) error {
	u := currentUser(c)
	snap, err := h.Analytics.ComputeSnapshot(u.CollegeID, time.Now())
	if err != nil {
		log.Error(c, "analytics.error", err, map[string]any{"college_id": u.CollegeID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load analytics")
	}
	return c.JSON(snap)
}
