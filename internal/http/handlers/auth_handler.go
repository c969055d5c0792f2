package handlers

import (
	"errors"
	"time"

	"campusmart/internal/log"
	"campusmart/internal/services"
	"campusmart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Reviews *services.ReviewService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

type registerReq struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	CollegeName string `json:"college_name"`
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "username"})
		return jsonErr(c, fiber.StatusBadRequest, "invalid username")
	}
	if !validate.Password(req.Password) {
		return jsonErr(c, fiber.StatusBadRequest, "password must be 8-64 chars with letters and digits")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid phone number")
	}

	u, err := h.Auth.Register(services.Registration{
		Username:    username,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       phone,
		CollegeName: req.CollegeName,
	})
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		log.Security(c, "auth.register.fail", map[string]any{"email": req.Email, "reason": "bad_domain"})
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		return jsonErr(c, fiber.StatusConflict, err.Error())
	case err != nil:
		log.Error(c, "auth.register.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not register")
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": u.Email, "college_id": u.CollegeID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": viewOf(u)})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"user": viewOf(u)})
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /me returns the profile with reviews received and the seller's average rating.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	reviews, err := h.Reviews.ListBySeller(u.ID)
	if err != nil {
		log.Error(c, "profile.load.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load profile")
	}
	avg, err := h.Reviews.SellerRating(u.ID)
	if err != nil {
		log.Error(c, "profile.rating.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load profile")
	}
	return c.JSON(fiber.Map{"user": viewOf(u), "reviews": reviews, "avg_rating": avg})
}

type profileReq struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image"`
}

// PUT /me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	u := currentUser(c)
	var req profileReq
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Username != "" {
		if _, ok := validate.Username(req.Username); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid username")
		}
	}
	if req.Phone != "" {
		if _, ok := validate.Phone(req.Phone); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid phone number")
		}
	}
	if req.ProfileImage != "" {
		if _, ok := validate.ImagePath(req.ProfileImage); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid image path")
		}
	}

	updated, err := h.Auth.UpdateProfile(u, services.ProfileUpdate{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return jsonErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return jsonErr(c, fiber.StatusConflict, err.Error())
	case err != nil:
		log.Error(c, "profile.update.error", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not update profile")
	}
	log.Audit(c, "profile.update", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"user": viewOf(updated)})
}
