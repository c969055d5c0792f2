package handlers

import (
	"campusmart/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func jsonErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// currentUser reads the user the session middleware attached, if any.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// userView is the wire shape of an account; the password hash never leaves.
type userView struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	CollegeID     int64   `json:"college_id"`
	Phone         string  `json:"phone,omitempty"`
	ProfileImage  string  `json:"profile_image,omitempty"`
	IsAdmin       bool    `json:"is_admin"`
	WalletBalance float64 `json:"wallet_balance"`
}

func viewOf(u *domain.User) userView {
	return userView{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		CollegeID:     u.CollegeID,
		Phone:         u.Phone,
		ProfileImage:  u.ProfileImage,
		IsAdmin:       u.IsAdmin,
		WalletBalance: u.WalletBalance,
	}
}
