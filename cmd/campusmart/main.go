package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"campusmart/internal/config"
	"campusmart/internal/http/handlers"
	applog "campusmart/internal/log"
	"campusmart/internal/repos"
	"campusmart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	collegeRepo := repos.NewCollegeRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Colleges: collegeRepo}
	reviewSvc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db))
	authH := &handlers.AuthHandler{Auth: authSvc, Reviews: reviewSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard (JSON payloads only)
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/media/")
		},
	}))

	// ---------- Stored images ----------
	uploadDir := cfg.UploadDir
	if !filepath.IsAbs(uploadDir) {
		if abs, err := filepath.Abs(uploadDir); err == nil {
			uploadDir = abs
		}
	}
	log.Printf("[static] /media -> %s", uploadDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(uploadDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	// Registration & sessions (login throttled)
	app.Post("/register", authH.Register)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Profile
	app.Get("/me", handlers.RequireUser(authSvc), authH.Me)
	app.Put("/me", handlers.RequireUser(authSvc), authH.UpdateMe)
	app.Get("/me/products", handlers.RequireUser(authSvc), deps.ProductHandler.Mine)

	// Catalog (college-scoped, login required)
	app.Get("/search", handlers.RequireUser(authSvc),
		limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.SearchHandler.Search)
	app.Post("/products", handlers.RequireUser(authSvc), deps.ProductHandler.Create)
	app.Get("/products/:id", handlers.RequireUser(authSvc), deps.ProductHandler.Detail)

	// Purchases
	app.Get("/products/:id/buy", handlers.RequireUser(authSvc), deps.PurchaseHandler.Checkout)
	app.Post("/purchases", handlers.RequireUser(authSvc), deps.PurchaseHandler.Place)

	// Reviews
	app.Post("/products/:id/reviews", handlers.RequireUser(authSvc), deps.ReviewHandler.Create)

	// Analytics
	app.Get("/analytics", handlers.RequireUser(authSvc), deps.AnalyticsHandler.Snapshot)

	// Pricing API
	api := app.Group("/api/v1")
	api.Post("/price-suggestion", deps.PricingHandler.Suggest)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/products/:id/featured", deps.AdminHandler.ToggleFeatured)
	admin.Get("/users", deps.AdminHandler.UsersPage)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
