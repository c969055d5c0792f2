package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"campusmart/internal/config"
	"campusmart/internal/http/handlers"
	"campusmart/internal/repos"
	"campusmart/internal/services"
)

// newTestApp wires the real routes against an in-memory database, mirroring
// cmd/campusmart/main.go without the rate limiters.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1) // :memory: is per-connection
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Colleges: repos.NewCollegeRepo(db)}
	reviewSvc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db))
	authH := &handlers.AuthHandler{Auth: authSvc, Reviews: reviewSvc}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				c.Locals("user_id", u.ID)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, config.Config{DBDSN: ":memory:"}, authSvc)

	app.Post("/register", authH.Register)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/me", handlers.RequireUser(authSvc), authH.Me)
	app.Put("/me", handlers.RequireUser(authSvc), authH.UpdateMe)
	app.Get("/me/products", handlers.RequireUser(authSvc), deps.ProductHandler.Mine)
	app.Get("/search", handlers.RequireUser(authSvc), deps.SearchHandler.Search)
	app.Post("/products", handlers.RequireUser(authSvc), deps.ProductHandler.Create)
	app.Get("/products/:id", handlers.RequireUser(authSvc), deps.ProductHandler.Detail)
	app.Get("/products/:id/buy", handlers.RequireUser(authSvc), deps.PurchaseHandler.Checkout)
	app.Post("/purchases", handlers.RequireUser(authSvc), deps.PurchaseHandler.Place)
	app.Post("/products/:id/reviews", handlers.RequireUser(authSvc), deps.ReviewHandler.Create)
	app.Get("/analytics", handlers.RequireUser(authSvc), deps.AnalyticsHandler.Snapshot)

	api := app.Group("/api/v1")
	api.Post("/price-suggestion", deps.PricingHandler.Suggest)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/products/:id/featured", deps.AdminHandler.ToggleFeatured)
	admin.Get("/users", deps.AdminHandler.UsersPage)

	return app, db, authSvc
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// sessionFor logs a known user id straight into a session.
func sessionFor(t *testing.T, db *sqlx.DB, sid string, userID int64) *http.Cookie {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession(sid, userID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

func seedAccount(t *testing.T, db *sqlx.DB, username, emailDomain string) int64 {
	t.Helper()
	var cid int64
	if err := db.Get(&cid, `SELECT id FROM colleges WHERE email_domain=?`, emailDomain); err != nil {
		t.Fatalf("college %s: %v", emailDomain, err)
	}
	res, err := db.Exec(`INSERT INTO users(username,email,password_hash,college_id) VALUES(?,?,'x',?)`,
		username, username+"@"+emailDomain, cid)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedListing(t *testing.T, db *sqlx.DB, sellerID int64, title, category string, price float64) int64 {
	t.Helper()
	res, err := db.Exec(`
	  INSERT INTO products(title,description,category,brand,condition,selling_price,seller_id)
	  VALUES(?,?,?,'','Good',?,?)`, title, "", category, price, sellerID)
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}
