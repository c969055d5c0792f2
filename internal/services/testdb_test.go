package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"campusmart/internal/repos"
)

// openTestDB opens an in-memory database with the full schema and baseline
// seed (colleges + admin).
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1) // :memory: is per-connection
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func collegeID(t *testing.T, db *sqlx.DB, emailDomain string) int64 {
	t.Helper()
	var id int64
	if err := db.Get(&id, `SELECT id FROM colleges WHERE email_domain=?`, emailDomain); err != nil {
		t.Fatalf("college %s: %v", emailDomain, err)
	}
	return id
}

func seedUser(t *testing.T, db *sqlx.DB, username string, collegeID int64) int64 {
	t.Helper()
	res, err := db.Exec(`
	  INSERT INTO users(username,email,password_hash,college_id)
	  VALUES(?,?,'x',?)`, username, username+"@test.edu.invalid", collegeID)
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedProduct(t *testing.T, db *sqlx.DB, sellerID int64, title, category, brand string, price float64, createdAt string) int64 {
	t.Helper()
	res, err := db.Exec(`
	  INSERT INTO products(title,description,category,brand,condition,selling_price,seller_id,created_at)
	  VALUES(?,?,?,?,'Good',?,?,?)`, title, "desc of "+title, category, brand, price, sellerID, createdAt)
	if err != nil {
		t.Fatalf("seed product %s: %v", title, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// ts renders a timestamp the given number of days in the past, in the same
// format sqlite CURRENT_TIMESTAMP uses.
func ts(daysAgo int) string {
	return time.Now().UTC().AddDate(0, 0, -daysAgo).Format("2006-01-02 15:04:05")
}
