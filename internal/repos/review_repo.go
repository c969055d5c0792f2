package repos

import (
	"database/sql"

	"campusmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Exists(productID, reviewerID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM reviews WHERE product_id=? AND reviewer_id=?`, productID, reviewerID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReviewRepo) Create(rv *domain.Review) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO reviews(product_id,reviewer_id,seller_id,rating,comment)
	  VALUES(?,?,?,?,?)`,
		rv.ProductID, rv.ReviewerID, rv.SellerID, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ReviewRepo) ListByProduct(productID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id,product_id,reviewer_id,seller_id,rating,comment,created_at
	  FROM reviews WHERE product_id=?
	  ORDER BY created_at DESC, id DESC`, productID)
	return out, err
}

func (r *ReviewRepo) ListBySeller(sellerID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id,product_id,reviewer_id,seller_id,rating,comment,created_at
	  FROM reviews WHERE seller_id=?
	  ORDER BY created_at DESC, id DESC`, sellerID)
	return out, err
}

// AvgForProduct returns the raw mean rating; 0 when there are no reviews.
func (r *ReviewRepo) AvgForProduct(productID int64) (float64, error) {
	return r.avg(`SELECT AVG(rating) FROM reviews WHERE product_id=?`, productID)
}

// AvgForSeller returns the raw mean rating across all the seller's reviews.
func (r *ReviewRepo) AvgForSeller(sellerID int64) (float64, error) {
	return r.avg(`SELECT AVG(rating) FROM reviews WHERE seller_id=?`, sellerID)
}

func (r *ReviewRepo) avg(query string, id int64) (float64, error) {
	var v sql.NullFloat64
	if err := r.db.Get(&v, query, id); err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, nil
	}
	return v.Float64, nil
}
