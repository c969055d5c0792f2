package repos

import (
	"github.com/jmoiron/sqlx"
)

type AnalyticsRepo struct{ db *sqlx.DB }

func NewAnalyticsRepo(db *sqlx.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int64  `db:"count" json:"count"`
}

type CategoryViews struct {
	Category string `db:"category" json:"category"`
	Views    int64  `db:"views" json:"views"`
}

// CategoryListingCounts counts products listed by sellers of a college since
// the cutoff, grouped by category, most listed first.
func (r *AnalyticsRepo) CategoryListingCounts(collegeID int64, since string) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.Select(&out, `
	  SELECT p.category, COUNT(*) AS count
	  FROM products p
	  JOIN users u ON u.id = p.seller_id
	  WHERE u.college_id = ? AND p.created_at >= ?
	  GROUP BY p.category
	  ORDER BY count DESC, p.category ASC`, collegeID, since)
	return out, err
}

// CategoryViewTotals sums lifetime view counters per category for a college.
// The counter is cumulative, so there is no date filter here.
func (r *AnalyticsRepo) CategoryViewTotals(collegeID int64) ([]CategoryViews, error) {
	var out []CategoryViews
	err := r.db.Select(&out, `
	  SELECT p.category, COALESCE(SUM(p.view_count),0) AS views
	  FROM products p
	  JOIN users u ON u.id = p.seller_id
	  WHERE u.college_id = ?
	  GROUP BY p.category
	  ORDER BY views DESC, p.category ASC`, collegeID)
	return out, err
}
