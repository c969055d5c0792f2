package repos

import (
	"github.com/jmoiron/sqlx"
)

type SearchLogRepo struct{ db *sqlx.DB }

func NewSearchLogRepo(db *sqlx.DB) *SearchLogRepo { return &SearchLogRepo{db: db} }

func (r *SearchLogRepo) Insert(userID int64, term string, collegeID int64) error {
	_, err := r.db.Exec(`INSERT INTO search_logs(user_id,search_term,college_id) VALUES(?,?,?)`,
		userID, term, collegeID)
	return err
}

type TermCount struct {
	Term  string `db:"search_term" json:"term"`
	Count int64  `db:"count" json:"count"`
}

// TopTerms returns the most frequent search terms for a college since the
// given cutoff (exclusive of anything strictly older), most frequent first.
func (r *SearchLogRepo) TopTerms(collegeID int64, since string, limit int) ([]TermCount, error) {
	var out []TermCount
	err := r.db.Select(&out, `
	  SELECT search_term, COUNT(*) AS count
	  FROM search_logs
	  WHERE college_id = ? AND created_at >= ?
	  GROUP BY search_term
	  ORDER BY count DESC, search_term ASC
	  LIMIT ?`, collegeID, since, limit)
	return out, err
}
