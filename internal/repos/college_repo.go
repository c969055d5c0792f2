package repos

import (
	"campusmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CollegeRepo struct{ db *sqlx.DB }

func NewCollegeRepo(db *sqlx.DB) *CollegeRepo { return &CollegeRepo{db: db} }

func (r *CollegeRepo) ByDomain(emailDomain string) (*domain.College, error) {
	var c domain.College
	err := r.db.Get(&c, `SELECT id,name,email_domain FROM colleges WHERE email_domain=LOWER(?)`, emailDomain)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollegeRepo) ByID(id int64) (*domain.College, error) {
	var c domain.College
	err := r.db.Get(&c, `SELECT id,name,email_domain FROM colleges WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollegeRepo) Create(name, emailDomain string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO colleges(name,email_domain) VALUES(?,LOWER(?))`, name, emailDomain)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
