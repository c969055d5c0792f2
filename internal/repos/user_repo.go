package repos

import (
	"campusmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userCols = `id,username,email,password_hash,college_id,phone,profile_image,is_admin,wallet_balance,created_at`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UsernameTaken(username string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE username=?`, username); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) Create(username, email, hash string, collegeID int64, phone string) (int64, error) {
	res, err := r.DB.Exec(`
	  INSERT INTO users(username,email,password_hash,college_id,phone)
	  VALUES(?,LOWER(?),?,?,?)`, username, email, hash, collegeID, phone)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) UpdateProfile(id int64, username, email, phone, profileImage string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET username=?, email=LOWER(?), phone=?, profile_image=?
	  WHERE id=?`, username, email, phone, profileImage, id)
	return err
}

func (r *UserRepo) BindSession(sid string, userID int64) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.username,u.email,u.password_hash,u.college_id,u.phone,
             u.profile_image,u.is_admin,u.wallet_balance,u.created_at
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func (r *UserRepo) Count() (int64, error) {
	var n int64
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

// ListNonAdmin returns regular accounts for the admin user page.
func (r *UserRepo) ListNonAdmin() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users WHERE is_admin=0 ORDER BY email`)
	return out, err
}
