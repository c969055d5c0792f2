package domain

// User rows never go to the wire directly; handlers respond with a view
// that omits the password hash.
type User struct {
	ID            int64   `db:"id" json:"id"`
	Username      string  `db:"username" json:"username"`
	Email         string  `db:"email" json:"email"`
	Hash          string  `db:"password_hash" json:"-"`
	CollegeID     int64   `db:"college_id" json:"college_id"`
	Phone         string  `db:"phone" json:"phone,omitempty"`
	ProfileImage  string  `db:"profile_image" json:"profile_image,omitempty"`
	IsAdmin       bool    `db:"is_admin" json:"is_admin"`
	WalletBalance float64 `db:"wallet_balance" json:"wallet_balance"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}
