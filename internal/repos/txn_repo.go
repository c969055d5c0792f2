package repos

import (
	"errors"

	"campusmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrProductSold reports that the unsold->sold transition already happened.
var ErrProductSold = errors.New("product already sold")

type TransactionRepo struct{ db *sqlx.DB }

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// RecordSale applies the whole settlement in one DB transaction: the product
// is conditionally flipped to sold, the completed transaction row is written,
// and the seller wallet is credited. Concurrent buyers serialize on the
// conditional update; the loser gets ErrProductSold and no partial state.
func (r *TransactionRepo) RecordSale(t *domain.Transaction) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE products SET is_sold = 1 WHERE id = ? AND is_sold = 0`, t.ProductID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrProductSold
	}

	res, err = tx.Exec(`
	  INSERT INTO transactions(product_id,buyer_id,seller_id,amount,commission,seller_amount,payment_id,status)
	  VALUES(?,?,?,?,?,?,?,?)`,
		t.ProductID, t.BuyerID, t.SellerID, t.Amount, t.Commission, t.SellerAmount, t.PaymentID, t.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE users SET wallet_balance = wallet_balance + ? WHERE id = ?`,
		t.SellerAmount, t.SellerID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TransactionRepo) Get(id int64) (domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.Get(&t, `
	  SELECT id,product_id,buyer_id,seller_id,amount,commission,seller_amount,payment_id,status,created_at
	  FROM transactions WHERE id=?`, id)
	return t, err
}

func (r *TransactionRepo) CompletedCount() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM transactions WHERE status='completed'`)
	return n, err
}

func (r *TransactionRepo) CommissionTotal() (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(commission),0) FROM transactions WHERE status='completed'`)
	return total, err
}

func (r *TransactionRepo) ListRecentCompleted(limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := r.db.Select(&out, `
	  SELECT id,product_id,buyer_id,seller_id,amount,commission,seller_amount,payment_id,status,created_at
	  FROM transactions WHERE status='completed'
	  ORDER BY created_at DESC, id DESC
	  LIMIT ?`, limit)
	return out, err
}
