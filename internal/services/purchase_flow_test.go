package services_test

import (
	"errors"
	"testing"

	"campusmart/internal/domain"
	"campusmart/internal/payments"
	"campusmart/internal/repos"
	"campusmart/internal/services"
)

func TestBuyRecordsCompletedSale(t *testing.T) {
	db := openTestDB(t)
	prodRepo := repos.NewProductRepo(db)
	txnRepo := repos.NewTransactionRepo(db)
	svc := services.NewPurchaseService(prodRepo, txnRepo, payments.TokenGateway{})

	mit := collegeID(t, db, "mit.edu")
	seller := seedUser(t, db, "seller", mit)
	buyer := seedUser(t, db, "buyer", mit)
	pid := seedProduct(t, db, seller, "Calculus Textbook", "Books", "", 100, ts(1))

	tx, err := svc.Buy(&domain.User{ID: buyer, CollegeID: mit}, pid, "pay_abc123")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if tx.Status != domain.TxnCompleted {
		t.Fatalf("want completed, got %s", tx.Status)
	}
	if tx.Amount != 100 || tx.Commission != 5.00 || tx.SellerAmount != 95.00 {
		t.Fatalf("bad split: %+v", tx)
	}
	if tx.Commission+tx.SellerAmount != tx.Amount {
		t.Fatalf("commission %v + seller %v != amount %v", tx.Commission, tx.SellerAmount, tx.Amount)
	}
	if tx.BuyerID != buyer || tx.SellerID != seller || tx.PaymentID != "pay_abc123" {
		t.Fatalf("bad parties: %+v", tx)
	}

	p, err := prodRepo.Get(pid)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsSold {
		t.Fatal("product not marked sold")
	}

	var balance float64
	if err := db.Get(&balance, `SELECT wallet_balance FROM users WHERE id=?`, seller); err != nil {
		t.Fatal(err)
	}
	if balance != 95.00 {
		t.Fatalf("seller wallet: want 95, got %v", balance)
	}
}

func TestBuySecondAttemptAlwaysFails(t *testing.T) {
	db := openTestDB(t)
	prodRepo := repos.NewProductRepo(db)
	txnRepo := repos.NewTransactionRepo(db)
	svc := services.NewPurchaseService(prodRepo, txnRepo, payments.TokenGateway{})

	mit := collegeID(t, db, "mit.edu")
	seller := seedUser(t, db, "seller", mit)
	buyer1 := seedUser(t, db, "buyer1", mit)
	buyer2 := seedUser(t, db, "buyer2", mit)
	pid := seedProduct(t, db, seller, "Desk Lamp", "Non-Stationary", "", 200, ts(1))

	if _, err := svc.Buy(&domain.User{ID: buyer1, CollegeID: mit}, pid, "pay_1"); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	_, err := svc.Buy(&domain.User{ID: buyer2, CollegeID: mit}, pid, "pay_2")
	if !errors.Is(err, services.ErrAlreadySold) {
		t.Fatalf("want ErrAlreadySold, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly one transaction, got %d", n)
	}
	var balance float64
	if err := db.Get(&balance, `SELECT wallet_balance FROM users WHERE id=?`, seller); err != nil {
		t.Fatal(err)
	}
	if balance != 180.00 {
		t.Fatalf("wallet credited more than once: %v", balance)
	}
}

// The sold flip is guarded inside the DB transaction as well, so two buyers
// racing past the service-level check still serialize.
func TestRecordSaleConditionalFlip(t *testing.T) {
	db := openTestDB(t)
	txnRepo := repos.NewTransactionRepo(db)

	mit := collegeID(t, db, "mit.edu")
	seller := seedUser(t, db, "seller", mit)
	buyer1 := seedUser(t, db, "buyer1", mit)
	buyer2 := seedUser(t, db, "buyer2", mit)
	pid := seedProduct(t, db, seller, "Old Router", "Non-Stationary", "", 100, ts(1))

	mk := func(buyer int64, pay string) *domain.Transaction {
		return &domain.Transaction{
			ProductID: pid, BuyerID: buyer, SellerID: seller,
			Amount: 100, Commission: 10, SellerAmount: 90,
			PaymentID: pay, Status: domain.TxnCompleted,
		}
	}
	if _, err := txnRepo.RecordSale(mk(buyer1, "pay_1")); err != nil {
		t.Fatalf("first sale: %v", err)
	}
	if _, err := txnRepo.RecordSale(mk(buyer2, "pay_2")); !errors.Is(err, repos.ErrProductSold) {
		t.Fatalf("want ErrProductSold, got %v", err)
	}

	// loser left no partial state behind
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want one transaction, got %d", n)
	}
	var balance float64
	if err := db.Get(&balance, `SELECT wallet_balance FROM users WHERE id=?`, seller); err != nil {
		t.Fatal(err)
	}
	if balance != 90 {
		t.Fatalf("want wallet 90, got %v", balance)
	}
}

func TestBuyOwnProductRejected(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPurchaseService(repos.NewProductRepo(db), repos.NewTransactionRepo(db), payments.TokenGateway{})

	mit := collegeID(t, db, "mit.edu")
	seller := seedUser(t, db, "seller", mit)
	pid := seedProduct(t, db, seller, "Desk Lamp", "Non-Stationary", "", 200, ts(1))

	_, err := svc.Buy(&domain.User{ID: seller, CollegeID: mit}, pid, "pay_1")
	if !errors.Is(err, services.ErrOwnProduct) {
		t.Fatalf("want ErrOwnProduct, got %v", err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no transaction expected, got %d", n)
	}
}

func TestBuyRequiresPaymentConfirmation(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPurchaseService(repos.NewProductRepo(db), repos.NewTransactionRepo(db), payments.TokenGateway{})

	mit := collegeID(t, db, "mit.edu")
	seller := seedUser(t, db, "seller", mit)
	buyer := seedUser(t, db, "buyer", mit)
	pid := seedProduct(t, db, seller, "Desk Lamp", "Non-Stationary", "", 200, ts(1))

	_, err := svc.Buy(&domain.User{ID: buyer, CollegeID: mit}, pid, "")
	if !errors.Is(err, payments.ErrNoConfirmation) {
		t.Fatalf("want ErrNoConfirmation, got %v", err)
	}
	p, err := repos.NewProductRepo(db).Get(pid)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsSold {
		t.Fatal("product sold without payment confirmation")
	}
}
