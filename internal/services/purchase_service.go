package services

import (
	"errors"

	"campusmart/internal/domain"
	"campusmart/internal/payments"
	"campusmart/internal/pricing"
	"campusmart/internal/repos"
)

var (
	ErrAlreadySold = errors.New("this product is already sold")
	ErrOwnProduct  = errors.New("you cannot buy your own product")
)

type PurchaseService struct {
	Prods *repos.ProductRepo
	Txns  *repos.TransactionRepo
	Pay   payments.Gateway
}

func NewPurchaseService(prods *repos.ProductRepo, txns *repos.TransactionRepo, pay payments.Gateway) *PurchaseService {
	return &PurchaseService{Prods: prods, Txns: txns, Pay: pay}
}

// Quote previews the money split for a product before checkout.
func (s *PurchaseService) Quote(productID int64) (domain.Product, float64, float64, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Product{}, 0, 0, err
	}
	commission := pricing.Commission(p.SellingPrice, p.Category)
	return p, commission, p.SellingPrice - commission, nil
}

// Buy records a confirmed sale. Commission is recomputed from the category
// table (authoritative at settlement); seller amount is the exact complement.
// The sold flip, transaction row and wallet credit land atomically, so a
// losing concurrent buyer observes ErrAlreadySold and nothing else changes.
func (s *PurchaseService) Buy(buyer *domain.User, productID int64, paymentID string) (domain.Transaction, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if p.IsSold {
		return domain.Transaction{}, ErrAlreadySold
	}
	if p.SellerID == buyer.ID {
		return domain.Transaction{}, ErrOwnProduct
	}
	if err := s.Pay.Verify(paymentID); err != nil {
		return domain.Transaction{}, err
	}

	commission := pricing.Commission(p.SellingPrice, p.Category)
	t := domain.Transaction{
		ProductID:    p.ID,
		BuyerID:      buyer.ID,
		SellerID:     p.SellerID,
		Amount:       p.SellingPrice,
		Commission:   commission,
		SellerAmount: p.SellingPrice - commission,
		PaymentID:    paymentID,
		Status:       domain.TxnCompleted,
	}
	id, err := s.Txns.RecordSale(&t)
	if err != nil {
		if errors.Is(err, repos.ErrProductSold) {
			return domain.Transaction{}, ErrAlreadySold
		}
		return domain.Transaction{}, err
	}
	return s.Txns.Get(id)
}
