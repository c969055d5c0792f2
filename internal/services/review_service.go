package services

import (
	"errors"
	"math"

	"campusmart/internal/domain"
	"campusmart/internal/repos"
)

var (
	ErrDuplicateReview = errors.New("you have already reviewed this product")
	ErrOwnReview       = errors.New("you cannot review your own product")
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Add records a review. The seller id is denormalized from the product at
// creation time. A second review from the same reviewer on the same product
// is a no-op reported as ErrDuplicateReview; the original row is untouched.
func (s *ReviewService) Add(reviewer *domain.User, productID int64, rating int, comment string) (*domain.Review, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID == reviewer.ID {
		return nil, ErrOwnReview
	}
	exists, err := s.Reviews.Exists(productID, reviewer.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	rv := domain.Review{
		ProductID:  productID,
		ReviewerID: reviewer.ID,
		SellerID:   p.SellerID,
		Rating:     rating,
		Comment:    comment,
	}
	id, err := s.Reviews.Create(&rv)
	if err != nil {
		return nil, err
	}
	rv.ID = id
	return &rv, nil
}

// ProductRating is the mean rating for a product, rounded to 1 decimal,
// 0 when unreviewed.
func (s *ReviewService) ProductRating(productID int64) (float64, error) {
	avg, err := s.Reviews.AvgForProduct(productID)
	if err != nil {
		return 0, err
	}
	return round1(avg), nil
}

// SellerRating is the mean rating across everything the seller has sold.
func (s *ReviewService) SellerRating(sellerID int64) (float64, error) {
	avg, err := s.Reviews.AvgForSeller(sellerID)
	if err != nil {
		return 0, err
	}
	return round1(avg), nil
}

func (s *ReviewService) ListBySeller(sellerID int64) ([]domain.Review, error) {
	return s.Reviews.ListBySeller(sellerID)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
