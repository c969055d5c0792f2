package services

import (
	"errors"

	"campusmart/internal/domain"
	"campusmart/internal/pricing"
	"campusmart/internal/repos"
)

var ErrOtherCollege = errors.New("you can only view products from your college")

type CatalogService struct {
	Prods   *repos.ProductRepo
	Logs    *repos.SearchLogRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(prods *repos.ProductRepo, logs *repos.SearchLogRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Prods: prods, Logs: logs, Reviews: reviews}
}

// Search lists unsold products from the requester's college, excluding their
// own listings, newest first. A non-empty query is recorded in the search log
// before results are computed.
func (s *CatalogService) Search(u *domain.User, q, category string) ([]domain.Product, error) {
	if q != "" {
		if err := s.Logs.Insert(u.ID, q, u.CollegeID); err != nil {
			return nil, err
		}
	}
	return s.Prods.Search(u.CollegeID, u.ID, q, category)
}

type ListingInput struct {
	Title         string
	Description   string
	Category      string
	Brand         string
	Condition     string
	OriginalPrice *float64
	SellingPrice  float64
	ImagePaths    []string // already stored by the file-storage collaborator
}

// CreateListing stores a new product. The commission rate is snapshotted from
// the category table at listing time; settlement recomputes from the table,
// so the snapshot is informational. The first image path becomes primary.
func (s *CatalogService) CreateListing(sellerID int64, in ListingInput) (domain.Product, error) {
	p := domain.Product{
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Brand:          in.Brand,
		Condition:      in.Condition,
		OriginalPrice:  in.OriginalPrice,
		SellingPrice:   in.SellingPrice,
		CommissionRate: pricing.Rate(in.Category),
		SellerID:       sellerID,
	}
	id, err := s.Prods.Create(&p)
	if err != nil {
		return domain.Product{}, err
	}
	for i, path := range in.ImagePaths {
		if err := s.Prods.AddImage(id, path, i == 0); err != nil {
			return domain.Product{}, err
		}
	}
	return s.Prods.Get(id)
}

type ProductDetail struct {
	Product      domain.Product        `json:"product"`
	Images       []domain.ProductImage `json:"images"`
	Reviews      []domain.Review       `json:"reviews"`
	AvgRating    float64               `json:"avg_rating"`
	Commission   float64               `json:"commission"`
	SellerAmount float64               `json:"seller_amount"`
}

// Detail fetches a product page for a same-college viewer and bumps the view
// counter. Viewers from other campuses get ErrOtherCollege.
func (s *CatalogService) Detail(u *domain.User, productID int64) (ProductDetail, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return ProductDetail{}, err
	}
	sellerCollege, err := s.Prods.SellerCollege(productID)
	if err != nil {
		return ProductDetail{}, err
	}
	if sellerCollege != u.CollegeID {
		return ProductDetail{}, ErrOtherCollege
	}
	if err := s.Prods.IncrementViews(productID); err != nil {
		return ProductDetail{}, err
	}
	p.ViewCount++

	images, err := s.Prods.Images(productID)
	if err != nil {
		return ProductDetail{}, err
	}
	reviews, err := s.Reviews.ListByProduct(productID)
	if err != nil {
		return ProductDetail{}, err
	}
	avg, err := s.Reviews.AvgForProduct(productID)
	if err != nil {
		return ProductDetail{}, err
	}

	commission := pricing.Commission(p.SellingPrice, p.Category)
	return ProductDetail{
		Product:      p,
		Images:       images,
		Reviews:      reviews,
		AvgRating:    round1(avg),
		Commission:   commission,
		SellerAmount: p.SellingPrice - commission,
	}, nil
}

func (s *CatalogService) ListMine(sellerID int64) ([]domain.Product, error) {
	return s.Prods.ListBySeller(sellerID)
}
