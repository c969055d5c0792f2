package domain

// Product categories. Anything else falls back to the default commission rate.
const (
	CategoryBooks         = "Books"
	CategoryStationary    = "Stationary"
	CategoryNonStationary = "Non-Stationary"
)

// Product conditions, best to worst.
const (
	ConditionNew     = "New"
	ConditionLikeNew = "Like New"
	ConditionGood    = "Good"
	ConditionFair    = "Fair"
	ConditionPoor    = "Poor"
)

// Transaction statuses.
const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
)

type College struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	EmailDomain string `db:"email_domain" json:"email_domain"`
}

type Product struct {
	ID             int64    `db:"id" json:"id"`
	Title          string   `db:"title" json:"title"`
	Description    string   `db:"description" json:"description,omitempty"`
	Category       string   `db:"category" json:"category"`
	Brand          string   `db:"brand" json:"brand,omitempty"`
	Condition      string   `db:"condition" json:"condition"`
	OriginalPrice  *float64 `db:"original_price" json:"original_price,omitempty"`
	SellingPrice   float64  `db:"selling_price" json:"selling_price"`
	CommissionRate float64  `db:"commission_rate" json:"commission_rate"` // snapshot at listing time; display only
	SellerID       int64    `db:"seller_id" json:"seller_id"`
	IsSold         bool     `db:"is_sold" json:"is_sold"`
	IsFeatured     bool     `db:"is_featured" json:"is_featured"`
	ViewCount      int64    `db:"view_count" json:"view_count"`
	CreatedAt      string   `db:"created_at" json:"created_at"`
}

type ProductImage struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	ImagePath string `db:"image_path" json:"image_path"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

type Review struct {
	ID         int64  `db:"id" json:"id"`
	ProductID  int64  `db:"product_id" json:"product_id"`
	ReviewerID int64  `db:"reviewer_id" json:"reviewer_id"`
	SellerID   int64  `db:"seller_id" json:"seller_id"` // denormalized from the product at creation
	Rating     int    `db:"rating" json:"rating"`
	Comment    string `db:"comment" json:"comment,omitempty"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}

type SearchLog struct {
	ID         int64  `db:"id" json:"id"`
	UserID     int64  `db:"user_id" json:"user_id"`
	SearchTerm string `db:"search_term" json:"search_term"`
	CollegeID  int64  `db:"college_id" json:"college_id"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID           int64   `db:"id" json:"id"`
	ProductID    int64   `db:"product_id" json:"product_id"`
	BuyerID      int64   `db:"buyer_id" json:"buyer_id"`
	SellerID     int64   `db:"seller_id" json:"seller_id"`
	Amount       float64 `db:"amount" json:"amount"`
	Commission   float64 `db:"commission" json:"commission"`
	SellerAmount float64 `db:"seller_amount" json:"seller_amount"`
	PaymentID    string  `db:"payment_id" json:"payment_id"`
	Status       string  `db:"status" json:"status"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
}
