// Package pricing holds the commission and resale-price arithmetic. Every
// function here is pure; the same inputs always give the same outputs.
package pricing

import (
	"math"

	"campusmart/internal/domain"
)

const defaultRate = 0.05

var commissionRates = map[string]float64{
	domain.CategoryBooks:         0.05,
	domain.CategoryStationary:    0.07,
	domain.CategoryNonStationary: 0.10,
}

var conditionFactors = map[string]float64{
	domain.ConditionNew:     0.95,
	domain.ConditionLikeNew: 0.85,
	domain.ConditionGood:    0.70,
	domain.ConditionFair:    0.50,
	domain.ConditionPoor:    0.30,
}

var brandTierFactors = map[string]float64{
	"premium": 1.10,
	"medium":  1.00,
	"budget":  0.90,
}

// Rate returns the commission rate for a category. Unknown categories fall
// back to the default rate rather than erroring, so listing never blocks.
func Rate(category string) float64 {
	if r, ok := commissionRates[category]; ok {
		return r
	}
	return defaultRate
}

// Commission computes the platform cut on a sale, rounded to 2 decimals.
func Commission(price float64, category string) float64 {
	return round2(price * Rate(category))
}

// SellerAmount is what the seller pockets after commission. Defined as the
// complement of Commission so commission + seller amount always equals the
// gross price exactly.
func SellerAmount(price float64, category string) float64 {
	return price - Commission(price, category)
}

// SuggestedPrice estimates a fair resale price from the original price, the
// item condition and a brand tier. Returns nil when no original price is
// known. Unknown condition or tier values use the middle-of-the-road factors.
func SuggestedPrice(originalPrice *float64, condition, brandTier string) *float64 {
	if originalPrice == nil {
		return nil
	}
	cf, ok := conditionFactors[condition]
	if !ok {
		cf = 0.70
	}
	bf, ok := brandTierFactors[brandTier]
	if !ok {
		bf = 1.00
	}
	p := round2(*originalPrice * cf * bf)
	return &p
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
