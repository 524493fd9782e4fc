package utils

import (
	"time"

	"grocerystore/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceQuote holds the discount breakdown for a product on a given date
type PriceQuote struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent int             `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	PromotionID     *uuid.UUID      `json:"promotion_id,omitempty"`
}

// ActivePromotions returns the promotions linked to a product whose date
// window contains the reference date
func ActivePromotions(db *gorm.DB, productID uuid.UUID, date time.Time) ([]models.Promotion, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var promotions []models.Promotion
	err := db.
		Joins("JOIN product_to_promotions ON product_to_promotions.promotion_id = promotions.id").
		Where("product_to_promotions.product_id = ?", productID).
		Where("promotions.start_date <= ? AND promotions.end_date >= ?", day, day).
		Find(&promotions).Error
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// BestPromotion picks the promotion with the largest discount. The first one
// encountered at the maximum wins; any max-achiever is acceptable.
func BestPromotion(promotions []models.Promotion) *models.Promotion {
	var best *models.Promotion
	for i := range promotions {
		if best == nil || promotions[i].DiscountAmount > best.DiscountAmount {
			best = &promotions[i]
		}
	}
	return best
}

// ApplyDiscount returns price * (100 - percent) / 100 rounded half-up to
// two decimal places
func ApplyDiscount(price decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return price.Round(2)
	}
	factor := decimal.NewFromInt(int64(100 - percent))
	return price.Mul(factor).Div(decimal.NewFromInt(100)).Round(2)
}

// QuoteForProduct computes the best discounted price for a product on the
// reference date. With no active promotion the base price is returned as is.
func QuoteForProduct(db *gorm.DB, product *models.Product, date time.Time) (PriceQuote, error) {
	quote := PriceQuote{
		BasePrice:  product.Price,
		FinalPrice: product.Price.Round(2),
	}

	promotions, err := ActivePromotions(db, product.ID, date)
	if err != nil {
		return quote, err
	}

	best := BestPromotion(promotions)
	if best == nil {
		return quote, nil
	}

	quote.DiscountPercent = best.DiscountAmount
	quote.FinalPrice = ApplyDiscount(product.Price, best.DiscountAmount)
	quote.PromotionID = &best.ID
	return quote, nil
}
