package utils

import (
	"errors"
	"time"

	"grocerystore/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies row-level locking on dialects that support it; the
// sqlite test database serializes on a single connection instead
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// PurchaseResult reports the outcome of a completed purchase
type PurchaseResult struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Balance   decimal.Decimal `json:"balance"`
}

// CancelResult reports the outcome of a completed cancellation
type CancelResult struct {
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReturnedQuantity int             `json:"returned_quantity"`
	Refund           decimal.Decimal `json:"refund"`
	Balance          decimal.Decimal `json:"balance"`
	LineDeleted      bool            `json:"line_deleted"`
}

// PlaceOrder debits the client's wallet and records the purchased quantity
// on the owned line keyed by (client, product, unit price).
//
// The unit price is recomputed server-side from the live product price and
// the active promotions, never taken from the caller. The whole
// read-modify-write runs in one transaction with the client row locked, so
// concurrent orders against the same wallet serialize instead of losing
// updates.
func PlaceOrder(db *gorm.DB, clientID, productID uuid.UUID, quantity int) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, models.FieldValidationError{
			Field:   "quantity",
			Message: "the quantity should be greater than 0",
		}
	}

	var result *PurchaseResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := lockForUpdate(tx).First(&client, "id = ?", clientID).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}

		quote, err := QuoteForProduct(tx, &product, time.Now().UTC())
		if err != nil {
			return err
		}
		unitPrice := quote.FinalPrice

		total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		if client.Money.LessThan(total) {
			return ErrInsufficientFunds
		}

		client.Money = client.Money.Sub(total)
		if err := tx.Save(&client).Error; err != nil {
			return err
		}

		var line models.ClientToProduct
		err = lockForUpdate(tx).
			Where("client_id = ? AND product_id = ? AND price = ?", client.ID, product.ID, unitPrice).
			First(&line).Error
		switch {
		case err == nil:
			line.Quantity += quantity
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.ClientToProduct{
				ClientID:  client.ID,
				ProductID: product.ID,
				Price:     unitPrice,
				Quantity:  quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		default:
			return err
		}

		result = &PurchaseResult{
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
			Total:     total,
			Balance:   client.Money,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelOrder refunds a purchase: the requested quantity is clamped to the
// owned quantity, the wallet is credited with clamped * frozen line price,
// and the line is decremented or deleted when fully returned. Runs in one
// transaction with the client row locked, mirroring PlaceOrder.
func CancelOrder(db *gorm.DB, clientID, productID uuid.UUID, price decimal.Decimal, quantity int) (*CancelResult, error) {
	if quantity <= 0 {
		return nil, models.FieldValidationError{
			Field:   "returned_quantity",
			Message: "the returned quantity should be greater than 0",
		}
	}

	var result *CancelResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := lockForUpdate(tx).First(&client, "id = ?", clientID).Error; err != nil {
			return err
		}

		var line models.ClientToProduct
		if err := lockForUpdate(tx).
			Where("client_id = ? AND product_id = ? AND price = ?", client.ID, productID, price).
			First(&line).Error; err != nil {
			return err
		}

		returned := quantity
		if returned > line.Quantity {
			returned = line.Quantity
		}

		refund := line.Price.Mul(decimal.NewFromInt(int64(returned)))
		client.Money = client.Money.Add(refund)
		if err := tx.Save(&client).Error; err != nil {
			return err
		}

		deleted := false
		if returned < line.Quantity {
			line.Quantity -= returned
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		} else {
			// A line at quantity 0 is deleted, not retained
			if err := tx.Delete(&line).Error; err != nil {
				return err
			}
			deleted = true
		}

		result = &CancelResult{
			UnitPrice:        line.Price,
			ReturnedQuantity: returned,
			Refund:           refund,
			Balance:          client.Money,
			LineDeleted:      deleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddFunds credits a positive top-up to the client's wallet. The credited
// balance must stay inside the money range, which the client model enforces
// on save.
func AddFunds(db *gorm.DB, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, models.FieldValidationError{
			Field:   "money",
			Message: "an error occurred, money field should be positive",
		}
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, models.FieldValidationError{
			Field:   "money",
			Message: "the money amount supports at most two decimal places",
		}
	}

	var balance decimal.Decimal
	err := db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := lockForUpdate(tx).First(&client, "id = ?", clientID).Error; err != nil {
			return err
		}

		client.Money = client.Money.Add(amount)
		if err := tx.Save(&client).Error; err != nil {
			return err
		}
		balance = client.Money
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
