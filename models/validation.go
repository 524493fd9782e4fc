package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field bounds shared by validators and forms
var (
	MaxPrice = decimal.NewFromInt(10000)
	MaxMoney = decimal.NewFromInt(10000000)
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// CheckPrice validates that a price is above zero and below 10000
func CheckPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) || price.GreaterThanOrEqual(MaxPrice) {
		return FieldValidationError{
			Field:   "price",
			Message: "the price should be in the range between 0.01 and 9999.99 inclusive",
		}
	}
	return nil
}

// CheckLinePrice validates the price frozen on an owned line. Unlike the
// catalog price it may be zero: a 100% promotion sells at 0.00.
func CheckLinePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThanOrEqual(MaxPrice) {
		return FieldValidationError{
			Field:   "price",
			Message: "the price should be in the range between 0 and 9999.99 inclusive",
		}
	}
	return nil
}

// CheckDiscountAmount validates that a discount percentage is within [0, 100]
func CheckDiscountAmount(discountAmount int) error {
	if discountAmount < 0 || discountAmount > 100 {
		return FieldValidationError{
			Field:   "discount_amount",
			Message: "the discount amount should be in the range between 0 and 100 inclusive",
		}
	}
	return nil
}

// CheckMoney validates that a balance is within [0, 10000000)
func CheckMoney(money decimal.Decimal) error {
	if money.IsNegative() || money.GreaterThanOrEqual(MaxMoney) {
		return FieldValidationError{
			Field:   "money",
			Message: "the money should be in the range between 0 and 9999999.99 inclusive",
		}
	}
	return nil
}

// CheckRating validates that a review rating is within [0, 5]
func CheckRating(rating int) error {
	if rating < 0 || rating > 5 {
		return FieldValidationError{
			Field:   "rating",
			Message: "the rating should be in the range between 0 and 5 inclusive",
		}
	}
	return nil
}

// CheckQuantity validates that a quantity is non-negative
func CheckQuantity(quantity int) error {
	if quantity < 0 {
		return FieldValidationError{
			Field:   "quantity",
			Message: "the quantity should be greater than or equal to 0",
		}
	}
	return nil
}

// CheckStartDate validates that a promotion start date is not in the past
func CheckStartDate(startDate time.Time) error {
	if startDate.Before(today()) {
		return FieldValidationError{
			Field:   "start_date",
			Message: "the start date should be greater than or equal to the current date",
		}
	}
	return nil
}

// CheckEndDate validates that a promotion end date is not in the past
func CheckEndDate(endDate time.Time) error {
	if endDate.Before(today()) {
		return FieldValidationError{
			Field:   "end_date",
			Message: "the end date should be greater than or equal to the current date",
		}
	}
	return nil
}

// CheckCreatedAt validates that a creation timestamp is not in the future
func CheckCreatedAt(createdAt time.Time) error {
	if createdAt.After(time.Now().UTC()) {
		return FieldValidationError{
			Field:   "created_at",
			Message: "the created datetime should be less than or equal to the current datetime",
		}
	}
	return nil
}

// CheckModifiedAt validates that a modification timestamp is not in the future
func CheckModifiedAt(modifiedAt time.Time) error {
	if modifiedAt.After(time.Now().UTC()) {
		return FieldValidationError{
			Field:   "modified_at",
			Message: "the modified datetime should be less than or equal to the current datetime",
		}
	}
	return nil
}

// today truncates the current UTC time to a date
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
