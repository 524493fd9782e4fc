package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckPrice(t *testing.T) {
	valid := []string{"0.01", "1.00", "5000", "9999.99"}
	for _, raw := range valid {
		assert.NoError(t, CheckPrice(decimal.RequireFromString(raw)), "price %s should be accepted", raw)
	}

	invalid := []string{"0", "-0.01", "-100", "10000", "10000.01", "99999"}
	for _, raw := range invalid {
		err := CheckPrice(decimal.RequireFromString(raw))
		assert.Error(t, err, "price %s should be rejected", raw)
		fieldErr, ok := err.(FieldValidationError)
		assert.True(t, ok)
		assert.Equal(t, "price", fieldErr.Field)
	}
}

func TestCheckLinePrice(t *testing.T) {
	// A fully discounted purchase freezes a price of zero on the line
	valid := []string{"0", "0.00", "0.01", "9999.99"}
	for _, raw := range valid {
		assert.NoError(t, CheckLinePrice(decimal.RequireFromString(raw)), "line price %s should be accepted", raw)
	}

	invalid := []string{"-0.01", "-100", "10000"}
	for _, raw := range invalid {
		assert.Error(t, CheckLinePrice(decimal.RequireFromString(raw)), "line price %s should be rejected", raw)
	}
}

func TestCheckDiscountAmount(t *testing.T) {
	for _, discount := range []int{0, 1, 50, 100} {
		assert.NoError(t, CheckDiscountAmount(discount))
	}
	for _, discount := range []int{-1, 101, 1000} {
		assert.Error(t, CheckDiscountAmount(discount))
	}
}

func TestCheckMoney(t *testing.T) {
	valid := []string{"0", "0.01", "100.50", "9999999.99"}
	for _, raw := range valid {
		assert.NoError(t, CheckMoney(decimal.RequireFromString(raw)))
	}

	invalid := []string{"-0.01", "-1", "10000000", "10000000.01"}
	for _, raw := range invalid {
		assert.Error(t, CheckMoney(decimal.RequireFromString(raw)))
	}
}

func TestCheckRating(t *testing.T) {
	for _, rating := range []int{0, 1, 3, 5} {
		assert.NoError(t, CheckRating(rating))
	}
	for _, rating := range []int{-1, 6, 10} {
		assert.Error(t, CheckRating(rating))
	}
}

func TestCheckQuantity(t *testing.T) {
	assert.NoError(t, CheckQuantity(0))
	assert.NoError(t, CheckQuantity(1))
	assert.NoError(t, CheckQuantity(100))
	assert.Error(t, CheckQuantity(-1))
}

func TestCheckDates(t *testing.T) {
	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)
	yesterday := now.AddDate(0, 0, -1)

	assert.NoError(t, CheckStartDate(tomorrow))
	assert.Error(t, CheckStartDate(yesterday))

	assert.NoError(t, CheckEndDate(tomorrow))
	assert.Error(t, CheckEndDate(yesterday))

	assert.NoError(t, CheckCreatedAt(yesterday))
	assert.Error(t, CheckCreatedAt(now.Add(time.Hour)))

	assert.NoError(t, CheckModifiedAt(yesterday))
	assert.Error(t, CheckModifiedAt(now.Add(time.Hour)))
}

func TestFieldValidationErrorsMessage(t *testing.T) {
	errs := FieldValidationErrors{
		{Field: "price", Message: "out of range"},
		{Field: "rating", Message: "out of range"},
	}
	assert.Equal(t, "price: out of range; rating: out of range", errs.Error())
}
