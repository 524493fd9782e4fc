package utils

import (
	"testing"

	"grocerystore/config"
	"grocerystore/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reloadClient(t *testing.T, client *models.Client) models.Client {
	t.Helper()
	var fresh models.Client
	require.NoError(t, config.DB.First(&fresh, "id = ?", client.ID).Error)
	return fresh
}

func ownedLines(t *testing.T, client *models.Client) []models.ClientToProduct {
	t.Helper()
	var lines []models.ClientToProduct
	require.NoError(t, config.DB.Where("client_id = ?", client.ID).Find(&lines).Error)
	return lines
}

func TestPlaceOrderDebitsWalletAndRecordsLine(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("500.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))

	result, err := PlaceOrder(config.DB, client.ID, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100.00").Equal(result.UnitPrice))
	assert.Equal(t, 3, result.Quantity)
	assert.True(t, decimal.RequireFromString("300.00").Equal(result.Total))
	assert.True(t, decimal.RequireFromString("200.00").Equal(result.Balance))

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("200.00").Equal(fresh.Money))

	lines := ownedLines(t, client)
	require.Len(t, lines, 1)
	assert.Equal(t, product.ID, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestPlaceOrderUsesDiscountedPrice(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))
	promotion := CreateTestPromotion(t, "Sale", 20)
	LinkTestPromotion(t, product, promotion)

	result, err := PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("80.00").Equal(result.UnitPrice))
	assert.True(t, decimal.RequireFromString("20.00").Equal(result.Balance))

	lines := ownedLines(t, client)
	require.Len(t, lines, 1)
	assert.True(t, decimal.RequireFromString("80.00").Equal(lines[0].Price))
}

func TestPlaceOrderFullDiscountSellsAtZero(t *testing.T) {
	TestSetup(t)

	// An empty wallet can still buy a fully discounted product
	client := CreateTestClient(t, "alice", decimal.Zero)
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("5.00"))
	promotion := CreateTestPromotion(t, "Giveaway", 100)
	LinkTestPromotion(t, product, promotion)

	result, err := PlaceOrder(config.DB, client.ID, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, result.UnitPrice.IsZero())
	assert.True(t, result.Total.IsZero())
	assert.True(t, result.Balance.IsZero())

	lines := ownedLines(t, client)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Price.IsZero())
	assert.Equal(t, 2, lines[0].Quantity)

	// Cancelling a free line refunds nothing and removes the line
	cancel, err := CancelOrder(config.DB, client.ID, product.ID, decimal.Zero, 2)
	require.NoError(t, err)
	assert.True(t, cancel.Refund.IsZero())
	assert.True(t, cancel.LineDeleted)
	assert.Empty(t, ownedLines(t, client))
}

func TestPlaceOrderRepeatAccumulatesSingleLine(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("10.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("1.00"))

	_, err := PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("8.00").Equal(fresh.Money))

	lines := ownedLines(t, client)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestPlaceOrderSplitsLinesByPrice(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("500.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("100.00"))

	_, err := PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)

	// The price drops, so the next purchase lands on its own line
	promotion := CreateTestPromotion(t, "Sale", 20)
	LinkTestPromotion(t, product, promotion)

	_, err = PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)

	lines := ownedLines(t, client)
	require.Len(t, lines, 2)
}

func TestPlaceOrderInsufficientFundsIsNoOp(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.Zero)
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("1.00"))

	result, err := PlaceOrder(config.DB, client.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, result)

	fresh := reloadClient(t, client)
	assert.True(t, fresh.Money.IsZero())
	assert.Empty(t, ownedLines(t, client))
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("1.00"))

	for _, quantity := range []int{0, -1} {
		_, err := PlaceOrder(config.DB, client.ID, product.ID, quantity)
		var fieldErr models.FieldValidationError
		assert.ErrorAs(t, err, &fieldErr)
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("1.00"))

	_, err := PlaceOrder(config.DB, client.ID, product.CategoryID, 1)
	assert.Error(t, err)

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("100.00").Equal(fresh.Money))
}

func TestCancelOrderFullReturnRestoresBalance(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("500.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("99.99"))

	purchase, err := PlaceOrder(config.DB, client.ID, product.ID, 3)
	require.NoError(t, err)

	result, err := CancelOrder(config.DB, client.ID, product.ID, purchase.UnitPrice, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, result.ReturnedQuantity)
	assert.True(t, result.LineDeleted)

	// Cancelling everything puts the wallet back exactly where it started
	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("500.00").Equal(fresh.Money),
		"expected 500.00, got %s", fresh.Money)
	assert.Empty(t, ownedLines(t, client))
}

func TestCancelOrderPartialReturnDecrementsLine(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("10.00"))

	purchase, err := PlaceOrder(config.DB, client.ID, product.ID, 5)
	require.NoError(t, err)

	result, err := CancelOrder(config.DB, client.ID, product.ID, purchase.UnitPrice, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ReturnedQuantity)
	assert.False(t, result.LineDeleted)
	assert.True(t, decimal.RequireFromString("20.00").Equal(result.Refund))

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("70.00").Equal(fresh.Money))

	lines := ownedLines(t, client)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCancelOrderClampsToOwnedQuantity(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("10.00"))

	purchase, err := PlaceOrder(config.DB, client.ID, product.ID, 2)
	require.NoError(t, err)

	result, err := CancelOrder(config.DB, client.ID, product.ID, purchase.UnitPrice, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ReturnedQuantity)
	assert.True(t, result.LineDeleted)
	assert.True(t, decimal.RequireFromString("20.00").Equal(result.Refund))

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("100.00").Equal(fresh.Money))
	assert.Empty(t, ownedLines(t, client))
}

func TestCancelOrderRefundsFrozenPrice(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("10.00"))

	purchase, err := PlaceOrder(config.DB, client.ID, product.ID, 1)
	require.NoError(t, err)

	// The catalog price changes after the purchase; the refund still uses
	// the price frozen on the owned line
	require.NoError(t, config.DB.Model(product).
		Update("price", decimal.RequireFromString("50.00")).Error)

	result, err := CancelOrder(config.DB, client.ID, product.ID, purchase.UnitPrice, 1)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(result.Refund))

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("100.00").Equal(fresh.Money))
}

func TestCancelOrderUnknownLine(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("100.00"))
	product := CreateTestProduct(t, "Apples", decimal.RequireFromString("10.00"))

	_, err := CancelOrder(config.DB, client.ID, product.ID, decimal.RequireFromString("10.00"), 1)
	assert.Error(t, err)

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("100.00").Equal(fresh.Money))
}

func TestAddFundsCreditsWallet(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("10.00"))

	balance, err := AddFunds(config.DB, client.ID, decimal.RequireFromString("15.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.50").Equal(balance))

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("25.50").Equal(fresh.Money))
}

func TestAddFundsRejectsNonPositiveAmount(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("10.00"))

	for _, raw := range []string{"0", "-5.00"} {
		_, err := AddFunds(config.DB, client.ID, decimal.RequireFromString(raw))
		var fieldErr models.FieldValidationError
		assert.ErrorAs(t, err, &fieldErr, "amount %s should be rejected", raw)
	}

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("10.00").Equal(fresh.Money))
}

func TestAddFundsRejectsSubCentAmount(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("10.00"))

	_, err := AddFunds(config.DB, client.ID, decimal.RequireFromString("0.001"))
	assert.Error(t, err)
}

func TestAddFundsRejectsBalanceOverflow(t *testing.T) {
	TestSetup(t)

	client := CreateTestClient(t, "alice", decimal.RequireFromString("9999999.00"))

	_, err := AddFunds(config.DB, client.ID, decimal.RequireFromString("1.00"))
	assert.Error(t, err)

	fresh := reloadClient(t, client)
	assert.True(t, decimal.RequireFromString("9999999.00").Equal(fresh.Money))
}
