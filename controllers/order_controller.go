package controllers

import (
	"errors"
	"time"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRequest represents the purchase request. The unit price is never
// taken from the caller; it is recomputed from the live catalog inside the
// order transaction.
type OrderRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// QuoteOrder previews an order: the discounted unit price and total for the
// requested quantity, plus the client's current balance
func QuoteOrder(c *gin.Context) {
	utils.LogInfo("QuoteOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid quote request: %v", err)
		utils.BadRequest(c, "Invalid request. Product and quantity are required", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", req.ProductID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	quote, err := utils.QuoteForProduct(config.DB, &product, time.Now().UTC())
	if err != nil {
		utils.LogError("Failed to compute quote for product %s: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to compute quote", err.Error())
		return
	}

	total := quote.FinalPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	utils.LogDebug("Quoted product %s for user %s: unit %s, total %s",
		product.ID, user.Username, quote.FinalPrice, total)

	utils.Success(c, "Quote computed successfully", gin.H{
		"product":  product,
		"quantity": req.Quantity,
		"quote":    quote,
		"total":    total,
		"money":    client.Money,
	})
}

// PlaceOrder executes a purchase: debit the wallet and record the owned line
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid order request: %v", err)
		utils.BadRequest(c, "Invalid request. Product and quantity are required", err.Error())
		return
	}
	utils.LogDebug("Processing order for user %s - Product: %s, Quantity: %d",
		user.Username, req.ProductID, req.Quantity)

	var product models.Product
	if err := config.DB.First(&product, "id = ?", req.ProductID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	result, err := utils.PlaceOrder(config.DB, client.ID, product.ID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInsufficientFunds):
			utils.LogError("Insufficient funds for user %s on product %s", user.Username, product.ID)
			utils.BadRequest(c, "Insufficient funds in wallet", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.LogError("Order failed, record not found: %v", err)
			utils.NotFound(c, "Product not found")
		default:
			var fieldErr models.FieldValidationError
			if errors.As(err, &fieldErr) {
				utils.LogError("Order validation failed: %v", fieldErr)
				utils.ValidationError(c, "Invalid order", fieldErr)
				return
			}
			utils.LogError("Failed to place order for user %s: %v", user.Username, err)
			utils.InternalServerError(c, "Failed to place order", err.Error())
		}
		return
	}

	utils.LogInfo("Order placed by user %s - Product: %s, Total: %s",
		user.Username, product.Title, result.Total)
	utils.Success(c, "Order placed successfully", gin.H{
		"product":    product.Title,
		"unit_price": result.UnitPrice,
		"quantity":   result.Quantity,
		"total":      result.Total,
		"money":      result.Balance,
	})
}
