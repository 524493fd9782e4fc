package controllers

import (
	"errors"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CancelOrderRequest represents the cancellation request. The price selects
// the owned line to refund; it must match the price frozen at purchase time.
type CancelOrderRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	ReturnedQuantity int             `json:"returned_quantity" binding:"required,min=1"`
}

// CancelOrder refunds a purchase back to the wallet. A request for more than
// the owned quantity is clamped to the owned quantity.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid cancellation request: %v", err)
		utils.BadRequest(c, "Invalid request. Product, price and returned quantity are required", err.Error())
		return
	}
	utils.LogDebug("Processing cancellation for user %s - Product: %s, Price: %s, Quantity: %d",
		user.Username, req.ProductID, req.Price, req.ReturnedQuantity)

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	result, err := utils.CancelOrder(config.DB, client.ID, req.ProductID, req.Price, req.ReturnedQuantity)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.LogError("Owned line not found for user %s - Product: %s, Price: %s",
				user.Username, req.ProductID, req.Price)
			utils.NotFound(c, "No purchase found for this product at this price")
		default:
			var fieldErr models.FieldValidationError
			if errors.As(err, &fieldErr) {
				utils.LogError("Cancellation validation failed: %v", fieldErr)
				utils.ValidationError(c, "Invalid cancellation", fieldErr)
				return
			}
			utils.LogError("Failed to cancel order for user %s: %v", user.Username, err)
			utils.InternalServerError(c, "Failed to cancel order", err.Error())
		}
		return
	}

	utils.LogInfo("Cancellation completed for user %s - Refund: %s, Line deleted: %t",
		user.Username, result.Refund, result.LineDeleted)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"returned_quantity": result.ReturnedQuantity,
		"refund":            result.Refund,
		"money":             result.Balance,
		"line_deleted":      result.LineDeleted,
	})
}
