package controllers

import (
	"errors"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddFundsRequest represents the wallet top-up request
type AddFundsRequest struct {
	Money *decimal.Decimal `json:"money" binding:"required"`
}

// GetProfile returns the client's balance and their owned product lines
func GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogDebug("Fetching profile for user: %s", user.Username)

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	lines, err := utils.OwnedLines(config.DB, client.ID)
	if err != nil {
		utils.LogError("Failed to fetch owned products for client %s: %v", client.ID, err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	products := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		products = append(products, gin.H{
			"product":  line.Product,
			"quantity": line.Quantity,
			"price":    line.Price,
		})
	}

	utils.LogInfo("Profile retrieved for user: %s", user.Username)
	utils.Success(c, "Profile retrieved successfully", gin.H{
		"client": gin.H{
			"username": user.Username,
			"money":    client.Money,
		},
		"products": products,
	})
}

// AddFunds validates and applies a positive top-up to the client's wallet
func AddFunds(c *gin.Context) {
	utils.LogInfo("AddFunds called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	utils.LogDebug("Processing wallet top-up for user: %s", user.Username)

	var req AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Money == nil {
		utils.LogError("Invalid top-up request for user %s: %v", user.Username, err)
		utils.BadRequest(c, "Invalid request. Money is required", nil)
		return
	}

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	balance, err := utils.AddFunds(config.DB, client.ID, *req.Money)
	if err != nil {
		var fieldErr models.FieldValidationError
		if errors.As(err, &fieldErr) {
			utils.LogError("Top-up validation failed for user %s: %v", user.Username, fieldErr)
			utils.ValidationError(c, "Invalid amount", fieldErr)
			return
		}
		utils.LogError("Failed to add funds for client %s: %v", client.ID, err)
		utils.InternalServerError(c, "Failed to add funds", err.Error())
		return
	}

	utils.LogInfo("Added %s to wallet of user %s", req.Money, user.Username)
	utils.Success(c, "Money added to wallet successfully", gin.H{
		"amount_added": req.Money,
		"money":        balance,
	})
}
