package controllers

import (
	"errors"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewRequest represents the review creation request. The rating pointer
// distinguishes an explicit zero-star rating from an omitted one.
type ReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Text      string    `json:"text" binding:"required,max=1000"`
	Rating    *int      `json:"rating"`
}

// GetProductReviews handles fetching reviews for a product
func GetProductReviews(c *gin.Context) {
	utils.LogInfo("GetProductReviews called")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID format: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}
	utils.LogDebug("Fetching reviews for product ID: %s", productID)

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Review{}).
		Where("product_id = ?", productID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}
	pagination.SetTotal(total)

	var reviews []models.Review
	if err := config.DB.Where("product_id = ?", productID).
		Order("rating").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	utils.LogDebug("Found %d reviews for product ID: %s", len(reviews), productID)
	utils.SendPaginatedResponse(c, reviews, pagination)
}

// CreateReview handles a client posting a review for a product
func CreateReview(c *gin.Context) {
	utils.LogInfo("CreateReview called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
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

	rating := 5
	if req.Rating != nil {
		rating = *req.Rating
	}

	review := models.Review{
		Text:      req.Text,
		Rating:    rating,
		ClientID:  client.ID,
		ProductID: product.ID,
	}

	if err := config.DB.Create(&review).Error; err != nil {
		var fieldErr models.FieldValidationError
		if errors.As(err, &fieldErr) {
			utils.LogError("Review validation failed: %v", fieldErr)
			utils.ValidationError(c, "Invalid review", fieldErr)
			return
		}
		utils.LogError("Failed to create review: %v", err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}

	utils.LogInfo("Review created for product %s by client %s", product.Title, client.ID)
	utils.Created(c, "Review created successfully", gin.H{"review": review})
}

// DeleteReview handles a client deleting their own review
func DeleteReview(c *gin.Context) {
	utils.LogInfo("DeleteReview called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid review ID format: %v", err)
		utils.BadRequest(c, "Invalid review ID", nil)
		return
	}

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		utils.LogError("Review not found: %v", err)
		utils.NotFound(c, "Review not found")
		return
	}

	client, err := utils.GetOrCreateClient(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get client for user %s: %v", user.Username, err)
		utils.InternalServerError(c, "Failed to get client", err.Error())
		return
	}

	if review.ClientID != client.ID && !user.IsAdmin {
		utils.LogError("Client %s attempted to delete review %s owned by another client", client.ID, review.ID)
		utils.Forbidden(c, "You can only delete your own reviews")
		return
	}

	if err := config.DB.Delete(&review).Error; err != nil {
		utils.LogError("Failed to delete review: %v", err)
		utils.InternalServerError(c, "Failed to delete review", err.Error())
		return
	}

	utils.LogInfo("Review %s deleted successfully", reviewID)
	utils.Success(c, "Review deleted successfully", nil)
}
