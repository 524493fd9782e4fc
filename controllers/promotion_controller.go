package controllers

import (
	"errors"
	"time"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromotionRequest represents the promotion creation/update request
type PromotionRequest struct {
	Title          string `json:"title" binding:"required,min=2,max=200"`
	Description    string `json:"description" binding:"max=2000"`
	DiscountAmount int    `json:"discount_amount"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	Image          string `json:"image"`
}

// PromotionLinkRequest links a promotion to a product
type PromotionLinkRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	PromotionID uuid.UUID `json:"promotion_id" binding:"required"`
}

func parsePromotionDates(req *PromotionRequest) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, models.FieldValidationError{
			Field:   "start_date",
			Message: "the start date should be formatted as YYYY-MM-DD",
		}
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, models.FieldValidationError{
			Field:   "end_date",
			Message: "the end date should be formatted as YYYY-MM-DD",
		}
	}
	return start, end, nil
}

// ListPromotions returns the paginated promotion list
func ListPromotions(c *gin.Context) {
	utils.LogInfo("ListPromotions called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Promotion{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count promotions: %v", err)
		utils.InternalServerError(c, "Failed to fetch promotions", err.Error())
		return
	}
	pagination.SetTotal(total)

	var promotions []models.Promotion
	if err := config.DB.Order("discount_amount").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&promotions).Error; err != nil {
		utils.LogError("Failed to fetch promotions: %v", err)
		utils.InternalServerError(c, "Failed to fetch promotions", err.Error())
		return
	}

	utils.LogDebug("Retrieved %d promotions", len(promotions))
	utils.SendPaginatedResponse(c, promotions, pagination)
}

// GetPromotion returns one promotion with its linked products
func GetPromotion(c *gin.Context) {
	utils.LogInfo("GetPromotion called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid promotion ID format: %v", err)
		utils.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var promotion models.Promotion
	if err := config.DB.First(&promotion, "id = ?", id).Error; err != nil {
		utils.LogError("Promotion not found: %v", err)
		utils.NotFound(c, "Promotion not found")
		return
	}

	var links []models.ProductToPromotion
	if err := config.DB.Preload("Product").
		Where("promotion_id = ?", promotion.ID).
		Find(&links).Error; err != nil {
		utils.LogError("Failed to fetch promotion products: %v", err)
		utils.InternalServerError(c, "Failed to fetch promotion products", err.Error())
		return
	}

	products := make([]models.Product, 0, len(links))
	for _, link := range links {
		products = append(products, link.Product)
	}

	utils.LogInfo("Successfully retrieved promotion: %s", promotion.Title)
	utils.Success(c, "Promotion retrieved successfully", gin.H{
		"promotion": promotion,
		"products":  products,
		"active":    promotion.ActiveOn(time.Now().UTC()),
	})
}

// CreatePromotion handles promotion creation
func CreatePromotion(c *gin.Context) {
	utils.LogInfo("CreatePromotion called")

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Received promotion creation request - Title: %s", req.Title)

	start, end, err := parsePromotionDates(&req)
	if err != nil {
		utils.LogError("Invalid promotion dates: %v", err)
		utils.ValidationError(c, "Invalid dates", err.Error())
		return
	}

	promotion := models.Promotion{
		Title:          req.Title,
		Description:    req.Description,
		DiscountAmount: req.DiscountAmount,
		StartDate:      start,
		EndDate:        end,
		Image:          req.Image,
	}

	// Range checks run in the model's BeforeSave hook
	if err := config.DB.Create(&promotion).Error; err != nil {
		var fieldErr models.FieldValidationError
		if errors.As(err, &fieldErr) {
			utils.LogError("Promotion validation failed: %v", fieldErr)
			utils.ValidationError(c, "Invalid promotion", fieldErr)
			return
		}
		utils.LogError("Failed to create promotion: %v", err)
		utils.InternalServerError(c, "Failed to create promotion", err.Error())
		return
	}

	utils.LogInfo("Promotion created successfully: %s", promotion.Title)
	utils.Created(c, "Promotion created successfully", gin.H{"promotion": promotion})
}

// UpdatePromotion handles promotion updates
func UpdatePromotion(c *gin.Context) {
	utils.LogInfo("UpdatePromotion called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid promotion ID format: %v", err)
		utils.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var promotion models.Promotion
	if err := config.DB.First(&promotion, "id = ?", id).Error; err != nil {
		utils.LogError("Promotion not found: %v", err)
		utils.NotFound(c, "Promotion not found")
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	start, end, err := parsePromotionDates(&req)
	if err != nil {
		utils.LogError("Invalid promotion dates: %v", err)
		utils.ValidationError(c, "Invalid dates", err.Error())
		return
	}

	promotion.Title = req.Title
	promotion.Description = req.Description
	promotion.DiscountAmount = req.DiscountAmount
	promotion.StartDate = start
	promotion.EndDate = end
	if req.Image != "" {
		promotion.Image = req.Image
	}

	if err := config.DB.Save(&promotion).Error; err != nil {
		var fieldErr models.FieldValidationError
		if errors.As(err, &fieldErr) {
			utils.LogError("Promotion validation failed: %v", fieldErr)
			utils.ValidationError(c, "Invalid promotion", fieldErr)
			return
		}
		utils.LogError("Failed to update promotion: %v", err)
		utils.InternalServerError(c, "Failed to update promotion", err.Error())
		return
	}

	utils.LogInfo("Promotion updated successfully: %s", promotion.Title)
	utils.Success(c, "Promotion updated successfully", gin.H{"promotion": promotion})
}

// DeletePromotion handles promotion deletion together with its product links
func DeletePromotion(c *gin.Context) {
	utils.LogInfo("DeletePromotion called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid promotion ID format: %v", err)
		utils.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var promotion models.Promotion
	if err := config.DB.First(&promotion, "id = ?", id).Error; err != nil {
		utils.LogError("Promotion not found: %v", err)
		utils.NotFound(c, "Promotion not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("promotion_id = ?", promotion.ID).
			Delete(&models.ProductToPromotion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&promotion).Error
	})
	if err != nil {
		utils.LogError("Failed to delete promotion: %v", err)
		utils.InternalServerError(c, "Failed to delete promotion", err.Error())
		return
	}

	utils.LogInfo("Promotion deleted successfully: %s", promotion.Title)
	utils.Success(c, "Promotion deleted successfully", nil)
}

// LinkPromotion attaches a promotion to a product. The pair is unique;
// duplicates surface as a conflict rather than a silent retry.
func LinkPromotion(c *gin.Context) {
	utils.LogInfo("LinkPromotion called")

	var req PromotionLinkRequest
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

	var promotion models.Promotion
	if err := config.DB.First(&promotion, "id = ?", req.PromotionID).Error; err != nil {
		utils.LogError("Promotion not found: %v", err)
		utils.NotFound(c, "Promotion not found")
		return
	}

	var existing models.ProductToPromotion
	if err := config.DB.
		Where("product_id = ? AND promotion_id = ?", product.ID, promotion.ID).
		First(&existing).Error; err == nil {
		utils.LogError("Promotion %s already linked to product %s", promotion.ID, product.ID)
		utils.Conflict(c, "Promotion already linked to this product", nil)
		return
	}

	link := models.ProductToPromotion{
		ProductID:   product.ID,
		PromotionID: promotion.ID,
	}
	if err := config.DB.Create(&link).Error; err != nil {
		utils.LogError("Failed to link promotion: %v", err)
		utils.InternalServerError(c, "Failed to link promotion", err.Error())
		return
	}

	utils.LogInfo("Linked promotion %s to product %s", promotion.Title, product.Title)
	utils.Created(c, "Promotion linked successfully", gin.H{"link": link})
}

// UnlinkPromotion removes a promotion from a product
func UnlinkPromotion(c *gin.Context) {
	utils.LogInfo("UnlinkPromotion called")

	var req PromotionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var link models.ProductToPromotion
	if err := config.DB.
		Where("product_id = ? AND promotion_id = ?", req.ProductID, req.PromotionID).
		First(&link).Error; err != nil {
		utils.LogError("Promotion link not found: %v", err)
		utils.NotFound(c, "Promotion link not found")
		return
	}

	if err := config.DB.Delete(&link).Error; err != nil {
		utils.LogError("Failed to unlink promotion: %v", err)
		utils.InternalServerError(c, "Failed to unlink promotion", err.Error())
		return
	}

	utils.LogInfo("Unlinked promotion %s from product %s", req.PromotionID, req.ProductID)
	utils.Success(c, "Promotion unlinked successfully", nil)
}
