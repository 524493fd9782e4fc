package controllers

import (
	"time"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest represents the product creation/update request
type ProductRequest struct {
	Title       string          `json:"title" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Image       string          `json:"image"`
}

// ListProducts returns the paginated product list, optionally filtered by
// category title
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{})
	if categoryTitle := c.Query("category"); categoryTitle != "" {
		utils.LogDebug("Filtering products by category title: %s", categoryTitle)
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.title = ?", categoryTitle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Preload("Category").
		Order("title").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.LogDebug("Retrieved %d products", len(products))
	utils.SendPaginatedResponse(c, products, pagination)
}

// GetProduct returns one product along with its average rating and the best
// discounted price for today
func GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID format: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").Preload("Reviews").
		First(&product, "id = ?", id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	var averageRating float64
	if err := config.DB.Model(&models.Review{}).
		Where("product_id = ?", product.ID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&averageRating).Error; err != nil {
		utils.LogError("Failed to compute average rating: %v", err)
		utils.InternalServerError(c, "Failed to fetch product", err.Error())
		return
	}

	quote, err := utils.QuoteForProduct(config.DB, &product, time.Now().UTC())
	if err != nil {
		utils.LogError("Failed to compute discounted price for product %s: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to compute discounted price", err.Error())
		return
	}
	utils.LogDebug("Product %s quoted at %s (%d%% off)", product.ID, quote.FinalPrice, quote.DiscountPercent)

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product":        product,
		"average_rating": averageRating,
		"quote":          quote,
	})
}

// CreateProduct handles product creation
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Received product creation request - Title: %s", req.Title)

	if err := models.CheckPrice(req.Price); err != nil {
		utils.LogError("Invalid product price: %v", err)
		utils.ValidationError(c, "Invalid price", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  category.ID,
		Image:       req.Image,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Product created successfully: %s", product.Title)
	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct handles product updates; identity is immutable, price is
// admin-mutable
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID format: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if err := models.CheckPrice(req.Price); err != nil {
		utils.LogError("Invalid product price: %v", err)
		utils.ValidationError(c, "Invalid price", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = category.ID
	if req.Image != "" {
		product.Image = req.Image
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product: %v", err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	utils.LogInfo("Product updated successfully: %s", product.Title)
	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct handles product deletion
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid product ID format: %v", err)
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product: %v", err)
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}

	utils.LogInfo("Product deleted successfully: %s", product.Title)
	utils.Success(c, "Product deleted successfully", nil)
}
