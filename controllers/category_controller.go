package controllers

import (
	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryRequest represents the category creation/update request
type CategoryRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Image       string `json:"image"`
}

// ListCategories returns the paginated category list
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}
	pagination.SetTotal(total)

	var categories []models.Category
	if err := config.DB.Order("title").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.LogDebug("Retrieved %d categories", len(categories))
	utils.SendPaginatedResponse(c, categories, pagination)
}

// GetCategory returns one category with its products
func GetCategory(c *gin.Context) {
	utils.LogInfo("GetCategory called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid category ID format: %v", err)
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.Preload("Products").First(&category, "id = ?", id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	utils.LogInfo("Successfully retrieved category: %s", category.Title)
	utils.Success(c, "Category retrieved successfully", gin.H{"category": category})
}

// CreateCategory handles category creation
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Received category creation request - Title: %s", req.Title)

	var existing models.Category
	if err := config.DB.Where("title = ?", req.Title).First(&existing).Error; err == nil {
		utils.LogError("Category with title %s already exists", req.Title)
		utils.Conflict(c, "A category with this title already exists", nil)
		return
	}

	category := models.Category{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.LogInfo("Category created successfully: %s", category.Title)
	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory handles category updates
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid category ID format: %v", err)
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var duplicate models.Category
	if err := config.DB.Where("title = ? AND id != ?", req.Title, id).
		First(&duplicate).Error; err == nil {
		utils.LogError("Duplicate category title found: %s", req.Title)
		utils.Conflict(c, "Category title already exists", "Please choose a different title")
		return
	}

	category.Title = req.Title
	category.Description = req.Description
	if req.Image != "" {
		category.Image = req.Image
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category: %v", err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.LogInfo("Category updated successfully: %s", category.Title)
	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory handles category deletion
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid category ID format: %v", err)
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", id).Error; err != nil {
		utils.LogError("Category not found: %v", err)
		utils.NotFound(c, "Category not found")
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category: %v", err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	utils.LogInfo("Category deleted successfully: %s", category.Title)
	utils.Success(c, "Category deleted successfully", nil)
}
