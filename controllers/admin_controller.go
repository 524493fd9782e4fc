package controllers

import (
	"os"

	"grocerystore/config"
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
)

// CreateSampleAdmin seeds an admin account from environment variables when
// none exists yet
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		email = "admin@grocerystore.local"
		password = "Admin123!"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  "admin",
		Email:     email,
		Password:  hash,
		FirstName: "Store",
		LastName:  "Admin",
		IsAdmin:   true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Sample admin created: %s", email)
	return nil
}

// CreateDefaultCategory seeds a default category if the catalog is empty
func CreateDefaultCategory() error {
	var count int64
	if err := config.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	category := models.Category{
		Title:       "Groceries",
		Description: "General grocery products",
	}
	if err := config.DB.Create(&category).Error; err != nil {
		return err
	}

	utils.LogInfo("Default category created: %s", category.Title)
	return nil
}

// ListClients returns all clients with their balances for the admin panel
func ListClients(c *gin.Context) {
	utils.LogInfo("ListClients called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Client{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count clients: %v", err)
		utils.InternalServerError(c, "Failed to fetch clients", err.Error())
		return
	}
	pagination.SetTotal(total)

	var clients []models.Client
	if err := config.DB.Preload("User").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&clients).Error; err != nil {
		utils.LogError("Failed to fetch clients: %v", err)
		utils.InternalServerError(c, "Failed to fetch clients", err.Error())
		return
	}

	data := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		data = append(data, gin.H{
			"id":       client.ID,
			"username": client.User.Username,
			"email":    client.User.Email,
			"money":    client.Money,
		})
	}

	utils.LogDebug("Retrieved %d clients", len(clients))
	utils.SendPaginatedResponse(c, data, pagination)
}
