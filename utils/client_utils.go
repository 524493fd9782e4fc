package utils

import (
	"errors"

	"grocerystore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrCreateClient retrieves the client record for a user, creating an
// empty-wallet client on first access
func GetOrCreateClient(db *gorm.DB, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := db.Where("user_id = ?", userID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client = models.Client{UserID: userID}
			if err := db.Create(&client).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return &client, nil
}

// OwnedLines returns the client's purchase lines with products preloaded
func OwnedLines(db *gorm.DB, clientID uuid.UUID) ([]models.ClientToProduct, error) {
	var lines []models.ClientToProduct
	err := db.Preload("Product").
		Where("client_id = ?", clientID).
		Order("created_at").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
