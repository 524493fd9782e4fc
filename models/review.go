package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review represents a client's review of a product
type Review struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Text       string         `json:"text" gorm:"not null;size:1000"`
	Rating     int            `json:"rating" gorm:"not null"`
	ClientID   uuid.UUID      `json:"client_id" gorm:"type:uuid;not null"`
	Client     Client         `json:"-" gorm:"foreignKey:ClientID"`
	ProductID  uuid.UUID      `json:"product_id" gorm:"type:uuid;not null"`
	Product    Product        `json:"-" gorm:"foreignKey:ProductID"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate hook to assign the UUID
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave hook validates the rating on every persist
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if err := CheckRating(r.Rating); err != nil {
		return err
	}
	r.ModifiedAt = time.Now().UTC()
	return nil
}
