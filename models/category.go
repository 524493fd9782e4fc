package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultImage is used when no image URL is supplied for catalog entities.
const DefaultImage = "https://acropora.ru/images/yootheme/pages/features/panel03.jpg"

// Category represents a product category
type Category struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:100"`
	Description string         `json:"description" gorm:"size:1000"`
	Image       string         `json:"image"`
	CreatedAt   time.Time      `json:"created_at"`
	ModifiedAt  time.Time      `json:"modified_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate hook to assign the UUID and standardize the title
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Image == "" {
		c.Image = DefaultImage
	}
	c.Title = strings.TrimSpace(c.Title)
	return nil
}

// BeforeSave hook to keep the title trimmed and stamp modification time
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)
	c.ModifiedAt = time.Now().UTC()
	return nil
}
