package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an item in the store catalog
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200"`
	Description string          `json:"description" gorm:"size:2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(6,2);not null"`
	Image       string          `json:"image"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:uuid;not null"`
	Category    Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedAt  time.Time       `json:"modified_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate hook to assign the UUID and default image
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	return nil
}

// BeforeSave hook validates the price on every persist, direct or bulk
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if err := CheckPrice(p.Price); err != nil {
		return err
	}
	p.Title = strings.TrimSpace(p.Title)
	p.ModifiedAt = time.Now().UTC()
	return nil
}
