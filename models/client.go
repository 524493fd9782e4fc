package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client holds a user's wallet balance and purchased products
type Client struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User       User            `json:"-" gorm:"foreignKey:UserID"`
	Money      decimal.Decimal `json:"money" gorm:"type:numeric(9,2);not null;default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	ModifiedAt time.Time       `json:"modified_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate hook to assign the UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave hook keeps the balance inside its allowed range on every persist
func (c *Client) BeforeSave(tx *gorm.DB) error {
	if err := CheckMoney(c.Money); err != nil {
		return err
	}
	c.ModifiedAt = time.Now().UTC()
	return nil
}

// ClientToProduct is an owned line: quantity of a product bought by a client
// at a specific price point. Purchases at different discounted prices form
// separate lines.
type ClientToProduct struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID       `json:"client_id" gorm:"type:uuid;not null;uniqueIndex:idx_client_product_price"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_client_product_price"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(6,2);not null;uniqueIndex:idx_client_product_price"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	Client    Client          `json:"-" gorm:"foreignKey:ClientID"`
	Product   Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time       `json:"created_at"`
}

// BeforeCreate hook to assign the UUID
func (cp *ClientToProduct) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// BeforeSave hook validates quantity and frozen price on every persist
func (cp *ClientToProduct) BeforeSave(tx *gorm.DB) error {
	if err := CheckQuantity(cp.Quantity); err != nil {
		return err
	}
	return CheckLinePrice(cp.Price)
}
