package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promotion represents a time-boxed percentage discount
type Promotion struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string         `json:"title" gorm:"not null;size:200"`
	Description    string         `json:"description" gorm:"size:2000"`
	DiscountAmount int            `json:"discount_amount" gorm:"not null"`
	StartDate      time.Time      `json:"start_date" gorm:"not null"`
	EndDate        time.Time      `json:"end_date" gorm:"not null"`
	Image          string         `json:"image"`
	CreatedAt      time.Time      `json:"created_at"`
	ModifiedAt     time.Time      `json:"modified_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// ActiveOn reports whether the promotion window contains the given date
func (p *Promotion) ActiveOn(date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !p.StartDate.After(day) && !p.EndDate.Before(day)
}

// BeforeCreate hook to assign the UUID and default image
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	return nil
}

// BeforeSave hook validates the discount and the date window on every persist
func (p *Promotion) BeforeSave(tx *gorm.DB) error {
	if err := CheckDiscountAmount(p.DiscountAmount); err != nil {
		return err
	}
	if err := CheckStartDate(p.StartDate); err != nil {
		return err
	}
	if err := CheckEndDate(p.EndDate); err != nil {
		return err
	}
	if p.EndDate.Before(p.StartDate) {
		return FieldValidationError{
			Field:   "end_date",
			Message: "the end date should be greater than or equal to the start date",
		}
	}
	p.Title = strings.TrimSpace(p.Title)
	p.ModifiedAt = time.Now().UTC()
	return nil
}

// ProductToPromotion links a product to a promotion, unique per pair
type ProductToPromotion struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_promotion"`
	PromotionID uuid.UUID `json:"promotion_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_promotion"`
	Product     Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Promotion   Promotion `json:"promotion,omitempty" gorm:"foreignKey:PromotionID"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate hook to assign the UUID
func (pp *ProductToPromotion) BeforeCreate(tx *gorm.DB) error {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	return nil
}
