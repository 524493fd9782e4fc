package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that can log in to the store
type User struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `json:"-"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	IsAdmin    bool           `json:"is_admin" gorm:"default:false"`
	LastLogin  time.Time      `json:"last_login"`
	CreatedAt  time.Time      `json:"created_at"`
	ModifiedAt time.Time      `json:"modified_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns the UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave stamps the modification time
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.ModifiedAt = time.Now().UTC()
	return nil
}
