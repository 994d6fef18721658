package model

import "gorm.io/gorm"

// User account (table users)
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"                  json:"id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"` // stored lower-cased
	PasswordHash string `gorm:"type:varchar(255);not null"             json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null;default:''"  json:"firstName"`
	LastName     string `gorm:"type:varchar(100);not null;default:''"  json:"lastName"`
	Name         string `gorm:"type:varchar(200);not null"             json:"name"`
	Major        string `gorm:"type:varchar(120);not null;default:''"  json:"major"`
	Minor        string `gorm:"type:varchar(120);not null;default:''"  json:"minor"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns the id.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	newID(&u.UserID)
	return nil
}
