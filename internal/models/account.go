package models

import "time"

// Account is a tenant of the platform: one cleaning business and its login.
// Every domain row carries the owning account's ID.
type Account struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255" json:"-"`
	BusinessName string    `gorm:"column:business_name;size:255" json:"business_name"`
	Phone        string    `gorm:"column:phone;size:50" json:"phone"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
