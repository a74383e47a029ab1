package models

import "time"

// Client is a customer of a cleaning business.
type Client struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	AccountID    string    `gorm:"column:account_id;size:36;index" json:"account_id"`
	Name         string    `gorm:"column:name;size:255" json:"name"`
	Email        string    `gorm:"column:email;size:255" json:"email"`
	Phone        string    `gorm:"column:phone;size:50" json:"phone"`
	Address      string    `gorm:"column:address;size:500" json:"address"`
	PropertyType string    `gorm:"column:property_type;size:20" json:"property_type"`
	Notes        string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
