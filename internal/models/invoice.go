package models

import "time"

// Invoice statuses.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice maps to the `invoices` table. Invoices are generated from
// completed jobs.
type Invoice struct {
	ID        string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	AccountID string     `gorm:"column:account_id;size:36;index" json:"account_id"`
	ClientID  string     `gorm:"column:client_id;size:36;index" json:"client_id"`
	JobID     string     `gorm:"column:job_id;size:36;index" json:"job_id"`
	Number    string     `gorm:"column:number;size:50;uniqueIndex" json:"number"`
	Amount    float64    `gorm:"column:amount" json:"amount"`
	Status    string     `gorm:"column:status;size:20;index" json:"status"`
	IssuedAt  time.Time  `gorm:"column:issued_at;type:date" json:"issued_at"`
	DueAt     time.Time  `gorm:"column:due_at;type:date" json:"due_at"`
	PaidAt    *time.Time `gorm:"column:paid_at;type:date" json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// ServiceRate is a seeded pricing catalog row used by the estimate
// calculator.
type ServiceRate struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ServiceType  string  `gorm:"column:service_type;size:50;index:idx_service_rates_type,priority:1" json:"service_type"`
	PropertyType string  `gorm:"column:property_type;size:20;index:idx_service_rates_type,priority:2" json:"property_type"`
	BaseRate     float64 `gorm:"column:base_rate" json:"base_rate"`
	PerBedroom   float64 `gorm:"column:per_bedroom" json:"per_bedroom"`
	PerBathroom  float64 `gorm:"column:per_bathroom" json:"per_bathroom"`
}

func (ServiceRate) TableName() string {
	return "service_rates"
}
