package models

import "time"

// APIResponse is the envelope returned by every API endpoint.
type APIResponse struct {
	Status bool        `json:"status"`
	Msg    string      `json:"msg"`
	Obj    interface{} `json:"obj"`
}

// PaginatedResponse wraps a paginated list payload.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// APILog maps to the `api_logs` table.
type APILog struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID string    `gorm:"column:account_id;size:36;index" json:"account_id"`
	Method    string    `gorm:"column:method;size:10" json:"method"`
	Path      string    `gorm:"column:path;size:255" json:"path"`
	IP        string    `gorm:"column:ip;size:64" json:"ip"`
	Status    int       `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (APILog) TableName() string {
	return "api_logs"
}
