package models

import "time"

// Job statuses.
const (
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// Property types.
const (
	PropertyResidential = "residential"
	PropertyCommercial  = "commercial"
)

// Job is one unit of scheduled work. A row is exactly one of:
//   - a standalone job (IsRecurring false, ParentJobID nil),
//   - a recurring parent (IsRecurring true, ParentJobID nil), or
//   - a generated instance (ParentJobID set to the parent's ID).
//
// Recurrence fields are meaningful on parents only; instances keep the
// values copied at generation time.
type Job struct {
	ID        string `gorm:"column:id;primaryKey;size:36" json:"id"`
	AccountID string `gorm:"column:account_id;size:36;index" json:"account_id"`
	ClientID  string `gorm:"column:client_id;size:36;index" json:"client_id"`

	Title        string `gorm:"column:title;size:255" json:"title"`
	ServiceType  string `gorm:"column:service_type;size:50" json:"service_type"`
	PropertyType string `gorm:"column:property_type;size:20" json:"property_type"`
	Status       string `gorm:"column:status;size:20;index" json:"status"`
	Address      string `gorm:"column:address;size:500" json:"address"`
	Notes        string `gorm:"column:notes;type:text" json:"notes"`

	ScheduledDate      time.Time `gorm:"column:scheduled_date;type:date;index" json:"scheduled_date"`
	ScheduledTime      *string   `gorm:"column:scheduled_time;size:5" json:"scheduled_time,omitempty"`
	DurationMinutes    *int      `gorm:"column:duration_minutes" json:"duration_minutes,omitempty"`
	ArrivalWindowStart *string   `gorm:"column:arrival_window_start;size:5" json:"arrival_window_start,omitempty"`
	ArrivalWindowEnd   *string   `gorm:"column:arrival_window_end;size:5" json:"arrival_window_end,omitempty"`

	EstimatedPrice float64  `gorm:"column:estimated_price" json:"estimated_price"`
	ActualPrice    *float64 `gorm:"column:actual_price" json:"actual_price,omitempty"`

	IsRecurring          bool       `gorm:"column:is_recurring;index" json:"is_recurring"`
	ParentJobID          *string    `gorm:"column:parent_job_id;size:36;index" json:"parent_job_id,omitempty"`
	Frequency            *string    `gorm:"column:frequency;size:20" json:"frequency,omitempty"`
	RecurringEndType     *string    `gorm:"column:recurring_end_type;size:20" json:"recurring_end_type,omitempty"`
	RecurringEndDate     *time.Time `gorm:"column:recurring_end_date;type:date" json:"recurring_end_date,omitempty"`
	RecurringOccurrences *int       `gorm:"column:recurring_occurrences" json:"recurring_occurrences,omitempty"`
	RecurringDaysOfWeek  string     `gorm:"column:recurring_days_of_week;size:20" json:"recurring_days_of_week,omitempty"`
	RecurringDayOfMonth  *int       `gorm:"column:recurring_day_of_month" json:"recurring_day_of_month,omitempty"`

	ActualStartTime *time.Time `gorm:"column:actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `gorm:"column:actual_end_time" json:"actual_end_time,omitempty"`

	LineItems []JobLineItem `gorm:"foreignKey:JobID" json:"line_items,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// IsInstance reports whether the row was generated from a recurring parent.
func (j *Job) IsInstance() bool {
	return j.ParentJobID != nil && *j.ParentJobID != ""
}

// SeriesParentID resolves the owning parent of a series member: the row's
// own ID for a parent, the referenced parent otherwise.
func (j *Job) SeriesParentID() string {
	if j.IsInstance() {
		return *j.ParentJobID
	}
	return j.ID
}

// JobLineItem is one billed line on a job.
type JobLineItem struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	JobID       string  `gorm:"column:job_id;size:36;index" json:"job_id"`
	Description string  `gorm:"column:description;size:500" json:"description"`
	Quantity    int     `gorm:"column:quantity;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unit_price"`
}

func (JobLineItem) TableName() string {
	return "job_line_items"
}
