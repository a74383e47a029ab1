package models

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LineItemInput is one billed line supplied on job creation.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateJobInput carries every field accepted when creating a job.
// Optional fields are pointers so absence is distinguishable from zero.
type CreateJobInput struct {
	ClientID           string          `json:"client_id"`
	Title              string          `json:"title"`
	ServiceType        string          `json:"service_type"`
	PropertyType       string          `json:"property_type"`
	ScheduledDate      string          `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime      *string         `json:"scheduled_time,omitempty"`
	DurationMinutes    *int            `json:"duration_minutes,omitempty"`
	ArrivalWindowStart *string         `json:"arrival_window_start,omitempty"`
	ArrivalWindowEnd   *string         `json:"arrival_window_end,omitempty"`
	Address            string          `json:"address"`
	Notes              string          `json:"notes"`
	EstimatedPrice     *float64        `json:"estimated_price,omitempty"`
	LineItems          []LineItemInput `json:"line_items,omitempty"`
}

// RecurrenceInput carries the recurrence pattern on recurring-job creation.
type RecurrenceInput struct {
	Frequency   string  `json:"frequency"`
	EndType     string  `json:"end_type"`
	EndDate     *string `json:"end_date,omitempty"` // YYYY-MM-DD
	Occurrences *int    `json:"occurrences,omitempty"`
	DaysOfWeek  []int   `json:"days_of_week,omitempty"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
}

// CreateRecurringJobInput is a job plus its recurrence pattern.
type CreateRecurringJobInput struct {
	CreateJobInput
	Recurrence RecurrenceInput `json:"recurrence"`
}

// UpdateJobRequest carries a field patch plus the series flag.
type UpdateJobRequest struct {
	Patch         map[string]interface{} `json:"patch"`
	ApplyToSeries bool                   `json:"apply_to_series"`
}

// UpdateStatusRequest transitions a job's status.
type UpdateStatusRequest struct {
	Status      string   `json:"status"`
	ActualPrice *float64 `json:"actual_price,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// EstimateRequest asks the calculator for a price.
type EstimateRequest struct {
	ServiceType  string `json:"service_type"`
	PropertyType string `json:"property_type"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Frequency    string `json:"frequency,omitempty"`
}
