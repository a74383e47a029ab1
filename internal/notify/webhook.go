// Package notify delivers job-status change notifications to a configured
// webhook endpoint. Delivery is best effort: failures are reported to the
// caller for logging and never block or fail the triggering operation.
package notify

import (
	"fmt"
	"time"

	"sweeply/internal/models"
	"sweeply/internal/pkg/httpclient"
)

// WebhookNotifier posts status-change events as JSON.
type WebhookNotifier struct {
	client *httpclient.Client
	url    string
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: httpclient.New().WithTimeout(5 * time.Second),
		url:    url,
	}
}

type statusEvent struct {
	Event         string    `json:"event"`
	JobID         string    `json:"job_id"`
	AccountID     string    `json:"account_id"`
	ClientID      string    `json:"client_id"`
	Status        string    `json:"status"`
	ScheduledDate string    `json:"scheduled_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// JobStatusChanged posts one event for a status transition.
func (n *WebhookNotifier) JobStatusChanged(job *models.Job, newStatus string) error {
	event := statusEvent{
		Event:         "job.status_changed",
		JobID:         job.ID,
		AccountID:     job.AccountID,
		ClientID:      job.ClientID,
		Status:        newStatus,
		ScheduledDate: job.ScheduledDate.Format("2006-01-02"),
		OccurredAt:    time.Now().UTC(),
	}
	if _, err := n.client.Post(n.url, event); err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	return nil
}
