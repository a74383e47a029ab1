package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sweeply/internal/models"
	"sweeply/internal/pkg/utils"
	"sweeply/internal/recurrence"
	"sweeply/internal/repository"
)

// DefaultJobDurationMinutes is assumed for conflict checks when a job has
// no explicit duration.
const DefaultJobDurationMinutes = 120

// JobStore is the persistence surface the series manager needs.
// *repository.JobRepository satisfies it.
type JobStore interface {
	Create(job *models.Job) error
	CreateBatch(jobs []models.Job) error
	FindByID(accountID, id string) (*models.Job, error)
	FindParent(id string) (*models.Job, error)
	List(accountID string, f repository.JobFilters) ([]models.Job, int64, error)
	Update(id string, updates map[string]interface{}) error
	UpdateSeriesFuture(parentID string, updates map[string]interface{}, today time.Time) ([]models.Job, error)
	CancelSeries(parentID string, today time.Time) error
	FindRecurringParents() ([]models.Job, error)
	LatestInstanceDate(parentID string) (time.Time, bool, error)
	CountInstances(parentID string) (int64, error)
	FindOnDate(accountID string, date time.Time, statuses []string, excludeID string) ([]models.Job, error)
}

// StatusNotifier is called after a job status transition. The manager
// dispatches it on its own goroutine; failures are logged, never surfaced.
type StatusNotifier interface {
	JobStatusChanged(job *models.Job, newStatus string) error
}

// SeriesManager owns the recurring-job series lifecycle: creating parents,
// generating instances into a rolling window, propagating edits across a
// series, and cancelling or retiring series.
type SeriesManager struct {
	store         JobStore
	notifier      StatusNotifier
	logger        *zap.Logger
	horizonMonths int
	now           func() time.Time
}

// NewSeriesManager creates a series manager. notifier may be nil.
func NewSeriesManager(store JobStore, notifier StatusNotifier, horizonMonths int, logger *zap.Logger) *SeriesManager {
	if horizonMonths <= 0 {
		horizonMonths = 3
	}
	return &SeriesManager{
		store:         store,
		notifier:      notifier,
		logger:        logger,
		horizonMonths: horizonMonths,
		now:           time.Now,
	}
}

// WithClock overrides the manager's clock. Tests use this to pin "today".
func (m *SeriesManager) WithClock(now func() time.Time) *SeriesManager {
	m.now = now
	return m
}

func (m *SeriesManager) today() time.Time {
	return recurrence.DateOf(m.now())
}

// CreateJob creates a standalone job for the given account.
func (m *SeriesManager) CreateJob(accountID string, in models.CreateJobInput) (*models.Job, error) {
	job, err := m.buildJob(accountID, in)
	if err != nil {
		return nil, err
	}
	if err := m.store.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// CreateRecurringJob creates a recurring parent and generates its
// near-term instances. Instance-generation failure does not roll back the
// parent: the rolling-window refresh retries generation later.
func (m *SeriesManager) CreateRecurringJob(accountID string, in models.CreateRecurringJobInput) (*models.Job, error) {
	pattern, err := patternFromInput(in.Recurrence)
	if err != nil {
		return nil, err
	}
	if err := pattern.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recurrence pattern: %w", err)
	}

	parent, err := m.buildJob(accountID, in.CreateJobInput)
	if err != nil {
		return nil, err
	}
	applyPattern(parent, pattern)

	if err := m.store.Create(parent); err != nil {
		return nil, fmt.Errorf("failed to create recurring job: %w", err)
	}

	windowEnd := parent.ScheduledDate.AddDate(0, m.horizonMonths, 0)
	if _, err := m.GenerateInstances(parent.ID, parent.ScheduledDate, windowEnd); err != nil {
		m.logger.Warn("Instance generation failed after parent creation; refresh will retry",
			zap.String("parent_id", parent.ID), zap.Error(err))
	}
	return parent, nil
}

// GenerateInstances expands a parent's recurrence pattern over
// [start, end] and inserts the resulting instance rows.
func (m *SeriesManager) GenerateInstances(parentID string, start, end time.Time) ([]models.Job, error) {
	parent, err := m.store.FindParent(parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, parentID)
	}

	pattern, err := patternFromJob(parent)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurrence pattern: %w", err)
	}

	generated, err := m.store.CountInstances(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count generated instances: %w", err)
	}

	dates := recurrence.Expand(pattern, parent.ScheduledDate, start, end, int(generated))
	if len(dates) == 0 {
		return nil, nil
	}

	instances := make([]models.Job, 0, len(dates))
	for _, d := range dates {
		instances = append(instances, newInstance(parent, d))
	}
	if err := m.store.CreateBatch(instances); err != nil {
		return nil, fmt.Errorf("failed to insert generated instances: %w", err)
	}
	return instances, nil
}

// RefreshAllSeries tops up the rolling instance window for every active
// series. Per-series failures are logged and skipped so one broken series
// does not block the rest.
func (m *SeriesManager) RefreshAllSeries() error {
	today := m.today()
	windowEnd := today.AddDate(0, m.horizonMonths, 0)

	parents, err := m.store.FindRecurringParents()
	if err != nil {
		return fmt.Errorf("failed to fetch recurring parents: %w", err)
	}

	for i := range parents {
		parent := &parents[i]
		if parent.RecurringEndType != nil && *parent.RecurringEndType == string(recurrence.EndOnDate) &&
			parent.RecurringEndDate != nil && recurrence.DateOf(*parent.RecurringEndDate).Before(today) {
			continue // ended; retirement handles the flag
		}

		latest, ok, err := m.store.LatestInstanceDate(parent.ID)
		if err != nil {
			m.logger.Error("Failed to read latest instance date",
				zap.String("parent_id", parent.ID), zap.Error(err))
			continue
		}
		if ok && !latest.Before(windowEnd) {
			continue // window already full
		}

		start := recurrence.DateOf(parent.ScheduledDate)
		if ok {
			start = recurrence.DateOf(latest).AddDate(0, 0, 1)
		}
		if start.Before(today) {
			start = today
		}

		if _, err := m.GenerateInstances(parent.ID, start, windowEnd); err != nil {
			m.logger.Error("Failed to refresh series",
				zap.String("parent_id", parent.ID), zap.Error(err))
		}
	}
	return nil
}

// RetireEndedSeries clears is_recurring on parents whose end condition has
// been met: end date passed, or occurrence cap reached.
func (m *SeriesManager) RetireEndedSeries() error {
	today := m.today()

	parents, err := m.store.FindRecurringParents()
	if err != nil {
		return fmt.Errorf("failed to fetch recurring parents: %w", err)
	}

	for i := range parents {
		parent := &parents[i]
		if parent.RecurringEndType == nil {
			continue
		}

		retire := false
		switch recurrence.EndType(*parent.RecurringEndType) {
		case recurrence.EndOnDate:
			retire = parent.RecurringEndDate != nil && recurrence.DateOf(*parent.RecurringEndDate).Before(today)
		case recurrence.EndAfterOccurrences:
			if parent.RecurringOccurrences == nil {
				continue
			}
			count, err := m.store.CountInstances(parent.ID)
			if err != nil {
				m.logger.Error("Failed to count instances",
					zap.String("parent_id", parent.ID), zap.Error(err))
				continue
			}
			retire = count >= int64(*parent.RecurringOccurrences)
		}
		if !retire {
			continue
		}

		if err := m.store.Update(parent.ID, map[string]interface{}{"is_recurring": false}); err != nil {
			m.logger.Error("Failed to retire series",
				zap.String("parent_id", parent.ID), zap.Error(err))
		}
	}
	return nil
}

// ListJobs returns an account's jobs. Default filters exclude generated
// instances; calendar views set IncludeInstances.
func (m *SeriesManager) ListJobs(accountID string, f repository.JobFilters) ([]models.Job, int64, error) {
	jobs, total, err := m.store.List(accountID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, total, nil
}

// GetJob returns one job scoped to the account.
func (m *SeriesManager) GetJob(accountID, id string) (*models.Job, error) {
	job, err := m.store.FindByID(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, nil
}

// Columns a patch may never touch. Ownership and series identity are
// immutable; recurrence itself only changes through the dedicated
// create/cancel operations.
var protectedJobColumns = []string{"id", "account_id", "parent_job_id", "is_recurring", "created_at"}

func sanitizeJobPatch(patch map[string]interface{}) map[string]interface{} {
	clean := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		clean[k] = v
	}
	for _, col := range protectedJobColumns {
		delete(clean, col)
	}
	return clean
}

// UpdateJob patches one job row and returns the updated record.
func (m *SeriesManager) UpdateJob(accountID, id string, patch map[string]interface{}) (*models.Job, error) {
	patch = sanitizeJobPatch(patch)
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}
	if _, err := m.store.FindByID(accountID, id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err := m.store.Update(id, patch); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return m.store.FindByID(accountID, id)
}

// UpdateRecurring patches either one row or, when applyToSeries is set,
// every future still-scheduled member of the owning series (resolving the
// parent from the given row when it is an instance).
func (m *SeriesManager) UpdateRecurring(accountID, id string, patch map[string]interface{}, applyToSeries bool) ([]models.Job, error) {
	if !applyToSeries {
		job, err := m.UpdateJob(accountID, id, patch)
		if err != nil {
			return nil, err
		}
		return []models.Job{*job}, nil
	}

	patch = sanitizeJobPatch(patch)
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}

	job, err := m.store.FindByID(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	rows, err := m.store.UpdateSeriesFuture(job.SeriesParentID(), patch, m.today())
	if err != nil {
		return nil, fmt.Errorf("failed to update recurring series: %w", err)
	}
	return rows, nil
}

// CancelSeries cancels every future still-scheduled instance of a series
// and disables further recurrence on the parent. Past and already
// completed or cancelled instances are untouched.
func (m *SeriesManager) CancelSeries(accountID, id string) error {
	job, err := m.store.FindByID(accountID, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err := m.store.CancelSeries(job.SeriesParentID(), m.today()); err != nil {
		return fmt.Errorf("failed to cancel recurring series: %w", err)
	}
	return nil
}

// UpdateStatus transitions a job's status, stamping actual start/end times
// on the in_progress and completed transitions when not already set.
func (m *SeriesManager) UpdateStatus(accountID, id string, req models.UpdateStatusRequest) (*models.Job, error) {
	job, err := m.store.FindByID(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	patch := map[string]interface{}{"status": req.Status}
	if req.ActualPrice != nil {
		patch["actual_price"] = *req.ActualPrice
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}

	now := m.now()
	if req.Status == models.JobStatusInProgress && job.ActualStartTime == nil {
		patch["actual_start_time"] = now
	}
	if req.Status == models.JobStatusCompleted && job.ActualEndTime == nil {
		patch["actual_end_time"] = now
	}

	if err := m.store.Update(id, patch); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	updated, err := m.store.FindByID(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated job: %w", err)
	}

	if m.notifier != nil {
		// Async, off the request path
		go func(job models.Job, status string) {
			if err := m.notifier.JobStatusChanged(&job, status); err != nil {
				m.logger.Warn("Status notification failed",
					zap.String("job_id", job.ID), zap.Error(err))
			}
		}(*updated, req.Status)
	}
	return updated, nil
}

// CheckConflicts returns the account's jobs that would clash with a
// candidate slot. Without a time of day every same-day scheduled or
// in-progress job is a potential conflict; with one, only jobs whose
// [start, start+duration) window contains the candidate. Advisory only.
func (m *SeriesManager) CheckConflicts(accountID string, date time.Time, timeOfDay *string, excludeID string) ([]models.Job, error) {
	statuses := []string{models.JobStatusScheduled, models.JobStatusInProgress}
	jobs, err := m.store.FindOnDate(accountID, recurrence.DateOf(date), statuses, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if timeOfDay == nil || *timeOfDay == "" {
		return jobs, nil
	}

	candidate, err := utils.ParseClock(*timeOfDay)
	if err != nil {
		return nil, err
	}

	conflicts := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.ScheduledTime == nil || *job.ScheduledTime == "" {
			continue
		}
		start, err := utils.ParseClock(*job.ScheduledTime)
		if err != nil {
			continue
		}
		duration := DefaultJobDurationMinutes
		if job.DurationMinutes != nil && *job.DurationMinutes > 0 {
			duration = *job.DurationMinutes
		}
		if candidate >= start && candidate < start+duration {
			conflicts = append(conflicts, job)
		}
	}
	return conflicts, nil
}

// buildJob turns a creation input into a job row with defaults applied.
func (m *SeriesManager) buildJob(accountID string, in models.CreateJobInput) (*models.Job, error) {
	if accountID == "" {
		return nil, ErrUnauthorized
	}
	if in.ClientID == "" {
		return nil, fmt.Errorf("client_id is required")
	}

	scheduled, err := utils.ParseDate(in.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_date: %w", err)
	}

	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = models.PropertyResidential
	}

	price := 0.0
	if in.EstimatedPrice != nil {
		price = *in.EstimatedPrice
	} else if len(in.LineItems) > 0 {
		for _, item := range in.LineItems {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			price += float64(qty) * item.UnitPrice
		}
	}

	job := &models.Job{
		ID:                 utils.GenerateUUID(),
		AccountID:          accountID,
		ClientID:           in.ClientID,
		Title:              in.Title,
		ServiceType:        in.ServiceType,
		PropertyType:       propertyType,
		Status:             models.JobStatusScheduled,
		Address:            in.Address,
		Notes:              in.Notes,
		ScheduledDate:      scheduled,
		ScheduledTime:      in.ScheduledTime,
		DurationMinutes:    in.DurationMinutes,
		ArrivalWindowStart: in.ArrivalWindowStart,
		ArrivalWindowEnd:   in.ArrivalWindowEnd,
		EstimatedPrice:     price,
	}
	for _, item := range in.LineItems {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		job.LineItems = append(job.LineItems, models.JobLineItem{
			JobID:       job.ID,
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   item.UnitPrice,
		})
	}
	return job, nil
}

// newInstance derives a dated instance row from its parent.
func newInstance(parent *models.Job, date time.Time) models.Job {
	parentID := parent.ID
	return models.Job{
		ID:                 utils.GenerateUUID(),
		AccountID:          parent.AccountID,
		ClientID:           parent.ClientID,
		Title:              parent.Title,
		ServiceType:        parent.ServiceType,
		PropertyType:       parent.PropertyType,
		Status:             models.JobStatusScheduled,
		Address:            parent.Address,
		Notes:              parent.Notes,
		ScheduledDate:      date,
		ScheduledTime:      parent.ScheduledTime,
		DurationMinutes:    parent.DurationMinutes,
		ArrivalWindowStart: parent.ArrivalWindowStart,
		ArrivalWindowEnd:   parent.ArrivalWindowEnd,
		EstimatedPrice:     parent.EstimatedPrice,
		IsRecurring:        false,
		ParentJobID:        &parentID,
		Frequency:          parent.Frequency,
	}
}

// applyPattern writes a recurrence pattern onto a parent row.
func applyPattern(job *models.Job, p recurrence.Pattern) {
	job.IsRecurring = true
	freq := string(p.Frequency)
	endType := string(p.EndType)
	job.Frequency = &freq
	job.RecurringEndType = &endType

	if p.EndType == recurrence.EndOnDate {
		end := recurrence.DateOf(p.EndDate)
		job.RecurringEndDate = &end
	}
	if p.EndType == recurrence.EndAfterOccurrences {
		occ := p.Occurrences
		job.RecurringOccurrences = &occ
	}
	if len(p.DaysOfWeek) > 0 {
		parts := make([]string, 0, len(p.DaysOfWeek))
		for _, d := range p.DaysOfWeek {
			parts = append(parts, strconv.Itoa(int(d)))
		}
		job.RecurringDaysOfWeek = strings.Join(parts, ",")
	}
	if p.DayOfMonth > 0 {
		dom := p.DayOfMonth
		job.RecurringDayOfMonth = &dom
	}
}

// patternFromInput parses the wire-level recurrence input.
func patternFromInput(in models.RecurrenceInput) (recurrence.Pattern, error) {
	p := recurrence.Pattern{
		Frequency: recurrence.Frequency(in.Frequency),
		EndType:   recurrence.EndType(in.EndType),
	}
	if in.EndType == "" {
		p.EndType = recurrence.EndNever
	}
	if in.EndDate != nil && *in.EndDate != "" {
		end, err := utils.ParseDate(*in.EndDate)
		if err != nil {
			return p, fmt.Errorf("invalid recurrence end_date: %w", err)
		}
		p.EndDate = end
	}
	if in.Occurrences != nil {
		p.Occurrences = *in.Occurrences
	}
	if in.DayOfMonth != nil {
		p.DayOfMonth = *in.DayOfMonth
	}
	for _, d := range in.DaysOfWeek {
		p.DaysOfWeek = append(p.DaysOfWeek, time.Weekday(d))
	}
	return p, nil
}

// patternFromJob rebuilds the recurrence pattern stored on a parent row.
func patternFromJob(job *models.Job) (recurrence.Pattern, error) {
	if job.Frequency == nil || *job.Frequency == "" {
		return recurrence.Pattern{}, fmt.Errorf("job %s has no recurrence pattern", job.ID)
	}

	p := recurrence.Pattern{
		Frequency: recurrence.Frequency(*job.Frequency),
		EndType:   recurrence.EndNever,
	}
	if job.RecurringEndType != nil && *job.RecurringEndType != "" {
		p.EndType = recurrence.EndType(*job.RecurringEndType)
	}
	if job.RecurringEndDate != nil {
		p.EndDate = *job.RecurringEndDate
	}
	if job.RecurringOccurrences != nil {
		p.Occurrences = *job.RecurringOccurrences
	}
	if job.RecurringDayOfMonth != nil {
		p.DayOfMonth = *job.RecurringDayOfMonth
	}
	if job.RecurringDaysOfWeek != "" {
		for _, part := range strings.Split(job.RecurringDaysOfWeek, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return p, fmt.Errorf("malformed days-of-week %q on job %s", job.RecurringDaysOfWeek, job.ID)
			}
			p.DaysOfWeek = append(p.DaysOfWeek, time.Weekday(n))
		}
	}
	return p, p.Validate()
}
