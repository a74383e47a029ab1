package repository

import (
	"time"

	"gorm.io/gorm"

	"sweeply/internal/models"
)

// JobFilters narrows job listings. Default listings exclude generated
// instances so a series shows up as one row; calendar views set
// IncludeInstances to get the superset.
type JobFilters struct {
	Status           string
	ClientID         string
	DateFrom         time.Time
	DateTo           time.Time
	IncludeInstances bool
	Limit            int
	Page             int
}

// JobRepository handles job database operations, including the series
// predicates used by the recurring-job manager.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns an account's jobs with filters and pagination.
func (r *JobRepository) List(accountID string, f JobFilters) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	db := r.db.Model(&models.Job{}).Where("account_id = ?", accountID)

	if !f.IncludeInstances {
		db = db.Where("parent_job_id IS NULL")
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		db = db.Where("client_id = ?", f.ClientID)
	}
	if !f.DateFrom.IsZero() {
		db = db.Where("scheduled_date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		db = db.Where("scheduled_date <= ?", f.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	err := db.Preload("LineItems").
		Limit(limit).Offset(offset).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FindByID returns a job scoped to the owning account.
func (r *JobRepository) FindByID(accountID, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("LineItems").
		Where("account_id = ? AND id = ?", accountID, id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindParent returns a job row by ID without account scoping. Used by the
// maintenance paths, which run across all tenants.
func (r *JobRepository) FindParent(id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts one job row (and its line items, if any).
func (r *JobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// CreateBatch inserts generated instance rows.
func (r *JobRepository) CreateBatch(jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.Create(&jobs).Error
}

// Update patches a single job row.
func (r *JobRepository) Update(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Job{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a job row.
func (r *JobRepository) Delete(accountID, id string) error {
	return r.db.Where("account_id = ? AND id = ?", accountID, id).Delete(&models.Job{}).Error
}

// UpdateSeriesFuture applies a patch to every member of a series (the
// parent row plus its instances) whose scheduled date is on or after today
// and whose status is still scheduled. Past, in-progress, completed and
// cancelled rows are never touched. Returns the updated rows.
func (r *JobRepository) UpdateSeriesFuture(parentID string, updates map[string]interface{}, today time.Time) ([]models.Job, error) {
	var ids []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Job{}).
			Where("(id = ? OR parent_job_id = ?) AND scheduled_date >= ? AND status = ?",
				parentID, parentID, today, models.JobStatusScheduled).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Job{}).Where("id IN ?", ids).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var jobs []models.Job
	if err := r.db.Where("id IN ?", ids).Order("scheduled_date ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// CancelSeries cancels every future still-scheduled instance of a parent
// and disables further recurrence on the parent, in one transaction.
func (r *JobRepository) CancelSeries(parentID string, today time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).
			Where("parent_job_id = ? AND scheduled_date >= ? AND status = ?",
				parentID, today, models.JobStatusScheduled).
			Update("status", models.JobStatusCancelled).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", parentID).
			Updates(map[string]interface{}{
				"is_recurring":       false,
				"recurring_end_date": today,
			}).Error
	})
}

// FindRecurringParents returns every active recurring parent across all
// accounts.
func (r *JobRepository) FindRecurringParents() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("is_recurring = ? AND parent_job_id IS NULL", true).
		Find(&jobs).Error
	return jobs, err
}

// LatestInstanceDate returns the most recent scheduled date among a
// parent's instances. The bool is false when no instances exist.
func (r *JobRepository) LatestInstanceDate(parentID string) (time.Time, bool, error) {
	var job models.Job
	err := r.db.Where("parent_job_id = ?", parentID).
		Order("scheduled_date DESC").
		First(&job).Error
	if err == gorm.ErrRecordNotFound {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return job.ScheduledDate, true, nil
}

// CountInstances counts all instances ever generated for a parent.
func (r *JobRepository) CountInstances(parentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("parent_job_id = ?", parentID).Count(&count).Error
	return count, err
}

// FindOnDate returns an account's jobs on a calendar date with one of the
// given statuses, excluding excludeID when non-empty. Instances are
// included: a generated visit occupies the day like any other job.
func (r *JobRepository) FindOnDate(accountID string, date time.Time, statuses []string, excludeID string) ([]models.Job, error) {
	db := r.db.Where("account_id = ? AND scheduled_date = ? AND status IN ?", accountID, date, statuses)
	if excludeID != "" {
		db = db.Where("id != ?", excludeID)
	}
	var jobs []models.Job
	err := db.Order("scheduled_time ASC").Find(&jobs).Error
	return jobs, err
}
