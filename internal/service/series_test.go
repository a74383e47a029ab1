package service

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweeply/internal/models"
	"sweeply/internal/repository"
)

// mockJobStore is an in-memory JobStore mirroring the repository's
// filtering semantics.
type mockJobStore struct {
	jobs      map[string]*models.Job
	createErr error
	batchErr  error
	updateErr error
	countErr  error
}

func newMockJobStore() *mockJobStore {
	return &mockJobStore{jobs: make(map[string]*models.Job)}
}

func (m *mockJobStore) Create(job *models.Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockJobStore) CreateBatch(jobs []models.Job) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range jobs {
		cp := jobs[i]
		m.jobs[cp.ID] = &cp
	}
	return nil
}

func (m *mockJobStore) FindByID(accountID, id string) (*models.Job, error) {
	job, ok := m.jobs[id]
	if !ok || job.AccountID != accountID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *mockJobStore) FindParent(id string) (*models.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *mockJobStore) List(accountID string, f repository.JobFilters) ([]models.Job, int64, error) {
	var out []models.Job
	for _, job := range m.jobs {
		if job.AccountID != accountID {
			continue
		}
		if !f.IncludeInstances && job.IsInstance() {
			continue
		}
		if f.Status != "" && job.Status != f.Status {
			continue
		}
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, int64(len(out)), nil
}

func (m *mockJobStore) Update(id string, updates map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	job, ok := m.jobs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyPatch(job, updates)
	return nil
}

func (m *mockJobStore) UpdateSeriesFuture(parentID string, updates map[string]interface{}, today time.Time) ([]models.Job, error) {
	var out []models.Job
	for _, job := range m.jobs {
		member := job.ID == parentID || (job.ParentJobID != nil && *job.ParentJobID == parentID)
		if !member || job.ScheduledDate.Before(today) || job.Status != models.JobStatusScheduled {
			continue
		}
		applyPatch(job, updates)
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (m *mockJobStore) CancelSeries(parentID string, today time.Time) error {
	for _, job := range m.jobs {
		if job.ParentJobID != nil && *job.ParentJobID == parentID &&
			!job.ScheduledDate.Before(today) && job.Status == models.JobStatusScheduled {
			job.Status = models.JobStatusCancelled
		}
	}
	parent, ok := m.jobs[parentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	parent.IsRecurring = false
	end := today
	parent.RecurringEndDate = &end
	return nil
}

func (m *mockJobStore) FindRecurringParents() ([]models.Job, error) {
	var out []models.Job
	for _, job := range m.jobs {
		if job.IsRecurring && !job.IsInstance() {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockJobStore) LatestInstanceDate(parentID string) (time.Time, bool, error) {
	var latest time.Time
	found := false
	for _, job := range m.jobs {
		if job.ParentJobID != nil && *job.ParentJobID == parentID {
			if !found || job.ScheduledDate.After(latest) {
				latest = job.ScheduledDate
				found = true
			}
		}
	}
	return latest, found, nil
}

func (m *mockJobStore) CountInstances(parentID string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var count int64
	for _, job := range m.jobs {
		if job.ParentJobID != nil && *job.ParentJobID == parentID {
			count++
		}
	}
	return count, nil
}

func (m *mockJobStore) FindOnDate(accountID string, date time.Time, statuses []string, excludeID string) ([]models.Job, error) {
	var out []models.Job
	for _, job := range m.jobs {
		if job.AccountID != accountID || !job.ScheduledDate.Equal(date) {
			continue
		}
		if excludeID != "" && job.ID == excludeID {
			continue
		}
		for _, s := range statuses {
			if job.Status == s {
				out = append(out, *job)
				break
			}
		}
	}
	return out, nil
}

// applyPatch mirrors gorm's map-Updates semantics: any column named in
// the map gets written, including ownership and series-identity columns.
func applyPatch(job *models.Job, updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case "account_id":
			job.AccountID = v.(string)
		case "parent_job_id":
			s := v.(string)
			job.ParentJobID = &s
		case "status":
			job.Status = v.(string)
		case "scheduled_time":
			s := v.(string)
			job.ScheduledTime = &s
		case "notes":
			job.Notes = v.(string)
		case "is_recurring":
			job.IsRecurring = v.(bool)
		case "actual_price":
			p := v.(float64)
			job.ActualPrice = &p
		case "actual_start_time":
			t := v.(time.Time)
			job.ActualStartTime = &t
		case "actual_end_time":
			t := v.(time.Time)
			job.ActualEndTime = &t
		case "recurring_end_date":
			t := v.(time.Time)
			job.RecurringEndDate = &t
		}
	}
}

func (m *mockJobStore) instancesOf(parentID string) []models.Job {
	var out []models.Job
	for _, job := range m.jobs {
		if job.ParentJobID != nil && *job.ParentJobID == parentID {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

const testAccount = "acct-1"

func fixedClock(y int, mo time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, mo, d, 10, 30, 0, 0, time.UTC) }
}

func newTestManager(store *mockJobStore, now func() time.Time) *SeriesManager {
	return NewSeriesManager(store, nil, 3, zap.NewNop()).WithClock(now)
}

func baseInput() models.CreateJobInput {
	return models.CreateJobInput{
		ClientID:      "client-1",
		Title:         "Deep clean",
		ServiceType:   "deep",
		ScheduledDate: "2024-06-20",
	}
}

func TestCreateJobRequiresAccount(t *testing.T) {
	m := newTestManager(newMockJobStore(), fixedClock(2024, 6, 15))

	_, err := m.CreateJob("", baseInput())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateJobDefaultsAndLineItemPricing(t *testing.T) {
	store := newMockJobStore()
	m := newTestManager(store, fixedClock(2024, 6, 15))

	in := baseInput()
	in.LineItems = []models.LineItemInput{
		{Description: "Windows", Quantity: 3, UnitPrice: 20},
		{Description: "Oven", UnitPrice: 45}, // quantity defaults to 1
	}

	job, err := m.CreateJob(testAccount, in)

	require.NoError(t, err)
	assert.Equal(t, models.PropertyResidential, job.PropertyType)
	assert.Equal(t, models.JobStatusScheduled, job.Status)
	assert.Equal(t, 105.0, job.EstimatedPrice)
	assert.False(t, job.IsRecurring)
	assert.Nil(t, job.ParentJobID)
	assert.Contains(t, store.jobs, job.ID)
}

func TestCreateJobExplicitPriceWinsOverLineItems(t *testing.T) {
	m := newTestManager(newMockJobStore(), fixedClock(2024, 6, 15))

	price := 200.0
	in := baseInput()
	in.EstimatedPrice = &price
	in.LineItems = []models.LineItemInput{{Description: "Windows", Quantity: 3, UnitPrice: 20}}

	job, err := m.CreateJob(testAccount, in)

	require.NoError(t, err)
	assert.Equal(t, 200.0, job.EstimatedPrice)
}

func TestCreateRecurringJobGeneratesWeeklyInstances(t *testing.T) {
	store := newMockJobStore()
	m := newTestManager(store, fixedClock(2024, 1, 1))

	in := models.CreateRecurringJobInput{
		CreateJobInput: models.CreateJobInput{
			ClientID:      "client-1",
			Title:         "Weekly office clean",
			ServiceType:   "standard",
			ScheduledDate: "2024-01-01", // a Monday
		},
		Recurrence: models.RecurrenceInput{
			Frequency:  "weekly",
			EndType:    "never",
			DaysOfWeek: []int{1},
		},
	}

	parent, err := m.CreateRecurringJob(testAccount, in)

	require.NoError(t, err)
	assert.True(t, parent.IsRecurring)
	assert.Nil(t, parent.ParentJobID)

	instances := store.instancesOf(parent.ID)
	// Every Monday from 2024-01-01 through 2024-04-01.
	require.Len(t, instances, 14)
	for _, inst := range instances {
		assert.Equal(t, parent.ID, *inst.ParentJobID)
		assert.False(t, inst.IsRecurring)
		assert.Equal(t, time.Monday, inst.ScheduledDate.Weekday())
		assert.Equal(t, models.JobStatusScheduled, inst.Status)
	}
}

func TestCreateRecurringJobKeepsParentWhenGenerationFails(t *testing.T) {
	store := newMockJobStore()
	store.batchErr = errors.New("insert failed")
	m := newTestManager(store, fixedClock(2024, 1, 1))

	in := models.CreateRecurringJobInput{
		CreateJobInput: models.CreateJobInput{
			ClientID:      "client-1",
			ScheduledDate: "2024-01-01",
		},
		Recurrence: models.RecurrenceInput{Frequency: "weekly", EndType: "never", DaysOfWeek: []int{1}},
	}

	parent, err := m.CreateRecurringJob(testAccount, in)

	require.NoError(t, err)
	assert.True(t, store.jobs[parent.ID].IsRecurring)
	assert.Empty(t, store.instancesOf(parent.ID))
}

func TestCreateRecurringJobRejectsBadPattern(t *testing.T) {
	m := newTestManager(newMockJobStore(), fixedClock(2024, 1, 1))

	in := models.CreateRecurringJobInput{
		CreateJobInput: models.CreateJobInput{ClientID: "client-1", ScheduledDate: "2024-01-01"},
		Recurrence:     models.RecurrenceInput{Frequency: "daily"},
	}

	_, err := m.CreateRecurringJob(testAccount, in)
	assert.Error(t, err)
}

func TestGenerateInstancesUnknownParent(t *testing.T) {
	m := newTestManager(newMockJobStore(), fixedClock(2024, 1, 1))

	_, err := m.GenerateInstances("missing", time.Now(), time.Now())

	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestGenerateInstancesCountFailureIsNotAnExpansionError(t *testing.T) {
	store := newMockJobStore()
	parentID := seedSeries(store)
	store.countErr = errors.New("connection reset")
	m := newTestManager(store, fixedClock(2024, 6, 15))

	_, err := m.GenerateInstances(parentID, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count generated instances")
	assert.NotContains(t, err.Error(), "recurrence pattern")
}

func TestListJobsExcludesInstancesByDefault(t *testing.T) {
	store := newMockJobStore()
	m := newTestManager(store, fixedClock(2024, 1, 1))

	parent, err := m.CreateRecurringJob(testAccount, models.CreateRecurringJobInput{
		CreateJobInput: models.CreateJobInput{ClientID: "client-1", ScheduledDate: "2024-01-01"},
		Recurrence:     models.RecurrenceInput{Frequency: "weekly", EndType: "never", DaysOfWeek: []int{1}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, store.instancesOf(parent.ID))

	defaults, _, err := m.ListJobs(testAccount, repository.JobFilters{})
	require.NoError(t, err)
	for _, job := range defaults {
		assert.Nil(t, job.ParentJobID)
	}

	all, _, err := m.ListJobs(testAccount, repository.JobFilters{IncludeInstances: true})
	require.NoError(t, err)
	assert.Greater(t, len(all), len(defaults))
}

// seedSeries inserts a parent plus a spread of instances around "today"
// (2024-06-15): one past completed, one past scheduled, one future
// in-progress, two future scheduled.
func seedSeries(store *mockJobStore) (parentID string) {
	parentID = "parent-1"
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	freq := "weekly"
	endType := "never"
	store.jobs[parentID] = &models.Job{
		ID: parentID, AccountID: testAccount, ClientID: "client-1",
		Status: models.JobStatusScheduled, ScheduledDate: day(1),
		IsRecurring: true, Frequency: &freq, RecurringEndType: &endType,
		RecurringDaysOfWeek: "6",
	}
	add := func(id string, date time.Time, status string) {
		pid := parentID
		store.jobs[id] = &models.Job{
			ID: id, AccountID: testAccount, ClientID: "client-1",
			Status: status, ScheduledDate: date, ParentJobID: &pid,
		}
	}
	add("past-completed", day(1), models.JobStatusCompleted)
	add("past-scheduled", day(8), models.JobStatusScheduled)
	add("future-inprogress", day(22), models.JobStatusInProgress)
	add("future-a", day(22), models.JobStatusScheduled)
	add("future-b", day(29), models.JobStatusScheduled)
	return parentID
}

func TestUpdateRecurringSeriesOnlyTouchesFutureScheduled(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	// Passing an instance ID must resolve and update the whole series.
	rows, err := m.UpdateRecurring(testAccount, "future-a", map[string]interface{}{"scheduled_time": "09:00"}, true)

	require.NoError(t, err)
	updated := make(map[string]bool, len(rows))
	for _, r := range rows {
		updated[r.ID] = true
	}
	assert.True(t, updated["future-a"])
	assert.True(t, updated["future-b"])
	assert.False(t, updated["past-scheduled"], "past rows must not be touched")
	assert.False(t, updated["future-inprogress"], "non-scheduled rows must not be touched")
	assert.False(t, updated["past-completed"])

	assert.Nil(t, store.jobs["past-scheduled"].ScheduledTime)
	assert.Nil(t, store.jobs["future-inprogress"].ScheduledTime)
	require.NotNil(t, store.jobs["future-b"].ScheduledTime)
	assert.Equal(t, "09:00", *store.jobs["future-b"].ScheduledTime)
}

func TestUpdateRecurringSingleMode(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	rows, err := m.UpdateRecurring(testAccount, "future-a", map[string]interface{}{"notes": "bring ladder"}, false)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bring ladder", store.jobs["future-a"].Notes)
	assert.Empty(t, store.jobs["future-b"].Notes)
}

func TestUpdateJobStripsProtectedColumns(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	patch := map[string]interface{}{
		"notes":         "side door",
		"account_id":    "acct-other",
		"parent_job_id": "bogus-parent",
		"is_recurring":  true,
	}
	rows, err := m.UpdateRecurring(testAccount, "future-a", patch, false)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	job := store.jobs["future-a"]
	assert.Equal(t, "side door", job.Notes)
	assert.Equal(t, testAccount, job.AccountID, "ownership must be immutable")
	assert.Equal(t, "parent-1", *job.ParentJobID, "series identity must be immutable")
	assert.False(t, job.IsRecurring, "an instance must not become a parent")
}

func TestUpdateRecurringSeriesStripsProtectedColumns(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	patch := map[string]interface{}{
		"notes":      "gate code 4412",
		"account_id": "acct-other",
	}
	_, err := m.UpdateRecurring(testAccount, "future-a", patch, true)

	require.NoError(t, err)
	for _, id := range []string{"parent-1", "future-a", "future-b"} {
		assert.Equal(t, testAccount, store.jobs[id].AccountID, id)
	}
	assert.Equal(t, "gate code 4412", store.jobs["future-b"].Notes)
}

func TestUpdateRecurringRejectsProtectedOnlyPatch(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	patch := map[string]interface{}{"account_id": "acct-other"}
	_, err := m.UpdateRecurring(testAccount, "future-a", patch, false)

	assert.ErrorIs(t, err, ErrEmptyPatch)
	assert.Equal(t, testAccount, store.jobs["future-a"].AccountID)
}

func TestUpdateRecurringUnknownJob(t *testing.T) {
	m := newTestManager(newMockJobStore(), fixedClock(2024, 6, 15))

	_, err := m.UpdateRecurring(testAccount, "missing", map[string]interface{}{"notes": "x"}, true)

	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestCancelSeries(t *testing.T) {
	store := newMockJobStore()
	parentID := seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	err := m.CancelSeries(testAccount, "future-b") // instance resolves to parent

	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, store.jobs["future-a"].Status)
	assert.Equal(t, models.JobStatusCancelled, store.jobs["future-b"].Status)
	assert.Equal(t, models.JobStatusCompleted, store.jobs["past-completed"].Status)
	assert.Equal(t, models.JobStatusScheduled, store.jobs["past-scheduled"].Status)
	assert.Equal(t, models.JobStatusInProgress, store.jobs["future-inprogress"].Status)

	parent := store.jobs[parentID]
	assert.False(t, parent.IsRecurring)
	require.NotNil(t, parent.RecurringEndDate)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *parent.RecurringEndDate)
}

func TestUpdateStatusStampsActualTimes(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	clock := fixedClock(2024, 6, 15)
	m := newTestManager(store, clock)

	job, err := m.UpdateStatus(testAccount, "future-a", models.UpdateStatusRequest{Status: models.JobStatusInProgress})
	require.NoError(t, err)
	require.NotNil(t, job.ActualStartTime)
	assert.Equal(t, clock(), *job.ActualStartTime)
	assert.Nil(t, job.ActualEndTime)

	price := 150.0
	job, err = m.UpdateStatus(testAccount, "future-a", models.UpdateStatusRequest{
		Status:      models.JobStatusCompleted,
		ActualPrice: &price,
	})
	require.NoError(t, err)
	require.NotNil(t, job.ActualEndTime)
	require.NotNil(t, job.ActualPrice)
	assert.Equal(t, 150.0, *job.ActualPrice)
}

func TestUpdateStatusDoesNotRestampStartTime(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	started := time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC)
	store.jobs["future-a"].ActualStartTime = &started
	m := newTestManager(store, fixedClock(2024, 6, 15))

	job, err := m.UpdateStatus(testAccount, "future-a", models.UpdateStatusRequest{Status: models.JobStatusInProgress})

	require.NoError(t, err)
	assert.Equal(t, started, *job.ActualStartTime)
}

type fakeNotifier struct {
	calls chan string
	err   error
}

func (f *fakeNotifier) JobStatusChanged(job *models.Job, newStatus string) error {
	f.calls <- job.ID + ":" + newStatus
	return f.err
}

func TestUpdateStatusNotifiesOffRequestPath(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	n := &fakeNotifier{calls: make(chan string, 1), err: errors.New("endpoint down")}
	m := NewSeriesManager(store, n, 3, zap.NewNop()).WithClock(fixedClock(2024, 6, 15))

	job, err := m.UpdateStatus(testAccount, "future-a", models.UpdateStatusRequest{Status: models.JobStatusInProgress})

	require.NoError(t, err, "notifier failures must never surface")
	assert.Equal(t, models.JobStatusInProgress, job.Status)

	select {
	case got := <-n.calls:
		assert.Equal(t, "future-a:"+models.JobStatusInProgress, got)
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
	}
}

func TestCheckConflictsWithoutTimeReturnsAllSameDayJobs(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	m := newTestManager(store, fixedClock(2024, 6, 15))

	day := time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)

	conflicts, err := m.CheckConflicts(testAccount, day, nil, "")
	require.NoError(t, err)
	assert.Len(t, conflicts, 2) // future-a (scheduled) + future-inprogress

	conflicts, err = m.CheckConflicts(testAccount, day, nil, "future-a")
	require.NoError(t, err)
	assert.Len(t, conflicts, 1)
}

func TestCheckConflictsWithTimeUsesDurationWindow(t *testing.T) {
	store := newMockJobStore()
	seedSeries(store)
	nine := "09:00"
	dur := 60
	store.jobs["future-a"].ScheduledTime = &nine
	store.jobs["future-a"].DurationMinutes = &dur
	eleven := "11:00"
	store.jobs["future-inprogress"].ScheduledTime = &eleven // no duration: 120min default
	m := newTestManager(store, fixedClock(2024, 6, 15))

	day := time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)

	at := func(s string) *string { return &s }

	conflicts, err := m.CheckConflicts(testAccount, day, at("09:30"), "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "future-a", conflicts[0].ID)

	// 10:00 is the exclusive end of future-a's window.
	conflicts, err = m.CheckConflicts(testAccount, day, at("10:00"), "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// 12:30 falls inside future-inprogress's default 120-minute window.
	conflicts, err = m.CheckConflicts(testAccount, day, at("12:30"), "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "future-inprogress", conflicts[0].ID)
}

func TestRefreshAllSeriesFillsAndIsIdempotent(t *testing.T) {
	store := newMockJobStore()
	m := newTestManager(store, fixedClock(2024, 1, 1))

	parent, err := m.CreateRecurringJob(testAccount, models.CreateRecurringJobInput{
		CreateJobInput: models.CreateJobInput{ClientID: "client-1", ScheduledDate: "2024-01-01"},
		Recurrence:     models.RecurrenceInput{Frequency: "weekly", EndType: "never", DaysOfWeek: []int{1}},
	})
	require.NoError(t, err)
	initial := len(store.instancesOf(parent.ID))
	require.Equal(t, 14, initial)

	// A month later the window has drifted: refresh extends it.
	later := newTestManager(store, fixedClock(2024, 2, 1))
	require.NoError(t, later.RefreshAllSeries())
	extended := len(store.instancesOf(parent.ID))
	assert.Greater(t, extended, initial)

	// Immediate re-run generates nothing new.
	require.NoError(t, later.RefreshAllSeries())
	assert.Equal(t, extended, len(store.instancesOf(parent.ID)))
}

func TestRetireEndedSeries(t *testing.T) {
	store := newMockJobStore()
	day := func(y int, mo time.Month, d int) time.Time { return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC) }

	freq := "weekly"
	endDate := "on_date"
	endOcc := "after_occurrences"
	endNever := "never"
	past := day(2024, 5, 1)
	future := day(2024, 12, 1)
	occ := 2

	store.jobs["ended-by-date"] = &models.Job{
		ID: "ended-by-date", AccountID: testAccount, IsRecurring: true,
		ScheduledDate: day(2024, 1, 1), Frequency: &freq,
		RecurringEndType: &endDate, RecurringEndDate: &past,
	}
	store.jobs["still-running"] = &models.Job{
		ID: "still-running", AccountID: testAccount, IsRecurring: true,
		ScheduledDate: day(2024, 1, 1), Frequency: &freq,
		RecurringEndType: &endDate, RecurringEndDate: &future,
	}
	store.jobs["capped"] = &models.Job{
		ID: "capped", AccountID: testAccount, IsRecurring: true,
		ScheduledDate: day(2024, 1, 1), Frequency: &freq,
		RecurringEndType: &endOcc, RecurringOccurrences: &occ,
	}
	pid := "capped"
	store.jobs["capped-i1"] = &models.Job{ID: "capped-i1", AccountID: testAccount, ParentJobID: &pid, ScheduledDate: day(2024, 1, 8), Status: models.JobStatusScheduled}
	store.jobs["capped-i2"] = &models.Job{ID: "capped-i2", AccountID: testAccount, ParentJobID: &pid, ScheduledDate: day(2024, 1, 15), Status: models.JobStatusScheduled}
	store.jobs["endless"] = &models.Job{
		ID: "endless", AccountID: testAccount, IsRecurring: true,
		ScheduledDate: day(2024, 1, 1), Frequency: &freq, RecurringEndType: &endNever,
	}

	m := newTestManager(store, fixedClock(2024, 6, 15))
	require.NoError(t, m.RetireEndedSeries())

	assert.False(t, store.jobs["ended-by-date"].IsRecurring)
	assert.False(t, store.jobs["capped"].IsRecurring)
	assert.True(t, store.jobs["still-running"].IsRecurring)
	assert.True(t, store.jobs["endless"].IsRecurring)
}
