package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Frequency of a repeating job.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

// EndType describes when a series stops.
type EndType string

const (
	EndNever            EndType = "never"
	EndOnDate           EndType = "on_date"
	EndAfterOccurrences EndType = "after_occurrences"
)

var (
	ErrUnknownFrequency = errors.New("unknown recurrence frequency")
	ErrUnknownEndType   = errors.New("unknown recurrence end type")
)

// Pattern describes how a job repeats. Exactly one end-condition field is
// meaningful given EndType; the others are ignored by expansion.
type Pattern struct {
	Frequency   Frequency
	DaysOfWeek  []time.Weekday // weekly and biweekly patterns
	DayOfMonth  int            // monthly patterns
	EndType     EndType
	EndDate     time.Time
	Occurrences int
}

// Validate checks the pattern for internal consistency.
func (p Pattern) Validate() error {
	switch p.Frequency {
	case Weekly, Biweekly:
		for _, d := range p.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("invalid day of week %d", d)
			}
		}
	case Monthly:
		if p.DayOfMonth < 0 || p.DayOfMonth > 31 {
			return fmt.Errorf("invalid day of month %d", p.DayOfMonth)
		}
	default:
		return ErrUnknownFrequency
	}

	switch p.EndType {
	case EndNever:
	case EndOnDate:
		if p.EndDate.IsZero() {
			return errors.New("end type on_date requires an end date")
		}
	case EndAfterOccurrences:
		if p.Occurrences <= 0 {
			return errors.New("end type after_occurrences requires a positive occurrence count")
		}
	default:
		return ErrUnknownEndType
	}

	return nil
}

// Expand returns the occurrence dates of the pattern inside
// [windowStart, windowEnd], both inclusive, in ascending order. The anchor
// is the parent job's scheduled date; biweekly strides and fallback
// weekdays/month-days derive from it. Expansion stops at the earliest of
// the window end, the pattern's end date, or the occurrence cap
// (alreadyGenerated counts instances produced by earlier windows).
func Expand(p Pattern, anchor, windowStart, windowEnd time.Time, alreadyGenerated int) []time.Time {
	anchor = DateOf(anchor)
	windowStart = DateOf(windowStart)
	windowEnd = DateOf(windowEnd)
	if windowEnd.Before(windowStart) {
		return nil
	}
	if p.EndType == EndOnDate && !p.EndDate.IsZero() && DateOf(p.EndDate).Before(windowEnd) {
		windowEnd = DateOf(p.EndDate)
	}

	remaining := -1
	if p.EndType == EndAfterOccurrences {
		remaining = p.Occurrences - alreadyGenerated
		if remaining <= 0 {
			return nil
		}
	}

	var dates []time.Time
	switch p.Frequency {
	case Weekly, Biweekly:
		dates = expandWeekly(p, anchor, windowStart, windowEnd)
	case Monthly:
		dates = expandMonthly(p, anchor, windowStart, windowEnd)
	}

	if remaining >= 0 && len(dates) > remaining {
		dates = dates[:remaining]
	}
	return dates
}

func expandWeekly(p Pattern, anchor, windowStart, windowEnd time.Time) []time.Time {
	days := p.DaysOfWeek
	if len(days) == 0 {
		days = []time.Weekday{anchor.Weekday()}
	}
	wanted := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		wanted[d] = true
	}

	var dates []time.Time
	for d := windowStart; !d.After(windowEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(anchor) || !wanted[d.Weekday()] {
			continue
		}
		if p.Frequency == Biweekly && weeksBetween(anchor, d)%2 != 0 {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func expandMonthly(p Pattern, anchor, windowStart, windowEnd time.Time) []time.Time {
	day := p.DayOfMonth
	if day == 0 {
		day = anchor.Day()
	}

	var dates []time.Time
	cursor := time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, windowStart.Location())
	for !cursor.After(windowEnd) {
		d := clampToMonth(cursor, day)
		if !d.Before(windowStart) && !d.After(windowEnd) && !d.Before(anchor) {
			dates = append(dates, d)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// clampToMonth returns the given day within the month of base, clamped to
// the month's last day (so day 31 lands on Feb 28/29, Apr 30, etc).
func clampToMonth(base time.Time, day int) time.Time {
	last := base.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, base.Location())
}

// weeksBetween counts whole calendar weeks (Monday-based) between two dates.
func weeksBetween(a, b time.Time) int {
	a, b = weekStart(a), weekStart(b)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days / 7
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return DateOf(t).AddDate(0, 0, -offset)
}

// DateOf truncates a timestamp to its calendar date in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
