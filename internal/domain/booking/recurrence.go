package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
	ErrEmptyDaysOfWeek   = errors.New("custom recurrence requires at least one day of week")
)

// RecurrenceRule is transient expansion input; it is never persisted as its
// own entity.
type RecurrenceRule struct {
	kind       RecurrenceKind
	endDate    *time.Time
	daysOfWeek []time.Weekday
}

func NewRecurrenceRule(kind RecurrenceKind, endDate *time.Time, daysOfWeek []time.Weekday) (RecurrenceRule, error) {
	if !kind.IsRecurring() {
		return RecurrenceRule{}, ErrInvalidRecurrence
	}
	if kind == RecurrenceCustom && len(daysOfWeek) == 0 {
		return RecurrenceRule{}, ErrEmptyDaysOfWeek
	}
	return RecurrenceRule{kind: kind, endDate: endDate, daysOfWeek: daysOfWeek}, nil
}

func (r RecurrenceRule) Kind() RecurrenceKind      { return r.kind }
func (r RecurrenceRule) EndDate() *time.Time       { return r.endDate }
func (r RecurrenceRule) DaysOfWeek() []time.Weekday { return r.daysOfWeek }

type ExpandOptions struct {
	// EndDate is the inclusive final day; its time-of-day is ignored and the
	// whole day counts.
	EndDate *time.Time
	// MonthsAhead bounds the expansion when EndDate is absent. Zero falls
	// back to DefaultHorizonMonths.
	MonthsAhead int
	// DaysOfWeek selects weekdays for RecurrenceCustom.
	DaysOfWeek []time.Weekday
}

const DefaultHorizonMonths = 3

// Expand walks day by day from the day after the anchor through the final
// bound and returns the matching occurrence days in order. The anchor day
// itself is never included; it is created separately as the primary booking.
// Produced dates carry only the calendar day (midnight in the anchor's
// zone); callers re-apply the anchor's time-of-day and duration.
//
// Pure function: same inputs always yield the same sequence.
func Expand(anchor time.Time, kind RecurrenceKind, opts ExpandOptions) []time.Time {
	final := finalBound(anchor, opts)

	dates := []time.Time{}
	dayFilter := make(map[time.Weekday]bool, len(opts.DaysOfWeek))
	for _, d := range opts.DaysOfWeek {
		dayFilter[d] = true
	}

	cur := startOfDay(anchor).AddDate(0, 0, 1)
	for !cur.After(final) {
		include := false
		switch kind {
		case RecurrenceDaily:
			include = true
		case RecurrenceWeekly:
			include = cur.Weekday() == anchor.Weekday()
		case RecurrenceMonthly:
			// Months lacking the anchor's day-of-month produce no match; no
			// roll-over to a neighboring day.
			include = cur.Day() == anchor.Day()
		case RecurrenceCustom:
			include = dayFilter[cur.Weekday()]
		}
		if include {
			dates = append(dates, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}

	return dates
}

func finalBound(anchor time.Time, opts ExpandOptions) time.Time {
	if opts.EndDate != nil {
		d := *opts.EndDate
		return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), anchor.Location())
	}
	months := opts.MonthsAhead
	if months <= 0 {
		months = DefaultHorizonMonths
	}
	return anchor.AddDate(0, months, 0)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
