package models

import "time"

// IntervalUnit is the billing period unit of a recurring template.
type IntervalUnit string

const (
	IntervalDay   IntervalUnit = "day"
	IntervalWeek  IntervalUnit = "week"
	IntervalMonth IntervalUnit = "month"
	IntervalYear  IntervalUnit = "year"
)

// RecurringTemplate describes how to mint a new invoice for a project on a
// schedule. NextRunAt and LastGeneratedAt are mutated only by the scheduler;
// Active only by explicit admin toggling.
type RecurringTemplate struct {
	ID              string
	ProjectID       string
	Description     string
	Items           []InvoiceItem
	Currency        string
	DueInDays       int
	IntervalUnit    IntervalUnit
	IntervalCount   int
	NextRunAt       time.Time
	LastGeneratedAt *time.Time
	Active          bool
}

// NextAfter advances from by one billing interval. The scheduler applies it
// to NextRunAt exactly once per generated invoice, which is what makes an
// immediate re-run select zero templates.
func (t *RecurringTemplate) NextAfter(from time.Time) time.Time {
	n := t.IntervalCount
	if n < 1 {
		n = 1
	}
	switch t.IntervalUnit {
	case IntervalDay:
		return from.AddDate(0, 0, n)
	case IntervalWeek:
		return from.AddDate(0, 0, 7*n)
	case IntervalYear:
		return from.AddDate(n, 0, 0)
	default: // month
		return from.AddDate(0, n, 0)
	}
}
