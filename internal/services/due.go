package services

import (
	"time"

	"visit-planner-service/internal/domain"
)

// DueStatus classifies a patient for one plan date.
type DueStatus struct {
	Due bool
	// Malformed marks a record whose date fields cannot support a due-date
	// decision (e.g. a recurring patient with a zero last-visit timestamp).
	// Such patients are never due and are surfaced for data-quality review.
	Malformed bool
}

// EvaluateDue decides whether a patient's visit is due on the given calendar
// date. All comparisons are calendar-date comparisons, never timestamp
// comparisons. Pure and total: a bad record degrades to "not due" instead of
// failing.
//
// Rules, in order:
//  1. A snooze that ends after today hides the patient entirely.
//  2. A planned visit date equal to today makes the patient due regardless
//     of interval.
//  3. One-time patients (interval 0) are due when a planned date exists and
//     has been reached or passed; without a planned date they never surface.
//  4. Recurring patients are due when last_visit + interval has been reached
//     or passed.
func EvaluateDue(p *domain.Patient, today time.Time) DueStatus {
	day := dateOnly(today)

	if p.SnoozeUntil != nil && dateOnly(*p.SnoozeUntil).After(day) {
		return DueStatus{}
	}

	if p.PlannedVisitDate != nil && dateOnly(*p.PlannedVisitDate).Equal(day) {
		return DueStatus{Due: true}
	}

	if p.IntervalDays < 0 {
		return DueStatus{Malformed: true}
	}

	if p.OneTime() {
		if p.PlannedVisitDate == nil {
			return DueStatus{}
		}
		return DueStatus{Due: !dateOnly(*p.PlannedVisitDate).After(day)}
	}

	if p.LastVisit.IsZero() {
		return DueStatus{Malformed: true}
	}

	nextDue := dateOnly(p.LastVisit).AddDate(0, 0, p.IntervalDays)
	return DueStatus{Due: !nextDue.After(day)}
}

// IsDue is the boolean view of EvaluateDue.
func IsDue(p *domain.Patient, today time.Time) bool {
	return EvaluateDue(p, today).Due
}

// dateOnly normalizes a timestamp to its wall-clock calendar date so that
// records stored in different locations compare by date, not by instant.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
