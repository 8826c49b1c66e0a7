package services

import (
	"testing"
	"time"

	"visit-planner-service/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestIsDueRecurringInterval(t *testing.T) {
	p := &domain.Patient{
		PatientID:    1,
		IntervalDays: 7,
		LastVisit:    date(2024, time.January, 1),
	}

	if IsDue(p, date(2024, time.January, 7)) {
		t.Error("due one day before the interval elapsed")
	}
	if !IsDue(p, date(2024, time.January, 8)) {
		t.Error("not due on the exact interval day")
	}
	if !IsDue(p, date(2024, time.January, 9)) {
		t.Error("not due when overdue")
	}
}

func TestIsDueIgnoresTimeOfDay(t *testing.T) {
	// A late-evening last visit must not push the due date by a day.
	p := &domain.Patient{
		IntervalDays: 7,
		LastVisit:    time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC),
	}

	if !IsDue(p, time.Date(2024, time.January, 8, 6, 0, 0, 0, time.UTC)) {
		t.Error("calendar-date comparison expected, got timestamp comparison")
	}
}

func TestIsDuePlannedDateOverridesInterval(t *testing.T) {
	p := &domain.Patient{
		IntervalDays:     30,
		LastVisit:        date(2024, time.March, 1),
		PlannedVisitDate: timePtr(date(2024, time.March, 5)),
	}

	if !IsDue(p, date(2024, time.March, 5)) {
		t.Error("manually planned patient not due on the planned date")
	}
	if IsDue(p, date(2024, time.March, 4)) {
		t.Error("due before both the planned date and the interval")
	}
}

func TestIsDueOneTime(t *testing.T) {
	cases := []struct {
		name    string
		planned *time.Time
		today   time.Time
		want    bool
	}{
		{"planned today", timePtr(date(2024, time.June, 10)), date(2024, time.June, 10), true},
		{"overdue", timePtr(date(2024, time.June, 8)), date(2024, time.June, 10), true},
		{"planned in the future", timePtr(date(2024, time.June, 12)), date(2024, time.June, 10), false},
		{"no planned date", nil, date(2024, time.June, 10), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &domain.Patient{
				IntervalDays:     0,
				LastVisit:        date(2024, time.June, 1),
				PlannedVisitDate: tc.planned,
			}
			if got := IsDue(p, tc.today); got != tc.want {
				t.Errorf("IsDue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsDueSnoozedPatientHidden(t *testing.T) {
	p := &domain.Patient{
		IntervalDays: 1,
		LastVisit:    date(2024, time.May, 1),
		SnoozeUntil:  timePtr(date(2024, time.May, 11)),
	}

	if IsDue(p, date(2024, time.May, 10)) {
		t.Error("snoozed patient surfaced as due")
	}
	// Snooze expires at its own date.
	if !IsDue(p, date(2024, time.May, 11)) {
		t.Error("patient still hidden after the snooze expired")
	}
}

func TestEvaluateDueMalformedDates(t *testing.T) {
	recurringNoVisit := &domain.Patient{IntervalDays: 7}
	status := EvaluateDue(recurringNoVisit, date(2024, time.May, 10))
	if status.Due {
		t.Error("recurring patient without last_visit must not be due")
	}
	if !status.Malformed {
		t.Error("recurring patient without last_visit should be flagged malformed")
	}

	negativeInterval := &domain.Patient{IntervalDays: -3, LastVisit: date(2024, time.May, 1)}
	status = EvaluateDue(negativeInterval, date(2024, time.May, 10))
	if status.Due || !status.Malformed {
		t.Errorf("negative interval: got %+v, want not due and malformed", status)
	}
}
