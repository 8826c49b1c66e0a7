package services

import (
	"testing"
	"time"

	"visit-planner-service/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestEffectiveProviderOverrideWins(t *testing.T) {
	a := &domain.Provider{ProviderID: 1, Name: "A"}
	b := &domain.Provider{ProviderID: 2, Name: "B"}
	providers := map[int]*domain.Provider{1: a, 2: b}

	p := &domain.Patient{
		PrimaryProviderID:  intPtr(1),
		OverrideProviderID: intPtr(2),
	}

	if got := EffectiveProvider(p, providers); got != b {
		t.Errorf("EffectiveProvider = %v, want override provider B", got)
	}

	// After the override is cleared the patient reverts to the primary.
	p.OverrideProviderID = nil
	if got := EffectiveProvider(p, providers); got != a {
		t.Errorf("EffectiveProvider after clear = %v, want primary provider A", got)
	}
}

func TestEffectiveProviderDanglingReferences(t *testing.T) {
	a := &domain.Provider{ProviderID: 1, Name: "A"}
	providers := map[int]*domain.Provider{1: a}

	// Deleted override falls back to the primary.
	p := &domain.Patient{
		PrimaryProviderID:  intPtr(1),
		OverrideProviderID: intPtr(99),
	}
	if got := EffectiveProvider(p, providers); got != a {
		t.Errorf("EffectiveProvider = %v, want primary A despite dangling override", got)
	}

	// Both dangling: unassigned.
	p = &domain.Patient{PrimaryProviderID: intPtr(98), OverrideProviderID: intPtr(99)}
	if got := EffectiveProvider(p, providers); got != nil {
		t.Errorf("EffectiveProvider = %v, want nil for dangling references", got)
	}

	// No assignment at all: unassigned.
	if got := EffectiveProvider(&domain.Patient{}, providers); got != nil {
		t.Errorf("EffectiveProvider = %v, want nil without assignment", got)
	}
}

func TestCompleteVisitRecurring(t *testing.T) {
	now := time.Date(2024, time.July, 3, 10, 0, 0, 0, time.UTC)
	p := &domain.Patient{PatientID: 7, IntervalDays: 7}

	c := CompleteVisit(p, now)

	if c.PatientID != 7 || !c.CompletedAt.Equal(now) {
		t.Errorf("change-set identity wrong: %+v", c)
	}
	if c.DeletePatient {
		t.Error("recurring patient must not be deleted on completion")
	}
	if c.ClearOverride || c.NewPrimaryID != nil {
		t.Error("no override transition expected without an override")
	}
}

func TestCompleteVisitClearsOneOffOverride(t *testing.T) {
	p := &domain.Patient{
		PatientID:          3,
		IntervalDays:       14,
		PrimaryProviderID:  intPtr(1),
		OverrideProviderID: intPtr(2),
		OverridePermanent:  false,
	}

	c := CompleteVisit(p, time.Now())

	if !c.ClearOverride {
		t.Error("one-off override must be cleared after completion")
	}
	if c.NewPrimaryID != nil {
		t.Error("one-off override must not change the primary assignment")
	}
}

func TestCompleteVisitPromotesPermanentOverride(t *testing.T) {
	p := &domain.Patient{
		PatientID:          3,
		IntervalDays:       14,
		PrimaryProviderID:  intPtr(1),
		OverrideProviderID: intPtr(2),
		OverridePermanent:  true,
	}

	c := CompleteVisit(p, time.Now())

	if c.NewPrimaryID == nil || *c.NewPrimaryID != 2 {
		t.Errorf("NewPrimaryID = %v, want 2", c.NewPrimaryID)
	}
	if !c.ClearOverride {
		t.Error("override fields must be cleared when promoted")
	}
}

func TestCompleteVisitDeletesOneTimePatient(t *testing.T) {
	p := &domain.Patient{PatientID: 5, IntervalDays: 0}

	c := CompleteVisit(p, time.Now())

	if !c.DeletePatient {
		t.Error("one-time patient must be deleted after its single visit")
	}
}
