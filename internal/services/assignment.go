package services

import (
	"time"

	"visit-planner-service/internal/domain"
)

// EffectiveProvider resolves the provider responsible for a patient on this
// run. A resolvable override wins regardless of permanence, then the primary
// assignment. Dangling references (deleted providers) are tolerated: the
// patient is simply unassigned.
func EffectiveProvider(p *domain.Patient, providersByID map[int]*domain.Provider) *domain.Provider {
	if p.OverrideProviderID != nil {
		if prov, ok := providersByID[*p.OverrideProviderID]; ok {
			return prov
		}
	}
	if p.PrimaryProviderID != nil {
		if prov, ok := providersByID[*p.PrimaryProviderID]; ok {
			return prov
		}
	}
	return nil
}

// CompleteVisit computes the change-set to persist when a visit is marked
// complete: record the completion time, clear any manual schedule and snooze,
// revert or promote the override, and delete the patient when one-time. The
// function is pure; the persistence adapter applies the result atomically.
func CompleteVisit(p *domain.Patient, completedAt time.Time) domain.VisitCompletion {
	c := domain.VisitCompletion{
		PatientID:     p.PatientID,
		CompletedAt:   completedAt,
		DeletePatient: p.OneTime(),
	}

	if p.OverrideProviderID != nil {
		c.ClearOverride = true
		if p.OverridePermanent {
			id := *p.OverrideProviderID
			c.NewPrimaryID = &id
		}
	}

	return c
}
