package domain

// A field worker to whom visits are assigned.
// Color is display-only and passed through untouched by planning logic.
// MaxDailyMinutes is the default daily time budget; a planning run may
// override it without persisting the change.
type Provider struct {
	ProviderID      int
	Name            string
	Role            string
	Color           string
	MaxDailyMinutes int
}
