package models

// AccountInfo is a read-only snapshot of connected account metadata taken at
// report-generation time. Optional fields are always defaulted by the client,
// never left empty-for-missing.
type AccountInfo struct {
	ID             string `json:"id"`
	BusinessType   string `json:"business_type"`
	Country        string `json:"country"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
	Email          string `json:"email"`
	Type           string `json:"type"`
}
