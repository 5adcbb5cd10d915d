package model

// Calendar belongs to exactly one site and one health professional. Events
// whose calendar id cannot be resolved are never rendered.
type Calendar struct {
	ID       string `json:"id"`
	SiteID   string `json:"site_id"`
	HPID     string `json:"hp_id"`
	Label    string `json:"label"`
	Color    string `json:"color,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}
