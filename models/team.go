package models

// Team is one of the fixed set of competing teams. FinalPosition is the
// authoritative standing assigned by an administrator during ranking
// settlement; it stays nil until then and is unique among non-nil values.
type Team struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	FinalPosition *int   `json:"final_position,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}
