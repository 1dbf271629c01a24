// Package knowledge holds the curated IT catalogue and serves category
// filtered similarity search over it.
package knowledge

// AllRoles marks catalogue items relevant to every target role.
const AllRoles = "All IT"

// Item is a single catalogue entry.
type Item struct {
	Text       string   `toml:"text" json:"text"`
	Category   Category `toml:"category" json:"category"`
	Topic      string   `toml:"topic" json:"topic"`
	TargetRole string   `toml:"target_role" json:"target_role"`
}
