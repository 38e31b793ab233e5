package mode

// Mode is the query type sent to the search index.
type Mode string

// Search mode constants.
const (
	// Simple is plain full-text keyword search.
	Simple Mode = "simple"
	// Semantic asks the service to re-rank with a named semantic configuration.
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Simple || m == Semantic
}
