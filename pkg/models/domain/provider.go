package domain

// Provider is an organization that bills customers and receives the
// periodic revenue report.
type Provider struct {
	Slug     string
	Timezone string // IANA zone name; empty means the anchor's own zone
	Unit     string // preferred denomination, e.g. "usd"; empty means the system default
}
