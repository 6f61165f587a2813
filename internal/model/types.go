package model

// RawRecipient is a roster record as loaded from a source (YAML file, sqlite
// roster, Gmail import) before the engine assigns identities.
type RawRecipient struct {
	Email    string `yaml:"email"`
	Selected bool   `yaml:"selected"`
}

// Recipient is an identified roster entry. The ID is assigned once at
// ingestion and never reused; the record itself is immutable afterwards.
type Recipient struct {
	ID    string
	Email string
}

// RecipientGroup is a derived view: the recipients of one partition sharing
// a domain, in partition order. Groups are recomputed on every read and
// never mutated in place.
type RecipientGroup struct {
	Domain     string
	Recipients []Recipient
}

// Panel identifies one of the two membership partitions.
type Panel int

const (
	PanelAvailable Panel = iota
	PanelSelected
)

func (p Panel) String() string {
	if p == PanelSelected {
		return "selected"
	}
	return "available"
}
