package domain

import "time"

// RelType identifies the parent resource a note is attached to.
// Values follow the ActiveCampaign wire representation.
type RelType string

const (
	// RelDeal marks a note attached to a deal.
	RelDeal RelType = "Deal"

	// RelContact marks a note attached to a contact (subscriber).
	RelContact RelType = "Subscriber"

	// RelActivity marks a note attached to an activity.
	RelActivity RelType = "Activity"
)

// Note represents a remote CRM note as observed through the listing API.
// Notes are immutable from notesweep's perspective; the remote service
// is the source of truth.
type Note struct {
	// ID is the opaque remote identifier of the note.
	ID string

	// UserID identifies the user who owns (authored) the note.
	UserID string

	// Rel identifies the kind of parent resource the note belongs to.
	Rel RelType

	// DealID is the identifier of the parent deal, when Rel is RelDeal.
	DealID string

	// CreatedAt is when the note was created remotely.
	CreatedAt time.Time
}

// IsDealNote reports whether the note is attached to a deal.
func (n *Note) IsDealNote() bool {
	return n.Rel == RelDeal
}
