package domain

// ListingStatus represents the availability status of a listing
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingPending  ListingStatus = "pending"
	ListingSold     ListingStatus = "sold"
	ListingInactive ListingStatus = "inactive"
)

// Listing is the read model of a property listing owned by ListingService.
// Only the fields the appointment workflow needs are present here.
type Listing struct {
	ID        int64
	AgentID   int64
	Status    ListingStatus
	IsDeleted bool
}

// IsBookable returns true if the listing currently accepts new appointments
func (l *Listing) IsBookable() bool {
	return l.Status == ListingActive && !l.IsDeleted
}
