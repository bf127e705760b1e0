package domain

// Role represents a user role in the platform
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// Identity is the read model of an authenticated user owned by UserService
type Identity struct {
	UserID int64
	Role   Role
}

// IsAgent returns true if the user is a real-estate agent
func (i *Identity) IsAgent() bool {
	return i.Role == RoleAgent
}

// IsClient returns true if the user is a client
func (i *Identity) IsClient() bool {
	return i.Role == RoleClient
}

// IsAgentOf returns true if the user is the agent managing the listing
func (i *Identity) IsAgentOf(listing *Listing) bool {
	return i.IsAgent() && listing.AgentID == i.UserID
}
