package auth

// Identity is the normalized profile an OAuth provider vouches for.
// It contains facts only, no decisions: mapping an Identity to a
// local user is the resolver's job.
type Identity struct {
	Provider    string // e.g. "google", "github"
	ExternalID  string // provider-scoped unique user identifier (sub)
	Email       string // email returned by the provider
	DisplayName string // optional
	AvatarURL   string // optional
}
