package users

// RoleType represents a user's role within the application
type RoleType string

const (
	RoleAdmin     RoleType = "admin"     // Full forum privileges
	RoleModerator RoleType = "moderator" // Moderation privileges only
	RoleUser      RoleType = "user"      // Regular member
	RoleGuest     RoleType = "guest"     // Unregistered / limited account
)

// User is the authenticated local user record supplied by the session
// provider. ID is the stable unique identifier; it never changes across
// profile edits and is what the forum links accounts against.
type User struct {
	ID            string   `json:"id,omitempty"`
	Email         string   `json:"email,omitempty"`
	EmailVerified bool     `json:"email_verified,omitempty"`
	Username      string   `json:"username,omitempty"`
	Name          string   `json:"name,omitempty"`
	Role          RoleType `json:"role,omitempty"`

	// AvatarURL and CustomFields are optional profile extras passed
	// through to the forum when present.
	AvatarURL    string            `json:"avatar_url,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// IsAdmin returns true if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator returns true if the user holds the moderator role
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
