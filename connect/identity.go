package connect

import (
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-forum-connect/users"
)

// Identity is the outbound attribute set describing the local user to the
// forum. ExternalID is always the user's stable ID, never a mutable field
// like email or username, so account linkage survives profile edits.
type Identity struct {
	ExternalID   string
	Email        string
	Username     string
	Name         string
	Admin        bool
	Moderator    bool
	AvatarURL    string
	CustomFields map[string]string
}

// IdentityMapper turns an authenticated local user into forum identity
// attributes.
type IdentityMapper struct{}

// Map fails with ErrUnverifiedEmail when the user's address is not
// verified: an unverified email is a hard failure, never a fallback,
// because the forum trusts it for account linking.
//
// Role mapping, first match wins: admin -> {admin}, moderator ->
// {moderator}, everything else (user, guest) -> neither.
func (IdentityMapper) Map(user *users.User) (Identity, error) {
	if user == nil {
		return Identity{}, errors.Wrap(ErrUnauthenticatedUser, "[IdentityMapper.Map] nil user")
	}
	if !user.EmailVerified {
		return Identity{}, errors.Wrap(ErrUnverifiedEmail, "[IdentityMapper.Map] email must be verified before handoff")
	}

	identity := Identity{
		ExternalID:   user.ID,
		Email:        user.Email,
		Username:     user.Username,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		CustomFields: user.CustomFields,
	}

	switch user.Role {
	case users.RoleAdmin:
		identity.Admin = true
	case users.RoleModerator:
		identity.Moderator = true
	}

	return identity, nil
}
