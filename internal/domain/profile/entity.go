package profile

import "time"

// Role is the self-declared role a user picked at sign-up.
type Role string

const (
	RoleFounder Role = "founder"
	RoleCreator Role = "creator"
	RoleBacker  Role = "backer"
	RoleUnset   Role = "unset"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFounder, RoleCreator, RoleBacker, RoleUnset:
		return true
	}
	return false
}

// Profile mirrors the identity provider's user record. The ID is the
// provider-issued identity id, not locally generated.
type Profile struct {
	ID          string
	DisplayName string
	Role        Role
	Location    string
	Company     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Public is the subset of profile fields joined onto idea listings.
type Public struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	Company     string `json:"company"`
}

func (p Profile) Public() Public {
	return Public{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		Company:     p.Company,
	}
}
