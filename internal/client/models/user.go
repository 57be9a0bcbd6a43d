// Package models holds the JSON shapes exchanged with the booking backend.
package models

// Role is the account role issued by the backend. It is fixed for the life
// of a session; a role change requires logging in again.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is the account record returned by login, register and profile calls.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Address        string `json:"address,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Role           Role   `json:"role"`
}

// DisplayName picks the most readable name available.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.Email
}

// UserPatch lists the profile fields a client may change locally. Nil fields
// are left untouched. Role is deliberately absent.
type UserPatch struct {
	Email          *string `json:"email,omitempty"`
	Username       *string `json:"username,omitempty"`
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Address        *string `json:"address,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// Merge returns a copy of u with the non-nil fields of p applied.
func (u User) Merge(p UserPatch) User {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Email, p.Email)
	set(&u.Username, p.Username)
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.FullName, p.FullName)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.DateOfBirth, p.DateOfBirth)
	set(&u.Address, p.Address)
	set(&u.ProfilePicture, p.ProfilePicture)
	return u
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }
