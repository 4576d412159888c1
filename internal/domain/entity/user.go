// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core identity record of the system. The Email field always holds
// plaintext while the entity is in memory; encryption of the stored value is
// the persistence layer's concern. Password always holds the salted hash once
// the record has been through the repository, and is empty for accounts that
// only authenticate through a federated identity.
type User struct {
	ID                string    // Stable unique identifier, generated on first save.
	Email             string    // Login identifier, unique among users.
	Password          string    // Salted password hash; empty for federated-only accounts.
	Name              string    // Display name.
	ProfilePictureURL string    // Optional avatar URL.
	GoogleID          string    // Federated identity subject; empty when not linked.
	PhoneNumber       string    // Optional contact phone.
	DNI               string    // National identity document number.
	IsPremium         bool      // Gates premium-only features such as importer rankings.
	CreatedAt         time.Time // When the account was created.
	UpdatedAt         time.Time // Last modification of any field.
}

// UserPatch describes a partial update to a User. Nil fields are left
// untouched. Email and Password carry plaintext values here; hashing and
// uniqueness checks happen in the repository.
type UserPatch struct {
	Email             *string
	Password          *string
	Name              *string
	ProfilePictureURL *string
	GoogleID          *string
	PhoneNumber       *string
	DNI               *string
	IsPremium         *bool
}

// Apply returns a copy of the user with the patch applied and UpdatedAt
// refreshed to now. The receiver is never mutated.
func (u User) Apply(patch UserPatch, now time.Time) User {
	next := u

	if patch.Email != nil {
		next.Email = *patch.Email
	}
	if patch.Password != nil {
		next.Password = *patch.Password
	}
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.ProfilePictureURL != nil {
		next.ProfilePictureURL = *patch.ProfilePictureURL
	}
	if patch.GoogleID != nil {
		next.GoogleID = *patch.GoogleID
	}
	if patch.PhoneNumber != nil {
		next.PhoneNumber = *patch.PhoneNumber
	}
	if patch.DNI != nil {
		next.DNI = *patch.DNI
	}
	if patch.IsPremium != nil {
		next.IsPremium = *patch.IsPremium
	}
	next.UpdatedAt = now

	return next
}

// HasPassword reports whether the account can authenticate with a password.
func (u User) HasPassword() bool {
	return u.Password != ""
}
