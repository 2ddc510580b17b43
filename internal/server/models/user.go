// Package models holds the persisted record types shared by repositories
// and services.
package models

import "time"

// User is an identity record. Email is unique across the store; Hash is the
// Argon2id hash of the password and never the plaintext. FirstName and
// LastName are optional profile fields.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
