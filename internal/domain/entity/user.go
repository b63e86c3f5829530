// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a driver account in GigLedger.
type User struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	PinHash         *string // Set when the user enabled quick PIN login
	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		PasswordHash:    passwordHash,
		TermsAcceptedAt: termsAcceptedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasPin reports whether PIN login is enabled.
func (u *User) HasPin() bool {
	return u.PinHash != nil && *u.PinHash != ""
}

// NormalizeEmail is the canonical form addresses are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
