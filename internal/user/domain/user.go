package domain

import "time"

type ID int64

// User is an identity record. PasswordHash is the hasher output and never
// leaves the service layer.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	FullName     *string
	IsActive     bool
	CreatedAt    time.Time
}

// NewUser carries the fields a caller supplies on registration; the store
// assigns ID and CreatedAt and sets IsActive.
type NewUser struct {
	Email        string
	PasswordHash string
	FullName     *string
}
