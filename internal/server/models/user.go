package models

import "time"

// User is the persisted account record. It carries no behaviour; the users
// repository reads and writes it.
type User struct {
	ID    string
	Email string
	// HashedPassword is nil only for accounts provisioned outside the
	// service, which therefore cannot log in with a password.
	HashedPassword *string
	Active         bool
	LastLoginDate  *time.Time
	LastActiveDate *time.Time
	CreatedAt      time.Time
}
