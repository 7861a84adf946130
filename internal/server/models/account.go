// Package models contains the persisted entities of the vault server.
package models

import "time"

// Account is a registered vault owner. Email is stored lower-cased and is
// unique. PasswordHash never leaves the auth service.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
