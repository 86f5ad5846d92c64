package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// password is never stored or logged.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
