package users

import "time"

// User is the sole persisted entity of the identity core.
//
// Email is the external identity key: case-preserving, unique, enforced
// by the store at creation time. ID is store-assigned and never reused.
// PasswordHash is a bcrypt digest and must never leave the server; it is
// present on every record (registration always hashes).
type User struct {
	ID           int64
	Name         string
	Email        string
	Role         string
	Bio          string
	PasswordHash string
	CreatedAt    time.Time
}
