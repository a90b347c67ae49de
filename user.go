package scribe

import (
	"time"
)

type SigningKey struct {
	Key string `json:"k"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// PasswordHash is serialized for storage. The HTTP layer exposes
	// users through a view that omits it.
	PasswordHash string `json:"password"`

	CreatedAt time.Time `json:"createdAt"`
}

type UserStore interface {
	Get(int) (*User, error)
	GetByEmail(string) (*User, error)
	Upsert(*User) error
	List() ([]*User, error)
}
