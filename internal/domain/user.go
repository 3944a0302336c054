package domain

import (
	"net/mail"
	"strings"
)

type User struct {
	ID    int64
	Email string
	Name  string
}

// UserView is the read projection: Rating is derived from the like/dislike
// totals across the user's published events and never persisted.
type UserView struct {
	User
	Rating float64
}

func NewUser(email, name string) (*User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" || len(email) > 254 {
		return nil, ErrValidation("email is required and must be <= 254 chars")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrValidationMeta("invalid email", map[string]string{"email": "must be a valid address"})
	}
	if name == "" || len(name) > 250 {
		return nil, ErrValidation("name is required and must be <= 250 chars")
	}

	return &User{Email: email, Name: name}, nil
}
