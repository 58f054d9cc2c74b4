package domain

import "time"

type ID string

// Account is the stored identity record. PasswordHash never leaves the service.
type Account struct {
	ID           ID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewAccount holds the already-normalized fields for Directory.Create.
type NewAccount struct {
	Email        string
	Username     string
	PasswordHash string
}

type PublicView struct {
	ID        ID
	Email     string
	Username  string
	CreatedAt time.Time
}

func (a Account) Public() PublicView {
	return PublicView{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
	}
}
