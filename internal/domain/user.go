package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	PasswordHash string    `json:"-"`
	Requires2FA  bool      `json:"requires_2fa"`
	CreatedAt    time.Time `json:"created_at"`
}
