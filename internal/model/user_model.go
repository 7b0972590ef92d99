package model

import "time"

type User struct {
	UserID       int64      `json:"userId"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Role         Role       `json:"role"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}
