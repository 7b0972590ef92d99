package model

import "time"

type Admin struct {
	AdminID      int64      `json:"adminId"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Role         Role       `json:"role"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}
