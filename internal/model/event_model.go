package model

import "time"

type Event struct {
	EventID       int64      `json:"eventId"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	ImageURL      *string    `json:"imageUrl,omitempty"`
	EventDateTime time.Time  `json:"eventDateTime"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}
