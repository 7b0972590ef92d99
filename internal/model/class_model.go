package model

import "time"

type ClassSchedule struct {
	ClassID      int64      `json:"classId"`
	Subject      string     `json:"subject"`
	Teacher      string     `json:"teacher"`
	Description  *string    `json:"description,omitempty"`
	ScheduleTime time.Time  `json:"scheduleTime"`
	IsLive       bool       `json:"isLive"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}
