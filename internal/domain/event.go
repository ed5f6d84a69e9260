package domain

import "time"

type Event struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	MaxCapacity       int       `json:"max_capacity"`
	RegistrationCount int       `json:"registration_count"`
	CreatorID         int64     `json:"creator_id"`
	CreatedAt         time.Time `json:"created_at"`
}
