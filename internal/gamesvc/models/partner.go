package models

import (
	"time"
)

type Partner struct {
	ID        int64     `json:"id"`         // Primary key
	Name      string    `json:"name"`       // Unique partner name
	CreatedAt time.Time `json:"created_at"` // Timestamp
	UpdatedAt time.Time `json:"updated_at"` // Timestamp
}
