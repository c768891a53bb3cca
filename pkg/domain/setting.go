package domain

import "time"

// Preset is a named, saved set of request parameters kept as a packed token
type Preset struct {
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
