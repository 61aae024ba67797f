package models

import "time"

// Hotel is a pickup/dropoff point at a trail stage.
type Hotel struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"locationId"` // stage code, e.g. "PC"
	Name        string    `json:"name"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
