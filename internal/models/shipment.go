package models

import "time"

// Shipment is a tracked parcel moving between offices.
type Shipment struct {
	ID              string         `json:"id"`
	ClientID        string         `json:"client_id"`
	Status          ShipmentStatus `json:"current_status"`
	CurrentOfficeID string         `json:"current_office_id,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TimelineEvent is one entry in a shipment's status history.
type TimelineEvent struct {
	Seq       int       `json:"seq"`
	EventType string    `json:"event_type"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateShipmentInput is the accepted payload for registering a shipment.
type CreateShipmentInput struct {
	ClientID        string `json:"client_id"`
	CurrentOfficeID string `json:"current_office_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ChangeStatusInput is the accepted payload for a status transition.
type ChangeStatusInput struct {
	ToStatus   string `json:"to_status"`
	ToOfficeID string `json:"to_office_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}
