package models

import "time"

// Office is a physical logistics location shipments pass through.
type Office struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OfficeInput is the accepted payload for creating or updating an office.
type OfficeInput struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}
