package models

import "time"

// Employee is a console operator assigned to one or more offices.
type Employee struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	OfficeIDs []string  `json:"office_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateEmployeeInput is the accepted payload for provisioning an employee.
type CreateEmployeeInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
