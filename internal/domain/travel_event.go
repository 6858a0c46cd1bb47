// Package domain contains the core data types for the charge log application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, cmd).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelEvent represents a single trip that charging sessions can be
// attached to. It is the top-level aggregate; sessions reference it weakly.
type TravelEvent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// StartDate is user-supplied and deliberately unvalidated against
	// "now" — past and future trips are both legitimate.
	StartDate    time.Time `json:"start_date"`
	InitialCosts float64   `json:"initial_costs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
