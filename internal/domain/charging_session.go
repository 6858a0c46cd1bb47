package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChargingSession represents one charging stop at a station.
// TravelEventID is nil for sessions not linked to any trip; the link is a
// relation, not ownership — deleting a session never touches the event.
type ChargingSession struct {
	ID              uuid.UUID `json:"id"`
	Date            time.Time `json:"date"`
	StationProvider string    `json:"station_provider"`
	Location        string    `json:"location"`
	// EnergyCharged is in kWh, TotalCost in the user's currency.
	// Unit interpretation lives in presentation, not here.
	EnergyCharged      float64    `json:"energy_charged"`
	TotalCost          float64    `json:"total_cost"`
	ChargeCardProvider string     `json:"charge_card_provider,omitempty"`
	TravelEventID      *uuid.UUID `json:"travel_event_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
