package domain

// SessionExportRow is one CSV row of the charging-session export.
// All numeric fields are pre-rounded to two decimals and Date carries the
// dd.MM.yyyy presentation format, so encoding a row is pure string work.
type SessionExportRow struct {
	Date            string
	StationProvider string
	Location        string
	EnergyKwh       float64
	Cost            float64
	CostPerKwh      float64
	ChargeCard      string
	// TravelEvent is the linked event id, or "N/A" for unlinked sessions.
	TravelEvent string
}

// EventExportRow is one CSV row of the travel-event export. Aggregates come
// from the charging-session repo; CostPerKwh blends the event's initial costs
// with the total charging cost over the total energy.
type EventExportRow struct {
	Name              string
	Description       string
	StartDate         string
	InitialCosts      float64
	SessionCount      int
	TotalEnergy       float64
	TotalChargingCost float64
	CostPerKwh        float64
}
