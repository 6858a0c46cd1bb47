package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jsteiner/chargelog/internal/calc"
	"github.com/jsteiner/chargelog/internal/dates"
	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/internal/repo"
)

// Column labels written as the first row of each CSV export.
var (
	sessionCSVHeaders = []string{
		"Date", "Station Provider", "Location", "Energy (kWh)",
		"Cost", "Cost per kWh", "Charge Card", "Travel Event",
	}
	eventCSVHeaders = []string{
		"Name", "Description", "Start Date", "Initial Costs",
		"Total Sessions", "Total Energy", "Total Charging Cost", "Cost per kWh",
	}
)

// ExportService flattens repository data into export rows and encodes them as
// UTF-8 CSV. Writing the resulting bytes to a file and handing them to a
// share mechanism is the caller's job. Aggregates are fetched fresh on every
// export — one query per event, accepted for single-user data volumes.
type ExportService struct {
	events   repo.TravelEventRepo
	sessions repo.ChargingSessionRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(events repo.TravelEventRepo, sessions repo.ChargingSessionRepo) *ExportService {
	return &ExportService{events: events, sessions: sessions}
}

// SessionRows returns one export row per charging session, most recent first.
func (s *ExportService) SessionRows(ctx context.Context) ([]domain.SessionExportRow, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.SessionRows: %w", err)
	}
	return BuildSessionRows(sessions), nil
}

// EventRows returns one export row per travel event, most recent first, with
// per-event aggregates fetched from the session repo.
func (s *ExportService) EventRows(ctx context.Context) ([]domain.EventExportRow, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.EventRows: %w", err)
	}

	costs := make(map[uuid.UUID]float64, len(events))
	energy := make(map[uuid.UUID]float64, len(events))
	counts := make(map[uuid.UUID]int, len(events))
	for _, e := range events {
		if costs[e.ID], err = s.sessions.TotalCostByTravelEvent(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("service.ExportService.EventRows: %w", err)
		}
		if energy[e.ID], err = s.sessions.TotalEnergyByTravelEvent(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("service.ExportService.EventRows: %w", err)
		}
		if counts[e.ID], err = s.sessions.CountByTravelEvent(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("service.ExportService.EventRows: %w", err)
		}
	}

	return BuildEventRows(events, costs, energy, counts), nil
}

// BuildSessionRows maps charging sessions to flat export rows. Pure — the
// cost-per-kWh column is computed with the same calc functions the UI uses,
// so display and export stay byte-identical.
func BuildSessionRows(sessions []domain.ChargingSession) []domain.SessionExportRow {
	rows := make([]domain.SessionExportRow, 0, len(sessions))
	for _, cs := range sessions {
		travelEvent := "N/A"
		if cs.TravelEventID != nil {
			travelEvent = cs.TravelEventID.String()
		}
		rows = append(rows, domain.SessionExportRow{
			Date:            dates.Format(cs.Date),
			StationProvider: cs.StationProvider,
			Location:        cs.Location,
			EnergyKwh:       calc.Round2(cs.EnergyCharged),
			Cost:            calc.Round2(cs.TotalCost),
			CostPerKwh:      calc.CostPerKwh(cs.TotalCost, cs.EnergyCharged),
			ChargeCard:      cs.ChargeCardProvider,
			TravelEvent:     travelEvent,
		})
	}
	return rows
}

// BuildEventRows combines each event's own fields with its pre-fetched
// session aggregates. The Cost per kWh column blends initial costs with the
// total charging cost over the total energy. Pure — no store access; the
// caller supplies the aggregate maps.
func BuildEventRows(events []domain.TravelEvent, costsByID, energyByID map[uuid.UUID]float64, countsByID map[uuid.UUID]int) []domain.EventExportRow {
	rows := make([]domain.EventExportRow, 0, len(events))
	for _, e := range events {
		cost := costsByID[e.ID]
		energy := energyByID[e.ID]
		rows = append(rows, domain.EventExportRow{
			Name:              e.Name,
			Description:       e.Description,
			StartDate:         dates.Format(e.StartDate),
			InitialCosts:      calc.Round2(e.InitialCosts),
			SessionCount:      countsByID[e.ID],
			TotalEnergy:       calc.Round2(energy),
			TotalChargingCost: calc.Round2(cost),
			CostPerKwh:        calc.CostPerKwh(cost+e.InitialCosts, energy),
		})
	}
	return rows
}

// SessionRowsCSV encodes session export rows as UTF-8 CSV with a header row.
func SessionRowsCSV(rows []domain.SessionExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write(sessionCSVHeaders)
	for _, r := range rows {
		w.Write([]string{
			r.Date,
			r.StationProvider,
			r.Location,
			formatAmount(r.EnergyKwh),
			formatAmount(r.Cost),
			formatAmount(r.CostPerKwh),
			r.ChargeCard,
			r.TravelEvent,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("service.SessionRowsCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// EventRowsCSV encodes event export rows as UTF-8 CSV with a header row.
func EventRowsCSV(rows []domain.EventExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write(eventCSVHeaders)
	for _, r := range rows {
		w.Write([]string{
			r.Name,
			r.Description,
			r.StartDate,
			formatAmount(r.InitialCosts),
			strconv.Itoa(r.SessionCount),
			formatAmount(r.TotalEnergy),
			formatAmount(r.TotalChargingCost),
			formatAmount(r.CostPerKwh),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("service.EventRowsCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// formatAmount renders a pre-rounded value without trailing zeros:
// 10.5 stays "10.5" and 10 stays "10", matching on-screen display.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
