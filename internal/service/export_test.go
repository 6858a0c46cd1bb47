package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/internal/service"
)

// ---- BuildSessionRows ------------------------------------------------------

func TestBuildSessionRows(t *testing.T) {
	eventID := uuid.New()
	sessions := []domain.ChargingSession{
		{
			Date:               time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			StationProvider:    "Ionity",
			Location:           "Rest stop A7",
			EnergyCharged:      10,
			TotalCost:          33.33,
			ChargeCardProvider: "EnBW",
			TravelEventID:      &eventID,
		},
	}

	rows := service.BuildSessionRows(sessions)

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "15.01.2024", r.Date)
	assert.Equal(t, "Ionity", r.StationProvider)
	assert.Equal(t, 10.0, r.EnergyKwh)
	assert.Equal(t, 33.33, r.Cost)
	assert.Equal(t, 3.33, r.CostPerKwh, "33.33 / 10 rounded to two decimals")
	assert.Equal(t, eventID.String(), r.TravelEvent)
}

func TestBuildSessionRows_UnlinkedSessionGetsNA(t *testing.T) {
	rows := service.BuildSessionRows([]domain.ChargingSession{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EnergyCharged: 5, TotalCost: 2},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "N/A", rows[0].TravelEvent)
}

func TestBuildSessionRows_RoundsValues(t *testing.T) {
	rows := service.BuildSessionRows([]domain.ChargingSession{
		{Date: time.Now().Add(-time.Hour), EnergyCharged: 10.456, TotalCost: 25.555},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 10.46, rows[0].EnergyKwh)
	assert.Equal(t, 25.56, rows[0].Cost)
}

func TestBuildSessionRows_Empty(t *testing.T) {
	assert.Empty(t, service.BuildSessionRows(nil))
}

// ---- BuildEventRows --------------------------------------------------------

func TestBuildEventRows_BlendedCostPerKwh(t *testing.T) {
	event := domain.TravelEvent{
		ID:           uuid.New(),
		Name:         "Alps Tour",
		Description:  "Two weeks",
		StartDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		InitialCosts: 50,
	}
	costs := map[uuid.UUID]float64{event.ID: 100}
	energy := map[uuid.UUID]float64{event.ID: 30}
	counts := map[uuid.UUID]int{event.ID: 4}

	rows := service.BuildEventRows([]domain.TravelEvent{event}, costs, energy, counts)

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "Alps Tour", r.Name)
	assert.Equal(t, "01.07.2025", r.StartDate)
	assert.Equal(t, 50.0, r.InitialCosts)
	assert.Equal(t, 4, r.SessionCount)
	assert.Equal(t, 100.0, r.TotalChargingCost)
	assert.Equal(t, 30.0, r.TotalEnergy)
	// (100 + 50) / 30 = 5
	assert.Equal(t, 5.0, r.CostPerKwh)
}

func TestBuildEventRows_NoSessions(t *testing.T) {
	event := domain.TravelEvent{
		ID:           uuid.New(),
		Name:         "Planned Trip",
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		InitialCosts: 80,
	}

	// Missing map entries read as zero values — same as an event with no
	// sessions in the store.
	rows := service.BuildEventRows([]domain.TravelEvent{event}, nil, nil, nil)

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Zero(t, r.SessionCount)
	assert.Zero(t, r.TotalEnergy)
	assert.Zero(t, r.TotalChargingCost)
	assert.Zero(t, r.CostPerKwh, "zero energy yields zero cost per kWh, not a division error")
}

// ---- CSV encoding ----------------------------------------------------------

func TestSessionRowsCSV(t *testing.T) {
	rows := []domain.SessionExportRow{
		{
			Date:            "15.01.2024",
			StationProvider: "Ionity",
			Location:        "Rest stop A7",
			EnergyKwh:       10.5,
			Cost:            33.33,
			CostPerKwh:      3.17,
			ChargeCard:      "EnBW",
			TravelEvent:     "N/A",
		},
	}

	data, err := service.SessionRowsCSV(rows)

	require.NoError(t, err)
	want := "Date,Station Provider,Location,Energy (kWh),Cost,Cost per kWh,Charge Card,Travel Event\n" +
		"15.01.2024,Ionity,Rest stop A7,10.5,33.33,3.17,EnBW,N/A\n"
	assert.Equal(t, want, string(data))
}

func TestSessionRowsCSV_EmptyStillHasHeader(t *testing.T) {
	data, err := service.SessionRowsCSV(nil)

	require.NoError(t, err)
	assert.Equal(t, "Date,Station Provider,Location,Energy (kWh),Cost,Cost per kWh,Charge Card,Travel Event\n", string(data))
}

func TestEventRowsCSV(t *testing.T) {
	rows := []domain.EventExportRow{
		{
			Name:              "Alps Tour",
			Description:       "Two weeks",
			StartDate:         "01.07.2025",
			InitialCosts:      50,
			SessionCount:      4,
			TotalEnergy:       30,
			TotalChargingCost: 100,
			CostPerKwh:        5,
		},
	}

	data, err := service.EventRowsCSV(rows)

	require.NoError(t, err)
	want := "Name,Description,Start Date,Initial Costs,Total Sessions,Total Energy,Total Charging Cost,Cost per kWh\n" +
		"Alps Tour,Two weeks,01.07.2025,50,4,30,100,5\n"
	assert.Equal(t, want, string(data))
}

// ---- ExportService ---------------------------------------------------------

func TestExportService_SessionRows(t *testing.T) {
	eventID := uuid.New()
	sessions := &mockChargingSessionRepo{
		list: func(_ context.Context) ([]domain.ChargingSession, error) {
			return []domain.ChargingSession{
				{
					Date:            time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
					StationProvider: "Ionity",
					EnergyCharged:   10,
					TotalCost:       50,
					TravelEventID:   &eventID,
				},
			}, nil
		},
	}
	svc := service.NewExportService(&mockTravelEventRepo{}, sessions)

	rows, err := svc.SessionRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].CostPerKwh)
}

func TestExportService_EventRows_FetchesAggregatesPerEvent(t *testing.T) {
	event := domain.TravelEvent{ID: uuid.New(), Name: "Tour", InitialCosts: 10,
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}

	events := &mockTravelEventRepo{
		list: func(_ context.Context) ([]domain.TravelEvent, error) {
			return []domain.TravelEvent{event}, nil
		},
	}
	sessions := &mockChargingSessionRepo{
		totalCostByTravelEvent: func(_ context.Context, id uuid.UUID) (float64, error) {
			assert.Equal(t, event.ID, id)
			return 20, nil
		},
		totalEnergyByTravelEvent: func(_ context.Context, _ uuid.UUID) (float64, error) {
			return 10, nil
		},
		countByTravelEvent: func(_ context.Context, _ uuid.UUID) (int, error) {
			return 2, nil
		},
	}
	svc := service.NewExportService(events, sessions)

	rows, err := svc.EventRows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].SessionCount)
	// (20 + 10) / 10 = 3
	assert.Equal(t, 3.0, rows[0].CostPerKwh)
}
