package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jsteiner/chargelog/internal/domain"
)

// ChargingSessionRepo defines the persistence operations for ChargingSessions:
// the same CRUD/pagination shape as TravelEventRepo plus per-event filtering,
// aggregate sums, and the distinct charge-card lookup that seeds autocomplete.
type ChargingSessionRepo interface {
	// Create assigns a new UUID and created/updated timestamps, persists the
	// session, and returns the full record. The travel_event_id foreign key
	// is enforced by the store at write time: linking to a missing event fails.
	Create(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error)

	// GetByID retrieves a single session by its primary key.
	// Returns domain.ErrNotFound if no session with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ChargingSession, error)

	// List returns all sessions ordered by date descending.
	List(ctx context.Context) ([]domain.ChargingSession, error)

	// ListPage returns one page of sessions ordered by date descending.
	ListPage(ctx context.Context, page domain.PageParams) ([]domain.ChargingSession, error)

	// ListByTravelEvent returns all sessions linked to the given event,
	// ordered by date descending.
	ListByTravelEvent(ctx context.Context, travelEventID uuid.UUID) ([]domain.ChargingSession, error)

	// ListPageByTravelEvent returns one page of the event's sessions,
	// ordered by date descending with the same offset/limit contract
	// as ListPage.
	ListPageByTravelEvent(ctx context.Context, travelEventID uuid.UUID, page domain.PageParams) ([]domain.ChargingSession, error)

	// Update overwrites all mutable fields, refreshes updated_at, and returns
	// the updated record. Returns domain.ErrNotFound for an unknown ID.
	Update(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error)

	// Delete removes a session. Returns domain.ErrNotFound if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalCostByTravelEvent sums total_cost over the event's sessions.
	// Returns 0, not an error, when the event has no sessions.
	TotalCostByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error)

	// TotalEnergyByTravelEvent sums energy_charged over the event's sessions,
	// with the same zero-default contract as TotalCostByTravelEvent.
	TotalEnergyByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error)

	// CountByTravelEvent returns the number of sessions linked to the event.
	CountByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (int, error)

	// ChargeCardProviders returns the distinct non-empty charge card provider
	// values across all sessions, alphabetically ordered so autocomplete
	// suggestions are stable between calls.
	ChargeCardProviders(ctx context.Context) ([]string, error)
}

// sqliteChargingSessionRepo is the SQLite implementation of ChargingSessionRepo.
type sqliteChargingSessionRepo struct {
	db db
}

// NewChargingSessionRepo constructs a ChargingSessionRepo backed by the
// provided database handle.
func NewChargingSessionRepo(db db) ChargingSessionRepo {
	return &sqliteChargingSessionRepo{db: db}
}

const chargingSessionColumns = `id, date, station_provider, location, energy_charged, total_cost, charge_card_provider, travel_event_id, created_at, updated_at`

func (r *sqliteChargingSessionRepo) Create(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error) {
	const q = `
		INSERT INTO charging_sessions (id, date, station_provider, location, energy_charged, total_cost, charge_card_provider, travel_event_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// Millisecond precision matches the stored epoch-millis columns.
	now := time.Now().UTC().Truncate(time.Millisecond)
	session.ID = uuid.New()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, q,
		session.ID.String(),
		session.Date.UnixMilli(),
		session.StationProvider,
		session.Location,
		session.EnergyCharged,
		session.TotalCost,
		session.ChargeCardProvider,
		nullableID(session.TravelEventID),
		session.CreatedAt.UnixMilli(),
		session.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return domain.ChargingSession{}, &domain.StoreError{Op: "repo.ChargingSessionRepo.Create", Err: err}
	}
	return session, nil
}

func (r *sqliteChargingSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ChargingSession, error) {
	q := `SELECT ` + chargingSessionColumns + ` FROM charging_sessions WHERE id = ?`

	session, err := scanChargingSession(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ChargingSession{}, fmt.Errorf("repo.ChargingSessionRepo.GetByID: %w", err)
		}
		return domain.ChargingSession{}, &domain.StoreError{Op: "repo.ChargingSessionRepo.GetByID", Err: err}
	}
	return session, nil
}

func (r *sqliteChargingSessionRepo) List(ctx context.Context) ([]domain.ChargingSession, error) {
	q := `SELECT ` + chargingSessionColumns + ` FROM charging_sessions ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.List", Err: err}
	}
	defer rows.Close()

	return collectChargingSessions(rows, "repo.ChargingSessionRepo.List")
}

func (r *sqliteChargingSessionRepo) ListPage(ctx context.Context, page domain.PageParams) ([]domain.ChargingSession, error) {
	q := `SELECT ` + chargingSessionColumns + ` FROM charging_sessions ORDER BY date DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, q, page.Size, page.Offset())
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ListPage", Err: err}
	}
	defer rows.Close()

	return collectChargingSessions(rows, "repo.ChargingSessionRepo.ListPage")
}

func (r *sqliteChargingSessionRepo) ListByTravelEvent(ctx context.Context, travelEventID uuid.UUID) ([]domain.ChargingSession, error) {
	q := `SELECT ` + chargingSessionColumns + ` FROM charging_sessions WHERE travel_event_id = ? ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, q, travelEventID.String())
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ListByTravelEvent", Err: err}
	}
	defer rows.Close()

	return collectChargingSessions(rows, "repo.ChargingSessionRepo.ListByTravelEvent")
}

func (r *sqliteChargingSessionRepo) ListPageByTravelEvent(ctx context.Context, travelEventID uuid.UUID, page domain.PageParams) ([]domain.ChargingSession, error) {
	q := `SELECT ` + chargingSessionColumns + ` FROM charging_sessions WHERE travel_event_id = ? ORDER BY date DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, q, travelEventID.String(), page.Size, page.Offset())
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ListPageByTravelEvent", Err: err}
	}
	defer rows.Close()

	return collectChargingSessions(rows, "repo.ChargingSessionRepo.ListPageByTravelEvent")
}

func (r *sqliteChargingSessionRepo) Update(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error) {
	const q = `
		UPDATE charging_sessions
		SET date                 = ?,
		    station_provider     = ?,
		    location             = ?,
		    energy_charged       = ?,
		    total_cost           = ?,
		    charge_card_provider = ?,
		    travel_event_id      = ?,
		    updated_at           = ?
		WHERE id = ?
		RETURNING ` + chargingSessionColumns

	now := time.Now().UTC().Truncate(time.Millisecond)

	updated, err := scanChargingSession(r.db.QueryRowContext(ctx, q,
		session.Date.UnixMilli(),
		session.StationProvider,
		session.Location,
		session.EnergyCharged,
		session.TotalCost,
		session.ChargeCardProvider,
		nullableID(session.TravelEventID),
		now.UnixMilli(),
		session.ID.String(),
	))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ChargingSession{}, fmt.Errorf("repo.ChargingSessionRepo.Update: %w", err)
		}
		return domain.ChargingSession{}, &domain.StoreError{Op: "repo.ChargingSessionRepo.Update", Err: err}
	}
	return updated, nil
}

func (r *sqliteChargingSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM charging_sessions WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return &domain.StoreError{Op: "repo.ChargingSessionRepo.Delete", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StoreError{Op: "repo.ChargingSessionRepo.Delete", Err: err}
	}
	if n == 0 {
		return fmt.Errorf("repo.ChargingSessionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqliteChargingSessionRepo) TotalCostByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error) {
	const q = `SELECT COALESCE(SUM(total_cost), 0) FROM charging_sessions WHERE travel_event_id = ?`
	return r.sumByEvent(ctx, q, travelEventID, "repo.ChargingSessionRepo.TotalCostByTravelEvent")
}

func (r *sqliteChargingSessionRepo) TotalEnergyByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error) {
	const q = `SELECT COALESCE(SUM(energy_charged), 0) FROM charging_sessions WHERE travel_event_id = ?`
	return r.sumByEvent(ctx, q, travelEventID, "repo.ChargingSessionRepo.TotalEnergyByTravelEvent")
}

func (r *sqliteChargingSessionRepo) sumByEvent(ctx context.Context, q string, travelEventID uuid.UUID, op string) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, q, travelEventID.String()).Scan(&total); err != nil {
		return 0, &domain.StoreError{Op: op, Err: err}
	}
	return total, nil
}

func (r *sqliteChargingSessionRepo) CountByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM charging_sessions WHERE travel_event_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, q, travelEventID.String()).Scan(&count); err != nil {
		return 0, &domain.StoreError{Op: "repo.ChargingSessionRepo.CountByTravelEvent", Err: err}
	}
	return count, nil
}

func (r *sqliteChargingSessionRepo) ChargeCardProviders(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT charge_card_provider
		FROM charging_sessions
		WHERE charge_card_provider <> ''
		ORDER BY charge_card_provider`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ChargeCardProviders", Err: err}
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ChargeCardProviders", Err: err}
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "repo.ChargingSessionRepo.ChargeCardProviders", Err: err}
	}
	return providers, nil
}

// nullableID converts an optional UUID reference into a driver value,
// mapping nil to SQL NULL.
func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// scanChargingSession maps a single database row into a domain.ChargingSession,
// converting the TEXT ids, the nullable event reference, and the
// epoch-millisecond timestamp columns.
func scanChargingSession(s scanner) (domain.ChargingSession, error) {
	var (
		cs                     domain.ChargingSession
		id                     string
		eventID                sql.NullString
		date, created, updated int64
	)

	err := s.Scan(&id, &date, &cs.StationProvider, &cs.Location, &cs.EnergyCharged,
		&cs.TotalCost, &cs.ChargeCardProvider, &eventID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ChargingSession{}, domain.ErrNotFound
		}
		return domain.ChargingSession{}, err
	}

	cs.ID, err = uuid.Parse(id)
	if err != nil {
		return domain.ChargingSession{}, fmt.Errorf("malformed id %q: %w", id, err)
	}
	if eventID.Valid {
		parsed, err := uuid.Parse(eventID.String)
		if err != nil {
			return domain.ChargingSession{}, fmt.Errorf("malformed travel_event_id %q: %w", eventID.String, err)
		}
		cs.TravelEventID = &parsed
	}
	cs.Date = time.UnixMilli(date).UTC()
	cs.CreatedAt = time.UnixMilli(created).UTC()
	cs.UpdatedAt = time.UnixMilli(updated).UTC()

	return cs, nil
}

// collectChargingSessions drains rows into a slice, wrapping any scan or
// iteration failure as a StoreError attributed to op.
func collectChargingSessions(rows *sql.Rows, op string) ([]domain.ChargingSession, error) {
	var sessions []domain.ChargingSession
	for rows.Next() {
		cs, err := scanChargingSession(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: op, Err: err}
		}
		sessions = append(sessions, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}
	return sessions, nil
}
