// Package repo contains all database access logic for the charge log.
// Each aggregate has its own file with an interface and a SQLite
// implementation. No business logic lives here — only SQL and type mapping;
// validation happens in the service layer before any of these are called.
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

// db is the minimal interface satisfied by *sql.DB, *sql.Tx, and *store.DB.
// Accepting this interface instead of a concrete handle lets tests pass a
// transaction or an isolated in-memory store without touching production code.
type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TravelEventRepo defines the persistence operations for TravelEvents.
// The service layer depends on this interface, not the SQLite implementation,
// which allows the service to be unit-tested with a mock.
type TravelEventRepo interface {
	// Create assigns a new UUID and created/updated timestamps, persists the
	// event, and returns the full record.
	Create(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error)

	// GetByID retrieves a single event by its primary key.
	// Returns domain.ErrNotFound if no event with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelEvent, error)

	// List returns all events ordered by start_date descending.
	List(ctx context.Context) ([]domain.TravelEvent, error)

	// ListPage returns one page of events ordered by start_date descending.
	// A short (or empty) page is the caller's signal that the data is
	// exhausted — there is no separate count query.
	ListPage(ctx context.Context, page domain.PageParams) ([]domain.TravelEvent, error)

	// Update overwrites all mutable fields, refreshes updated_at, and returns
	// the updated record. Returns domain.ErrNotFound for an unknown ID.
	Update(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error)

	// Delete removes an event unconditionally. The "no delete while sessions
	// are linked" invariant is enforced by the service layer, not here.
	// Returns domain.ErrNotFound if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

// sqliteTravelEventRepo is the SQLite implementation of TravelEventRepo.
type sqliteTravelEventRepo struct {
	db db
}

// NewTravelEventRepo constructs a TravelEventRepo backed by the provided
// database handle.
func NewTravelEventRepo(db db) TravelEventRepo {
	return &sqliteTravelEventRepo{db: db}
}

const travelEventColumns = `id, name, description, start_date, initial_costs, created_at, updated_at`

func (r *sqliteTravelEventRepo) Create(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error) {
	const q = `
		INSERT INTO travel_events (id, name, description, start_date, initial_costs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	// Truncated to millisecond precision so the returned entity is identical
	// to what a later GetByID reads back from the store.
	now := time.Now().UTC().Truncate(time.Millisecond)
	event.ID = uuid.New()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, q,
		event.ID.String(),
		event.Name,
		event.Description,
		event.StartDate.UnixMilli(),
		event.InitialCosts,
		event.CreatedAt.UnixMilli(),
		event.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return domain.TravelEvent{}, &domain.StoreError{Op: "repo.TravelEventRepo.Create", Err: err}
	}
	return event, nil
}

func (r *sqliteTravelEventRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelEvent, error) {
	q := `SELECT ` + travelEventColumns + ` FROM travel_events WHERE id = ?`

	event, err := scanTravelEvent(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TravelEvent{}, fmt.Errorf("repo.TravelEventRepo.GetByID: %w", err)
		}
		return domain.TravelEvent{}, &domain.StoreError{Op: "repo.TravelEventRepo.GetByID", Err: err}
	}
	return event, nil
}

func (r *sqliteTravelEventRepo) List(ctx context.Context) ([]domain.TravelEvent, error) {
	q := `SELECT ` + travelEventColumns + ` FROM travel_events ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.TravelEventRepo.List", Err: err}
	}
	defer rows.Close()

	return collectTravelEvents(rows, "repo.TravelEventRepo.List")
}

func (r *sqliteTravelEventRepo) ListPage(ctx context.Context, page domain.PageParams) ([]domain.TravelEvent, error) {
	q := `SELECT ` + travelEventColumns + ` FROM travel_events ORDER BY start_date DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, q, page.Size, page.Offset())
	if err != nil {
		return nil, &domain.StoreError{Op: "repo.TravelEventRepo.ListPage", Err: err}
	}
	defer rows.Close()

	return collectTravelEvents(rows, "repo.TravelEventRepo.ListPage")
}

func (r *sqliteTravelEventRepo) Update(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error) {
	const q = `
		UPDATE travel_events
		SET name          = ?,
		    description   = ?,
		    start_date    = ?,
		    initial_costs = ?,
		    updated_at    = ?
		WHERE id = ?
		RETURNING ` + travelEventColumns

	now := time.Now().UTC().Truncate(time.Millisecond)

	updated, err := scanTravelEvent(r.db.QueryRowContext(ctx, q,
		event.Name,
		event.Description,
		event.StartDate.UnixMilli(),
		event.InitialCosts,
		now.UnixMilli(),
		event.ID.String(),
	))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TravelEvent{}, fmt.Errorf("repo.TravelEventRepo.Update: %w", err)
		}
		return domain.TravelEvent{}, &domain.StoreError{Op: "repo.TravelEventRepo.Update", Err: err}
	}
	return updated, nil
}

func (r *sqliteTravelEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM travel_events WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return &domain.StoreError{Op: "repo.TravelEventRepo.Delete", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StoreError{Op: "repo.TravelEventRepo.Delete", Err: err}
	}
	if n == 0 {
		return fmt.Errorf("repo.TravelEventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTravelEvent maps a single database row into a domain.TravelEvent,
// converting the TEXT id and the epoch-millisecond timestamp columns.
func scanTravelEvent(s scanner) (domain.TravelEvent, error) {
	var (
		e                           domain.TravelEvent
		id                          string
		startDate, created, updated int64
	)

	err := s.Scan(&id, &e.Name, &e.Description, &startDate, &e.InitialCosts, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TravelEvent{}, domain.ErrNotFound
		}
		return domain.TravelEvent{}, err
	}

	e.ID, err = uuid.Parse(id)
	if err != nil {
		return domain.TravelEvent{}, fmt.Errorf("malformed id %q: %w", id, err)
	}
	e.StartDate = time.UnixMilli(startDate).UTC()
	e.CreatedAt = time.UnixMilli(created).UTC()
	e.UpdatedAt = time.UnixMilli(updated).UTC()

	return e, nil
}

// collectTravelEvents drains rows into a slice, wrapping any scan or
// iteration failure as a StoreError attributed to op.
func collectTravelEvents(rows *sql.Rows, op string) ([]domain.TravelEvent, error) {
	var events []domain.TravelEvent
	for rows.Next() {
		e, err := scanTravelEvent(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: op, Err: err}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}
	return events, nil
}
