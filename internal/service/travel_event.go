// Package service contains the business logic of the charge log.
// Services validate inputs, enforce cross-entity rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/internal/repo"
	"github.com/jsteiner/chargelog/internal/validate"
)

// TravelEventService implements business logic for TravelEvent operations,
// including the cross-entity rule that an event with linked charging sessions
// cannot be deleted.
type TravelEventService struct {
	events   repo.TravelEventRepo
	sessions repo.ChargingSessionRepo
}

// NewTravelEventService constructs a TravelEventService. The session repo is
// needed only for the delete guard.
func NewTravelEventService(events repo.TravelEventRepo, sessions repo.ChargingSessionRepo) *TravelEventService {
	return &TravelEventService{events: events, sessions: sessions}
}

// Create validates and persists a new travel event.
func (s *TravelEventService) Create(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error) {
	if err := validate.TravelEvent(event.Name, event.InitialCosts); err != nil {
		return domain.TravelEvent{}, fmt.Errorf("service.TravelEventService.Create: %w", err)
	}
	return s.events.Create(ctx, event)
}

// Update validates and overwrites an existing travel event.
// Returns domain.ErrNotFound if the id does not exist.
func (s *TravelEventService) Update(ctx context.Context, event domain.TravelEvent) (domain.TravelEvent, error) {
	if err := validate.TravelEvent(event.Name, event.InitialCosts); err != nil {
		return domain.TravelEvent{}, fmt.Errorf("service.TravelEventService.Update: %w", err)
	}
	return s.events.Update(ctx, event)
}

// Delete removes a travel event, refusing with *domain.DeleteBlockedError
// while any charging session still references it. Linked sessions must be
// deleted or unlinked first; there is no cascade.
func (s *TravelEventService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.sessions.CountByTravelEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TravelEventService.Delete: %w", err)
	}
	if count > 0 {
		return &domain.DeleteBlockedError{SessionCount: count}
	}
	return s.events.Delete(ctx, id)
}

// GetByID returns a single travel event, or domain.ErrNotFound.
func (s *TravelEventService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelEvent, error) {
	return s.events.GetByID(ctx, id)
}

// List returns all travel events, most recent start date first.
func (s *TravelEventService) List(ctx context.Context) ([]domain.TravelEvent, error) {
	return s.events.List(ctx)
}

// ListPage returns one page of travel events together with a has-next hint.
// A full page signals that a next page may exist; a short page is the sole
// end-of-data signal — no count query is issued.
func (s *TravelEventService) ListPage(ctx context.Context, page domain.PageParams) ([]domain.TravelEvent, bool, error) {
	events, err := s.events.ListPage(ctx, page)
	if err != nil {
		return nil, false, err
	}
	return events, len(events) == page.Size, nil
}
