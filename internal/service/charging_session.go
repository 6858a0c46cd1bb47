package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsteiner/chargelog/internal/autocomplete"
	"github.com/jsteiner/chargelog/internal/domain"
	"github.com/jsteiner/chargelog/internal/repo"
	"github.com/jsteiner/chargelog/internal/validate"
)

// ChargingSessionService implements business logic for ChargingSession
// operations: submission-time validation, pagination, aggregate lookups, and
// charge-card autocomplete.
type ChargingSessionService struct {
	sessions repo.ChargingSessionRepo
}

// NewChargingSessionService constructs a ChargingSessionService backed by the
// provided repo.
func NewChargingSessionService(sessions repo.ChargingSessionRepo) *ChargingSessionService {
	return &ChargingSessionService{sessions: sessions}
}

// Create validates and persists a new charging session. The future-date rule
// is checked here, at submission time — the store itself accepts any date.
func (s *ChargingSessionService) Create(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error) {
	err := validate.ChargingSession(session.Date, session.StationProvider, session.Location,
		session.EnergyCharged, session.TotalCost)
	if err != nil {
		return domain.ChargingSession{}, fmt.Errorf("service.ChargingSessionService.Create: %w", err)
	}
	return s.sessions.Create(ctx, session)
}

// Update validates and overwrites an existing charging session.
// Returns domain.ErrNotFound if the id does not exist.
func (s *ChargingSessionService) Update(ctx context.Context, session domain.ChargingSession) (domain.ChargingSession, error) {
	err := validate.ChargingSession(session.Date, session.StationProvider, session.Location,
		session.EnergyCharged, session.TotalCost)
	if err != nil {
		return domain.ChargingSession{}, fmt.Errorf("service.ChargingSessionService.Update: %w", err)
	}
	return s.sessions.Update(ctx, session)
}

// Delete removes a charging session. Sessions are leaves — no guard needed.
func (s *ChargingSessionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

// GetByID returns a single charging session, or domain.ErrNotFound.
func (s *ChargingSessionService) GetByID(ctx context.Context, id uuid.UUID) (domain.ChargingSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// List returns all charging sessions, most recent first.
func (s *ChargingSessionService) List(ctx context.Context) ([]domain.ChargingSession, error) {
	return s.sessions.List(ctx)
}

// ListPage returns one page of charging sessions with the same has-next
// contract as TravelEventService.ListPage.
func (s *ChargingSessionService) ListPage(ctx context.Context, page domain.PageParams) ([]domain.ChargingSession, bool, error) {
	sessions, err := s.sessions.ListPage(ctx, page)
	if err != nil {
		return nil, false, err
	}
	return sessions, len(sessions) == page.Size, nil
}

// ListByTravelEvent returns all sessions linked to the given event.
func (s *ChargingSessionService) ListByTravelEvent(ctx context.Context, travelEventID uuid.UUID) ([]domain.ChargingSession, error) {
	return s.sessions.ListByTravelEvent(ctx, travelEventID)
}

// ListPageByTravelEvent returns one page of the event's sessions with a
// has-next hint.
func (s *ChargingSessionService) ListPageByTravelEvent(ctx context.Context, travelEventID uuid.UUID, page domain.PageParams) ([]domain.ChargingSession, bool, error) {
	sessions, err := s.sessions.ListPageByTravelEvent(ctx, travelEventID, page)
	if err != nil {
		return nil, false, err
	}
	return sessions, len(sessions) == page.Size, nil
}

// TotalCostByTravelEvent sums the event's charging costs; 0 for no sessions.
// Computed fresh on every call — there is deliberately no cache.
func (s *ChargingSessionService) TotalCostByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error) {
	return s.sessions.TotalCostByTravelEvent(ctx, travelEventID)
}

// TotalEnergyByTravelEvent sums the event's charged energy; 0 for no sessions.
func (s *ChargingSessionService) TotalEnergyByTravelEvent(ctx context.Context, travelEventID uuid.UUID) (float64, error) {
	return s.sessions.TotalEnergyByTravelEvent(ctx, travelEventID)
}

// SuggestChargeCard returns the best charge-card provider completion for the
// given input, drawn from the distinct values of past sessions. ok is false
// when nothing matches.
func (s *ChargingSessionService) SuggestChargeCard(ctx context.Context, input string) (string, bool, error) {
	providers, err := s.sessions.ChargeCardProviders(ctx)
	if err != nil {
		return "", false, fmt.Errorf("service.ChargingSessionService.SuggestChargeCard: %w", err)
	}
	match, ok := autocomplete.FindBestMatch(input, providers)
	return match, ok, nil
}
