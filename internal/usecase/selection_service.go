package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/selection"
	"github.com/calebmartin/scorestream/internal/infrastructure/settings"
	"github.com/calebmartin/scorestream/internal/platform/logging"
)

type leaguePersister interface {
	Update(ctx context.Context, mutate func(settings.Settings) settings.Settings) (settings.Settings, error)
}

// SelectionService owns the mutable sport/league selection and its filters.
// Every mutation is persisted before it is visible, so a restart comes back
// with the same selection.
type SelectionService struct {
	mu        sync.RWMutex
	state     selection.State
	persister leaguePersister
	logger    *logging.Logger
}

func NewSelectionService(persister leaguePersister, logger *logging.Logger, enabledLeagueIDs []string) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}

	var state selection.State
	if enabledLeagueIDs == nil {
		state = selection.NewState()
	} else {
		leagues := make([]catalog.League, 0, len(enabledLeagueIDs))
		for _, id := range enabledLeagueIDs {
			if league, ok := catalog.ParseLeague(id); ok {
				leagues = append(leagues, league)
			} else {
				logger.Warn("ignoring unknown persisted league", "league", id)
			}
		}
		state = selection.NewStateWithLeagues(leagues)
	}

	return &SelectionService{
		state:     state,
		persister: persister,
		logger:    logger,
	}
}

// State returns an independent copy of the current selection.
func (s *SelectionService) State() selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// EnabledLeagues satisfies the refresh loop's LeagueSelector.
func (s *SelectionService) EnabledLeagues() []catalog.League {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.EnabledLeagues()
}

// ToggleSport flips a sport and all of its leagues, then persists.
func (s *SelectionService) ToggleSport(ctx context.Context, id string) (selection.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ToggleSport")
	defer span.End()

	sport, ok := catalog.ParseSport(id)
	if !ok {
		return selection.State{}, fmt.Errorf("%w: unknown sport %q", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.ToggleSport(sport)
	if err := s.persistLocked(ctx, next); err != nil {
		return selection.State{}, err
	}
	s.state = next
	return next.Clone(), nil
}

// ToggleLeague flips one league, reconciling sport enablement, then persists.
func (s *SelectionService) ToggleLeague(ctx context.Context, id string) (selection.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ToggleLeague")
	defer span.End()

	league, ok := catalog.ParseLeague(id)
	if !ok {
		return selection.State{}, fmt.Errorf("%w: unknown league %q", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.ToggleLeague(league)
	if err := s.persistLocked(ctx, next); err != nil {
		return selection.State{}, err
	}
	s.state = next
	return next.Clone(), nil
}

// SetFilters replaces the live-only flag and the free-text query. Filters are
// view-time state and are not persisted.
func (s *SelectionService) SetFilters(ctx context.Context, liveOnly bool, query string) selection.State {
	_, span := startUsecaseSpan(ctx, "usecase.SelectionService.SetFilters")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LiveOnly = liveOnly
	s.state.Query = query
	return s.state.Clone()
}

func (s *SelectionService) persistLocked(ctx context.Context, next selection.State) error {
	if s.persister == nil {
		return nil
	}
	serialized := next.SerializeLeagues()
	if _, err := s.persister.Update(ctx, func(current settings.Settings) settings.Settings {
		current.EnabledLeagues = serialized
		return current
	}); err != nil {
		return fmt.Errorf("persist league selection: %w", err)
	}
	return nil
}
