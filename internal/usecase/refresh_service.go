package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/infrastructure/settings"
	"github.com/calebmartin/scorestream/internal/platform/logging"
)

// Refresh cadences the API accepts, in seconds.
var allowedRefreshIntervals = map[int]struct{}{
	15:  {},
	30:  {},
	60:  {},
	300: {},
}

// Snapshot is the most recent successfully merged scoreboard. Failures lists
// the leagues that were unreachable during that pass.
type Snapshot struct {
	Games     []game.Game
	Failures  map[catalog.League]error
	UpdatedAt time.Time
}

// LeagueSelector yields the leagues a refresh pass should cover.
type LeagueSelector interface {
	EnabledLeagues() []catalog.League
}

// RefreshMetrics records whole-cycle outcomes.
type RefreshMetrics interface {
	ObserveRefreshCycle(outcome string, elapsed time.Duration)
	SetSnapshotSize(games int)
}

type intervalPersister interface {
	Update(ctx context.Context, mutate func(settings.Settings) settings.Settings) (settings.Settings, error)
}

// RefreshService re-fetches the scoreboard on a repeating timer. A slow pass
// is never stacked on: ticks that land mid-refresh are rejected, and a pass
// where every league fails keeps the previous snapshot visible.
type RefreshService struct {
	scoreboard *ScoreboardService
	selector   LeagueSelector
	persister  intervalPersister
	metrics    RefreshMetrics
	logger     *logging.Logger
	now        func() time.Time

	refreshing atomic.Bool
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	mu        sync.RWMutex
	interval  time.Duration
	snapshot  Snapshot
	lastError error
}

type RefreshServiceConfig struct {
	Scoreboard *ScoreboardService
	Selector   LeagueSelector
	Persister  intervalPersister
	Metrics    RefreshMetrics
	Logger     *logging.Logger
	Interval   time.Duration
}

func NewRefreshService(cfg RefreshServiceConfig) *RefreshService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = settings.DefaultRefreshInterval
	}
	return &RefreshService{
		scoreboard: cfg.Scoreboard,
		selector:   cfg.Selector,
		persister:  cfg.Persister,
		metrics:    cfg.Metrics,
		logger:     logger,
		now:        time.Now,
		done:       make(chan struct{}),
		interval:   interval,
	}
}

// Start launches the refresh loop. The first pass runs immediately so the
// snapshot is populated before the first tick.
func (s *RefreshService) Start(ctx context.Context) {
	if err := s.RefreshOnce(ctx); err != nil {
		s.logger.WarnContext(ctx, "initial refresh failed", "error", err)
	}

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *RefreshService) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(s.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.done:
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.RefreshOnce(ctx); err != nil {
			s.logger.WarnContext(ctx, "scheduled refresh failed", "error", err)
		}
	}
}

// Stop terminates the loop and waits for an in-flight pass's goroutine to
// settle. Safe to call more than once.
func (s *RefreshService) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// RefreshOnce runs a single merged fetch. Overlapping calls are rejected
// with ErrRefreshInProgress rather than queued.
func (s *RefreshService) RefreshOnce(ctx context.Context) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	defer s.refreshing.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshOnce")
	defer span.End()

	started := s.now()
	leagues := s.selector.EnabledLeagues()

	result, err := s.scoreboard.FetchMerged(ctx, leagues)
	elapsed := s.now().Sub(started)

	if err != nil {
		s.recordCycle("failure", elapsed)
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		return fmt.Errorf("refresh scoreboard: %w", err)
	}

	s.recordCycle("success", elapsed)
	if s.metrics != nil {
		s.metrics.SetSnapshotSize(len(result.Games))
	}

	s.mu.Lock()
	s.snapshot = Snapshot{
		Games:     result.Games,
		Failures:  result.Failures,
		UpdatedAt: result.FetchedAt,
	}
	s.lastError = nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "scoreboard refreshed",
		"leagues", len(leagues),
		"games", len(result.Games),
		"failed_leagues", len(result.Failures),
		"elapsed", elapsed.String(),
	)
	return nil
}

func (s *RefreshService) recordCycle(outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveRefreshCycle(outcome, elapsed)
	}
}

// Snapshot returns the latest merged scoreboard. The zero snapshot means no
// pass has succeeded yet.
func (s *RefreshService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *RefreshService) IsRefreshing() bool {
	return s.refreshing.Load()
}

func (s *RefreshService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *RefreshService) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// SetInterval switches the refresh cadence to one of the accepted presets
// and persists it. The new cadence applies from the next tick.
func (s *RefreshService) SetInterval(ctx context.Context, seconds int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.SetInterval")
	defer span.End()

	if _, ok := allowedRefreshIntervals[seconds]; !ok {
		return fmt.Errorf("%w: unsupported refresh interval %ds", ErrInvalidInput, seconds)
	}

	if s.persister != nil {
		if _, err := s.persister.Update(ctx, func(current settings.Settings) settings.Settings {
			current.RefreshIntervalSeconds = seconds
			return current
		}); err != nil {
			return fmt.Errorf("persist refresh interval: %w", err)
		}
	}

	s.mu.Lock()
	s.interval = time.Duration(seconds) * time.Second
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "refresh interval updated", "seconds", seconds)
	return nil
}
