package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/platform/cache"
	"github.com/calebmartin/scorestream/internal/platform/logging"
)

// ScoreboardFetcher retrieves one league's normalized games.
type ScoreboardFetcher interface {
	FetchScoreboard(ctx context.Context, league catalog.League) ([]game.Game, error)
}

// FetchMetrics records per-league fetch outcomes. Implementations must be
// safe for concurrent use.
type FetchMetrics interface {
	ObserveLeagueFetch(league string, outcome string, elapsed time.Duration)
}

// FetchResult is one merged pass over a set of leagues. Failures holds the
// leagues that could not be fetched; the merged games cover the rest.
type FetchResult struct {
	Games     []game.Game
	Failures  map[catalog.League]error
	FetchedAt time.Time
}

type ScoreboardService struct {
	fetcher ScoreboardFetcher
	cache   *cache.Store
	metrics FetchMetrics
	logger  *logging.Logger
	now     func() time.Time
}

type ScoreboardServiceConfig struct {
	Fetcher ScoreboardFetcher
	Cache   *cache.Store
	Metrics FetchMetrics
	Logger  *logging.Logger
}

func NewScoreboardService(cfg ScoreboardServiceConfig) *ScoreboardService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreboardService{
		fetcher: cfg.Fetcher,
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchMerged fans out one fetch per league and merges whatever succeeds.
// A league failing never hides the others; only when every league fails does
// the whole pass fail.
func (s *ScoreboardService) FetchMerged(ctx context.Context, leagues []catalog.League) (FetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.FetchMerged")
	defer span.End()

	result := FetchResult{
		Failures:  make(map[catalog.League]error),
		FetchedAt: s.now().UTC(),
	}
	if len(leagues) == 0 {
		result.Games = []game.Game{}
		return result, nil
	}

	// One goroutine per league: the catalog bounds the fan-out, so a slow
	// league never queues behind the others.
	var mu sync.Mutex
	workers := pool.New().WithMaxGoroutines(len(leagues))
	for _, league := range leagues {
		league := league
		workers.Go(func() {
			games, err := s.fetchLeague(ctx, league)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures[league] = err
				return
			}
			result.Games = append(result.Games, games...)
		})
	}
	workers.Wait()

	for league, err := range result.Failures {
		s.logger.WarnContext(ctx, "league fetch failed",
			"league", league.ID(),
			"error", err,
		)
	}

	if len(result.Failures) == len(leagues) {
		return result, fmt.Errorf("%w: all %d league fetches failed", ErrDependencyUnavailable, len(leagues))
	}

	sortGames(result.Games)
	return result, nil
}

func (s *ScoreboardService) fetchLeague(ctx context.Context, league catalog.League) ([]game.Game, error) {
	started := s.now()

	games, err := s.loadLeague(ctx, league)

	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.ObserveLeagueFetch(league.ID(), outcome, s.now().Sub(started))
	}
	return games, err
}

func (s *ScoreboardService) loadLeague(ctx context.Context, league catalog.League) ([]game.Game, error) {
	if s.cache == nil {
		return s.fetcher.FetchScoreboard(ctx, league)
	}

	out, err := s.cache.GetOrLoad(ctx, "scoreboard:"+league.ID(), func(ctx context.Context) (any, error) {
		return s.fetcher.FetchScoreboard(ctx, league)
	})
	if err != nil {
		return nil, err
	}
	games, ok := out.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected cache payload %T", ErrDependencyUnavailable, out)
	}
	return games, nil
}

// sortGames orders live games first, then by start time, then by ID so equal
// games keep a stable order across refreshes.
func sortGames(games []game.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.IsLive() != b.IsLive() {
			return a.IsLive()
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})
}
