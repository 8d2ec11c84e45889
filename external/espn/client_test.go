package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/platform/logging"
	"github.com/calebmartin/scorestream/internal/platform/resilience"
)

const scoreboardFixture = `{
  "events": [
    {
      "id": "401547440",
      "name": "Buffalo Bills at Kansas City Chiefs",
      "date": "2025-12-05T01:15Z",
      "status": {"type": {"id": "2", "name": "STATUS_IN_PROGRESS", "state": "in", "shortDetail": "8:04 - 2nd"}},
      "competitions": [
        {
          "id": "401547440",
          "venue": {"fullName": "GEHA Field at Arrowhead Stadium"},
          "broadcasts": [{"names": ["ESPN"]}],
          "competitors": [
            {
              "id": "12",
              "homeAway": "home",
              "score": "14",
              "team": {"id": "12", "name": "Chiefs", "abbreviation": "KC", "displayName": "Kansas City Chiefs", "logo": "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png", "color": "e31837", "alternateColor": "ffb612"},
              "records": [{"summary": "10-2"}],
              "curatedRank": {"current": 99}
            },
            {
              "id": "2",
              "homeAway": "away",
              "score": "10",
              "team": {"id": "2", "name": "Bills", "abbreviation": "BUF", "displayName": "Buffalo Bills"},
              "curatedRank": {"current": 4}
            }
          ]
        }
      ]
    }
  ]
}`

func newServerClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
	})
	return c, srv
}

func TestFetchScoreboardHappyPath(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	c, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardFixture))
	})

	games, err := c.FetchScoreboard(context.Background(), catalog.LeagueNFL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path := gotPath.Load(); path != "/football/nfl/scoreboard" {
		t.Fatalf("unexpected request path %v", path)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.ID != "401547440" || g.League != catalog.LeagueNFL {
		t.Fatalf("unexpected identity: %+v", g)
	}
	if g.Status != game.StatusInProgress {
		t.Fatalf("expected in-progress status, got %v", g.Status)
	}
	if g.HomeScore == nil || *g.HomeScore != 14 || g.AwayScore == nil || *g.AwayScore != 10 {
		t.Fatalf("unexpected scores: %+v", g)
	}
	if g.HomeTeam.Rank != nil {
		t.Fatalf("expected sentinel rank 99 to map to nil, got %d", *g.HomeTeam.Rank)
	}
	if g.AwayTeam.Rank == nil || *g.AwayTeam.Rank != 4 {
		t.Fatalf("expected away rank 4, got %v", g.AwayTeam.Rank)
	}
	want := time.Date(2025, 12, 5, 1, 15, 0, 0, time.UTC)
	if !g.StartTime.Equal(want) {
		t.Fatalf("expected start time %v, got %v", want, g.StartTime)
	}
}

func TestFetchScoreboardRejectsUnknownLeague(t *testing.T) {
	t.Parallel()

	c := NewClient(ClientConfig{Logger: logging.NewNop()})
	_, err := c.FetchScoreboard(context.Background(), catalog.League("not-a-league"))
	if !crerr.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestFetchScoreboardUpstreamStatus(t *testing.T) {
	t.Parallel()

	c, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := c.FetchScoreboard(context.Background(), catalog.LeagueNHL)
	statusErr, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", statusErr.Code)
	}
}

func TestFetchScoreboardDecodeFailure(t *testing.T) {
	t.Parallel()

	c, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.FetchScoreboard(context.Background(), catalog.LeagueMLB)
	if !crerr.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestFetchScoreboardNetworkFailureIsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(ClientConfig{
		BaseURL: srv.URL,
		Logger:  logging.NewNop(),
	})

	_, err := c.FetchScoreboard(context.Background(), catalog.LeagueNBA)
	if !crerr.Is(err, errTransient) {
		t.Fatalf("expected transient failure, got %v", err)
	}
}

func TestFetchScoreboardCircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := c.FetchScoreboard(context.Background(), catalog.LeagueNFL); err == nil {
			t.Fatalf("expected failure on attempt %d", i+1)
		}
	}

	_, err := c.FetchScoreboard(context.Background(), catalog.LeagueNFL)
	if !crerr.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit rejection, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected rejected request to skip upstream, got %d hits", got)
	}
}

func TestFetchScoreboardCoalescedProbeSettlesBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardFixture))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      20 * time.Millisecond,
			HalfOpenMaxReq:   2,
		},
	})

	if _, err := c.FetchScoreboard(context.Background(), catalog.LeagueNFL); err == nil {
		t.Fatal("expected seeding failure")
	}
	if got := c.breaker.State(); got != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %v", got)
	}
	time.Sleep(30 * time.Millisecond)

	// A burst of callers sharing one half-open probe must neither reject a
	// sharer nor strand a probe slot.
	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.FetchScoreboard(context.Background(), catalog.LeagueNFL)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}

	if _, err := c.FetchScoreboard(context.Background(), catalog.LeagueNFL); err != nil {
		t.Fatalf("follow-up probe: %v", err)
	}
	if got := c.breaker.State(); got != resilience.CircuitStateClosed {
		t.Fatalf("expected breaker closed after probes settle, got %v", got)
	}
}

func TestFetchScoreboardClientErrorDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	c, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	c.circuitEnabled = true

	for i := 0; i < 5; i++ {
		_, err := c.FetchScoreboard(context.Background(), catalog.LeagueWNBA)
		if statusErr, ok := AsStatusError(err); !ok || statusErr.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on attempt %d, got %v", i+1, err)
		}
	}
}
