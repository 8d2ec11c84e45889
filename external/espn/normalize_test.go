package espn

import (
	"context"
	"testing"
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/platform/logging"
)

func newTestClient(now time.Time) *Client {
	c := NewClient(ClientConfig{Logger: logging.NewNop()})
	c.now = func() time.Time { return now }
	return c
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func makeCompetitor(side, teamID string) competitor {
	return competitor{
		ID:       teamID,
		HomeAway: side,
		Score:    strPtr("0"),
		Team: competitorTeam{
			ID:           teamID,
			Name:         "Team " + teamID,
			Abbreviation: "T" + teamID,
			DisplayName:  "Team " + teamID,
		},
	}
}

func makeEvent(id string, competitors ...competitor) scoreboardEvent {
	return scoreboardEvent{
		ID:   id,
		Date: "2025-12-05T01:15Z",
		Status: eventStatus{
			Type: statusType{State: "pre", Name: "STATUS_SCHEDULED"},
		},
		Competitions: []eventCompetition{{
			ID:          "c-" + id,
			Competitors: competitors,
		}},
	}
}

func TestNormalizeDropsEventsWithoutHomeAwayPair(t *testing.T) {
	t.Parallel()

	c := newTestClient(time.Now())
	payload := scoreboardResponse{Events: []scoreboardEvent{
		makeEvent("both", makeCompetitor("home", "1"), makeCompetitor("away", "2")),
		makeEvent("home-only", makeCompetitor("home", "3")),
		makeEvent("two-homes", makeCompetitor("home", "4"), makeCompetitor("home", "5")),
		makeEvent("no-competitions"),
	}}
	payload.Events[3].Competitions = nil

	games := c.normalize(context.Background(), payload, catalog.LeagueNFL)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].ID != "both" {
		t.Fatalf("expected surviving event %q, got %q", "both", games[0].ID)
	}
	if games[0].HomeTeam.ID != "1" || games[0].AwayTeam.ID != "2" {
		t.Fatalf("home/away mismatch: %+v", games[0])
	}
	if games[0].League != catalog.LeagueNFL {
		t.Fatalf("expected league tag %v, got %v", catalog.LeagueNFL, games[0].League)
	}
}

func TestNormalizeHomeAwayCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := newTestClient(time.Now())
	payload := scoreboardResponse{Events: []scoreboardEvent{
		makeEvent("mixed", makeCompetitor("HOME", "1"), makeCompetitor("Away", "2")),
	}}

	games := c.normalize(context.Background(), payload, catalog.LeagueNBA)
	if len(games) != 1 {
		t.Fatalf("expected mixed-case sides to normalize, got %d games", len(games))
	}
}

func TestParseRankSentinel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *curatedRank
		want *int
	}{
		{"nil rank block", nil, nil},
		{"nil current", &curatedRank{}, nil},
		{"ranked", &curatedRank{Current: intPtr(7)}, intPtr(7)},
		{"lowest ranked", &curatedRank{Current: intPtr(1)}, intPtr(1)},
		{"highest ranked", &curatedRank{Current: intPtr(98)}, intPtr(98)},
		{"unranked sentinel", &curatedRank{Current: intPtr(99)}, nil},
		{"above sentinel", &curatedRank{Current: intPtr(150)}, nil},
		{"zero", &curatedRank{Current: intPtr(0)}, nil},
		{"negative", &curatedRank{Current: intPtr(-3)}, nil},
	}

	for _, tc := range cases {
		got := parseRank(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%s: expected nil, got %d", tc.name, *got)
		case tc.want != nil && got == nil:
			t.Errorf("%s: expected %d, got nil", tc.name, *tc.want)
		case tc.want != nil && got != nil && *tc.want != *got:
			t.Errorf("%s: expected %d, got %d", tc.name, *tc.want, *got)
		}
	}
}

func TestMapStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		state string
		name  string
		want  game.Status
	}{
		{"pre", "STATUS_SCHEDULED", game.StatusScheduled},
		{"in", "STATUS_IN_PROGRESS", game.StatusInProgress},
		{"in", "STATUS_HALFTIME", game.StatusHalftime},
		{"in", "Halftime", game.StatusHalftime},
		{"post", "STATUS_FINAL", game.StatusFinal},
		{"", "STATUS_POSTPONED", game.StatusPostponed},
		{"", "STATUS_CANCELED", game.StatusCanceled},
		{"", "STATUS_DELAYED", game.StatusDelayed},
		{"", "STATUS_RAIN_DELAYED", game.StatusDelayed},
		{"", "STATUS_SOMETHING_NEW", game.StatusUnknown},
		{"", "", game.StatusUnknown},
	}

	for _, tc := range cases {
		got := mapStatus(statusType{State: tc.state, Name: tc.name})
		if got != tc.want {
			t.Errorf("state=%q name=%q: expected %v, got %v", tc.state, tc.name, tc.want, got)
		}
	}
}

func TestParseStartTimeLayouts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-12-05T01:15Z", time.Date(2025, 12, 5, 1, 15, 0, 0, time.UTC)},
		{"2025-12-05T01:15:30Z", time.Date(2025, 12, 5, 1, 15, 30, 0, time.UTC)},
		{"2025-12-05T01:15:30+05:00", time.Date(2025, 12, 4, 20, 15, 30, 0, time.UTC)},
		{"2025-12-05T01:15:30.123456789Z", time.Date(2025, 12, 5, 1, 15, 30, 123456789, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := parseStartTime(tc.raw)
		if !ok {
			t.Errorf("%q: expected parse to succeed", tc.raw)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
		if got.Location() != time.UTC {
			t.Errorf("%q: expected UTC result, got %v", tc.raw, got.Location())
		}
	}

	for _, raw := range []string{"", "  ", "next tuesday", "2025-12-05"} {
		if _, ok := parseStartTime(raw); ok {
			t.Errorf("%q: expected parse to fail", raw)
		}
	}
}

func TestNormalizeFallsBackToNowForBadDates(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	c := newTestClient(fixed)

	event := makeEvent("bad-date", makeCompetitor("home", "1"), makeCompetitor("away", "2"))
	event.Date = "not-a-date"

	games := c.normalize(context.Background(), scoreboardResponse{Events: []scoreboardEvent{event}}, catalog.LeagueMLB)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if !games[0].StartTime.Equal(fixed) {
		t.Fatalf("expected fallback start time %v, got %v", fixed, games[0].StartTime)
	}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	if got := parseScore(nil); got != nil {
		t.Fatalf("expected nil score for missing field, got %d", *got)
	}
	if got := parseScore(strPtr("abc")); got != nil {
		t.Fatalf("expected nil score for non-numeric field, got %d", *got)
	}
	if got := parseScore(strPtr(" 24 ")); got == nil || *got != 24 {
		t.Fatalf("expected 24, got %v", got)
	}
	if got := parseScore(strPtr("0")); got == nil || *got != 0 {
		t.Fatalf("expected explicit zero to survive, got %v", got)
	}
}

func TestParseLogoURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"https://a.espncdn.com/i/teamlogos/nfl/500/kc.png", "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png"},
		{"", ""},
		{"   ", ""},
		{"not a url", ""},
		{"/relative/logo.png", ""},
	}
	for _, tc := range cases {
		if got := parseLogoURL(tc.raw); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestNormalizeCarriesVenueBroadcastAndDetail(t *testing.T) {
	t.Parallel()

	c := newTestClient(time.Now())

	event := makeEvent("full", makeCompetitor("home", "1"), makeCompetitor("away", "2"))
	event.Status.Type.ShortDetail = "7:15 - 3rd"
	event.Competitions[0].Venue = &competitionVenue{FullName: "Arrowhead Stadium"}
	event.Competitions[0].Broadcasts = []broadcast{{Names: []string{"", "ESPN", "ABC"}}}
	event.Competitions[0].Competitors[0].Records = []teamRecord{{Summary: "10-2"}}

	games := c.normalize(context.Background(), scoreboardResponse{Events: []scoreboardEvent{event}}, catalog.LeagueNFL)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	g := games[0]
	if g.Venue != "Arrowhead Stadium" {
		t.Errorf("expected venue, got %q", g.Venue)
	}
	if g.Broadcast != "ESPN" {
		t.Errorf("expected first non-empty broadcast name, got %q", g.Broadcast)
	}
	if g.StatusDetail != "7:15 - 3rd" {
		t.Errorf("expected status detail, got %q", g.StatusDetail)
	}
	if g.HomeTeam.Record != "10-2" {
		t.Errorf("expected home record, got %q", g.HomeTeam.Record)
	}
}
