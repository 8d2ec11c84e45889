package catalog

import "testing"

func TestLeagueTaxonomyIsExhaustive(t *testing.T) {
	t.Parallel()

	if got := len(Leagues()); got != 15 {
		t.Fatalf("unexpected league count: got=%d want=15", got)
	}
	if got := len(Sports()); got != 8 {
		t.Fatalf("unexpected sport count: got=%d want=8", got)
	}

	seen := make(map[League]Sport)
	for _, sport := range Sports() {
		for _, l := range sport.Leagues() {
			if owner, dup := seen[l]; dup {
				t.Fatalf("league %s belongs to both %s and %s", l, owner, sport)
			}
			seen[l] = sport
			if l.Sport() != sport {
				t.Fatalf("league %s reports sport %s, catalog says %s", l, l.Sport(), sport)
			}
		}
	}
	if len(seen) != len(Leagues()) {
		t.Fatalf("sport membership covers %d leagues, catalog has %d", len(seen), len(Leagues()))
	}
}

func TestLeagueRoutingSegments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		league        League
		sportSegment  string
		leagueSegment string
	}{
		{LeagueNFL, "football", "nfl"},
		{LeagueCollegeBasketball, "basketball", "mens-college-basketball"},
		{LeaguePremierLeague, "soccer", "eng.1"},
		{LeagueChampionsLeague, "soccer", "uefa.champions"},
		{LeaguePGA, "golf", "pga"},
	}
	for _, tc := range cases {
		if got := tc.league.SportSegment(); got != tc.sportSegment {
			t.Fatalf("%s sport segment: got=%s want=%s", tc.league, got, tc.sportSegment)
		}
		if got := tc.league.LeagueSegment(); got != tc.leagueSegment {
			t.Fatalf("%s league segment: got=%s want=%s", tc.league, got, tc.leagueSegment)
		}
	}

	for _, l := range Leagues() {
		if l.SportSegment() == "" || l.LeagueSegment() == "" {
			t.Fatalf("league %s has empty routing segments", l)
		}
		if l.DisplayName() == "" {
			t.Fatalf("league %s has empty display name", l)
		}
	}
}

func TestParseLeague(t *testing.T) {
	t.Parallel()

	for _, l := range Leagues() {
		parsed, ok := ParseLeague(l.ID())
		if !ok || parsed != l {
			t.Fatalf("round trip failed for %s", l)
		}
	}

	if _, ok := ParseLeague("curling"); ok {
		t.Fatalf("expected unknown league to fail parsing")
	}
	if _, ok := ParseSport("esports"); ok {
		t.Fatalf("expected unknown sport to fail parsing")
	}
}
