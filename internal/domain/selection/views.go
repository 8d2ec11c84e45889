package selection

import (
	"strings"
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
)

// Filter restricts a snapshot to the state's enabled leagues, then to live
// games when the live-only flag is set, then to a case-insensitive substring
// match against either team's display name or abbreviation. Pure: the same
// inputs always produce an equal slice.
func Filter(games []game.Game, st State) []game.Game {
	query := strings.ToLower(strings.TrimSpace(st.Query))

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if !st.LeagueEnabled(g.League) {
			continue
		}
		if st.LiveOnly && !g.IsLive() {
			continue
		}
		if query != "" && !matchesQuery(g, query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesQuery(g game.Game, query string) bool {
	for _, t := range []game.Team{g.HomeTeam, g.AwayTeam} {
		if strings.Contains(strings.ToLower(t.DisplayName), query) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Abbreviation), query) {
			return true
		}
	}
	return false
}

// Live returns the in-play subset of the snapshot.
func Live(games []game.Game) []game.Game {
	return filterBy(games, game.Game.IsLive)
}

// Upcoming returns games that have not started.
func Upcoming(games []game.Game) []game.Game {
	return filterBy(games, game.Game.IsUpcoming)
}

// Completed returns finished games.
func Completed(games []game.Game) []game.Game {
	return filterBy(games, game.Game.IsCompleted)
}

// StartsOn returns games whose start time falls on the given calendar day in
// loc. Day boundaries follow the local timezone, matching what a viewer
// thinks of as "today".
func StartsOn(games []game.Game, day time.Time, loc *time.Location) []game.Game {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.In(loc).Date()
	return filterBy(games, func(g game.Game) bool {
		gy, gm, gd := g.StartTime.In(loc).Date()
		return gy == y && gm == m && gd == d
	})
}

// GroupByLeague buckets games by league, preserving input order inside each
// bucket.
func GroupByLeague(games []game.Game) map[catalog.League][]game.Game {
	out := make(map[catalog.League][]game.Game)
	for _, g := range games {
		out[g.League] = append(out[g.League], g)
	}
	return out
}

// GroupBySport buckets games by the league's parent sport.
func GroupBySport(games []game.Game) map[catalog.Sport][]game.Game {
	out := make(map[catalog.Sport][]game.Game)
	for _, g := range games {
		sport := g.League.Sport()
		out[sport] = append(out[sport], g)
	}
	return out
}

func filterBy(games []game.Game, keep func(game.Game) bool) []game.Game {
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
