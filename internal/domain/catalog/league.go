package catalog

// League identifies one upstream scoreboard feed. The identifier doubles as
// the persisted form, so values must stay stable across releases.
type League string

const (
	LeagueNFL               League = "nfl"
	LeagueCollegeFootball   League = "college-football"
	LeagueNBA               League = "nba"
	LeagueWNBA              League = "wnba"
	LeagueCollegeBasketball League = "mens-college-basketball"
	LeagueMLB               League = "mlb"
	LeagueNHL               League = "nhl"
	LeaguePremierLeague     League = "eng.1"
	LeagueLaLiga            League = "esp.1"
	LeagueMLS               League = "usa.1"
	LeagueChampionsLeague   League = "uefa.champions"
	LeagueF1                League = "f1"
	LeagueATP               League = "atp"
	LeagueWTA               League = "wta"
	LeaguePGA               League = "pga"
)

type leagueInfo struct {
	sport         Sport
	displayName   string
	sportSegment  string
	leagueSegment string
}

var leagueOrder = []League{
	LeagueNFL,
	LeagueCollegeFootball,
	LeagueNBA,
	LeagueWNBA,
	LeagueCollegeBasketball,
	LeagueMLB,
	LeagueNHL,
	LeaguePremierLeague,
	LeagueLaLiga,
	LeagueMLS,
	LeagueChampionsLeague,
	LeagueF1,
	LeagueATP,
	LeagueWTA,
	LeaguePGA,
}

var leagueTable = map[League]leagueInfo{
	LeagueNFL:               {sport: SportFootball, displayName: "NFL", sportSegment: "football", leagueSegment: "nfl"},
	LeagueCollegeFootball:   {sport: SportFootball, displayName: "College Football", sportSegment: "football", leagueSegment: "college-football"},
	LeagueNBA:               {sport: SportBasketball, displayName: "NBA", sportSegment: "basketball", leagueSegment: "nba"},
	LeagueWNBA:              {sport: SportBasketball, displayName: "WNBA", sportSegment: "basketball", leagueSegment: "wnba"},
	LeagueCollegeBasketball: {sport: SportBasketball, displayName: "College Basketball", sportSegment: "basketball", leagueSegment: "mens-college-basketball"},
	LeagueMLB:               {sport: SportBaseball, displayName: "MLB", sportSegment: "baseball", leagueSegment: "mlb"},
	LeagueNHL:               {sport: SportHockey, displayName: "NHL", sportSegment: "hockey", leagueSegment: "nhl"},
	LeaguePremierLeague:     {sport: SportSoccer, displayName: "Premier League", sportSegment: "soccer", leagueSegment: "eng.1"},
	LeagueLaLiga:            {sport: SportSoccer, displayName: "La Liga", sportSegment: "soccer", leagueSegment: "esp.1"},
	LeagueMLS:               {sport: SportSoccer, displayName: "MLS", sportSegment: "soccer", leagueSegment: "usa.1"},
	LeagueChampionsLeague:   {sport: SportSoccer, displayName: "Champions League", sportSegment: "soccer", leagueSegment: "uefa.champions"},
	LeagueF1:                {sport: SportRacing, displayName: "Formula 1", sportSegment: "racing", leagueSegment: "f1"},
	LeagueATP:               {sport: SportTennis, displayName: "ATP Tour", sportSegment: "tennis", leagueSegment: "atp"},
	LeagueWTA:               {sport: SportTennis, displayName: "WTA Tour", sportSegment: "tennis", leagueSegment: "wta"},
	LeaguePGA:               {sport: SportGolf, displayName: "PGA Tour", sportSegment: "golf", leagueSegment: "pga"},
}

// Leagues returns every supported league in display order.
func Leagues() []League {
	out := make([]League, len(leagueOrder))
	copy(out, leagueOrder)
	return out
}

// ParseLeague resolves a league identifier string.
func ParseLeague(id string) (League, bool) {
	l := League(id)
	_, ok := leagueTable[l]
	if !ok {
		return "", false
	}
	return l, true
}

func (l League) ID() string {
	return string(l)
}

func (l League) Sport() Sport {
	return leagueTable[l].sport
}

func (l League) DisplayName() string {
	return leagueTable[l].displayName
}

// SportSegment is the sport path segment of the upstream scoreboard URL.
func (l League) SportSegment() string {
	return leagueTable[l].sportSegment
}

// LeagueSegment is the league path segment of the upstream scoreboard URL.
func (l League) LeagueSegment() string {
	return leagueTable[l].leagueSegment
}

func (l League) Valid() bool {
	_, ok := leagueTable[l]
	return ok
}
