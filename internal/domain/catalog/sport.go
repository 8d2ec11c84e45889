package catalog

// Sport is a top-level sport grouping one or more leagues.
type Sport string

const (
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportHockey     Sport = "hockey"
	SportSoccer     Sport = "soccer"
	SportRacing     Sport = "racing"
	SportTennis     Sport = "tennis"
	SportGolf       Sport = "golf"
)

type sportInfo struct {
	displayName string
	icon        string
	leagues     []League
}

var sportOrder = []Sport{
	SportFootball,
	SportBasketball,
	SportBaseball,
	SportHockey,
	SportSoccer,
	SportRacing,
	SportTennis,
	SportGolf,
}

var sportTable = map[Sport]sportInfo{
	SportFootball:   {displayName: "Football", icon: "football", leagues: []League{LeagueNFL, LeagueCollegeFootball}},
	SportBasketball: {displayName: "Basketball", icon: "basketball", leagues: []League{LeagueNBA, LeagueWNBA, LeagueCollegeBasketball}},
	SportBaseball:   {displayName: "Baseball", icon: "baseball", leagues: []League{LeagueMLB}},
	SportHockey:     {displayName: "Hockey", icon: "hockey-puck", leagues: []League{LeagueNHL}},
	SportSoccer:     {displayName: "Soccer", icon: "soccer-ball", leagues: []League{LeaguePremierLeague, LeagueLaLiga, LeagueMLS, LeagueChampionsLeague}},
	SportRacing:     {displayName: "Racing", icon: "flag-checkered", leagues: []League{LeagueF1}},
	SportTennis:     {displayName: "Tennis", icon: "tennis-racket", leagues: []League{LeagueATP, LeagueWTA}},
	SportGolf:       {displayName: "Golf", icon: "golf", leagues: []League{LeaguePGA}},
}

// Sports returns every supported sport in display order.
func Sports() []Sport {
	out := make([]Sport, len(sportOrder))
	copy(out, sportOrder)
	return out
}

// ParseSport resolves a sport identifier string.
func ParseSport(id string) (Sport, bool) {
	s := Sport(id)
	_, ok := sportTable[s]
	if !ok {
		return "", false
	}
	return s, true
}

func (s Sport) ID() string {
	return string(s)
}

func (s Sport) DisplayName() string {
	return sportTable[s].displayName
}

func (s Sport) Icon() string {
	return sportTable[s].icon
}

// Leagues returns the sport's member leagues in display order.
func (s Sport) Leagues() []League {
	src := sportTable[s].leagues
	out := make([]League, len(src))
	copy(out, src)
	return out
}

func (s Sport) Valid() bool {
	_, ok := sportTable[s]
	return ok
}
