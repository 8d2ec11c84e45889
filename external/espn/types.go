package espn

// Wire types mirroring the site-API scoreboard payload. The schema is
// optional-field heavy; pointers mark the fields the feed actually omits.

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Date         string             `json:"date"`
	Status       eventStatus        `json:"status"`
	Competitions []eventCompetition `json:"competitions"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type eventCompetition struct {
	ID          string            `json:"id"`
	Venue       *competitionVenue `json:"venue"`
	Competitors []competitor      `json:"competitors"`
	Broadcasts  []broadcast       `json:"broadcasts"`
}

type competitionVenue struct {
	FullName string `json:"fullName"`
	City     string `json:"city"`
	State    string `json:"state"`
}

type competitor struct {
	ID          string        `json:"id"`
	HomeAway    string        `json:"homeAway"`
	Score       *string       `json:"score"`
	Team        competitorTeam `json:"team"`
	Records     []teamRecord  `json:"records"`
	CuratedRank *curatedRank  `json:"curatedRank"`
}

type competitorTeam struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	DisplayName    string `json:"displayName"`
	Logo           string `json:"logo"`
	Color          string `json:"color"`
	AlternateColor string `json:"alternateColor"`
}

type teamRecord struct {
	Summary string `json:"summary"`
}

type curatedRank struct {
	Current *int `json:"current"`
}

type broadcast struct {
	Names []string `json:"names"`
}
