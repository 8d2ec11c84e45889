package httpapi

import (
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/domain/selection"
	"github.com/calebmartin/scorestream/internal/usecase"
)

type scoreboardDTO struct {
	UpdatedAt  string            `json:"updatedAt,omitempty"`
	Refreshing bool              `json:"refreshing"`
	LastError  string            `json:"lastError,omitempty"`
	Failures   map[string]string `json:"failures,omitempty"`
	Games      []gameDTO         `json:"games"`
}

type gameDTO struct {
	ID           string  `json:"id"`
	League       string  `json:"league"`
	Sport        string  `json:"sport"`
	HomeTeam     teamDTO `json:"homeTeam"`
	AwayTeam     teamDTO `json:"awayTeam"`
	HomeScore    *int    `json:"homeScore,omitempty"`
	AwayScore    *int    `json:"awayScore,omitempty"`
	Status       string  `json:"status"`
	StatusLabel  string  `json:"statusLabel"`
	StatusDetail string  `json:"statusDetail,omitempty"`
	StartTime    string  `json:"startTime"`
	Venue        string  `json:"venue,omitempty"`
	Broadcast    string  `json:"broadcast,omitempty"`
	IsLive       bool    `json:"isLive"`
}

type teamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	LogoURL      string `json:"logoUrl,omitempty"`
	Color        string `json:"color"`
	Record       string `json:"record,omitempty"`
	Rank         *int   `json:"rank,omitempty"`
}

type leagueGroupDTO struct {
	League string    `json:"league"`
	Name   string    `json:"name"`
	Sport  string    `json:"sport"`
	Games  []gameDTO `json:"games"`
}

type sportGroupDTO struct {
	Sport string    `json:"sport"`
	Name  string    `json:"name"`
	Icon  string    `json:"icon"`
	Games []gameDTO `json:"games"`
}

type selectionDTO struct {
	Sports   []sportSelectionDTO `json:"sports"`
	LiveOnly bool                `json:"liveOnly"`
	Query    string              `json:"query,omitempty"`
}

type sportSelectionDTO struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Icon    string               `json:"icon"`
	Enabled bool                 `json:"enabled"`
	Leagues []leagueSelectionDTO `json:"leagues"`
}

type leagueSelectionDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func scoreboardToDTO(snapshot usecase.Snapshot, games []game.Game, refreshing bool, lastErr error) scoreboardDTO {
	dto := scoreboardDTO{
		Refreshing: refreshing,
		Games:      gamesToDTO(games),
	}
	if lastErr != nil {
		dto.LastError = lastErr.Error()
	}
	if !snapshot.UpdatedAt.IsZero() {
		dto.UpdatedAt = snapshot.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if len(snapshot.Failures) > 0 {
		dto.Failures = make(map[string]string, len(snapshot.Failures))
		for league, err := range snapshot.Failures {
			dto.Failures[league.ID()] = err.Error()
		}
	}
	return dto
}

func gamesToDTO(games []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(games))
	for _, g := range games {
		out = append(out, gameToDTO(g))
	}
	return out
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		ID:           g.ID,
		League:       g.League.ID(),
		Sport:        g.League.Sport().ID(),
		HomeTeam:     teamToDTO(g.HomeTeam),
		AwayTeam:     teamToDTO(g.AwayTeam),
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
		Status:       string(g.Status),
		StatusLabel:  g.Status.DisplayName(),
		StatusDetail: g.StatusDetail,
		StartTime:    g.StartTime.UTC().Format(time.RFC3339),
		Venue:        g.Venue,
		Broadcast:    g.Broadcast,
		IsLive:       g.IsLive(),
	}
}

func teamToDTO(t game.Team) teamDTO {
	return teamDTO{
		ID:           t.ID,
		Name:         t.Name,
		Abbreviation: t.Abbreviation,
		DisplayName:  t.DisplayName,
		LogoURL:      t.LogoURL,
		Color:        t.DisplayColor(),
		Record:       t.Record,
		Rank:         t.Rank,
	}
}

func selectionToDTO(state selection.State) selectionDTO {
	sports := make([]sportSelectionDTO, 0, len(catalog.Sports()))
	for _, sport := range catalog.Sports() {
		leagues := make([]leagueSelectionDTO, 0, len(sport.Leagues()))
		for _, league := range sport.Leagues() {
			leagues = append(leagues, leagueSelectionDTO{
				ID:      league.ID(),
				Name:    league.DisplayName(),
				Enabled: state.LeagueEnabled(league),
			})
		}
		sports = append(sports, sportSelectionDTO{
			ID:      sport.ID(),
			Name:    sport.DisplayName(),
			Icon:    sport.Icon(),
			Enabled: state.SportEnabled(sport),
			Leagues: leagues,
		})
	}

	return selectionDTO{
		Sports:   sports,
		LiveOnly: state.LiveOnly,
		Query:    state.Query,
	}
}
