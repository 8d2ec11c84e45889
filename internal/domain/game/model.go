package game

import (
	"strconv"
	"strings"
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
)

// Status classifies a game's lifecycle. Unrecognized upstream values always
// map to StatusUnknown rather than failing.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusHalftime   Status = "halftime"
	StatusFinal      Status = "final"
	StatusPostponed  Status = "postponed"
	StatusCanceled   Status = "canceled"
	StatusDelayed    Status = "delayed"
	StatusUnknown    Status = "unknown"
)

func (s Status) DisplayName() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusInProgress:
		return "Live"
	case StatusHalftime:
		return "Halftime"
	case StatusFinal:
		return "Final"
	case StatusPostponed:
		return "Postponed"
	case StatusCanceled:
		return "Canceled"
	case StatusDelayed:
		return "Delayed"
	default:
		return "Unknown"
	}
}

// IsActive reports whether the status counts as in play. Delayed games are
// active: they started and are expected to resume.
func (s Status) IsActive() bool {
	switch s {
	case StatusInProgress, StatusHalftime, StatusDelayed:
		return true
	default:
		return false
	}
}

const defaultTeamColor = "666666"

// Team is one side of a game as normalized from an upstream competitor.
type Team struct {
	ID             string
	Name           string
	Abbreviation   string
	DisplayName    string
	LogoURL        string
	Color          string
	AlternateColor string
	Record         string
	Rank           *int
}

func (t Team) IsRanked() bool {
	return t.Rank != nil
}

func (t Team) PrimaryColor() string {
	if t.Color == "" {
		return defaultTeamColor
	}
	return t.Color
}

// DisplayColor returns a hex color suitable for rendering on dark surfaces:
// a near-black primary falls back to the alternate color.
func (t Team) DisplayColor() string {
	primary := strings.ToLower(t.PrimaryColor())
	if !isColorTooDark(primary) {
		return primary
	}
	if t.AlternateColor != "" {
		return t.AlternateColor
	}
	return defaultTeamColor
}

func isColorTooDark(hex string) bool {
	sanitized := strings.TrimSpace(strings.ReplaceAll(hex, "#", ""))
	if len(sanitized) != 6 {
		return false
	}
	v, err := strconv.ParseUint(sanitized, 16, 32)
	if err != nil {
		return false
	}

	r := float64((v>>16)&0xFF) / 255.0
	g := float64((v>>8)&0xFF) / 255.0
	b := float64(v&0xFF) / 255.0

	// Relative luminance, ITU-R BT.601 coefficients.
	return 0.299*r+0.587*g+0.114*b < 0.25
}

// Game is one normalized scoreboard event. Scores are nil until the contest
// produces them.
type Game struct {
	ID           string
	League       catalog.League
	HomeTeam     Team
	AwayTeam     Team
	HomeScore    *int
	AwayScore    *int
	Status       Status
	StartTime    time.Time
	Venue        string
	Broadcast    string
	StatusDetail string
}

func (g Game) IsLive() bool {
	return g.Status.IsActive()
}

func (g Game) IsUpcoming() bool {
	return g.Status == StatusScheduled
}

func (g Game) IsCompleted() bool {
	return g.Status == StatusFinal
}
