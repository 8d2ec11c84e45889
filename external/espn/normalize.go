package espn

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
)

// Teams ranked 99 or above are the feed's way of saying "unranked".
const unrankedSentinel = 99

// The feed usually emits dates without seconds ("2025-12-05T01:15Z"), but
// some leagues include seconds or a full RFC 3339 timestamp. All candidates
// are tried in order; everything is treated as UTC.
var startTimeLayouts = []string{
	"2006-01-02T15:04Z",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
}

// normalize converts one scoreboard payload into domain games. It never
// fails: events without exactly one home and one away competitor are
// dropped, every other malformed field degrades to its zero value.
func (c *Client) normalize(ctx context.Context, payload scoreboardResponse, league catalog.League) []game.Game {
	out := make([]game.Game, 0, len(payload.Events))

	for _, event := range payload.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		competition := event.Competitions[0]

		home, away, ok := splitCompetitors(competition.Competitors)
		if !ok {
			c.logger.DebugContext(ctx, "dropping event without home/away pair",
				"league", league.ID(),
				"event_id", event.ID,
			)
			continue
		}

		startTime, parsed := parseStartTime(event.Date)
		if !parsed {
			startTime = c.now().UTC()
			c.logger.WarnContext(ctx, "unparseable event date, defaulting to now",
				"league", league.ID(),
				"event_id", event.ID,
				"date", event.Date,
			)
		}

		g := game.Game{
			ID:           event.ID,
			League:       league,
			HomeTeam:     mapTeam(home),
			AwayTeam:     mapTeam(away),
			HomeScore:    parseScore(home.Score),
			AwayScore:    parseScore(away.Score),
			Status:       mapStatus(event.Status.Type),
			StartTime:    startTime,
			Broadcast:    firstBroadcastName(competition.Broadcasts),
			StatusDetail: event.Status.Type.ShortDetail,
		}
		if competition.Venue != nil {
			g.Venue = competition.Venue.FullName
		}

		out = append(out, g)
	}

	return out
}

// splitCompetitors picks the first competitor flagged home and the first
// flagged away. An event missing either side is not constructible.
func splitCompetitors(competitors []competitor) (home competitor, away competitor, ok bool) {
	var haveHome, haveAway bool
	for _, item := range competitors {
		switch strings.ToLower(strings.TrimSpace(item.HomeAway)) {
		case "home":
			if !haveHome {
				home = item
				haveHome = true
			}
		case "away":
			if !haveAway {
				away = item
				haveAway = true
			}
		}
	}
	return home, away, haveHome && haveAway
}

func mapTeam(item competitor) game.Team {
	t := game.Team{
		ID:             item.Team.ID,
		Name:           item.Team.Name,
		Abbreviation:   item.Team.Abbreviation,
		DisplayName:    item.Team.DisplayName,
		LogoURL:        parseLogoURL(item.Team.Logo),
		Color:          item.Team.Color,
		AlternateColor: item.Team.AlternateColor,
		Rank:           parseRank(item.CuratedRank),
	}
	if len(item.Records) > 0 {
		t.Record = item.Records[0].Summary
	}
	return t
}

func parseLogoURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.String()
}

func parseRank(cr *curatedRank) *int {
	if cr == nil || cr.Current == nil {
		return nil
	}
	rank := *cr.Current
	if rank < 1 || rank >= unrankedSentinel {
		return nil
	}
	return &rank
}

func mapStatus(st statusType) game.Status {
	name := strings.ToLower(st.Name)

	switch st.State {
	case "pre":
		return game.StatusScheduled
	case "in":
		if strings.Contains(name, "halftime") {
			return game.StatusHalftime
		}
		return game.StatusInProgress
	case "post":
		return game.StatusFinal
	}

	switch {
	case strings.Contains(name, "postponed"):
		return game.StatusPostponed
	case strings.Contains(name, "canceled"):
		return game.StatusCanceled
	case strings.Contains(name, "delayed"):
		return game.StatusDelayed
	default:
		return game.StatusUnknown
	}
}

func parseStartTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseScore(raw *string) *int {
	if raw == nil {
		return nil
	}
	score, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	return &score
}

func firstBroadcastName(broadcasts []broadcast) string {
	for _, b := range broadcasts {
		for _, name := range b.Names {
			if name != "" {
				return name
			}
		}
		break
	}
	return ""
}
