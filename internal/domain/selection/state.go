package selection

import (
	"sort"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
)

// State holds the user's sport/league enablement plus the free-text and
// live-only filters. Sports and leagues are co-dependent: the toggle rules
// below keep them consistent, callers never edit the sets directly.
type State struct {
	sports   map[catalog.Sport]struct{}
	leagues  map[catalog.League]struct{}
	LiveOnly bool
	Query    string
}

// NewState returns a state with every sport and league enabled.
func NewState() State {
	return NewStateWithLeagues(catalog.Leagues())
}

// NewStateWithLeagues enables exactly the given leagues and derives sport
// enablement from them. Unknown leagues are ignored.
func NewStateWithLeagues(leagues []catalog.League) State {
	st := State{
		sports:  make(map[catalog.Sport]struct{}),
		leagues: make(map[catalog.League]struct{}),
	}
	for _, sport := range catalog.Sports() {
		st.sports[sport] = struct{}{}
	}
	for _, l := range leagues {
		if l.Valid() {
			st.leagues[l] = struct{}{}
		}
	}
	st.reconcileSports()
	return st
}

// Clone returns an independent copy; the derived snapshot views hand these
// out so readers never alias the service's mutable state.
func (s State) Clone() State {
	out := State{
		sports:   make(map[catalog.Sport]struct{}, len(s.sports)),
		leagues:  make(map[catalog.League]struct{}, len(s.leagues)),
		LiveOnly: s.LiveOnly,
		Query:    s.Query,
	}
	for k := range s.sports {
		out.sports[k] = struct{}{}
	}
	for k := range s.leagues {
		out.leagues[k] = struct{}{}
	}
	return out
}

func (s State) SportEnabled(sport catalog.Sport) bool {
	_, ok := s.sports[sport]
	return ok
}

func (s State) LeagueEnabled(l catalog.League) bool {
	_, ok := s.leagues[l]
	return ok
}

// EnabledLeagues returns the enabled set in catalog display order, which is
// also the persisted serialization order.
func (s State) EnabledLeagues() []catalog.League {
	out := make([]catalog.League, 0, len(s.leagues))
	for _, l := range catalog.Leagues() {
		if _, ok := s.leagues[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s State) EnabledSports() []catalog.Sport {
	out := make([]catalog.Sport, 0, len(s.sports))
	for _, sport := range catalog.Sports() {
		if _, ok := s.sports[sport]; ok {
			out = append(out, sport)
		}
	}
	return out
}

// ToggleSport enables or disables a sport together with all of its member
// leagues.
func (s *State) ToggleSport(sport catalog.Sport) {
	if !sport.Valid() {
		return
	}
	if _, on := s.sports[sport]; on {
		delete(s.sports, sport)
		for _, l := range sport.Leagues() {
			delete(s.leagues, l)
		}
		return
	}
	s.sports[sport] = struct{}{}
	for _, l := range sport.Leagues() {
		s.leagues[l] = struct{}{}
	}
}

// ToggleLeague flips one league and recomputes sport enablement: a sport is
// enabled only when every one of its leagues is enabled, and disabled when
// none are. Partial coverage leaves the sport's flag untouched.
func (s *State) ToggleLeague(l catalog.League) {
	if !l.Valid() {
		return
	}
	if _, on := s.leagues[l]; on {
		delete(s.leagues, l)
	} else {
		s.leagues[l] = struct{}{}
	}
	s.reconcileSports()
}

func (s *State) reconcileSports() {
	if s.sports == nil {
		s.sports = make(map[catalog.Sport]struct{})
	}
	for _, sport := range catalog.Sports() {
		enabled := 0
		for _, l := range sport.Leagues() {
			if _, ok := s.leagues[l]; ok {
				enabled++
			}
		}
		switch {
		case enabled == len(sport.Leagues()):
			s.sports[sport] = struct{}{}
		case enabled == 0:
			delete(s.sports, sport)
		}
	}
}

// SerializeLeagues returns the enabled league IDs as stable strings for
// persistence.
func (s State) SerializeLeagues() []string {
	leagues := s.EnabledLeagues()
	out := make([]string, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, l.ID())
	}
	sort.Strings(out)
	return out
}
