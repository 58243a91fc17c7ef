package champselect

import (
	"go.uber.org/zap"

	"github.com/palemoky/autodraft/internal/champion"
)

// State is the only draft state carried from one snapshot to the next.
// It travels by value; transitions return updated copies.
type State struct {
	// BanCursor and PickCursor point at the next candidate to try in the
	// respective preference list. Invariant: 0 <= cursor <= list length,
	// rewound to 0 whenever a turn's scan ends.
	BanCursor  int
	PickCursor int

	// Banning and Picking are set while a turn scan has an attempt in
	// flight and cleared when the turn resolves or the list runs out.
	Banning bool
	Picking bool

	// Prepicked blocks repeat tentative picks within one planning phase.
	Prepicked bool

	// InGame is terminal: once set, every later snapshot resolves to
	// nothing.
	InGame bool
}

// TurnCompleted records a successful ban or pick submission. The turn flag
// clears and that list's cursor rewinds so a later turn rescans from the
// top.
func (s State) TurnCompleted(kind ActionKind) State {
	switch kind {
	case KindBan:
		s.Banning = false
		s.BanCursor = 0
	case KindPick:
		s.Picking = false
		s.PickCursor = 0
	}
	return s
}

// PrepickDone marks the tentative pick as submitted for this planning phase.
func (s State) PrepickDone() State {
	s.Prepicked = true
	return s
}

// GameStarted latches the terminal in-game flag.
func (s State) GameStarted() State {
	s.InGame = true
	return s
}

// Resolver turns a session snapshot into at most one submission intent.
// Resolve is pure: the same facts and state always yield the same intent
// and next state, and neither input is mutated. The driving loop owns the
// retry cycle, calling Resolve again on the same facts after a failed
// submission so the scan picks up past the candidate that failed.
type Resolver struct {
	registry *champion.Registry
	bans     PreferenceList
	picks    PreferenceList
	log      *zap.Logger
}

// NewResolver wires a resolver over the champion registry and the two
// preference lists.
func NewResolver(registry *champion.Registry, bans, picks PreferenceList, log *zap.Logger) *Resolver {
	return &Resolver{registry: registry, bans: bans, picks: picks, log: log}
}

// Resolve inspects one snapshot and decides the next submission, if any.
func (r *Resolver) Resolve(facts DraftFacts, st State) (*SubmissionIntent, State) {
	if st.InGame {
		return nil, st
	}

	// Leaving the planning phase reopens the tentative pick for the next
	// draft, e.g. after a dodge sends everyone back to a fresh lobby.
	if facts.Phase != PhasePlanning {
		st.Prepicked = false
	}

	current := facts.CurrentAction
	if current == nil {
		return nil, st
	}

	switch {
	case facts.Phase == PhaseBanPick && current.Kind == KindBan:
		return r.scanBans(current.ID, st)
	case facts.Phase == PhaseBanPick && current.Kind == KindPick:
		return r.scanPicks(current.ID, facts.Banned, st)
	case facts.Phase == PhasePlanning && !st.Prepicked:
		return r.prepick(current.ID, st)
	}

	return nil, st
}

// scanBans walks the ban list from the cursor. Names the registry does not
// know advance the cursor without producing an intent; the first resolvable
// candidate becomes the intent with the cursor left just past it.
func (r *Resolver) scanBans(actionID int64, st State) (*SubmissionIntent, State) {
	for st.BanCursor < r.bans.Len() {
		name := r.bans.At(st.BanCursor)
		st.BanCursor++

		id, ok := r.registry.Lookup(name)
		if !ok {
			r.log.Warn("unknown champion in ban list, skipping", zap.String("name", name))
			continue
		}

		st.Banning = true
		r.log.Info("attempting ban", zap.String("name", name), zap.Int("champion_id", int(id)))
		return &SubmissionIntent{ActionID: actionID, ChampionID: id, Completed: true}, st
	}

	// Every candidate tried or unknown; give up until the next turn.
	if st.Banning {
		r.log.Warn("ban list exhausted, leaving the turn to the client timer")
	}
	st.BanCursor = 0
	st.Banning = false
	return nil, st
}

// scanPicks mirrors scanBans and additionally skips candidates that are
// already banned, exactly as if their names were unknown.
func (r *Resolver) scanPicks(actionID int64, banned map[champion.ID]bool, st State) (*SubmissionIntent, State) {
	for st.PickCursor < r.picks.Len() {
		name := r.picks.At(st.PickCursor)
		st.PickCursor++

		id, ok := r.registry.Lookup(name)
		if !ok {
			r.log.Warn("unknown champion in pick list, skipping", zap.String("name", name))
			continue
		}
		if banned[id] {
			r.log.Info("pick candidate is banned, skipping", zap.String("name", name))
			continue
		}

		st.Picking = true
		r.log.Info("attempting pick", zap.String("name", name), zap.Int("champion_id", int(id)))
		return &SubmissionIntent{ActionID: actionID, ChampionID: id, Completed: true}, st
	}

	if st.Picking {
		r.log.Warn("pick list exhausted, leaving the turn to the client timer")
	}
	st.PickCursor = 0
	st.Picking = false
	return nil, st
}

// prepick proposes the first resolvable pick candidate without completing
// the action, so teammates see the hover during planning. Cursors stay
// untouched; a failed pre-pick is simply retried on the next planning
// snapshot.
func (r *Resolver) prepick(actionID int64, st State) (*SubmissionIntent, State) {
	for i := 0; i < r.picks.Len(); i++ {
		name := r.picks.At(i)
		id, ok := r.registry.Lookup(name)
		if !ok {
			continue
		}
		r.log.Info("attempting pre-pick", zap.String("name", name), zap.Int("champion_id", int(id)))
		return &SubmissionIntent{ActionID: actionID, ChampionID: id, Completed: false}, st
	}
	return nil, st
}
