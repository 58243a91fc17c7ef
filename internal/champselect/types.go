package champselect

import "github.com/palemoky/autodraft/internal/champion"

// Session mirrors the /lol-champ-select/v1/session payload. Only the fields
// the bot reads are declared; the client sends far more.
type Session struct {
	Timer             Timer             `json:"timer"`
	LocalPlayerCellID *int64            `json:"localPlayerCellId"`
	MyTeam            []TeamMember      `json:"myTeam"`
	Actions           [][]SessionAction `json:"actions"`
}

// Timer carries the draft phase the client is currently counting down.
type Timer struct {
	Phase string `json:"phase"`
}

// TeamMember is one ally slot in the session.
type TeamMember struct {
	CellID           int64  `json:"cellId"`
	AssignedPosition string `json:"assignedPosition"`
}

// SessionAction is one raw draft action as the client reports it.
type SessionAction struct {
	ID           int64  `json:"id"`
	ActorCellID  int64  `json:"actorCellId"`
	ChampionID   int64  `json:"championId"`
	Type         string `json:"type"`
	Completed    bool   `json:"completed"`
	IsInProgress bool   `json:"isInProgress"`
}

// Phase is the draft timer phase, normalized from the wire string.
type Phase int

const (
	PhaseOther Phase = iota
	PhasePlanning
	PhaseBanPick
	PhaseFinalization
)

var phaseNames = map[Phase]string{
	PhaseOther:        "other",
	PhasePlanning:     "planning",
	PhaseBanPick:      "ban_pick",
	PhaseFinalization: "finalization",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "other"
}

// ActionKind classifies a draft action.
type ActionKind int

const (
	KindOther ActionKind = iota
	KindBan
	KindPick
)

var kindNames = map[ActionKind]string{
	KindOther: "other",
	KindBan:   "ban",
	KindPick:  "pick",
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// Action is one normalized draft action.
type Action struct {
	ID          int64
	Kind        ActionKind
	ActorCellID int64
	ChampionID  champion.ID
	Completed   bool
	InProgress  bool
}

// DraftFacts is everything the resolver needs from one session snapshot.
// Derived fresh per snapshot and never mutated afterwards.
type DraftFacts struct {
	Phase            Phase
	LocalCellID      int64
	Assigned         bool
	AssignedPosition string

	// CurrentAction is the local player's in-progress action, nil when it
	// is not our turn.
	CurrentAction *Action

	// Banned holds the champion ids of every completed ban on either team.
	Banned map[champion.ID]bool
}

// SubmissionIntent is one decision the engine should push to the client.
// Completed false leaves the action tentative (a pre-pick).
type SubmissionIntent struct {
	ActionID   int64
	ChampionID champion.ID
	Completed  bool
}
