package champselect

import (
	"github.com/palemoky/autodraft/internal/apperrors"
	"github.com/palemoky/autodraft/internal/champion"
)

// Draft phases as the client spells them on the wire.
const (
	wirePhasePlanning     = "PLANNING"
	wirePhaseBanPick      = "BAN_PICK"
	wirePhaseFinalization = "FINALIZATION"
)

// Action types as the client spells them on the wire.
const (
	wireActionBan  = "ban"
	wireActionPick = "pick"
)

func parsePhase(s string) Phase {
	switch s {
	case wirePhasePlanning:
		return PhasePlanning
	case wirePhaseBanPick:
		return PhaseBanPick
	case wirePhaseFinalization:
		return PhaseFinalization
	default:
		return PhaseOther
	}
}

func parseKind(s string) ActionKind {
	switch s {
	case wireActionBan:
		return KindBan
	case wireActionPick:
		return KindPick
	default:
		return KindOther
	}
}

// Interpret reduces one session snapshot to the facts the resolver needs.
// Missing phases or action arrays degrade to zero values, but a session
// without a local player cell id cannot be acted on at all and returns
// apperrors.ErrNoLocalActor.
func Interpret(sess Session) (DraftFacts, error) {
	if sess.LocalPlayerCellID == nil {
		return DraftFacts{}, apperrors.ErrNoLocalActor
	}
	local := *sess.LocalPlayerCellID

	facts := DraftFacts{
		Phase:       parsePhase(sess.Timer.Phase),
		LocalCellID: local,
		Banned:      make(map[champion.ID]bool),
	}

	for _, member := range sess.MyTeam {
		if member.CellID == local {
			facts.Assigned = true
			facts.AssignedPosition = member.AssignedPosition
			break
		}
	}

	for _, group := range sess.Actions {
		for _, raw := range group {
			action := Action{
				ID:          raw.ID,
				Kind:        parseKind(raw.Type),
				ActorCellID: raw.ActorCellID,
				ChampionID:  champion.ID(raw.ChampionID),
				Completed:   raw.Completed,
				InProgress:  raw.IsInProgress,
			}
			if action.Kind == KindBan && action.Completed && action.ChampionID > 0 {
				facts.Banned[action.ChampionID] = true
			}
			if action.ActorCellID == local && action.InProgress && facts.CurrentAction == nil {
				current := action
				facts.CurrentAction = &current
			}
		}
	}

	return facts, nil
}
