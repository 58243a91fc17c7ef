package champselect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/autodraft/internal/apperrors"
	"github.com/palemoky/autodraft/internal/champion"
)

// sessionFixture is a trimmed real-world session payload: one completed
// enemy ban, our own ban turn in progress, an unrelated pick slot.
const sessionFixture = `{
	"timer": {"phase": "BAN_PICK"},
	"localPlayerCellId": 2,
	"myTeam": [
		{"cellId": 0, "assignedPosition": "top"},
		{"cellId": 2, "assignedPosition": "middle"}
	],
	"actions": [
		[
			{"id": 1, "actorCellId": 0, "championId": 86, "type": "ban", "completed": true, "isInProgress": false},
			{"id": 2, "actorCellId": 2, "championId": 0, "type": "ban", "completed": false, "isInProgress": true}
		],
		[
			{"id": 10, "actorCellId": 3, "championId": 0, "type": "pick", "completed": false, "isInProgress": false}
		]
	]
}`

func TestInterpret_FullSession(t *testing.T) {
	t.Parallel()

	var sess Session
	require.NoError(t, json.Unmarshal([]byte(sessionFixture), &sess))

	facts, err := Interpret(sess)
	require.NoError(t, err)

	assert.Equal(t, PhaseBanPick, facts.Phase)
	assert.Equal(t, int64(2), facts.LocalCellID)
	assert.True(t, facts.Assigned)
	assert.Equal(t, "middle", facts.AssignedPosition)

	require.NotNil(t, facts.CurrentAction)
	assert.Equal(t, int64(2), facts.CurrentAction.ID)
	assert.Equal(t, KindBan, facts.CurrentAction.Kind)

	// Only the completed ban counts; the in-progress one has no champion yet.
	assert.Len(t, facts.Banned, 1)
	assert.True(t, facts.Banned[champion.ID(86)])
}

func TestInterpret_MissingLocalCell(t *testing.T) {
	t.Parallel()

	var sess Session
	require.NoError(t, json.Unmarshal([]byte(`{"timer": {"phase": "PLANNING"}}`), &sess))

	_, err := Interpret(sess)
	assert.ErrorIs(t, err, apperrors.ErrNoLocalActor)
}

func TestInterpret_CellZeroIsValid(t *testing.T) {
	t.Parallel()

	var sess Session
	require.NoError(t, json.Unmarshal([]byte(`{"localPlayerCellId": 0}`), &sess))

	facts, err := Interpret(sess)
	require.NoError(t, err)
	assert.Equal(t, int64(0), facts.LocalCellID)
}

func TestInterpret_DegradesOnSparseSession(t *testing.T) {
	t.Parallel()

	cell := int64(4)
	facts, err := Interpret(Session{
		Timer:             Timer{Phase: "GAME_STARTING"},
		LocalPlayerCellID: &cell,
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseOther, facts.Phase)
	assert.False(t, facts.Assigned)
	assert.Nil(t, facts.CurrentAction)
	assert.Empty(t, facts.Banned)
}

func TestInterpret_FirstInProgressActionWins(t *testing.T) {
	t.Parallel()

	cell := int64(1)
	facts, err := Interpret(Session{
		Timer:             Timer{Phase: "BAN_PICK"},
		LocalPlayerCellID: &cell,
		Actions: [][]SessionAction{
			{
				{ID: 5, ActorCellID: 1, Type: "ban", IsInProgress: true},
				{ID: 6, ActorCellID: 1, Type: "pick", IsInProgress: true},
			},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, facts.CurrentAction)
	assert.Equal(t, int64(5), facts.CurrentAction.ID)
}

func TestParsePhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wire string
		want Phase
	}{
		{"PLANNING", PhasePlanning},
		{"BAN_PICK", PhaseBanPick},
		{"FINALIZATION", PhaseFinalization},
		{"GAME_STARTING", PhaseOther},
		{"", PhaseOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePhase(tt.wire), "phase %q", tt.wire)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wire string
		want ActionKind
	}{
		{"ban", KindBan},
		{"pick", KindPick},
		{"ten_bans_reveal", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseKind(tt.wire), "kind %q", tt.wire)
	}
}
