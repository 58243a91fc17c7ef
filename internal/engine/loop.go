package engine

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/palemoky/autodraft/internal/apperrors"
	"github.com/palemoky/autodraft/internal/champion"
	"github.com/palemoky/autodraft/internal/champselect"
	"github.com/palemoky/autodraft/internal/lcu"
)

// Ready-check wire values worth reacting to.
const (
	readyCheckInProgress = "InProgress"
	playerResponseNone   = "None"
)

// ActionClient is the REST surface the loop drives.
type ActionClient interface {
	SubmitAction(ctx context.Context, actionID int64, championID champion.ID, completed bool) error
	AcceptReadyCheck(ctx context.Context) error
}

// GameStartChecker reports whether the live game clock is running.
type GameStartChecker interface {
	CheckStarted(ctx context.Context) (bool, error)
}

// Deps bundles everything the loop needs.
type Deps struct {
	Client   ActionClient
	Resolver *champselect.Resolver
	Checker  GameStartChecker
	Log      *zap.Logger
}

// handlerFunc is the unified handler signature, keyed by event URI.
type handlerFunc func(ctx context.Context, event lcu.Event)

// Loop consumes client push events one at a time, in arrival order, and
// drives the draft: accept ready checks, resolve and submit actions,
// detect game start. Single goroutine; no locks needed.
type Loop struct {
	client   ActionClient
	resolver *champselect.Resolver
	checker  GameStartChecker
	log      *zap.Logger

	handlers map[string]handlerFunc
	state    champselect.State
}

// New creates the loop.
func New(deps Deps) *Loop {
	l := &Loop{
		client:   deps.Client,
		resolver: deps.Resolver,
		checker:  deps.Checker,
		log:      deps.Log,
	}
	l.initHandlers()
	return l
}

// initHandlers builds the URI dispatch table. Events for any other URI
// are dropped without a look.
func (l *Loop) initHandlers() {
	l.handlers = map[string]handlerFunc{
		lcu.URIReadyCheck:         l.handleReadyCheck,
		lcu.URIChampSelectSession: l.handleSession,
	}
}

// Run processes events until the game starts (nil), the stream closes
// (apperrors.ErrEventStreamClosed) or the context ends. Snapshot-level
// problems are logged and skipped; they never end the run.
func (l *Loop) Run(ctx context.Context, events <-chan lcu.Event) error {
	l.log.Info("waiting for draft events")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return apperrors.ErrEventStreamClosed
			}

			if handler, ok := l.handlers[event.URI]; ok {
				handler(ctx, event)
			}

			if l.state.InGame {
				l.log.Info("game is live, draft duty done")
				return nil
			}
		}
	}
}

// readyCheckData mirrors /lol-matchmaking/v1/ready-check payloads.
type readyCheckData struct {
	State          string `json:"state"`
	PlayerResponse string `json:"playerResponse"`
}

// handleReadyCheck accepts a pending ready check we have not answered yet.
func (l *Loop) handleReadyCheck(ctx context.Context, event lcu.Event) {
	var rc readyCheckData
	if err := json.Unmarshal(event.Data, &rc); err != nil {
		l.log.Warn("bad ready-check payload", zap.Error(err))
		return
	}
	if rc.State != readyCheckInProgress || rc.PlayerResponse != playerResponseNone {
		return
	}

	if err := l.client.AcceptReadyCheck(ctx); err != nil {
		l.log.Warn("ready-check accept failed", zap.Error(err))
		return
	}
	l.log.Info("ready check accepted")
}

// handleSession runs the resolve/submit cycle for one session snapshot,
// then consults the game-start checker once the draft finalizes.
func (l *Loop) handleSession(ctx context.Context, event lcu.Event) {
	var sess champselect.Session
	if err := json.Unmarshal(event.Data, &sess); err != nil {
		l.log.Warn("bad session payload", zap.Error(err))
		return
	}

	facts, err := champselect.Interpret(sess)
	if err != nil {
		l.log.Warn("session not actionable", zap.Error(err))
		return
	}

	if facts.Assigned {
		l.log.Debug("position assigned",
			zap.String("position", facts.AssignedPosition),
			zap.Stringer("phase", facts.Phase))
	}

	l.state = l.resolveCycle(ctx, facts, l.state)

	if facts.Phase == champselect.PhaseFinalization && !l.state.InGame {
		l.checkGameStart(ctx)
	}
}

// resolveCycle runs resolve/submit rounds against one snapshot until the
// resolver goes quiet. A failed ban or pick feeds the same facts straight
// back in; the cursor already sits past the failed candidate, so the next
// round tries the fallback. Bounded by the preference list lengths.
func (l *Loop) resolveCycle(ctx context.Context, facts champselect.DraftFacts, st champselect.State) champselect.State {
	for {
		intent, next := l.resolver.Resolve(facts, st)
		st = next
		if intent == nil {
			return st
		}

		err := l.client.SubmitAction(ctx, intent.ActionID, intent.ChampionID, intent.Completed)
		if err != nil {
			if !intent.Completed {
				l.log.Warn("pre-pick failed, retrying on the next snapshot", zap.Error(err))
				return st
			}
			l.log.Warn("submission failed, trying next candidate",
				zap.Int64("action_id", intent.ActionID),
				zap.Int("champion_id", int(intent.ChampionID)),
				zap.Error(err))
			continue
		}

		if !intent.Completed {
			l.log.Info("pre-picked", zap.Int("champion_id", int(intent.ChampionID)))
			return st.PrepickDone()
		}

		kind := champselect.KindOther
		if facts.CurrentAction != nil {
			kind = facts.CurrentAction.Kind
		}
		l.log.Info("turn resolved",
			zap.Stringer("kind", kind),
			zap.Int("champion_id", int(intent.ChampionID)))
		return st.TurnCompleted(kind)
	}
}

// checkGameStart latches the terminal state once the clock runs.
func (l *Loop) checkGameStart(ctx context.Context) {
	started, err := l.checker.CheckStarted(ctx)
	if err != nil {
		l.log.Warn("game-start check failed", zap.Error(err))
		return
	}
	if started {
		l.state = l.state.GameStarted()
	}
}
