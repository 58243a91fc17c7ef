package livegame

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const pollTimeout = 5 * time.Second

// Detector watches the Live Client Data telemetry for a running game
// clock. The endpoint only exists while the game process itself is up, so
// an unreachable host simply means the game has not started yet. Once the
// clock reports elapsed time the answer latches true.
//
// Not safe for concurrent use; the driving loop is the only caller.
type Detector struct {
	url         string
	httpc       *http.Client
	minInterval time.Duration
	log         *zap.Logger

	lastPoll time.Time
	started  bool
}

// New creates a detector against addr, e.g. "127.0.0.1:2999". Polls are
// rate limited to one per minInterval; calls inside the window reuse the
// previous answer.
func New(addr string, minInterval time.Duration, log *zap.Logger) *Detector {
	return &Detector{
		url: fmt.Sprintf("https://%s/liveclientdata/gamestats", addr),
		httpc: &http.Client{
			Timeout: pollTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		minInterval: minInterval,
		log:         log,
	}
}

// CheckStarted reports whether the live game clock is running.
func (d *Detector) CheckStarted(ctx context.Context) (bool, error) {
	if d.started {
		return true, nil
	}
	if !d.lastPoll.IsZero() && time.Since(d.lastPoll) < d.minInterval {
		return false, nil
	}
	d.lastPoll = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return false, err
	}

	resp, err := d.httpc.Do(req)
	if err != nil {
		d.log.Debug("live client data unreachable", zap.Error(err))
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.log.Debug("live client data not ready", zap.Int("status", resp.StatusCode))
		return false, nil
	}

	var stats struct {
		GameTime float64 `json:"gameTime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return false, fmt.Errorf("decode game stats: %w", err)
	}

	if stats.GameTime > 0 {
		d.started = true
		d.log.Info("game clock running", zap.Float64("game_time", stats.GameTime))
	}
	return d.started, nil
}
