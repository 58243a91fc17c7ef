package lcu

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/palemoky/autodraft/internal/apperrors"
)

// clientProcessName is the UX process that carries the API credentials on
// its command line.
const clientProcessName = "LeagueClientUx"

// Credentials hold everything needed to talk to a running client.
type Credentials struct {
	Port  int
	Token string
	PID   int32
}

// BaseURL returns the REST endpoint root.
func (c Credentials) BaseURL() string {
	return fmt.Sprintf("https://127.0.0.1:%d", c.Port)
}

// WebSocketURL returns the push-event socket endpoint.
func (c Credentials) WebSocketURL() string {
	return fmt.Sprintf("wss://127.0.0.1:%d/", c.Port)
}

// BasicAuth returns the Authorization header value for the riot user.
func (c Credentials) BasicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("riot:"+c.Token))
}

// Discover scans running processes for the client UX process and pulls the
// API port and auth token from its command line. Returns
// apperrors.ErrClientNotFound when no such process is running.
func Discover(ctx context.Context) (Credentials, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Credentials{}, fmt.Errorf("list processes: %w", err)
	}

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !strings.HasPrefix(name, clientProcessName) {
			continue
		}
		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			continue
		}
		creds, ok := credentialsFromArgs(args)
		if !ok {
			continue
		}
		if creds.PID == 0 {
			creds.PID = p.Pid
		}
		return creds, nil
	}

	return Credentials{}, apperrors.ErrClientNotFound
}

// credentialsFromArgs extracts port, token and pid from a client command
// line. ok is false when either the port or the token is missing.
func credentialsFromArgs(args []string) (Credentials, bool) {
	var creds Credentials
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--app-port="):
			if port, err := strconv.Atoi(strings.TrimPrefix(arg, "--app-port=")); err == nil {
				creds.Port = port
			}
		case strings.HasPrefix(arg, "--remoting-auth-token="):
			creds.Token = strings.TrimPrefix(arg, "--remoting-auth-token=")
		case strings.HasPrefix(arg, "--app-pid="):
			if pid, err := strconv.Atoi(strings.TrimPrefix(arg, "--app-pid=")); err == nil {
				creds.PID = int32(pid)
			}
		}
	}
	return creds, creds.Port != 0 && creds.Token != ""
}

// ParseLockfile extracts credentials from the client's install-dir
// lockfile, a single line of name:pid:port:password:protocol.
func ParseLockfile(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read lockfile: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(string(raw)), ":")
	if len(parts) < 5 {
		return Credentials{}, fmt.Errorf("malformed lockfile %s", path)
	}

	port, err := strconv.Atoi(parts[2])
	if err != nil {
		return Credentials{}, fmt.Errorf("parse lockfile port: %w", err)
	}

	creds := Credentials{Port: port, Token: parts[3]}
	if pid, err := strconv.Atoi(parts[1]); err == nil {
		creds.PID = int32(pid)
	}
	return creds, nil
}

// WaitFor polls discovery until the client shows up or the context is
// cancelled, so the bot can be launched before the game launcher.
func WaitFor(ctx context.Context, interval time.Duration, log *zap.Logger) (Credentials, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		creds, err := Discover(ctx)
		if err == nil {
			return creds, nil
		}
		if !errors.Is(err, apperrors.ErrClientNotFound) {
			return Credentials{}, err
		}

		log.Info("client not running, waiting", zap.Duration("retry_in", interval))
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return Credentials{}, ctx.Err()
		}
	}
}
