package lcu

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
	eventBuffer      = 64
)

// Socket is the push-event side of the client API: one firehose
// subscription, delivered on Events in arrival order. Delivery blocks
// rather than drops; a slow consumer backpressures the read loop.
type Socket struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	log    *zap.Logger

	mu     sync.Mutex
	closed bool
}

// DialSocket connects to the client's event socket, subscribes to the
// JSON API firehose and starts pumping events.
func DialSocket(creds Credentials, log *zap.Logger) (*Socket, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
	}

	header := http.Header{}
	header.Set("Authorization", creds.BasicAuth())

	conn, _, err := dialer.Dial(creds.WebSocketURL(), header)
	if err != nil {
		return nil, fmt.Errorf("dial event socket: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, subscribeFrame()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	s := &Socket{
		conn:   conn,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
		log:    log,
	}

	go s.readPump()
	go s.pingLoop()

	return s, nil
}

// Events delivers parsed push events in arrival order. The channel closes
// when the connection drops or Close is called.
func (s *Socket) Events() <-chan Event {
	return s.events
}

// readPump reads frames until the connection dies. Non-event frames and
// frames that fail to parse are skipped.
func (s *Socket) readPump() {
	defer func() {
		s.Close()
		close(s.events)
	}()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("event socket closed", zap.Error(err))
			}
			return
		}

		event, err := parseEvent(frame)
		if err != nil {
			s.log.Warn("skipping unparseable frame", zap.Error(err))
			continue
		}
		if event == nil {
			continue
		}

		select {
		case s.events <- *event:
		case <-s.done:
			return
		}
	}
}

// pingLoop is the only writer after the subscription, keeping the
// connection alive through the long idle stretches between queue pops.
func (s *Socket) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close tears the connection down. Safe to call more than once.
func (s *Socket) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.done)
		s.conn.Close()
	}
}
