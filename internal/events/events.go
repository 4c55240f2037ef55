// Package events serves the browser websocket channel. It only logs the
// connection lifecycle and echoes test events; no domain events are pushed.
package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"optionlab/internal/logger"
	"optionlab/internal/metrics"
	"optionlab/internal/middleware"
	"optionlab/internal/session"
)

// EventTest is echoed back to the sender.
const EventTest = "test"

const (
	maxMessageSize = 64 << 10
	pongWait       = 60 * time.Second
	pingInterval   = pongWait * 9 / 10
	writeWait      = 10 * time.Second
)

// Message is the JSON frame exchanged on the socket.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Server upgrades HTTP requests to websocket connections.
type Server struct {
	upgrader websocket.Upgrader
	sessions *session.Manager
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
}

// NewServer creates a Server accepting browser connections from origins.
// sessions and m may be nil.
func NewServer(origins []string, sessions *session.Manager, m *metrics.Metrics) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(origins, r.Header.Get("Origin"))
			},
		},
		sessions: sessions,
		metrics:  m,
		log:      logger.Named("events"),
	}
}

// identify returns the email of a valid session cookie on r, or "".
// The channel does not require a session.
func (s *Server) identify(r *http.Request) string {
	if s.sessions == nil {
		return ""
	}
	sess, err := s.sessions.Load(r.Context(), r)
	if err != nil {
		return ""
	}
	return sess.Email
}

// Handle upgrades the request and serves the connection until it closes.
// @Summary     Event websocket
// @Description Websocket channel; "test" events are echoed
// @Tags        events
// @Success     101 "Switching protocols"
// @Router      /ws [get]
func (s *Server) Handle(c *gin.Context) {
	email := s.identify(c.Request)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		s.log.Warnw("websocket upgrade failed", "remote", c.Request.RemoteAddr, "error", err)
		return
	}

	s.onConnect(conn, email)
	err = s.serve(conn)
	s.onDisconnect(conn, email, err)
}

func (s *Server) onConnect(conn *websocket.Conn, email string) {
	if s.metrics != nil {
		s.metrics.WebsocketOpened()
	}
	s.log.Infow("client connected", "remote", conn.RemoteAddr().String(), "email", email)
}

func (s *Server) onDisconnect(conn *websocket.Conn, email string, err error) {
	if s.metrics != nil {
		s.metrics.WebsocketClosed()
	}
	_ = conn.Close()

	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		s.log.Infow("client disconnected", "remote", conn.RemoteAddr().String(), "email", email, "error", err)
		return
	}
	s.log.Infow("client disconnected", "remote", conn.RemoteAddr().String(), "email", email)
}

// serve runs the read loop and a keepalive pinger. Data frames are written
// only from this goroutine; pings go through WriteControl.
func (s *Server) serve(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.keepalive(conn, done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := s.dispatch(conn, payload); err != nil {
			return err
		}
	}
}

func (s *Server) keepalive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// errMalformed marks frames that are not a JSON event envelope.
var errMalformed = errors.New("malformed frame")

func decode(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, errors.Join(errMalformed, err)
	}
	if msg.Event == "" {
		return msg, errMalformed
	}
	return msg, nil
}

// dispatch handles one inbound frame. Only write failures end the connection.
func (s *Server) dispatch(conn *websocket.Conn, payload []byte) error {
	msg, err := decode(payload)
	if err != nil {
		s.log.Warnw("ignoring malformed frame", "remote", conn.RemoteAddr().String(), "error", err)
		return nil
	}

	switch msg.Event {
	case EventTest:
		s.log.Infow("test event", "remote", conn.RemoteAddr().String(), "data", string(msg.Data))
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	default:
		s.log.Debugw("ignoring event", "remote", conn.RemoteAddr().String(), "event", msg.Event)
		return nil
	}
}
