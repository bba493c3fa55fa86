// Package spectate serves a read-only view of a running match over HTTP and
// websocket. Nothing a spectator sends reaches the match.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/tournament"
)

const (
	sendBuffer   = 256
	writeTimeout = 5 * time.Second
)

// Event is one websocket message.
type Event struct {
	Type      string                `json:"type"`
	Hand      *game.HandRecord      `json:"hand,omitempty"`
	Standings []tournament.Standing `json:"standings,omitempty"`
	Wins      []float64             `json:"wins,omitempty"`
	Halted    bool                  `json:"halted,omitempty"`
}

const (
	EventHand  = "hand"
	EventMatch = "match"
)

// Feed records completed hands and fans them out to websocket spectators.
// It implements tournament.Observer.
type Feed struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	events    [][]byte
	history   []game.HandRecord
	standings []tournament.Standing
	clients   map[*client]struct{}
	closed    bool
}

var _ tournament.Observer = (*Feed)(nil)

// New returns an empty feed.
func New(logger *log.Logger) *Feed {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Feed{
		logger: logger.WithPrefix("spectate"),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
	}
}

// HandCompleted stores rec and pushes it to every spectator.
func (f *Feed) HandCompleted(rec game.HandRecord, standings []tournament.Standing) {
	rec = rec.Clone()
	standings = slices.Clone(standings)
	f.publish(Event{Type: EventHand, Hand: &rec, Standings: standings}, func() {
		f.history = append(f.history, rec)
		f.standings = standings
	})
}

// MatchCompleted pushes the final standings.
func (f *Feed) MatchCompleted(res tournament.Result) {
	standings := slices.Clone(res.Standings)
	f.publish(Event{Type: EventMatch, Standings: standings, Wins: slices.Clone(res.Wins), Halted: res.Halted}, func() {
		f.standings = standings
	})
}

func (f *Feed) publish(ev Event, update func()) {
	msg, err := json.Marshal(ev)
	if err != nil {
		f.logger.Error("Failed to encode event", "type", ev.Type, "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	update()
	f.events = append(f.events, msg)
	for c := range f.clients {
		if !c.enqueue(msg) {
			f.logger.Warn("Dropping slow spectator", "remote", c.remote)
			f.drop(c)
		}
	}
}

// Close disconnects every spectator. Later events are ignored.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for c := range f.clients {
		f.drop(c)
	}
}

// drop must be called with mu held.
func (f *Feed) drop(c *client) {
	if _, ok := f.clients[c]; !ok {
		return
	}
	delete(f.clients, c)
	close(c.send)
}

// Spectators returns the number of connected websocket clients.
func (f *Feed) Spectators() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Handler routes the feed's endpoints.
func (f *Feed) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", f.handleHealth)
	r.Get("/history", f.handleHistory)
	r.Get("/standings", f.handleStandings)
	r.Get("/ws", f.handleWebSocket)
	return r
}

// Serve listens on addr until ctx is cancelled.
func (f *Feed) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: f.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	f.logger.Info("Spectator feed listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	f.Close()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (f *Feed) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (f *Feed) handleHistory(w http.ResponseWriter, _ *http.Request) {
	f.mu.RLock()
	history := game.CloneHistory(f.history)
	f.mu.RUnlock()
	writeJSON(w, history)
}

func (f *Feed) handleStandings(w http.ResponseWriter, _ *http.Request) {
	f.mu.RLock()
	standings := slices.Clone(f.standings)
	f.mu.RUnlock()
	if standings == nil {
		standings = []tournament.Standing{}
	}
	writeJSON(w, standings)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleWebSocket replays every past event and then streams new ones.
func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), remote: r.RemoteAddr}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = conn.Close()
		return
	}
	backlog := slices.Clone(f.events)
	// Backlog is written directly; live events queue behind it.
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	f.logger.Debug("Spectator connected", "remote", c.remote, "backlog", len(backlog))

	go c.readLoop(func() {
		f.mu.Lock()
		f.drop(c)
		f.mu.Unlock()
	})
	c.writeLoop(backlog)
	f.logger.Debug("Spectator disconnected", "remote", c.remote)
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

func (c *client) enqueue(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readLoop discards input and reports when the peer goes away.
func (c *client) readLoop(done func()) {
	defer done()
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop(backlog [][]byte) {
	defer c.conn.Close()
	write := func(msg []byte) error {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return c.conn.WriteMessage(websocket.TextMessage, msg)
	}
	for _, msg := range backlog {
		if err := write(msg); err != nil {
			return
		}
	}
	for msg := range c.send {
		if err := write(msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match over"),
		time.Now().Add(writeTimeout))
}
