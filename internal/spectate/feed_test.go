package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/tournament"
	"github.com/lox/pokertourney/poker"
)

func newServer(t *testing.T) (*Feed, *httptest.Server) {
	t.Helper()
	feed := New(log.New(io.Discard))
	srv := httptest.NewServer(feed.Handler())
	t.Cleanup(func() {
		feed.Close()
		srv.Close()
	})
	return feed, srv
}

func record(n int) game.HandRecord {
	return game.HandRecord{
		ID:      "hand",
		Number:  n,
		Outcome: game.EarlyWin,
		Board:   poker.MustParseCards("2c7dJh"),
		Pot:     600,
		Seats: []game.SeatRecord{
			{Seat: 0, Name: "a", Dealt: true, Score: poker.NoHand, Bets: [3]float64{300}},
			{Seat: 1, Name: "b", Dealt: true, Folded: true, Score: poker.NoHand},
		},
		Settlement: game.Settlement{Pot: 600, Winners: []int{0}, Payouts: map[int]float64{0: 600}, WinCredits: map[int]float64{0: 1}},
	}
}

var standings = []tournament.Standing{{Seat: 0, Name: "a", Stack: 10400, Wins: 1}, {Seat: 1, Name: "b", Stack: 9600}}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHTTPEndpoints(t *testing.T) {
	t.Parallel()
	feed, srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	var empty []tournament.Standing
	getJSON(t, srv.URL+"/standings", &empty)
	assert.Empty(t, empty)

	feed.HandCompleted(record(1), standings)
	feed.HandCompleted(record(2), standings)

	var history []game.HandRecord
	getJSON(t, srv.URL+"/history", &history)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[1].Number)
	assert.Equal(t, poker.MustParseCards("2c7dJh"), history[0].Board)
	assert.Equal(t, game.EarlyWin, history[0].Outcome)
	assert.InDelta(t, 600, history[0].Settlement.Payouts[0], 1e-9)

	var got []tournament.Standing
	getJSON(t, srv.URL+"/standings", &got)
	assert.Equal(t, standings, got)

	resp, err = http.Post(srv.URL+"/history", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebsocketReplaysAndStreams(t *testing.T) {
	t.Parallel()
	feed, srv := newServer(t)
	feed.HandCompleted(record(1), standings)

	conn := dial(t, srv)
	ev := readEvent(t, conn)
	assert.Equal(t, EventHand, ev.Type)
	require.NotNil(t, ev.Hand)
	assert.Equal(t, 1, ev.Hand.Number)

	feed.HandCompleted(record(2), standings)
	ev = readEvent(t, conn)
	require.NotNil(t, ev.Hand)
	assert.Equal(t, 2, ev.Hand.Number)
	assert.Equal(t, standings, ev.Standings)

	feed.MatchCompleted(tournament.Result{Standings: standings, Wins: []float64{1, 0}, Halted: true})
	ev = readEvent(t, conn)
	assert.Equal(t, EventMatch, ev.Type)
	assert.Nil(t, ev.Hand)
	assert.True(t, ev.Halted)
	assert.Equal(t, []float64{1, 0}, ev.Wins)
}

func TestCloseDisconnectsSpectators(t *testing.T) {
	t.Parallel()
	feed, srv := newServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return feed.Spectators() == 1 }, 5*time.Second, 10*time.Millisecond)
	feed.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
	assert.Zero(t, feed.Spectators())

	feed.HandCompleted(record(1), standings)
	var history []game.HandRecord
	getJSON(t, srv.URL+"/history", &history)
	assert.Empty(t, history, "events after close are ignored")
}

func TestSpectatorLeaving(t *testing.T) {
	t.Parallel()
	feed, srv := newServer(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return feed.Spectators() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return feed.Spectators() == 0 }, 5*time.Second, 10*time.Millisecond)
	feed.HandCompleted(record(1), standings)
}
