package spectate

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + WebSocketPath
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readEnvelope(t *testing.T, ws *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, ws.ReadJSON(&env))
	return env
}

func TestHubWelcomeAndBroadcast(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	welcome := readEnvelope(t, ws)
	assert.Equal(t, TypeWelcome, welcome.Type)
	assert.NotEmpty(t, welcome.Session)
	assert.Equal(t, 1, hub.Count())

	hub.Broadcast(Envelope{Type: "score_changed", Session: "abc", Level: 2, Score: 3})

	env := readEnvelope(t, ws)
	assert.Equal(t, "score_changed", env.Type)
	assert.Equal(t, "abc", env.Session)
	assert.Equal(t, 2, env.Level)
	assert.Equal(t, 3, env.Score)
	assert.False(t, env.Time.IsZero(), "broadcast stamps the time")
}

func TestHubFansOutToAll(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	readEnvelope(t, a)
	readEnvelope(t, b)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(Envelope{Type: TypeSessionStart, Session: "s1"})

	assert.Equal(t, TypeSessionStart, readEnvelope(t, a).Type)
	assert.Equal(t, TypeSessionStart, readEnvelope(t, b).Type)
}

func TestHubRemovesClosedSpectators(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	readEnvelope(t, ws)
	require.Equal(t, 1, hub.Count())

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	ws.Close()

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	// Connect but never read.
	dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		for range 10000 {
			hub.Broadcast(Envelope{Type: "score_changed", Message: strings.Repeat("x", 256)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Broadcast blocked on a slow spectator")
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	c := &client{id: "slow", send: make(chan []byte, 1)}
	hub.add(c)

	for range 3 {
		hub.Broadcast(Envelope{Type: "food_eaten"})
	}

	assert.Len(t, c.send, 1)
	assert.Equal(t, uint64(2), hub.Dropped())

	hub.remove(c)
	hub.remove(c)
	assert.Equal(t, 0, hub.Count())
}

func TestHubClose(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv)
	readEnvelope(t, ws)

	hub.Close()
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   snake.Event
		typ     string
		level   int
		score   int
		message string
	}{
		{"score", snake.ScoreChanged{Score: 5}, "score_changed", 2, 5, ""},
		{"food", snake.FoodEaten{}, "food_eaten", 2, 4, ""},
		{"game over", snake.GameOver{Score: 9, Cause: snake.CollisionWall}, "game_over", 2, 9, "wall"},
		{
			"record",
			snake.RecordBroken{Difficulty: config.DifficultyHard, Message: "Congratulations! You broke record 3!"},
			"record_broken", 3, 4, "Congratulations! You broke record 3!",
		},
		{"high score", snake.HighScoreSet{Difficulty: config.DifficultyEasy, Score: 11}, "high_score_set", 1, 11, ""},
		{"difficulty", snake.DifficultyChanged{Level: config.DifficultyHard, TickRate: 20}, "difficulty_changed", 3, 4, ""},
		{"persistence", snake.PersistenceFailed{Err: errors.New("disk full")}, "persistence_failed", 2, 4, "disk full"},
		{"reset", snake.GameReset{}, "game_reset", 2, 4, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := FromEvent("sess", config.DifficultyNormal, 4, tc.event)
			assert.Equal(t, tc.typ, env.Type)
			assert.Equal(t, "sess", env.Session)
			assert.Equal(t, tc.level, env.Level)
			assert.Equal(t, tc.score, env.Score)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}
