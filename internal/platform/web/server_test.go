package web

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

// testConfig starts play immediately; the finish is 31 ticks to the right
// and the light turns red 5s into play.
func testConfig() config.RedLightConfig {
	return config.RedLightConfig{
		Field: config.FieldConfig{
			Width:  200,
			Height: 200,
			Margin: 5,
			Start:  config.PointConfig{X: 10, Y: 100},
			Finish: config.RectConfig{X: 100, Y: 90, W: 20, H: 20},
			Guard:  config.PointConfig{X: 100, Y: 20},
		},
		Player: config.PlayerConfig{SpeedPerTick: 3},
		Timing: config.TimingConfig{
			TickPeriodMs:   30,
			PreRollSeconds: 0,
			BudgetSeconds:  10,
			WarmupMs:       5000,
			GreenMs:        config.RangeConfig{Min: 3000, Max: 7000},
			RedMs:          config.RangeConfig{Min: 2000, Max: 5000},
		},
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestClient(t *testing.T, store *storage.Store) *Client {
	t.Helper()
	s, err := NewServer(Config{Seed: 1}, testConfig(), store, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	c, err := s.newClient(nil, "test")
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	return c
}

// drain decodes every queued message.
func drain(t *testing.T, c *Client) []ServerMessage {
	t.Helper()
	var out []ServerMessage
	for {
		select {
		case data := <-c.send:
			var msg ServerMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("bad message %s: %v", data, err)
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Player.SpeedPerTick = 0
	if _, err := NewServer(DefaultConfig(), cfg, nil, nil); err == nil {
		t.Fatal("expected an error for zero speed")
	}
}

func TestClientReachesFinish(t *testing.T) {
	store := openStore(t)
	c := newTestClient(t, store)

	c.pushField()
	c.pushSnapshot(true)
	msgs := drain(t, c)
	if len(msgs) != 2 || msgs[0].Type != MsgField || msgs[1].Snapshot.StateName != "idle" {
		t.Fatalf("unexpected greeting %+v", msgs)
	}
	if msgs[0].Field.Width != 200 || msgs[0].Field.Finish.X != 100 {
		t.Errorf("unexpected field %+v", msgs[0].Field)
	}

	c.handle(ClientMessage{Type: MsgStart})
	c.handle(ClientMessage{Type: MsgPress, Key: "ArrowRight"})
	for i := 0; i < 31; i++ {
		c.step(30 * time.Millisecond)
	}

	msgs = drain(t, c)
	last := msgs[len(msgs)-1].Snapshot
	if last == nil || last.StateName != "won" {
		t.Fatalf("expected a won snapshot, got %+v", msgs[len(msgs)-1])
	}
	if last.Message != "You've reached the finish line!" {
		t.Errorf("message = %q", last.Message)
	}

	results, err := store.RecentResults(redlight.GameID, 10)
	if err != nil || len(results) != 1 {
		t.Fatalf("expected one saved result, got %d (%v)", len(results), err)
	}
	if results[0].Outcome != storage.OutcomeWon || results[0].ElapsedMs != 930 {
		t.Errorf("unexpected result %+v", results[0])
	}
	if p, _ := store.Progress(redlight.GameID); p.ClearedCount != 1 {
		t.Errorf("cleared count = %d, expected 1", p.ClearedCount)
	}
}

func TestClientCaughtOnRed(t *testing.T) {
	store := openStore(t)
	c := newTestClient(t, store)

	c.handle(ClientMessage{Type: MsgStart})
	c.step(5 * time.Second)
	if c.session.Phase() != redlight.PhaseRed {
		t.Fatalf("expected red after warm-up, got %v", c.session.Phase())
	}

	// Unknown keys are ignored
	c.handle(ClientMessage{Type: MsgPress, Key: "x"})
	c.handle(ClientMessage{Type: "jump"})
	c.step(30 * time.Millisecond)
	if c.session.State() != redlight.StateActive {
		t.Fatalf("ignored input should not eliminate, state %v", c.session.State())
	}

	c.handle(ClientMessage{Type: MsgPress, Key: "w"})
	c.step(30 * time.Millisecond)
	if c.session.State() != redlight.StateLost || c.session.Reason() != redlight.ReasonCaught {
		t.Fatalf("expected caught, got %v/%v", c.session.State(), c.session.Reason())
	}

	results, _ := store.RecentResults(redlight.GameID, 10)
	if len(results) != 1 || results[0].Reason != "caught" {
		t.Errorf("expected a caught result, got %+v", results)
	}

	c.handle(ClientMessage{Type: MsgRestart})
	if c.session.State() != redlight.StateIdle {
		t.Errorf("restart should return to idle, got %v", c.session.State())
	}
}

func TestClientFreezeReleasesKeys(t *testing.T) {
	c := newTestClient(t, nil)

	c.handle(ClientMessage{Type: MsgStart})
	c.handle(ClientMessage{Type: MsgPress, Key: "up"})
	c.handle(ClientMessage{Type: MsgPress, Key: "left"})
	c.handle(ClientMessage{Type: MsgFreeze})
	c.step(5 * time.Second)
	c.step(30 * time.Millisecond)

	if c.session.State() != redlight.StateActive {
		t.Errorf("frozen player should survive red, state %v", c.session.State())
	}
}

func TestSnapshotsOnlyOnChange(t *testing.T) {
	c := newTestClient(t, nil)

	c.pushSnapshot(true)
	c.step(time.Second)
	c.step(time.Second)
	if msgs := drain(t, c); len(msgs) != 1 {
		t.Errorf("idle session should send one snapshot, got %d", len(msgs))
	}
}

func TestFrameElapsed(t *testing.T) {
	base := time.Unix(1000, 0)
	if got := frameElapsed(base, base.Add(20*time.Millisecond)); got != 20*time.Millisecond {
		t.Errorf("frameElapsed = %v", got)
	}
	if got := frameElapsed(base, base.Add(time.Minute)); got != maxFrameGap {
		t.Errorf("stall should be capped, got %v", got)
	}
	if got := frameElapsed(base, base.Add(-time.Second)); got != 0 {
		t.Errorf("backwards clock should give 0, got %v", got)
	}
}

func TestWebsocketSession(t *testing.T) {
	s, err := NewServer(Config{Seed: 1, FrameRate: 100}, testConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	read := func() ServerMessage {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Type != MsgField {
		t.Fatalf("first message should be the field, got %q", msg.Type)
	}
	if msg := read(); msg.Snapshot == nil || msg.Snapshot.StateName != "idle" {
		t.Fatalf("expected idle snapshot, got %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Type: MsgStart}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	for {
		msg := read()
		if msg.Snapshot != nil && msg.Snapshot.StateName == "active" {
			break
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if n := s.Clients(); n != 0 {
		t.Errorf("expected no clients after shutdown, got %d", n)
	}
}
