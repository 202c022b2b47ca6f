package ws_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/service/videopoker"
	"video-poker-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type frame struct {
	Type string          `json:"type"`
	Seq  int             `json:"seq"`
	Data json.RawMessage `json:"data"`
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := videopoker.NewService(nil, nil, nil, videopoker.Options{})
	r := gin.New()
	r.GET("/ws/strategy", ws.NewHandler(svc).HandleStrategyWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/strategy"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func TestStrategyStream(t *testing.T) {
	conn := dial(t)

	err := conn.WriteJSON(map[string]any{
		"type": "strategy",
		"data": map[string]any{"variant": "jacks_or_better", "wager": 1, "hand": "A♥ K♥ Q♥ J♥ 3♣"},
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for i := 1; i <= strategy.Patterns; i++ {
		f := read(t, conn)
		if f.Type != ws.TypeProgress || f.Seq != 1 {
			t.Fatalf("frame %d: expected progress, got %s seq %d", i, f.Type, f.Seq)
		}
		var p struct {
			Done    int `json:"done"`
			Total   int `json:"total"`
			Outcome struct {
				Mask int `json:"mask"`
			} `json:"outcome"`
		}
		if err := json.Unmarshal(f.Data, &p); err != nil {
			t.Fatalf("decode progress: %v", err)
		}
		if p.Done != i || p.Total != strategy.Patterns || p.Outcome.Mask != i-1 {
			t.Fatalf("unexpected progress frame %d: %+v", i, p)
		}
	}

	f := read(t, conn)
	if f.Type != ws.TypeResult {
		t.Fatalf("expected result frame, got %s", f.Type)
	}
	var res struct {
		Best struct {
			Mask int `json:"mask"`
		} `json:"best"`
	}
	if err := json.Unmarshal(f.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Best.Mask != 15 {
		t.Fatalf("expected best mask 15, got %d", res.Best.Mask)
	}
}

func TestStrategyStreamErrors(t *testing.T) {
	conn := dial(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if f := read(t, conn); f.Type != ws.TypeError {
		t.Fatalf("expected error frame for bad payload, got %s", f.Type)
	}

	err := conn.WriteJSON(map[string]any{
		"type": "strategy",
		"data": map[string]any{"hand": "A♥ K♥ Q♥"},
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if f := read(t, conn); f.Type != ws.TypeError {
		t.Fatalf("expected error frame for short hand, got %s", f.Type)
	}

	if err := conn.WriteJSON(map[string]any{"type": "bogus"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if f := read(t, conn); f.Type != ws.TypeError {
		t.Fatalf("expected error frame for unknown type, got %s", f.Type)
	}
}
