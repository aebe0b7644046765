package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"rush-and-ruin/server"
	"rush-and-ruin/server/internal/net/proto"
)

func newTestServer(t *testing.T) (*server.Hub, *httptest.Server) {
	t.Helper()

	hub := server.NewHubWithConfig(server.DefaultHubConfig(), nil)
	handler := NewHandler(hub, HandlerConfig{})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialPlayer(t *testing.T, baseURL, playerID string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(websocketURL(t, baseURL, playerID), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read websocket frame: %v", err)
	}
	var frame map[string]any
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("failed to decode websocket frame: %v", err)
	}
	return frame
}

func TestHandleRequiresPlayerID(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d without id, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestHandleClosesUnknownPlayer(t *testing.T) {
	_, srv := newTestServer(t)

	conn := dialPlayer(t, srv.URL, "ghost")

	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("expected close for player that never joined")
	}
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}

func TestHandleDeliversInitialStateFrame(t *testing.T) {
	hub, srv := newTestServer(t)
	join := hub.Join()

	conn := dialPlayer(t, srv.URL, join.ID)
	frame := readFrame(t, conn)

	if frame["type"] != proto.TypeState {
		t.Fatalf("expected initial frame type %q, got %v", proto.TypeState, frame["type"])
	}
	if ver, ok := frame["ver"].(float64); !ok || int(ver) != proto.Version {
		t.Fatalf("expected protocol version %d, got %v", proto.Version, frame["ver"])
	}
	player, ok := frame["player"].(map[string]any)
	if !ok {
		t.Fatalf("expected player object in initial frame, got %T", frame["player"])
	}
	if player["id"] != join.ID {
		t.Fatalf("expected player id %q, got %v", join.ID, player["id"])
	}
}

func TestHandleAcksSequencedCommands(t *testing.T) {
	hub, srv := newTestServer(t)
	join := hub.Join()

	conn := dialPlayer(t, srv.URL, join.ID)
	readFrame(t, conn)

	input := []byte(`{"type":"input","dx":1,"dy":0,"seq":1}`)
	if err := conn.WriteMessage(websocket.TextMessage, input); err != nil {
		t.Fatalf("failed to send input: %v", err)
	}

	ack := readFrame(t, conn)
	if ack["type"] != proto.TypeCommandAck {
		t.Fatalf("expected command ack, got %v", ack["type"])
	}
	if seq, ok := ack["seq"].(float64); !ok || uint64(seq) != 1 {
		t.Fatalf("expected ack for seq 1, got %v", ack["seq"])
	}
	if tick, ok := ack["tick"].(float64); !ok || tick < 1 {
		t.Fatalf("expected ack to carry the origin tick, got %v", ack["tick"])
	}

	// Resending an acknowledged sequence collapses into a bare duplicate ack.
	if err := conn.WriteMessage(websocket.TextMessage, input); err != nil {
		t.Fatalf("failed to resend input: %v", err)
	}
	dup := readFrame(t, conn)
	if dup["type"] != proto.TypeCommandAck {
		t.Fatalf("expected duplicate ack, got %v", dup["type"])
	}
	if _, present := dup["tick"]; present {
		t.Fatalf("expected duplicate ack without origin tick, got %v", dup["tick"])
	}
}

func TestHandleRejectsUnknownAction(t *testing.T) {
	hub, srv := newTestServer(t)
	join := hub.Join()

	conn := dialPlayer(t, srv.URL, join.ID)
	readFrame(t, conn)

	bad := []byte(`{"type":"action","action":"warp","seq":1}`)
	if err := conn.WriteMessage(websocket.TextMessage, bad); err != nil {
		t.Fatalf("failed to send action: %v", err)
	}

	reject := readFrame(t, conn)
	if reject["type"] != proto.TypeCommandReject {
		t.Fatalf("expected command reject, got %v", reject["type"])
	}
	if reject["reason"] != server.CommandRejectInvalidAction {
		t.Fatalf("expected reason %q, got %v", server.CommandRejectInvalidAction, reject["reason"])
	}
	if _, present := reject["retry"]; present {
		t.Fatalf("expected invalid action reject without retry hint, got %v", reject["retry"])
	}
}

func TestHandleHeartbeatEcho(t *testing.T) {
	hub, srv := newTestServer(t)
	join := hub.Join()

	conn := dialPlayer(t, srv.URL, join.ID)
	readFrame(t, conn)

	sentAt := time.Now().UnixMilli()
	beat := fmt.Appendf(nil, `{"type":"heartbeat","sentAt":%d}`, sentAt)
	if err := conn.WriteMessage(websocket.TextMessage, beat); err != nil {
		t.Fatalf("failed to send heartbeat: %v", err)
	}

	ack := readFrame(t, conn)
	if ack["type"] != proto.TypeHeartbeat {
		t.Fatalf("expected heartbeat ack, got %v", ack["type"])
	}
	if client, ok := ack["clientTime"].(float64); !ok || int64(client) != sentAt {
		t.Fatalf("expected clientTime echo %d, got %v", sentAt, ack["clientTime"])
	}
	if serverTime, ok := ack["serverTime"].(float64); !ok || int64(serverTime) <= 0 {
		t.Fatalf("expected positive serverTime, got %v", ack["serverTime"])
	}
}

func websocketURL(t *testing.T, baseURL, playerID string) string {
	t.Helper()

	parsed, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("failed to parse test server url: %v", err)
	}
	parsed.Scheme = "ws"
	parsed.Path = "/"
	query := parsed.Query()
	query.Set("id", playerID)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
