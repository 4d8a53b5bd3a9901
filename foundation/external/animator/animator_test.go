package animator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/superfeelapi/goAvatar/foundation/external/animator"
)

func TestClientSendData(t *testing.T) {
	received := make(chan map[string]any, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key header = %q, want %q", got, "secret")
		}

		up := websocket.Upgrader{}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrading connection: %s", err)
			return
		}
		defer conn.Close()

		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("reading envelope: %s", err)
			return
		}
		received <- msg
	}))
	defer srv.Close()

	c := animator.New("ws"+strings.TrimPrefix(srv.URL, "http"), "secret")
	if err := c.SetupConnection(); err != nil {
		t.Fatalf("setting up connection: %s", err)
	}
	defer c.Close()

	data := animator.SessionData{
		AvatarID:  "ava-1",
		SessionID: "s-1",
		ProfileID: "default",
	}
	if err := c.SendData(animator.SessionEvent, data); err != nil {
		t.Fatalf("sending data: %s", err)
	}

	select {
	case msg := <-received:
		if msg["event"] != string(animator.SessionEvent) {
			t.Fatalf("event = %v, want %s", msg["event"], animator.SessionEvent)
		}
		inner, ok := msg["data"].(map[string]any)
		if !ok {
			t.Fatalf("data field missing in %v", msg)
		}
		if inner["avatar_id"] != "ava-1" {
			t.Fatalf("avatar_id = %v, want ava-1", inner["avatar_id"])
		}
	case <-time.After(time.Second):
		t.Fatal("server never received the event")
	}
}

func TestSendDataWithoutConnection(t *testing.T) {
	t.Parallel()

	c := animator.New("ws://127.0.0.1:0", "key")
	if err := c.SendData(animator.KeepAliveEvent, nil); err == nil {
		t.Fatal("expected error when connection is not established")
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	t.Parallel()

	c := animator.New("ws://127.0.0.1:0", "key")
	if err := c.Close(); err != nil {
		t.Fatalf("closing unopened client: %s", err)
	}
}
