// Package animator is the websocket client that streams lip-sync and
// emotion events to the avatar rendering engine.
package animator

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type Event string

const (
	SessionEvent   Event = "sendSessionData"
	VisemeEvent    Event = "sendVisemeData"
	EmotionEvent   Event = "sendEmotionData"
	VoiceEvent     Event = "sendVoiceData"
	KeepAliveEvent Event = "keepAlive"
)

// Client wraps a single websocket connection to the rendering engine.
// Writes are serialized through the mutex since gorilla connections allow
// one concurrent writer.
type Client struct {
	url    string
	apiKey string

	mu   sync.Mutex
	conn *websocket.Conn
}

func New(url string, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
	}
}

func (c *Client) SetupConnection() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, http.Header{"api-key": []string{c.apiKey}})
	if err != nil {
		return fmt.Errorf("animator connection failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	return nil
}

type envelope struct {
	Event Event       `json:"event"`
	Data  interface{} `json:"data"`
}

func (c *Client) SendData(e Event, d interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("animator connection is not established")
	}

	return c.conn.WriteJSON(envelope{Event: e, Data: d})
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	conn := c.conn
	c.conn = nil

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return conn.Close()
}
