package game

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	neturl "net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Net wraps the websocket to the engine. A reader goroutine feeds inbound
// envelopes into a buffered channel; the channel closes when the socket
// dies so the owner can schedule a reconnect.
type Net struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	inCh   chan protocol.MsgEnvelope
	closed bool
}

func NewNet(wsURL string) (*Net, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		Proxy: func(*http.Request) (*neturl.URL, error) {
			return nil, nil // disable proxies
		},
	}

	c, resp, err := dialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			log.Printf("NET: dial failed: %s", resp.Status)
		} else {
			log.Printf("NET: dial failed: %v", err)
		}
		return nil, err
	}

	n := &Net{conn: c, inCh: make(chan protocol.MsgEnvelope, 128)}
	go n.reader()
	return n, nil
}

func (n *Net) reader() {
	n.mu.Lock()
	c := n.conn
	n.mu.Unlock()
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Println("NET: read:", err)
			n.mu.Lock()
			n.closed = true
			n.conn = nil
			n.mu.Unlock()
			close(n.inCh)
			return
		}
		var m protocol.MsgEnvelope
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		n.inCh <- m
	}
}

// In exposes the inbound event stream.
func (n *Net) In() <-chan protocol.MsgEnvelope { return n.inCh }

func (n *Net) Send(t string, v interface{}) error {
	n.mu.Lock()
	if n.closed || n.conn == nil {
		n.mu.Unlock()
		return errors.New("net: write on closed")
	}
	c := n.conn
	n.mu.Unlock()

	b, _ := json.Marshal(struct {
		Type string      `json:"type"`
		Data interface{} `json:"data"`
	}{Type: t, Data: v})

	if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Println("NET: write:", err)
		n.mu.Lock()
		n.closed = true
		n.conn = nil
		n.mu.Unlock()
		return err
	}
	return nil
}

// IsClosed reports whether Close() was called or the connection was torn down.
func (n *Net) IsClosed() bool {
	if n == nil {
		return true
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

// Close closes the websocket and marks the Net as closed.
func (n *Net) Close() error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	c := n.conn
	n.conn = nil
	n.mu.Unlock()

	var err error
	if c != nil {
		err = c.Close()
	}
	return err
}
