package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 16
)

var upgrader = websocket.Upgrader{
	// Local tool; browsers from any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn serializes writes from the room loop and the ping loop.
type wsConn struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	msgType int
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(c.msgType, b)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// Handler upgrades requests to websockets and joins them to the room.
func Handler(room *Room, log Logger) http.Handler {
	if log == nil {
		log = nopLogger{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Logf("upgrade: %v", err)
			return
		}
		msgType := websocket.TextMessage
		if room.Codec().Binary() {
			msgType = websocket.BinaryMessage
		}
		wc := &wsConn{conn: conn, msgType: msgType}

		reply := make(chan JoinResult, 1)
		if !room.Send(Join{Conn: wc, Reply: reply}) {
			_ = conn.Close()
			return
		}
		var id string
		select {
		case res := <-reply:
			id = res.ClientID
		case <-room.Done():
			_ = conn.Close()
			return
		}

		conn.SetReadLimit(readLimit)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := wc.ping(); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Logf("client %s read: %v", id, err)
				}
				break
			}
			if !room.Send(Message{ClientID: id, Data: msg}) {
				break
			}
		}
		room.Send(Leave{ClientID: id})
	})
}
