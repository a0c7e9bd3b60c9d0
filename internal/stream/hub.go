// Package stream pushes rendered frames to browser viewers over WebSocket.
package stream

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukaszgryglicki/spheretracer/internal/spheretracer"
)

const (
	sendBuffer = 8
	writeWait  = 10 * time.Second
	pingEvery  = 30 * time.Second
)

// Source is the live studio the hub relays.
type Source interface {
	Subscribe(buf int) (<-chan spheretracer.FrameEvent, func())
	Latest() (spheretracer.FrameEvent, bool)
	Zoom(delta int) bool
}

// Control is a message sent by a viewer. The only type understood is "zoom",
// which grows the canvas by 2*Delta pixels per side (negative shrinks).
type Control struct {
	Type  string `json:"type"`
	Delta int    `json:"delta"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans frames out to every connected viewer.
type Hub struct {
	src       Source
	upgrader  websocket.Upgrader
	pingEvery time.Duration

	mu      sync.Mutex
	clients map[*client]bool
}

// NewHub relays src. Browsers may only connect from the serving host or from
// one of allowedOrigins (scheme://host[:port]); requests without an Origin
// header are accepted.
func NewHub(src Source, allowedOrigins ...string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = true
		}
	}
	return &Hub{
		src: src,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return checkOrigin(r, allowed) },
		},
		pingEvery: pingEvery,
		clients:   make(map[*client]bool),
	}
}

func checkOrigin(r *http.Request, allowed map[string]bool) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
}

// Clients reports how many viewers are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run relays published frames until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	frames, cancel := h.src.Subscribe(sendBuffer)
	defer cancel()
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-frames:
			if !ok {
				return nil
			}
			h.broadcast(ev.PNG)
		}
	}
}

// broadcast queues msg for every client; clients that fall behind are dropped.
func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("stream: dropping slow viewer %s", c.id)
			close(c.send)
			delete(h.clients, c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		close(c.send)
		delete(h.clients, c)
	}
}

// Handler serves the viewer page, the WebSocket endpoint and the latest frame.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/frame.png", h.serveFrame)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(viewerPage))
	})
	return mux
}

func (h *Hub) serveFrame(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.src.Latest()
	if !ok {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(ev.PNG)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("stream: upgrade:", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), id: r.RemoteAddr}
	// queue the current picture first so the viewer is not blank
	if ev, ok := h.src.Latest(); ok {
		c.send <- ev.PNG
	}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.readLoop(c)
	go h.writeLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	for {
		var msg Control
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("stream: read error:", err)
			}
			return
		}
		switch strings.ToLower(msg.Type) {
		case "zoom":
			if !h.src.Zoom(msg.Delta) {
				spheretracer.DebugLog("zoom %d from %s refused", msg.Delta, c.id)
			}
		default:
			spheretracer.DebugLog("unknown control %q from %s", msg.Type, c.id)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(h.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
