// Package wsdebug hosts a small WebSocket endpoint that broadcasts fired
// hotkey and flag-change events from a running hookwire.Engine to any
// connected browser debug console, via a register/broadcast/unregister
// connection manager.
package wsdebug

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aluo96078/hookwire/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins: this serves a local developer debug console only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server manages debug-console WebSocket connections and broadcasts.
type Server struct {
	clients    map[*client]bool
	clientsMu  sync.RWMutex
	broadcast  chan protocol.Message
	register   chan *client
	unregister chan *client
	shutdown   chan struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	addr string
}

// New returns a Server. Call Start to run its connection-management loop.
func New() *Server {
	return &Server{
		clients:    make(map[*client]bool),
		broadcast:  make(chan protocol.Message, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		shutdown:   make(chan struct{}),
	}
}

// Start runs the connection-management loop on its own goroutine.
func (s *Server) Start() { go s.run() }

// Close stops the connection-management loop. It does not close existing
// client connections; they drain and exit on their own.
func (s *Server) Close() { close(s.shutdown) }

func (s *Server) run() {
	for {
		select {
		case c := <-s.register:
			s.clientsMu.Lock()
			s.clients[c] = true
			s.clientsMu.Unlock()
			log.Printf("wsdebug: client connected from %s, total %d", c.addr, len(s.clients))

		case c := <-s.unregister:
			s.clientsMu.Lock()
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
				log.Printf("wsdebug: client disconnected from %s, total %d", c.addr, len(s.clients))
			}
			s.clientsMu.Unlock()

		case msg := <-s.broadcast:
			s.broadcastMessage(msg)

		case <-s.shutdown:
			return
		}
	}
}

func (s *Server) broadcastMessage(msg protocol.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("wsdebug: failed to marshal broadcast message: %v", err)
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(s.clients, c)
		}
	}
}

// Handler returns the net/http handler that upgrades incoming requests to
// WebSocket connections.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("wsdebug: upgrade failed: %v", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, 256), addr: r.RemoteAddr}
		s.register <- c

		go c.writePump()
		go c.readPump(s)
	}
}

// readPump discards incoming frames (the debug console is read-only); its
// only job is to notice the connection closing and respond to pings.
func (c *client) readPump(s *Server) {
	defer func() {
		s.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("wsdebug: read error: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msg)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastHotkeyFired notifies every connected client that a button event
// was fully decided.
func (s *Server) BroadcastHotkeyFired(buttonName, action, nativeOp string, hadRemap bool, timestamp int64) {
	s.broadcast <- protocol.Message{
		Type: protocol.TypeHotkeyFired,
		Payload: protocol.HotkeyFiredPayload{
			Button:    buttonName,
			Action:    action,
			NativeOp:  nativeOp,
			HadRemap:  hadRemap,
			Timestamp: timestamp,
		},
	}
}

// BroadcastFlagChanged notifies every connected client that a compiled
// flag's value changed.
func (s *Server) BroadcastFlagChanged(flagIndex int, enabled bool, label string, timestamp int64) {
	s.broadcast <- protocol.Message{
		Type: protocol.TypeFlagChanged,
		Payload: protocol.FlagChangedPayload{
			Flag:      flagIndex,
			Enabled:   enabled,
			Label:     label,
			Timestamp: timestamp,
		},
	}
}
