// Package observer streams match frames to read-only websocket viewers.
// Observers never feed back into the simulation; a slow client is dropped
// rather than allowed to stall the match loop.
package observer

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

type client struct {
	out  chan []byte
	done chan struct{}
}

type Server struct {
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	header  []byte // replayed to late joiners
	sendBuf int
}

func NewServer(logger *log.Logger, sendBuf int) *Server {
	if sendBuf <= 0 {
		sendBuf = 64
	}
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: map[*client]struct{}{},
		sendBuf: sendBuf,
	}
}

// Handler upgrades viewers and streams frames until they disconnect.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c := &client{out: make(chan []byte, s.sendBuf), done: make(chan struct{})}

		s.mu.Lock()
		header := s.header
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer s.drop(c)

		if header != nil {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, header); err != nil {
				return
			}
		}

		// Reader loop only watches for disconnect; observers do not talk.
		go func() {
			defer close(c.done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-c.done:
				return
			case b, ok := <-c.out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) send(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if s.log != nil {
			s.log.Printf("observer: marshal: %v", err)
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.out <- b:
		default:
			// Backed-up viewer: close its stream instead of blocking.
			close(c.out)
			delete(s.clients, c)
		}
	}
}

// PublishHeader stores the header for late joiners and fans it out.
func (s *Server) PublishHeader(h protocol.MatchHeaderMsg) {
	b, err := json.Marshal(h)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.header = b
	s.mu.Unlock()
	s.send(h)
}

func (s *Server) PublishRound(r protocol.RoundMsg) { s.send(r) }

func (s *Server) PublishFooter(f protocol.MatchFooterMsg) { s.send(f) }

// ClientCount reports connected viewers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
