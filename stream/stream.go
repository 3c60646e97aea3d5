// Package stream plays frames to websocket clients.
//
// A [Server] is a [cvdsim.Display]: frames are drawn into its back buffer and every
// Refresh broadcasts a JPEG snapshot of that buffer, wrapped in a CBOR [Message], to
// all connected clients. Clients connecting late receive the latest frame first.
package stream

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gorilla/websocket"

	"github.com/BeatGlow/cvdsim"
	"github.com/BeatGlow/cvdsim/pixel"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = (pongWait * 9) / 10
)

// DefaultQuality is the JPEG quality used when Options leaves it unset.
const DefaultQuality = 85

var ErrClosed = errors.New("stream: server closed")

// Message types.
const (
	TypeFrame = "frame"
	TypeStop  = "stop"
)

// Message is the CBOR envelope exchanged with clients.
type Message struct {
	Type   string `cbor:"type"`
	Seq    uint64 `cbor:"seq,omitempty"`
	Width  int    `cbor:"width,omitempty"`
	Height int    `cbor:"height,omitempty"`
	Format string `cbor:"format,omitempty"`
	Data   []byte `cbor:"data,omitempty"`
}

type Options struct {
	// Quality of the JPEG encoding, 1-100.
	Quality int
}

type Server struct {
	*pixel.RGBImage

	upgrader websocket.Upgrader
	quality  int

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
	latest  []byte
	seq     uint64
	closed  bool

	stopOnce sync.Once
	stopped  chan struct{}
}

// New stream server with a back buffer of w x h pixels.
func New(w, h int, opts *Options) *Server {
	quality := DefaultQuality
	if opts != nil && opts.Quality > 0 && opts.Quality <= 100 {
		quality = opts.Quality
	}
	return &Server{
		RGBImage: pixel.NewRGBImage(w, h),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		quality: quality,
		clients: make(map[*websocket.Conn]*sync.Mutex),
		stopped: make(chan struct{}),
	}
}

// Handler serves the websocket endpoint on /ws and a health check on /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stopped is closed once a client asks for playback to stop.
func (s *Server) Stopped() <-chan struct{} {
	return s.stopped
}

func (s *Server) stop() {
	s.stopOnce.Do(func() { close(s.stopped) })
}

// Refresh encodes the back buffer and broadcasts it.
func (s *Server) Refresh() error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.RGBImage, &jpeg.Options{Quality: s.quality}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.seq++
	size := s.Bounds().Size()
	payload, err := cbor.Marshal(Message{
		Type:   TypeFrame,
		Seq:    s.seq,
		Width:  size.X,
		Height: size.Y,
		Format: "jpeg",
		Data:   buf.Bytes(),
	})
	if err != nil {
		return err
	}
	s.latest = payload

	for conn, writeMu := range s.clients {
		if err := writeMessage(conn, writeMu, websocket.BinaryMessage, payload); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
	return nil
}

// Close disconnects all clients.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn, writeMu := range s.clients {
		_ = writeMessage(conn, writeMu, websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
		delete(s.clients, conn)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writeMu := &sync.Mutex{}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[conn] = writeMu
	if s.latest != nil {
		_ = writeMessage(conn, writeMu, websocket.BinaryMessage, s.latest)
	}
	s.mu.Unlock()
	log.Printf("stream: client %s connected", r.RemoteAddr)

	go func() {
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(pingEvery)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := writeMessage(conn, writeMu, websocket.PingMessage, nil); err != nil {
						_ = conn.Close()
						return
					}
				}
			}
		}()
		defer close(done)
		defer s.removeClient(conn)
		for {
			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if isStop(messageType, payload) {
				log.Printf("stream: client %s requested stop", r.RemoteAddr)
				s.stop()
			}
		}
	}()
}

func isStop(messageType int, payload []byte) bool {
	switch messageType {
	case websocket.TextMessage:
		return strings.EqualFold(strings.TrimSpace(string(payload)), TypeStop)
	case websocket.BinaryMessage:
		var m Message
		if err := cbor.Unmarshal(payload, &m); err != nil {
			return false
		}
		return m.Type == TypeStop
	default:
		return false
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func writeMessage(conn *websocket.Conn, writeMu *sync.Mutex, messageType int, payload []byte) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(messageType, payload)
}

var _ cvdsim.Display = (*Server)(nil)
