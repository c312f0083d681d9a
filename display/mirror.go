package display

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Snapshot is the mirror's copy of a flushed scene.
type Snapshot struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Frame    uint64    `json:"frame"`
	Flushed  time.Time `json:"flushed"`
	Elements []Element `json:"elements"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Frame     uint64 `json:"frame"`
	LastFlush string `json:"last_flush,omitempty"`
	Clients   int    `json:"clients"`
}

type mirrorClient struct {
	id     string
	conn   *websocket.Conn
	notify chan struct{}
}

// Mirror serves the latest scene over HTTP: a health endpoint, a PNG of the
// current frame and a websocket pushing a JSON snapshot after every flush.
// Present is called from the presentation loop and never blocks on clients.
type Mirror struct {
	upgrader websocket.Upgrader

	// renderMu serializes the raster, which caches assets. It is never held
	// together with mu.
	renderMu sync.Mutex
	raster   *Raster

	mu      sync.Mutex
	latest  Snapshot
	clients map[*mirrorClient]struct{}

	server *http.Server
}

// NewMirror creates a mirror that renders frames with raster.
func NewMirror(raster *Raster) *Mirror {
	if raster == nil {
		raster = NewRaster()
	}
	return &Mirror{
		raster:   raster,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[*mirrorClient]struct{}{},
	}
}

func (m *Mirror) Present(s *Scene) error {
	w, h := s.Size()
	snap := Snapshot{Width: w, Height: h, Frame: s.Frame(), Flushed: s.Flushed(), Elements: s.Elements()}
	m.mu.Lock()
	m.latest = snap
	for c := range m.clients {
		select {
		case c.notify <- struct{}{}:
		default:
		}
	}
	m.mu.Unlock()
	return nil
}

// Latest returns the most recent snapshot.
func (m *Mirror) Latest() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// Handler returns the mirror's routes.
func (m *Mirror) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", m.handleHealth)
	mux.HandleFunc("/api/frame.png", m.handleFrame)
	mux.HandleFunc("/api/scene.json", m.handleScene)
	mux.HandleFunc("/ws", m.handleWebSocket)
	return mux
}

// Start listens on port in the background.
func (m *Mirror) Start(port int) {
	addr := fmt.Sprintf(":%d", port)
	m.server = &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("mirror server error: %v", err)
		}
	}()
	log.Printf("mirror listening on %s", addr)
}

// Shutdown stops the server and disconnects websocket clients.
func (m *Mirror) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for c := range m.clients {
		_ = c.conn.Close()
	}
	m.mu.Unlock()
	if m.server == nil {
		return nil
	}
	if err := m.server.Shutdown(ctx); err != nil {
		log.Printf("mirror shutdown error: %v", err)
		return err
	}
	log.Printf("mirror shut down successfully")
	return nil
}

func (m *Mirror) handleHealth(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	resp := healthResponse{Status: "ok", Frame: m.latest.Frame, Clients: len(m.clients)}
	if !m.latest.Flushed.IsZero() {
		resp.LastFlush = m.latest.Flushed.UTC().Format(time.RFC3339)
	}
	m.mu.Unlock()
	if resp.Frame == 0 {
		resp.Status = "starting"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (m *Mirror) handleScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Latest())
}

func (m *Mirror) handleFrame(w http.ResponseWriter, r *http.Request) {
	snap := m.Latest()
	if snap.Frame == 0 {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	m.renderMu.Lock()
	img := m.raster.Render(snap.Width, snap.Height, snap.Elements)
	m.renderMu.Unlock()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (m *Mirror) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &mirrorClient{id: uuid.NewString(), conn: conn, notify: make(chan struct{}, 1)}
	c.notify <- struct{}{}

	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()
	log.Printf("mirror client %s connected", c.id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// Clients only listen; reading detects disconnects.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		m.mu.Lock()
		delete(m.clients, c)
		m.mu.Unlock()
		_ = conn.Close()
		log.Printf("mirror client %s disconnected", c.id)
	}()
	for {
		select {
		case <-done:
			return
		case <-c.notify:
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(m.Latest()); err != nil {
				return
			}
		}
	}
}
