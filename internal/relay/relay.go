package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"git.lost.host/meutraa/reso/internal/game"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
)

const (
	// broadcastQueue bounds how many snapshots may sit unsent. The
	// queue overflows by dropping, never by blocking the publisher.
	broadcastQueue = 256
	writeWait      = time.Second
)

// Snapshot is the only thing that crosses the multiplayer boundary:
// one player's runtime state, stamped with identity and time.
type Snapshot struct {
	Player string           `json:"player"`
	State  game.PlayerState `json:"state"`
	At     time.Time        `json:"at"`
}

// Relay broadcasts local state snapshots to connected peers and keeps
// the latest snapshot received from an opponent for display. All
// socket writes happen on the relay's own goroutine, so Publish is
// safe to call from the frame loop.
type Relay struct {
	id        string
	listener  net.Listener
	server    *http.Server
	upgrader  websocket.Upgrader
	broadcast chan Snapshot

	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	local    Snapshot
	opponent *Snapshot
	closed   bool
}

func New(addr string) (*Relay, error) {
	listener, err := net.Listen("tcp", addr)
	if nil != err {
		return nil, fmt.Errorf("unable to listen on %v: %w", addr, err)
	}

	r := &Relay{
		id:       uuid.NewString(),
		listener: listener,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		broadcast: make(chan Snapshot, broadcastQueue),
		clients:   make(map[*websocket.Conn]bool),
	}

	m := mux.NewRouter()
	m.HandleFunc("/ws", r.handleWS)
	m.HandleFunc("/state", r.handleState).Methods(http.MethodGet)
	r.server = &http.Server{Handler: cors.Default().Handler(m)}

	go func() {
		if err := r.server.Serve(listener); nil != err && err != http.ErrServerClosed {
			log.Println("relay server error:", err)
		}
	}()
	go r.handleBroadcasts()
	return r, nil
}

func (r *Relay) ID() string {
	return r.id
}

// Addr is the bound listen address, resolved even when New was given
// port zero.
func (r *Relay) Addr() string {
	return r.listener.Addr().String()
}

func (r *Relay) handleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if nil != err {
		log.Println("unable to upgrade relay client:", err)
		return
	}
	r.mu.Lock()
	r.clients[conn] = true
	r.mu.Unlock()

	go func() {
		for {
			var snap Snapshot
			if err := conn.ReadJSON(&snap); nil != err {
				r.mu.Lock()
				delete(r.clients, conn)
				r.mu.Unlock()
				conn.Close()
				return
			}
			if snap.Player == r.id {
				continue
			}
			r.mu.Lock()
			r.opponent = &snap
			r.mu.Unlock()
		}
	}()
}

func (r *Relay) handleState(w http.ResponseWriter, _ *http.Request) {
	r.mu.Lock()
	snap := r.local
	r.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); nil != err {
		log.Println("unable to encode state:", err)
	}
}

// handleBroadcasts drains the queue and fans each snapshot out to the
// connected peers. A peer that cannot take a write within the deadline
// is dropped.
func (r *Relay) handleBroadcasts() {
	for snap := range r.broadcast {
		r.mu.Lock()
		for conn := range r.clients {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); nil != err {
				conn.Close()
				delete(r.clients, conn)
			}
		}
		r.mu.Unlock()
	}
}

// Publish queues the local player state for broadcast. It never
// blocks; when the queue is full the snapshot is dropped and a fresher
// one follows next period.
func (r *Relay) Publish(state game.PlayerState) {
	snap := Snapshot{Player: r.id, State: state, At: time.Now()}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.local = snap
	if r.closed {
		return
	}
	select {
	case r.broadcast <- snap:
	default:
	}
}

// Opponent returns a copy of the most recent opposing snapshot, or nil.
func (r *Relay) Opponent() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opponent == nil {
		return nil
	}
	snap := *r.opponent
	return &snap
}

func (r *Relay) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.broadcast)
	for conn := range r.clients {
		conn.Close()
	}
	r.clients = make(map[*websocket.Conn]bool)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return r.server.Shutdown(ctx)
}
