package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/vpenkov/belot-server/internal/config"
	"github.com/vpenkov/belot-server/internal/protocol"
	"github.com/vpenkov/belot-server/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

// Server accepts WebSocket connections and routes game traffic.
type Server struct {
	config      *config.Config
	redis       *redis.Client // nil when stats are disabled
	leaderboard *storage.LeaderboardManager
	roomManager *RoomManager
	handler     *Handler
	clients     map[string]*Client
	clientsMu   sync.RWMutex
}

// NewServer builds a server from configuration. Redis is optional: an
// empty address or a failed ping disables the leaderboard, never play.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config:  cfg,
		clients: make(map[string]*Client),
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, stats disabled: %v", err)
			_ = rdb.Close()
		} else {
			s.redis = rdb
			s.leaderboard = storage.NewLeaderboardManager(rdb)
		}
	}

	var recorder resultRecorder
	if s.leaderboard != nil {
		recorder = s.leaderboard
	}
	s.roomManager = NewRoomManager(cfg, recorder)
	s.handler = NewHandler(s.roomManager, s.leaderboard)

	return s
}

// Start listens for WebSocket connections until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("server listening on ws://%s/ws", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
	}))
	log.Printf("player %s (%s) connected", client.Name, client.ID)

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","online":%d,"rooms":%d}`, s.GetOnlineCount(), s.roomManager.RoomCount())
}

func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	s.clients[client.ID] = client
	s.clientsMu.Unlock()
}

func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	delete(s.clients, client.ID)
	s.clientsMu.Unlock()
	log.Printf("player %s (%s) disconnected", client.Name, client.ID)
}

// GetOnlineCount returns the number of connected clients.
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Shutdown closes all client connections and the Redis client.
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}
	log.Println("server stopped")
}
