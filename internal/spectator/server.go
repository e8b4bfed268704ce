package spectator

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Sesamexx/PacmanLocalForked/internal/version"
	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server раздает живые кадры партии зрителям по WebSocket.
type Server struct {
	Hub  *Hub
	Port string
}

func NewServer(hub *Hub, port string) *Server {
	return &Server{Hub: hub, Port: port}
}

// Run запускает HTTP сервер. Блокируется до остановки процесса.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", s.handleWatch)
	mux.HandleFunc("/health", s.handleHealth)

	logger.Log.Infof("Spectator server running on :%s (%s)", s.Port, version.String())
	return http.ListenAndServe(":"+s.Port, mux)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("upgrade error: %v", err)
		return
	}

	id := uuid.NewString()
	frames := s.Hub.Register(id)
	logger.Log.WithField("spectator", id).Info("spectator connected")

	go s.writePump(conn, id, frames)
	go s.readPump(conn, id)
}

// writePump пересылает кадры из хаба в сокет + пинги.
func (s *Server) writePump(conn *websocket.Conn, id string, frames chan string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("closing spectator connection")
		}
	}()

	for {
		select {
		case frame, ok := <-frames:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				logger.Log.WithError(err).Debug("spectator write failed")
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump только поддерживает соединение: зрители ничего не шлют,
// но pong-и читать обязаны мы.
func (s *Server) readPump(conn *websocket.Conn, id string) {
	defer s.Hub.Unregister(id)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logger.Log.WithField("spectator", id).Info("spectator disconnected")
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
