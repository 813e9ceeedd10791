package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/priyasingh1501/untangle-backend/services"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	hub *services.RealtimeHub
	log *zap.SugaredLogger
}

func NewRealtimeController(hub *services.RealtimeHub, log *zap.SugaredLogger) *RealtimeController {
	return &RealtimeController{hub: hub, log: log}
}

// GET /ws/meals upgrades the connection and streams meal.computed events
// until the client goes away.
func (rc *RealtimeController) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &services.WSClient{UserID: c.GetUint("userID"), Conn: conn}
	rc.hub.Register(client)
	defer rc.hub.Unregister(client)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, 30*time.Second, done)

	// Reads are discarded; the socket is a one-way event stream.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type pingWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// pingLoop keeps the connection alive until a write fails or done closes.
func pingLoop(w pingWriter, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := w.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
