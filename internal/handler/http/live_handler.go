package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = 50 * time.Second
	liveReadLimit  = 512
)

// LiveHandler streams event bus topics to WebSocket clients.
type LiveHandler struct {
	bus         contract.IEventBus
	logger      usecasecontract.IAppLogger
	connections prometheus.Gauge
	upgrader    websocket.Upgrader
}

// NewLiveHandler accepts upgrades from allowedOrigins only; "*" allows any.
// connections may be nil.
func NewLiveHandler(bus contract.IEventBus, logger usecasecontract.IAppLogger, connections prometheus.Gauge, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		bus:         bus,
		logger:      logger,
		connections: connections,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set["*"] || set[origin]
	}
}

// Notifications streams the caller's own inbox events.
func (h *LiveHandler) Notifications(c *gin.Context) {
	h.stream(c, entity.UserTopic(currentUserID(c)))
}

// DeletionRequests streams new and resolved deletion requests to admins.
func (h *LiveHandler) DeletionRequests(c *gin.Context) {
	h.stream(c, entity.TopicDeletionRequests)
}

// Broadcasts streams broadcast changes to admins.
func (h *LiveHandler) Broadcasts(c *gin.Context) {
	h.stream(c, entity.TopicBroadcasts)
}

func (h *LiveHandler) stream(c *gin.Context, topic string) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// subscribe before upgrading so a bus failure is still a plain HTTP error
	events, err := h.bus.Subscribe(ctx, topic)
	if err != nil {
		h.logger.Errorf("live: subscribe %s: %v", topic, err)
		ErrorHandler(c, http.StatusServiceUnavailable, "live updates unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		h.logger.Warnf("live: upgrade: %v", err)
		return
	}
	defer conn.Close()

	if h.connections != nil {
		h.connections.Inc()
		defer h.connections.Dec()
	}

	go readPump(conn, cancel)
	h.writePump(ctx, conn, events)
}

// readPump drains client frames so pongs and close frames are processed.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(liveReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveHandler) writePump(ctx context.Context, conn *websocket.Conn, events <-chan entity.Event) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(evt); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warnf("live: write: %v", err)
				}
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
