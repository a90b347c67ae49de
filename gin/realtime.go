package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bmazoyer/scribe/log"
	"github.com/bmazoyer/scribe/realtime"
)

// RealtimeHandler upgrades authenticated clients to the live co-editing
// channel.
type RealtimeHandler struct {
	Service *realtime.Service
	Logger  log.Logger

	Authenticator *Authenticator

	upgrader websocket.Upgrader
}

func NewRealtimeHandler(service *realtime.Service, authenticator *Authenticator, logger log.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		Service:       service,
		Logger:        logger,
		Authenticator: authenticator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin clients are allowed, like on the REST routes.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *RealtimeHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/ws", h.Serve)
}

// Serve authenticates the request and hands the connection over to the
// realtime service. Browsers cannot set headers on websocket requests, so
// the token is also accepted as an access_token query parameter.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		if qt := c.Query("access_token"); qt != "" {
			token = "bearer " + qt
		}
	}

	user, err := h.Authenticator.user(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"message": err.Error(),
		})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Errorf("error upgrading connection: %v", err)
		return
	}

	conn := realtime.NewConn(ws, user.ID)
	realtime.Serve(h.Service, conn, h.Logger)
}
