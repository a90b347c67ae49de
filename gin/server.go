package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/jwt"
	"github.com/bmazoyer/scribe/log"
	"github.com/bmazoyer/scribe/realtime"
	"github.com/bmazoyer/scribe/sharing"
)

// Stores groups the backends the handlers are wired on.
type Stores struct {
	Notes         scribe.NoteStore
	Users         scribe.UserStore
	Collaborators scribe.CollaboratorStore
	Folders       scribe.FolderStore
	Tasks         scribe.TaskStore
	Labels        scribe.LabelStore
	Attachments   scribe.AttachmentStore

	Index scribe.NoteIndex
}

func New(
	stores Stores,
	encoder *jwt.EncodeDecoder,
	rt *realtime.Service,
	logger log.Logger,
) (http.Handler, error) {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Page not found"})
	})

	// Ping
	router.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	authenticator := &Authenticator{Encoder: encoder, Users: stores.Users}
	resolver := &access.Resolver{Notes: stores.Notes, Collaborators: stores.Collaborators}

	authHandler := AuthHandler{Users: stores.Users, Encoder: encoder, Authenticator: authenticator}
	authHandler.RegisterRoutes(router)

	noteHandler := NoteHandler{
		Store:         stores.Notes,
		Index:         stores.Index,
		Collaborators: stores.Collaborators,
		Users:         stores.Users,
		Attachments:   stores.Attachments,
		Resolver:      resolver,
		Authenticator: authenticator,
	}
	noteHandler.RegisterRoutes(router)

	shareHandler := ShareHandler{
		Service:       sharing.NewService(stores.Notes, stores.Collaborators, stores.Users),
		Authenticator: authenticator,
	}
	shareHandler.RegisterRoutes(router)

	folderHandler := FolderHandler{Store: stores.Folders, Authenticator: authenticator}
	folderHandler.RegisterRoutes(router)

	taskHandler := TaskHandler{Store: stores.Tasks, Authenticator: authenticator}
	taskHandler.RegisterRoutes(router)

	labelHandler := LabelHandler{Store: stores.Labels, Authenticator: authenticator}
	labelHandler.RegisterRoutes(router)

	attachmentHandler := AttachmentHandler{
		Store:         stores.Attachments,
		Resolver:      resolver,
		Authenticator: authenticator,
	}
	attachmentHandler.RegisterRoutes(router)

	if rt != nil {
		realtimeHandler := NewRealtimeHandler(rt, authenticator, logger)
		realtimeHandler.RegisterRoutes(router)
	}

	return router, nil
}
