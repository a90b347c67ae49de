package gin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/errors"
)

// AttachmentHandler registers file attachments under a note. Only the
// note owner can attach and detach.
type AttachmentHandler struct {
	Store scribe.AttachmentStore

	Resolver *access.Resolver

	Authenticator *Authenticator
}

func (h *AttachmentHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/notes/:id/attachments", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/notes/:id/attachments", JSONFormatter(h.Authenticator.Authenticate(h.Insert)))
	router.DELETE("/api/attachments/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
}

func (h *AttachmentHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	permission, _, err := h.Resolver.Resolve(id, user.ID)
	if err != nil {
		return nil, err
	} else if !permission.CanRead() {
		return nil, errors.New(fmt.Sprintf("Note %d not found", id), errors.NotFound())
	}

	attachments, err := h.Store.ListByNote(id)
	if err != nil {
		return nil, errors.New("error listing attachments", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": attachments,
	}, nil
}

func (h *AttachmentHandler) Insert(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	permission, _, err := h.Resolver.Resolve(id, user.ID)
	if err != nil {
		return nil, err
	} else if permission != access.Owner {
		return nil, errors.New(fmt.Sprintf("Note %d not found", id), errors.NotFound())
	}

	var body struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Type string `json:"type"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	if body.Name == "" || body.URL == "" {
		return nil, errors.New("name and url are required", errors.BadRequest())
	}

	attachment := scribe.FileAttachment{
		Name:   body.Name,
		URL:    body.URL,
		Type:   body.Type,
		NoteID: id,
	}
	if err := h.Store.Upsert(&attachment); err != nil {
		return nil, errors.New("error inserting attachment", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": attachment,
	}, nil
}

func (h *AttachmentHandler) Delete(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	attachment, err := h.Store.Get(id)
	if err != nil {
		return nil, errors.New("error retrieving attachment", errors.WithCause(err))
	} else if attachment == nil {
		return nil, errors.New(fmt.Sprintf("Attachment %d not found", id), errors.NotFound())
	}

	permission, _, err := h.Resolver.Resolve(attachment.NoteID, user.ID)
	if err != nil {
		return nil, err
	} else if permission != access.Owner {
		return nil, errors.New(fmt.Sprintf("Attachment %d not found", id), errors.NotFound())
	}

	if err := h.Store.Delete(id); err != nil {
		return nil, errors.New("error deleting attachment", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}
