package gin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
)

type LabelHandler struct {
	Store scribe.LabelStore

	Authenticator *Authenticator
}

func (h *LabelHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/labels", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/labels", JSONFormatter(h.Authenticator.Authenticate(h.Insert)))
	router.DELETE("/api/labels/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
}

func (h *LabelHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	labels, err := h.Store.List(user.ID)
	if err != nil {
		return nil, errors.New("error listing labels", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": labels,
	}, nil
}

func (h *LabelHandler) Insert(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	var body struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	if body.Name == "" {
		return nil, errors.New("name is required", errors.BadRequest())
	}

	label := scribe.Label{
		Name:   body.Name,
		Color:  body.Color,
		UserID: user.ID,
	}
	if err := h.Store.Upsert(&label); err != nil {
		return nil, errors.New("error inserting label", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": label,
	}, nil
}

func (h *LabelHandler) Delete(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	label, err := h.Store.Get(id)
	if err != nil {
		return nil, errors.New("error retrieving label", errors.WithCause(err))
	} else if label == nil || label.UserID != user.ID {
		return nil, errors.New(fmt.Sprintf("Label %d not found", id), errors.NotFound())
	}

	if err := h.Store.Delete(id); err != nil {
		return nil, errors.New("error deleting label", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}
