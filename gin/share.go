package gin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe/errors"
	"github.com/bmazoyer/scribe/sharing"
)

type ShareHandler struct {
	Service *sharing.Service

	Authenticator *Authenticator
}

func (h *ShareHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/notes/:id/share", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/notes/:id/share", JSONFormatter(h.Authenticator.Authenticate(h.Grant)))
	router.DELETE("/api/notes/:id/share/:collaboratorId", JSONFormatter(h.Authenticator.Authenticate(h.Revoke)))
}

func (h *ShareHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	entries, err := h.Service.List(user.ID, id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": entries,
	}, nil
}

func (h *ShareHandler) Grant(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	var body struct {
		Email      string `json:"email"`
		Permission string `json:"permission"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	entry, err := h.Service.Grant(user.ID, id, body.Email, body.Permission)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": entry,
	}, nil
}

func (h *ShareHandler) Revoke(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	collaboratorID, err := strconv.Atoi(c.Param("collaboratorId"))
	if err != nil {
		return nil, errors.New("collaborator id should be an integer", errors.BadRequest())
	}

	if err := h.Service.Revoke(user.ID, id, collaboratorID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}
