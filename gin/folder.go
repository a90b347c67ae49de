package gin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
)

type FolderHandler struct {
	Store scribe.FolderStore

	Authenticator *Authenticator
}

func (h *FolderHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/folders", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/folders", JSONFormatter(h.Authenticator.Authenticate(h.Insert)))
	router.DELETE("/api/folders/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
}

func (h *FolderHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	folders, err := h.Store.List(user.ID)
	if err != nil {
		return nil, errors.New("error listing folders", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": folders,
	}, nil
}

func (h *FolderHandler) Insert(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	var body struct {
		Name     string `json:"name"`
		ParentID int    `json:"parentId"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	if body.Name == "" {
		return nil, errors.New("name is required", errors.BadRequest())
	}

	folder := scribe.Folder{
		Name:     body.Name,
		ParentID: body.ParentID,
		UserID:   user.ID,
	}
	if err := h.Store.Upsert(&folder); err != nil {
		return nil, errors.New("error inserting folder", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": folder,
	}, nil
}

func (h *FolderHandler) Delete(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	folder, err := h.Store.Get(id)
	if err != nil {
		return nil, errors.New("error retrieving folder", errors.WithCause(err))
	} else if folder == nil || folder.UserID != user.ID {
		return nil, errors.New(fmt.Sprintf("Folder %d not found", id), errors.NotFound())
	}

	if err := h.Store.Delete(id); err != nil {
		return nil, errors.New("error deleting folder", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}
