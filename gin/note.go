package gin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/access"
	"github.com/bmazoyer/scribe/errors"
	"github.com/bmazoyer/scribe/sharing"
)

type NoteHandler struct {
	Store         scribe.NoteStore
	Index         scribe.NoteIndex
	Collaborators scribe.CollaboratorStore
	Users         scribe.UserStore
	Attachments   scribe.AttachmentStore

	Resolver *access.Resolver

	Authenticator *Authenticator
}

func (h *NoteHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/notes", JSONFormatter(h.Authenticator.Authenticate(h.List)))
	router.POST("/api/notes", JSONFormatter(h.Authenticator.Authenticate(h.Insert)))
	router.GET("/api/notes/:id", JSONFormatter(h.Authenticator.Authenticate(h.Get)))
	router.PUT("/api/notes/:id", JSONFormatter(h.Authenticator.Authenticate(h.Update)))
	router.DELETE("/api/notes/:id", JSONFormatter(h.Authenticator.Authenticate(h.Delete)))
}

type noteView struct {
	*scribe.Note
	IsOwner    bool   `json:"isOwner"`
	Permission string `json:"permission"`

	Collaborators []sharing.Entry          `json:"collaborators,omitempty"`
	Attachments   []*scribe.FileAttachment `json:"attachments,omitempty"`
}

type noteBody struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Type     *string `json:"noteType"`
	LinkURL  *string `json:"linkUrl"`
	FolderID *int    `json:"folderId"`
}

func (h *NoteHandler) List(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	owned, err := h.Store.List(user.ID)
	if err != nil {
		return nil, errors.New("error listing notes", errors.WithCause(err))
	}

	entries, err := h.Collaborators.ListByUser(user.ID)
	if err != nil {
		return nil, errors.New("error listing shared notes", errors.WithCause(err))
	}

	sharedIDs := make([]int, 0, len(entries))
	permissions := make(map[int]string, len(entries))
	for _, entry := range entries {
		sharedIDs = append(sharedIDs, entry.NoteID)
		permissions[entry.NoteID] = entry.Permission
	}

	shared, err := h.Store.Get(sharedIDs...)
	if err != nil {
		return nil, errors.New("error retrieving shared notes", errors.WithCause(err))
	}

	notes := append(owned, shared...)

	if q := c.Query("q"); q != "" {
		notes, err = h.search(notes, q, c)
		if err != nil {
			return nil, err
		}
	}

	views := make([]noteView, 0, len(notes))
	for _, note := range notes {
		view, err := h.view(note, user.ID, permissions)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return map[string]interface{}{
		"data": views,
	}, nil
}

// search filters notes through the full-text index, restricted to the ids
// the caller can already see.
func (h *NoteHandler) search(notes []*scribe.Note, q string, c *gin.Context) ([]*scribe.Note, error) {
	if len(notes) == 0 {
		return nil, nil
	}

	search := scribe.NoteSearch{
		Q:   q,
		IDs: make([]int, len(notes)),
	}
	for i, note := range notes {
		search.IDs[i] = note.ID
	}

	if limit := c.Query("limit"); limit != "" {
		l, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return nil, errors.New("limit should be an integer", errors.BadRequest())
		}
		search.Limit = l
	}
	if offset := c.Query("offset"); offset != "" {
		o, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return nil, errors.New("offset should be an integer", errors.BadRequest())
		}
		search.Offset = o
	}

	res, err := h.Index.Search(search)
	if err != nil {
		return nil, errors.New("error searching notes", errors.WithCause(err))
	}

	byID := make(map[int]*scribe.Note, len(notes))
	for _, note := range notes {
		byID[note.ID] = note
	}

	filtered := make([]*scribe.Note, 0, len(res.IDs))
	for _, id := range res.IDs {
		if note, ok := byID[id]; ok {
			filtered = append(filtered, note)
		}
	}
	return filtered, nil
}

func (h *NoteHandler) view(note *scribe.Note, userID int, permissions map[int]string) (noteView, error) {
	view := noteView{
		Note:       note,
		IsOwner:    note.UserID == userID,
		Permission: permissions[note.ID],
	}
	if view.IsOwner {
		view.Permission = access.Owner.String()
	}

	if note.IsShared {
		entries, err := h.Collaborators.GetByNote(note.ID)
		if err != nil {
			return noteView{}, errors.New("error retrieving collaborators", errors.WithCause(err))
		}

		for _, entry := range entries {
			collaborator, err := h.Users.Get(entry.UserID)
			if err != nil {
				return noteView{}, errors.New("error retrieving collaborator", errors.WithCause(err))
			} else if collaborator == nil {
				continue
			}

			view.Collaborators = append(view.Collaborators, sharing.Entry{
				ID:         entry.ID,
				Email:      collaborator.Email,
				Name:       collaborator.Name,
				Permission: entry.Permission,
			})
		}
	}

	return view, nil
}

func (h *NoteHandler) Get(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	permission, note, err := h.Resolver.Resolve(id, user.ID)
	if err != nil {
		return nil, err
	} else if !permission.CanRead() {
		return nil, errors.New(fmt.Sprintf("Note %d not found", id), errors.NotFound())
	}

	view, err := h.view(note, user.ID, map[int]string{id: permission.String()})
	if err != nil {
		return nil, err
	}

	view.Attachments, err = h.Attachments.ListByNote(id)
	if err != nil {
		return nil, errors.New("error retrieving attachments", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": view,
	}, nil
}

func (h *NoteHandler) Insert(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	var body noteBody
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	note := scribe.Note{
		Type:   scribe.NoteTypeText,
		UserID: user.ID,
	}
	if err := applyBody(&note, body, true); err != nil {
		return nil, err
	}

	if note.Title == "" {
		return nil, errors.New("title is required", errors.BadRequest())
	}

	if err := h.Store.Upsert(&note); err != nil {
		return nil, errors.New("error inserting note", errors.WithCause(err))
	}

	if err := h.Index.Index(&note); err != nil {
		return nil, errors.New("error indexing note", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": noteView{Note: &note, IsOwner: true, Permission: access.Owner.String()},
	}, nil
}

func (h *NoteHandler) Update(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errors.New("id should be an integer", errors.BadRequest())
	}

	permission, note, err := h.Resolver.Resolve(id, user.ID)
	if err != nil {
		return nil, err
	} else if !permission.CanRead() {
		return nil, errors.New(fmt.Sprintf("Note %d not found", id), errors.NotFound())
	} else if !permission.CanWrite() {
		return nil, errors.New(
			fmt.Sprintf("You are not allowed to edit Note %d", id),
			errors.Forbidden(),
		)
	}

	var body noteBody
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	if err := applyBody(note, body, permission == access.Owner); err != nil {
		return nil, err
	}

	if err := h.Store.Upsert(note); err != nil {
		return nil, errors.New("error updating note", errors.WithCause(err))
	}

	if err := h.Index.Index(note); err != nil {
		return nil, errors.New("error indexing note", errors.WithCause(err))
	}

	view, err := h.view(note, user.ID, map[int]string{id: permission.String()})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": view,
	}, nil
}

// applyBody copies the writable fields onto the note. folder_id is an
// owner-only field: non-owners can edit content, not organization, so the
// field is silently ignored for them. is_shared is never writable here, it
// belongs to the sharing service.
func applyBody(note *scribe.Note, body noteBody, owner bool) error {
	if body.Title != nil {
		note.Title = *body.Title
	}
	if body.Content != nil {
		note.Content = *body.Content
	}
	if body.Type != nil {
		if *body.Type != scribe.NoteTypeText && *body.Type != scribe.NoteTypeLink {
			return errors.New(fmt.Sprintf("invalid note type %s", *body.Type), errors.BadRequest())
		}
		note.Type = *body.Type
	}
	if body.LinkURL != nil {
		note.LinkURL = *body.LinkURL
	}
	if body.FolderID != nil && owner {
		note.FolderID = *body.FolderID
	}
	return nil
}

func (h *NoteHandler) Delete(c *gin.Context) (interface{}, error) {
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

	if err := h.Store.Delete(id); err != nil {
		return nil, errors.New("error deleting note", errors.WithCause(err))
	}
	if err := h.Collaborators.DeleteByNote(id); err != nil {
		return nil, errors.New("error deleting collaborators", errors.WithCause(err))
	}
	if err := h.Attachments.DeleteByNote(id); err != nil {
		return nil, errors.New("error deleting attachments", errors.WithCause(err))
	}
	if err := h.Index.Delete(id); err != nil {
		return nil, errors.New("error removing note from index", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}
