package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/auth"
	"github.com/bmazoyer/scribe/errors"
	"github.com/bmazoyer/scribe/jwt"
)

type AuthHandler struct {
	Users   scribe.UserStore
	Encoder *jwt.EncodeDecoder

	Authenticator *Authenticator
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/register", JSONFormatter(h.Register))
	router.POST("/api/auth/login", JSONFormatter(h.Login))
	router.GET("/api/me", JSONFormatter(h.Authenticator.Authenticate(h.Me)))
}

// userView is what leaves the server: never the password hash.
type userView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserView(user *scribe.User) userView {
	return userView{ID: user.ID, Name: user.Name, Email: user.Email}
}

func (h *AuthHandler) Register(c *gin.Context) (interface{}, error) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || body.Password == "" {
		return nil, errors.New("email and password are required", errors.BadRequest())
	}

	existing, err := h.Users.GetByEmail(body.Email)
	if err != nil {
		return nil, errors.New("could not check email", errors.WithCause(err))
	} else if existing != nil {
		return nil, errors.New("email already registered", errors.BadRequest())
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return nil, errors.New("could not hash password", errors.WithCause(err))
	}

	user := scribe.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: hash,
	}
	if err := h.Users.Upsert(&user); err != nil {
		return nil, errors.New("error inserting user", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": newUserView(&user),
	}, nil
}

func (h *AuthHandler) Login(c *gin.Context) (interface{}, error) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&body); err != nil {
		return nil, errors.New("error decoding json body", errors.WithCode(http.StatusBadRequest), errors.WithCause(err))
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	user, err := h.Users.GetByEmail(body.Email)
	if err != nil {
		return nil, errors.New("could not get user", errors.WithCause(err))
	} else if user == nil || !auth.CheckPassword(user.PasswordHash, body.Password) {
		return nil, errors.New("invalid credentials", errors.Unauthorized())
	}

	token, err := h.Encoder.Encode(user.ID)
	if err != nil {
		return nil, errors.New("could not create token", errors.WithCause(err))
	}

	return map[string]interface{}{
		"access_token": token,
		"user":         newUserView(user),
	}, nil
}

func (h *AuthHandler) Me(c *gin.Context) (interface{}, error) {
	user, err := userFromContext(c)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": newUserView(user),
	}, nil
}
