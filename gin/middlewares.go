package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bmazoyer/scribe"
	"github.com/bmazoyer/scribe/errors"
	"github.com/bmazoyer/scribe/jwt"
)

type HandlerFunc func(*gin.Context) (interface{}, error)

func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c)
		if err != nil {
			code := http.StatusInternalServerError
			if err, ok := err.(errors.Error); ok {
				code = err.Code()
			}

			c.JSON(code, map[string]interface{}{
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

type Authenticator struct {
	Encoder *jwt.EncodeDecoder
	Users   scribe.UserStore
}

func (a *Authenticator) Authenticate(next HandlerFunc) HandlerFunc {
	return func(c *gin.Context) (interface{}, error) {
		user, err := a.user(c.Request.Header.Get("Authorization"))
		if err != nil {
			return nil, err
		}

		c.Set("user", user)
		return next(c)
	}
}

// user resolves the bearer token to a full user.
func (a *Authenticator) user(token string) (*scribe.User, error) {
	if len(token) <= 6 || strings.ToLower(token[:7]) != "bearer " {
		return nil, errors.New("no token found", errors.WithCode(http.StatusUnauthorized))
	}

	userID, err := a.Encoder.Decode(token[7:])
	if err != nil {
		return nil, errors.New("invalid token", errors.WithCode(http.StatusUnauthorized), errors.WithCause(err))
	}

	user, err := a.Users.Get(userID)
	if err != nil {
		return nil, errors.New("could not get user", errors.WithCause(err))
	} else if user == nil {
		return nil, errors.New("unknown user", errors.WithCode(http.StatusUnauthorized))
	}

	return user, nil
}

func userFromContext(c *gin.Context) (*scribe.User, error) {
	v, ok := c.Get("user")
	if !ok {
		return nil, errors.New("no user in context", errors.WithCode(http.StatusUnauthorized))
	}

	user, ok := v.(*scribe.User)
	if !ok {
		return nil, errors.New("invalid user in context")
	}

	return user, nil
}
