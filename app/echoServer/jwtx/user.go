// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"borrowbox/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// SessionFromToken reads the verified JWT placed in the context by the
// echo-jwt middleware and turns its claims into a Session value.
func SessionFromToken(c echo.Context) (model.Session, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return model.Session{}, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Session{}, errors.New("invalid jwt claims")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return model.Session{}, errors.New("sub missing in claims")
	}

	sess := model.Session{UserID: int64(sub)}
	if name, ok := claims["name"].(string); ok {
		sess.DisplayName = name
	}
	return sess, nil
}

func SetSession(c echo.Context, sess model.Session) { c.Set(sessionKey, sess) }

func Session(c echo.Context) model.Session {
	sess, _ := c.Get(sessionKey).(model.Session)
	return sess
}
