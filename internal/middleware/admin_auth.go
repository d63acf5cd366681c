package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminRealm = "admin"

	// set once credentials are accepted, so handler errors pass through untouched
	adminAuthorizedKey = "admin_authorized"
)

// AdminAuth guards a route group with HTTP Basic auth. The username is not
// checked. When passwordHash is set it is a bcrypt hash and password is ignored.
// Every rejection, including an undecodable header, is a 401 with a challenge.
func AdminAuth(log *slog.Logger, password, passwordHash string) echo.MiddlewareFunc {
	const op = "middleware.AdminAuth"

	basic := middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: adminRealm,
		Validator: func(_, given string, c echo.Context) (bool, error) {
			if checkPassword(given, password, passwordHash) {
				return true, nil
			}

			log.Warn("admin auth failed",
				slog.String("op", op),
				slog.String("remote_ip", c.RealIP()),
				slog.String("path", c.Path()),
			)

			return false, nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := basic(func(c echo.Context) error {
			c.Set(adminAuthorizedKey, true)
			return next(c)
		})

		return func(c echo.Context) error {
			err := h(c)
			if err == nil || c.Get(adminAuthorizedKey) != nil {
				return err
			}

			var he *echo.HTTPError
			if errors.As(err, &he) && he.Code == http.StatusBadRequest {
				log.Warn("malformed admin credentials",
					slog.String("op", op),
					slog.String("remote_ip", c.RealIP()),
				)
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "basic realm="+strconv.Quote(adminRealm))
				return echo.ErrUnauthorized
			}

			return err
		}
	}
}

func checkPassword(given, password, passwordHash string) bool {
	if passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(given)) == nil
	}
	if password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(password)) == 1
}
