package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	"github.com/swiftprep/swiftprep/internal/observability/obscontext"
)

const (
	contextUserKey   = "current_user"
	contextUserIDKey = "user_id"

	loginPath = "/google"
)

func serveIndex(c *gin.Context) {
	c.File("./public/index.html")
}

// WebAuthRequired gates browser routes. Anonymous visitors get bounced
// to the Google login page rather than a JSON 401, matching how the
// portal is navigated.
func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if isUnauthorizedError(err) {
				s.sessions.Clear(c)
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}
			AbortWithError(c, err)
			return
		}

		user, err := s.authsvc.UserByID(c.Request.Context(), session.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextUserIDKey, session.UserID.String())
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), session.UserID.String()))
		c.Next()
	}
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}

// SSLRedirect sends plain-http traffic to https when the deployment
// sits behind a proxy that forwards the original scheme.
func SSLRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		proto := firstHeaderValue(c.GetHeader("X-Forwarded-Proto"))
		if proto != "" && !strings.EqualFold(proto, "https") {
			target := "https://" + c.Request.Host + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func fileExists(publicDir, reqPath string) bool {
	clean := filepath.Clean(reqPath)

	// prevent path traversal
	if clean == "." || clean == "/" || clean == ".." {
		return false
	}

	fullPath := filepath.Join(publicDir, clean)

	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
