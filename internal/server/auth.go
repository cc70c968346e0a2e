package server

import (
	"crypto/hmac"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	authoauth "github.com/swiftprep/swiftprep/internal/auth/oauth"
	"go.uber.org/zap"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_code_verifier"
	oauthStateTTL       = 10 * time.Minute

	postLoginRedirectTo  = "/filter"
	postLogoutRedirectTo = "/"
	oauthErrorRedirectTo = "/?error=oauth_login"
)

// GoogleLogin starts the Google OAuth flow. When the provider sends the
// browser back with an error query it lands here too.
func (s *Server) GoogleLogin(c *gin.Context) {
	if strings.TrimSpace(c.Query("error")) != "" {
		s.logOAuthError(c)
		s.clearOAuthCookies(c)
		c.Redirect(http.StatusFound, oauthErrorRedirectTo)
		return
	}

	redirectURI := s.oauthRedirectURI(c)
	result, err := s.oauthsvc.RedirectURL(c.Request.Context(), authoauth.RedirectRequest{
		RedirectURI: redirectURI,
	})
	if err != nil {
		s.handleOAuthError(c, err)
		return
	}

	s.setOAuthCookie(c, oauthStateCookie, result.State, oauthStateTTL)
	if strings.TrimSpace(result.CodeVerifier) != "" {
		s.setOAuthCookie(c, oauthVerifierCookie, result.CodeVerifier, oauthStateTTL)
	}

	c.Redirect(http.StatusFound, result.URL)
}

// GoogleCallback finishes the flow: verifies state, exchanges the code,
// upserts the user and opens a session.
func (s *Server) GoogleCallback(c *gin.Context) {
	if strings.TrimSpace(c.Query("error")) != "" {
		s.logOAuthError(c)
		s.clearOAuthCookies(c)
		c.Redirect(http.StatusFound, oauthErrorRedirectTo)
		return
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		s.clearOAuthCookies(c)
		c.Redirect(http.StatusFound, loginPath)
		return
	}

	state := strings.TrimSpace(c.Query("state"))
	storedState, err := c.Cookie(oauthStateCookie)
	if err != nil || storedState == "" || state == "" || !subtleConstantEquals(state, storedState) {
		s.clearOAuthCookies(c)
		s.handleOAuthError(c, ErrUnauthorized)
		return
	}

	verifier, _ := c.Cookie(oauthVerifierCookie)
	s.clearOAuthCookies(c)

	result, err := s.oauthsvc.Login(c.Request.Context(), authoauth.LoginRequest{
		Code:         code,
		RedirectURI:  s.oauthRedirectURI(c),
		CodeVerifier: verifier,
	})
	if err != nil {
		s.handleOAuthError(c, err)
		return
	}

	loginResult, err := s.authsvc.LoginWithGoogle(c.Request.Context(), authdomain.GoogleLoginRequest{
		GoogleID:  result.Identity.GoogleID,
		Username:  result.Identity.DisplayName,
		DP:        result.Identity.Photo,
		UserAgent: strings.TrimSpace(c.Request.UserAgent()),
		IPAddress: strings.TrimSpace(c.ClientIP()),
	})
	if err != nil {
		s.handleOAuthError(c, err)
		return
	}

	s.sessions.Set(c, loginResult.RawToken, loginResult.ExpiresAt)
	s.obsMetrics.RecordLogin("success")

	c.Redirect(http.StatusFound, postLoginRedirectTo)
}

// Logout revokes the session, clears the cookie and sends the browser home.
func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil && !isUnauthorizedError(err) {
			AbortWithError(c, err)
			return
		}
	}
	s.sessions.Clear(c)
	c.Redirect(http.StatusFound, postLogoutRedirectTo)
}

// Me returns the signed-in user's profile.
func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID.String(),
		"username": user.Username,
		"dp":       user.DP,
	})
}

func (s *Server) oauthRedirectURI(c *gin.Context) string {
	return requestBaseURL(c) + "/google/redirect"
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := firstHeaderValue(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		scheme = strings.ToLower(proto)
	}
	host := c.Request.Host
	if forwarded := firstHeaderValue(c.GetHeader("X-Forwarded-Host")); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host
}

func (s *Server) handleOAuthError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	s.obsMetrics.RecordLogin("failure")
	if isValidationError(err) || isUnauthorizedError(err) {
		s.log.Warn("google login rejected", zap.Error(err))
		c.Redirect(http.StatusFound, oauthErrorRedirectTo)
		return
	}
	AbortWithError(c, err)
}

func (s *Server) logOAuthError(c *gin.Context) {
	s.log.Warn("google login error",
		zap.String("error", strings.TrimSpace(c.Query("error"))),
		zap.String("description", strings.TrimSpace(c.Query("error_description"))),
	)
}

func (s *Server) setOAuthCookie(c *gin.Context, name string, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
}

func (s *Server) clearOAuthCookies(c *gin.Context) {
	s.clearCookie(c, oauthStateCookie)
	s.clearCookie(c, oauthVerifierCookie)
}

func (s *Server) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
}

func firstHeaderValue(value string) string {
	if value == "" {
		return ""
	}
	if idx := strings.Index(value, ","); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

func subtleConstantEquals(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
