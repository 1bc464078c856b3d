package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"balkan-spine-wellness/pkg/apperror"
	"balkan-spine-wellness/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header used by the page script
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden field used by the plain HTML form
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	csrfContextKey = "CSRFToken"
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. Mutating
// requests must echo the cookie value either in the X-CSRF-Token header
// (fetch from the page script) or in the csrf_token form field (plain form).
func CSRFMiddleware(exemptPaths ...string) gin.HandlerFunc {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || token == "" {
			token, err = generateCSRFToken()
			if err != nil {
				c.Error(apperror.Internal(err))
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				token,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",          // Domain (empty = current domain)
				isSecure(c), // Secure
				false,       // HttpOnly = false so the page script can read it
			)
		}
		c.Set(csrfContextKey, token)

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions || exempt[c.Request.URL.Path] {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}
		if submitted == "" {
			rejectCSRF(c, "missing", "Token de securitate lipsă. Reîncarcă pagina.")
			return
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			rejectCSRF(c, "mismatch", "Token de securitate invalid. Reîncarcă pagina.")
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token the page must embed in its form.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func rejectCSRF(c *gin.Context, reason, message string) {
	security.DefaultLogger().LogCSRFViolation(c.Request.Context(),
		c.ClientIP(),
		c.Request.UserAgent(),
		c.GetString("RequestID"),
		c.Request.URL.Path,
		reason,
	)
	c.Error(apperror.Forbidden(message))
	c.Abort()
}
