package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), CSRFMiddleware("/exempt"))
	ok := func(c *gin.Context) { c.String(http.StatusOK, CSRFToken(c)) }
	r.GET("/form", ok)
	r.POST("/submit", ok)
	r.POST("/exempt", ok)
	return r
}

func csrfCookie(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFTokenCookieName {
			assert.False(t, c.HttpOnly)
			assert.Equal(t, c.Value, w.Body.String())
			assert.Len(t, c.Value, CSRFTokenLength*2)
			return c
		}
	}
	t.Fatal("csrf cookie not set")
	return nil
}

func TestCSRFHeader(t *testing.T) {
	r := csrfRouter()
	cookie := csrfCookie(t, r)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.AddCookie(cookie)
	req.Header.Set(CSRFTokenHeaderName, cookie.Value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFFormField(t *testing.T) {
	r := csrfRouter()
	cookie := csrfCookie(t, r)

	form := url.Values{CSRFTokenFormField: {cookie.Value}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFRejects(t *testing.T) {
	r := csrfRouter()
	cookie := csrfCookie(t, r)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"missing", "", "lipsă"},
		{"mismatch", strings.Repeat("0", CSRFTokenLength*2), "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/submit", nil)
			req.AddCookie(cookie)
			if tt.token != "" {
				req.Header.Set(CSRFTokenHeaderName, tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestCSRFExemptPath(t *testing.T) {
	w := httptest.NewRecorder()
	csrfRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exempt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
