package v1

import (
	"bytes"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"balkan-spine-wellness/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (v *visitor) postForm(values url.Values) *httptest.ResponseRecorder {
	values.Set("csrf_token", v.csrf())
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return v.do(req)
}

func TestShowPage(t *testing.T) {
	srv := newTestServer(t)
	_, w := srv.visit(t)

	body := w.Body.String()
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	for _, id := range []string{`id="home"`, `id="benefits"`, `id="about"`, `id="services"`, `id="process"`, `id="contact"`} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, "Rezervă o Evaluare")
	// html/template writes '+' as &#43; inside attributes
	assert.Contains(t, body, `href="tel:&#43;37360797998"`)
	decoded := html.UnescapeString(body)
	assert.Contains(t, decoded, `href="tel:+37360797998"`)
	assert.Contains(t, decoded, `href="https://wa.me/353874898785"`)
	assert.Contains(t, decoded, `href="mailto:`+recipient+`"`)
	assert.Contains(t, body, `name="csrf_token"`)
	assert.Contains(t, body, `content="https://example.ro/og-image.png"`)
	assert.NotContains(t, body, "contact-handoff")
	assert.Equal(t, 4, strings.Count(body, "Detalii Program"))
}

func TestSubmitForm(t *testing.T) {
	srv := newTestServer(t)
	v, _ := srv.visit(t)

	w := v.postForm(url.Values{
		"name":    {"Ana Popescu"},
		"email":   {"ana@example.com"},
		"message": {"Bună ziua"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Am deschis aplicația de email")
	assert.Contains(t, html.UnescapeString(body), `id="contact-handoff" href="mailto:`+recipient+`?subject=`)
	assert.Contains(t, body, "status-success")
	assert.NotContains(t, body, `value="Ana Popescu"`, "fields are cleared after handoff")
}

func TestSubmitFormInvalid(t *testing.T) {
	srv := newTestServer(t)
	v, _ := srv.visit(t)

	w := v.postForm(url.Values{"name": {"Ana"}, "email": {"not-an-email"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Adresă de email invalidă")
	assert.Contains(t, body, "Mesaj: Câmp obligatoriu")
	assert.Contains(t, body, `value="Ana"`)
	assert.Contains(t, body, `value="not-an-email"`)
	assert.NotContains(t, body, "contact-handoff")
}

func TestSubmitFormHandoffFailure(t *testing.T) {
	srv := newTestServer(t, withHandoff(email.NewLinkHandoff(40)))
	v, _ := srv.visit(t)

	w := v.postForm(url.Values{
		"name":    {"Ana Popescu"},
		"email":   {"ana@example.com"},
		"message": {"Bună ziua"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "status-error")
	assert.Contains(t, body, "Nu am putut deschide aplicația de email")
	assert.Contains(t, body, recipient)
	// the draft survives a failed handoff
	assert.Contains(t, body, `value="Ana Popescu"`)
}

func TestSubmitFormWithoutCSRFRendersErrorPage(t *testing.T) {
	srv := newTestServer(t)
	v, _ := srv.visit(t)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	w := v.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>403</h1>")
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t)

	t.Run("static", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/site.js", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/v1/contact/events")
		assert.Contains(t, w.Body.String(), "/v1/contact/handoff-failed")
	})

	t.Run("og image", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/og-image.png", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var data map[string]string
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, "disabled", data["redis"])
	})
}
