package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"page.html", "error.html", "contact", "feature_grid"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestErrorTemplate(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{
		"Code":    429,
		"Message": "Prea multe cereri",
	}))
	assert.Contains(t, buf.String(), "<h1>429</h1>")
	assert.Contains(t, buf.String(), "Prea multe cereri")
}

func TestIcon(t *testing.T) {
	icon := funcs["icon"].(func(string) string)
	assert.Equal(t, "♥", icon("Heart"))
	assert.Equal(t, "•", icon("unknown"))
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"site.js", "site.css"} {
		_, err := Static().Open(name)
		assert.NoError(t, err, name)
	}
}
