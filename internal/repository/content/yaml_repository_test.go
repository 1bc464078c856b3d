package content

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"balkan-spine-wellness/web"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedContent(t *testing.T) {
	repo := NewYAMLRepository(web.Files(), web.ContentFile, validator.New())

	content, err := repo.Load()
	require.NoError(t, err)

	assert.Equal(t, "ro", content.Lang)
	assert.Equal(t, "Balkan Spine Wellness", content.Brand.Name)
	assert.Len(t, content.Nav, 4)
	assert.Len(t, content.Benefits.Items, 4)
	assert.Len(t, content.Services.Items, 4)
	assert.Len(t, content.About.Highlights, 4)
	assert.Len(t, content.Footer.Schedule, 3)

	require.Len(t, content.Process.Items, 4)
	assert.Equal(t, "01", content.Process.Items[0].Number)
	assert.Equal(t, "Monitorizare", content.Process.Items[3].Title)
	assert.Equal(t, "+373 607 97 998", content.Contact.PhoneDisplay)
}

const minimal = `
lang: ro
brand: {name: B, wordmark: W, suffix: S}
nav:
  - {label: Acasă, href: "%s"}
hero: {title: T, primary_cta: C}
benefits: {id: benefits, items: [{title: a, description: b}]}
about: {id: about, title: t, body: b}
services: {id: services, items: [{title: a, description: b}]}
process: {id: process, items: [{number: "01", title: a, description: b}]}
contact: {id: contact, title: t, phone_display: "1", name_label: n, message_label: m, submit_label: s, submitting_label: x}
`

func fmtDoc(href string) string {
	return fmt.Sprintf(minimal, href)
}

func load(t *testing.T, doc string) error {
	t.Helper()
	fsys := fstest.MapFS{"site.yaml": {Data: []byte(doc)}}
	_, err := NewYAMLRepository(fsys, "site.yaml", validator.New()).Load()
	return err
}

func TestLoadRejectsDanglingNavLink(t *testing.T) {
	assert.NoError(t, load(t, fmtDoc("#services")))

	err := load(t, fmtDoc("#pricing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#pricing")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	err := load(t, fmtDoc("#home")+"\nsurprise: true\n")
	assert.Error(t, err)
}

func TestLoadRejectsEmptyList(t *testing.T) {
	doc := fmtDoc("#home")
	doc = strings.Replace(doc, "services: {id: services, items: [{title: a, description: b}]}", "services: {id: services, items: []}", 1)
	err := load(t, doc)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewYAMLRepository(fstest.MapFS{}, "site.yaml", validator.New()).Load()
	assert.Error(t, err)
}
