package content

import (
	"bytes"
	"fmt"
	"io/fs"

	"balkan-spine-wellness/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// homeAnchor points at the hero, which has no section id of its own.
const homeAnchor = "#home"

type yamlRepository struct {
	fsys     fs.FS
	path     string
	validate *validator.Validate
}

// NewYAMLRepository reads the site content table from path inside fsys.
func NewYAMLRepository(fsys fs.FS, path string, validate *validator.Validate) domain.ContentRepository {
	return &yamlRepository{
		fsys:     fsys,
		path:     path,
		validate: validate,
	}
}

func (r *yamlRepository) Load() (*domain.SiteContent, error) {
	data, err := fs.ReadFile(r.fsys, r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site content: %w", err)
	}

	var content domain.SiteContent
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&content); err != nil {
		return nil, fmt.Errorf("failed to parse site content %s: %w", r.path, err)
	}

	if err := r.validate.Struct(&content); err != nil {
		return nil, fmt.Errorf("invalid site content: %w", err)
	}
	if err := checkAnchors(&content); err != nil {
		return nil, err
	}

	return &content, nil
}

// checkAnchors makes sure every nav link lands on a rendered section and
// that section ids are unique.
func checkAnchors(content *domain.SiteContent) error {
	ids := []string{
		content.Benefits.ID,
		content.About.ID,
		content.Services.ID,
		content.Process.ID,
		content.Contact.ID,
	}
	if dupes := lo.FindDuplicates(ids); len(dupes) > 0 {
		return fmt.Errorf("invalid site content: duplicate section ids %v", dupes)
	}

	anchors := append(lo.Map(ids, func(id string, _ int) string { return "#" + id }), homeAnchor)
	dangling := lo.Filter(content.Nav, func(link domain.NavLink, _ int) bool {
		return !lo.Contains(anchors, link.Href)
	})
	if len(dangling) > 0 {
		hrefs := lo.Map(dangling, func(link domain.NavLink, _ int) string { return link.Href })
		return fmt.Errorf("invalid site content: nav links without a section %v", hrefs)
	}
	return nil
}
