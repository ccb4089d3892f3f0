package search

import (
	"github.com/quillhq/quill/internal/registry"
)

// FromRegistry builds searchable docs from every skill in the registry.
// Skills whose metadata cannot be loaded are skipped rather than failing the
// whole search.
func FromRegistry(reg *registry.Registry) ([]SkillDoc, error) {
	slugs, err := reg.ListSkills()
	if err != nil {
		return nil, err
	}
	docs := make([]SkillDoc, 0, len(slugs))
	for _, slug := range slugs {
		m, err := reg.LoadMetadata(slug)
		if err != nil {
			continue
		}
		docs = append(docs, SkillDoc{
			Slug:        m.Slug,
			Name:        m.Name,
			Description: m.Description,
			Tags:        m.Tags,
			Compat:      m.Compat,
		})
	}
	return docs, nil
}
