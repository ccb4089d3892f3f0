// Package search provides keyword search over the registry's skill
// metadata.
package search

// SkillDoc is the searchable projection of one skill's metadata.
type SkillDoc struct {
	Slug        string
	Name        string
	Description string
	Tags        []string
	Compat      []string
}

// SearchResult is one matched skill.
type SearchResult struct {
	Skill SkillDoc
	Score float64
}
