package search

import (
	"strings"
)

// KeywordSearch searches skills by case-insensitive keyword matching over
// slug, name, description, and tags. All query tokens must match (AND
// semantics); the score is the fraction of fields any token hit, which
// favors skills matched in more places.
func KeywordSearch(docs []SkillDoc, query string, limit int) []SearchResult {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []SearchResult{}
	}

	var out []SearchResult
	for _, d := range docs {
		fields := []string{
			strings.ToLower(d.Slug),
			strings.ToLower(d.Name),
			strings.ToLower(d.Description),
			strings.ToLower(strings.Join(d.Tags, " ")),
		}
		blob := strings.Join(fields, "\n")

		ok := true
		for _, tok := range tokens {
			if !strings.Contains(blob, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		hit := 0
		for _, f := range fields {
			for _, tok := range tokens {
				if strings.Contains(f, tok) {
					hit++
					break
				}
			}
		}
		out = append(out, SearchResult{Skill: d, Score: float64(hit) / float64(len(fields))})
	}

	SortResults(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenize(q string) []string {
	parts := strings.Fields(strings.TrimSpace(q))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
