package search

import "sort"

// SortResults sorts results by score (descending), then by slug (ascending).
func SortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Skill.Slug < results[j].Skill.Slug
		}
		return results[i].Score > results[j].Score
	})
}
