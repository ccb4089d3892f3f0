package search

import "testing"

var testDocs = []SkillDoc{
	{Slug: "code-review", Name: "Code Review", Description: "Reviews diffs for quality.", Tags: []string{"review", "git"}},
	{Slug: "changelog", Name: "Changelog", Description: "Writes release notes from commits.", Tags: []string{"git", "release"}},
	{Slug: "sql-tuning", Name: "SQL Tuning", Description: "Optimizes slow queries.", Tags: []string{"database"}},
}

func TestKeywordSearchMatchesAcrossFields(t *testing.T) {
	res := KeywordSearch(testDocs, "git", 0)
	if len(res) != 2 {
		t.Fatalf("results = %+v", res)
	}
	for _, r := range res {
		if r.Skill.Slug == "sql-tuning" {
			t.Fatal("unrelated skill matched")
		}
	}
}

func TestKeywordSearchAndSemantics(t *testing.T) {
	// Both tokens must match somewhere; only code-review has both.
	res := KeywordSearch(testDocs, "git review", 0)
	if len(res) != 1 || res[0].Skill.Slug != "code-review" {
		t.Fatalf("results = %+v", res)
	}
}

func TestKeywordSearchRanksBroaderMatchesFirst(t *testing.T) {
	// "review" hits code-review in slug, name, description, and tags but
	// nothing in changelog; scores must reflect that.
	res := KeywordSearch(testDocs, "review", 0)
	if len(res) == 0 || res[0].Skill.Slug != "code-review" {
		t.Fatalf("results = %+v", res)
	}
	if res[0].Score != 1.0 {
		t.Fatalf("score = %v, want full-field hit", res[0].Score)
	}
}

func TestKeywordSearchCaseInsensitive(t *testing.T) {
	res := KeywordSearch(testDocs, "SQL", 0)
	if len(res) != 1 || res[0].Skill.Slug != "sql-tuning" {
		t.Fatalf("results = %+v", res)
	}
}

func TestKeywordSearchLimit(t *testing.T) {
	res := KeywordSearch(testDocs, "git", 1)
	if len(res) != 1 {
		t.Fatalf("results = %+v", res)
	}
}

func TestKeywordSearchEmptyQuery(t *testing.T) {
	if res := KeywordSearch(testDocs, "   ", 0); len(res) != 0 {
		t.Fatalf("empty query matched %+v", res)
	}
}

func TestSortResultsTiesBySlug(t *testing.T) {
	res := []SearchResult{
		{Skill: SkillDoc{Slug: "b"}, Score: 0.5},
		{Skill: SkillDoc{Slug: "a"}, Score: 0.5},
		{Skill: SkillDoc{Slug: "c"}, Score: 0.9},
	}
	SortResults(res)
	if res[0].Skill.Slug != "c" || res[1].Skill.Slug != "a" || res[2].Skill.Slug != "b" {
		t.Fatalf("order = %+v", res)
	}
}
