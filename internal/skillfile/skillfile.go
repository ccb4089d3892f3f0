// Package skillfile parses SKILL.md documents: a YAML frontmatter block
// describing the skill, followed by the markdown instruction body.
package skillfile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Doc holds the descriptive fields extracted from a SKILL.md frontmatter.
type Doc struct {
	Name        string
	Description string
	Tags        []string
	Compat      []string
}

// Parse splits content into frontmatter fields and the instruction body.
// Missing or malformed frontmatter is not an error — the whole content is
// treated as body and the Doc comes back empty.
func Parse(content []byte) (Doc, string) {
	s := strings.TrimPrefix(string(content), "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return Doc{}, string(content)
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return Doc{}, string(content)
	}

	fmText := strings.TrimSpace(parts[1])
	body := strings.TrimPrefix(parts[2], "\n")

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(fmText), &raw); err != nil {
		return Doc{}, string(content)
	}

	doc := Doc{
		Name:        strings.TrimSpace(stringField(raw, "name")),
		Description: strings.TrimSpace(stringField(raw, "description")),
		Tags:        listField(raw, "tags"),
		Compat:      listField(raw, "compat"),
	}
	if len(doc.Tags) == 0 {
		doc.Tags = listField(raw, "keywords")
	}
	if doc.Description == "" {
		doc.Description = inferDescription(body)
	}
	return doc, body
}

// DeriveName builds a display name from a slug when the frontmatter carries
// none, e.g. "code-review" becomes "Code Review".
func DeriveName(slug string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(slug, "-", " "))
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// listField accepts both a YAML sequence and a comma-separated string, since
// both shapes occur in the wild.
func listField(raw map[string]any, key string) []string {
	var out []string
	switch v := raw[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// inferDescription falls back to the first non-heading body line.
func inferDescription(body string) string {
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		return ln
	}
	return ""
}
