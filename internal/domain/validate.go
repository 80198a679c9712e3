package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Placeholders returns the distinct {{name}} tokens embedded in content,
// in order of first appearance.
func Placeholders(content string) []string {
	matches := placeholderRe.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return lo.Uniq(names)
}

var skillParameterTypes = []string{"string", "number", "boolean", "object", "array"}

// ValidateCategory checks create-time requirements for a category.
func ValidateCategory(c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	if c.Type != CategoryPrompt && c.Type != CategorySkill {
		return fmt.Errorf("category type must be %q or %q", CategoryPrompt, CategorySkill)
	}
	return nil
}

// ValidatePrompt checks create-time requirements for a prompt.
func ValidatePrompt(p *Prompt) error {
	if p.Title == "" || p.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	return nil
}

// ValidateSkill checks create-time requirements for a skill, including
// its parameter entries.
func ValidateSkill(s *Skill) error {
	if s.Title == "" || s.Description == "" || s.Content == "" {
		return fmt.Errorf("title, description, and content are required")
	}
	return ValidateSkillParameters(s.Parameters)
}

// ValidateSkillParameters rejects parameter entries with an empty name or
// an unknown type. Called before any persistence.
func ValidateSkillParameters(params []SkillParameter) error {
	for i, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("parameter %d: name is required", i)
		}
		if !lo.Contains(skillParameterTypes, p.Type) {
			return fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
		}
	}
	return nil
}

// ValidateTagName checks a managed tag name, returning the trimmed form.
func ValidateTagName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("tag name is required")
	}
	return trimmed, nil
}
