package prompts

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"pdf-agent/internal/domain/entity"
)

// BuildSystemPrompt renders the system instruction for one turn: the
// document inventory plus the house-keeping rules.
func BuildSystemPrompt(docs []entity.Document) (string, error) {
	tmpl := prompts.NewPromptTemplate(SystemPromptTemplate, []string{"documents"})

	result, err := tmpl.Format(map[string]any{
		"documents": formatDocuments(docs),
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return result, nil
}

func formatDocuments(docs []entity.Document) string {
	if len(docs) == 0 {
		return "(none uploaded yet)"
	}

	var sb strings.Builder
	for _, d := range docs {
		sb.WriteString(fmt.Sprintf("- id=%s name=%q kind=%s", d.ID, d.Name, d.Kind))
		if d.PageCount > 0 {
			sb.WriteString(fmt.Sprintf(" pages=%d", d.PageCount))
		}
		if d.Pages != "" {
			sb.WriteString(fmt.Sprintf(" range=%s", d.Pages))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
