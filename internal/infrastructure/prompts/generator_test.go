package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-agent/internal/domain/entity"
)

func TestBuildSystemPrompt_EmptyCatalogue(t *testing.T) {
	prompt, err := BuildSystemPrompt(nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "(none uploaded yet)")
	// Template placeholder must be fully substituted.
	assert.NotContains(t, prompt, "{{")
}

func TestBuildSystemPrompt_ListsDocuments(t *testing.T) {
	docs := []entity.Document{
		{ID: "d1", Name: "report.pdf", Kind: entity.DocumentOriginal, PageCount: 12, Pages: "1-12"},
		{ID: "r1", Name: "report-pages-1-3.pdf", Kind: entity.DocumentRevised, PageCount: 3, Pages: "1-3"},
	}

	prompt, err := BuildSystemPrompt(docs)
	require.NoError(t, err)

	assert.Contains(t, prompt, `id=d1 name="report.pdf" kind=original pages=12 range=1-12`)
	assert.Contains(t, prompt, `id=r1 name="report-pages-1-3.pdf" kind=revised pages=3 range=1-3`)
}

func TestFormatDocuments_OmitsUnknownMetadata(t *testing.T) {
	out := formatDocuments([]entity.Document{
		{ID: "d1", Name: "scan.pdf", Kind: entity.DocumentOriginal},
	})

	assert.Equal(t, `- id=d1 name="scan.pdf" kind=original`, out)
}
