package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservation_SuccessWithDocuments(t *testing.T) {
	res := &ToolResult{
		ToolName: ToolExtractPages,
		Success:  true,
		Message:  "extracted pages 2-5",
		Documents: []Document{
			{
				ID:         "r1",
				Name:       "report-pages-2-5.pdf",
				URL:        "/files/r1.pdf",
				Kind:       DocumentRevised,
				Pages:      "2-5",
				PageCount:  4,
				ProducedBy: ToolExtractPages,
			},
		},
	}

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Observation()), &parsed))

	assert.Equal(t, "extract_pages", parsed["tool"])
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "extracted pages 2-5", parsed["message"])

	docs, ok := parsed["documents"].([]any)
	require.True(t, ok)
	require.Len(t, docs, 1)
	doc := docs[0].(map[string]any)
	assert.Equal(t, "r1", doc["id"])
	assert.Equal(t, "report-pages-2-5.pdf", doc["name"])
	assert.Equal(t, "2-5", doc["pages"])
	assert.Equal(t, float64(4), doc["pageCount"])
	// Internal fields stay internal.
	assert.NotContains(t, doc, "kind")
	assert.NotContains(t, doc, "ProducedBy")
}

func TestObservation_FailureCarriesError(t *testing.T) {
	res := FailedResult(ToolMergePDFs, "unknown document id \"ghost\"")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Observation()), &parsed))

	assert.Equal(t, "merge_pdfs", parsed["tool"])
	assert.Equal(t, false, parsed["success"])
	assert.Contains(t, parsed["error"], "ghost")
	assert.NotContains(t, parsed, "message")
	assert.NotContains(t, parsed, "documents")
}

func TestObservation_UnserializableDataFallsBack(t *testing.T) {
	res := &ToolResult{
		ToolName: ToolCheckMargins,
		Success:  true,
		Data:     make(chan int),
	}

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Observation()), &parsed))

	assert.Equal(t, "check_margins", parsed["tool"])
	assert.Equal(t, false, parsed["success"])
	assert.Contains(t, parsed["error"], "serialize")
}

func TestToolName_Known(t *testing.T) {
	assert.True(t, ToolSplitPDF.Known())
	assert.True(t, ToolDeleteDocuments.Known())
	assert.False(t, ToolName("rm_rf").Known())
	assert.Len(t, KnownToolNames, 11)
}
