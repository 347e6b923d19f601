package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-agent/internal/domain/entity"
)

func TestSplitPDF_OneDocumentPerRange(t *testing.T) {
	env := newTestEnv(5)
	tl := NewSplitPDFTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","ranges":[{"start":1,"end":2},{"start":3,"end":99}]}`))
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)

	require.Len(t, res.Documents, 2)
	assert.Equal(t, "report-pages-1-2.pdf", res.Documents[0].Name)
	assert.Equal(t, "1-2", res.Documents[0].Pages)
	assert.Equal(t, entity.DocumentRevised, res.Documents[0].Kind)
	assert.Equal(t, entity.ToolSplitPDF, res.Documents[0].ProducedBy)

	// End past the last page clamps to it.
	assert.Equal(t, "report-pages-3-5.pdf", res.Documents[1].Name)
	assert.Equal(t, "3-5", res.Documents[1].Pages)

	require.Len(t, env.engine.extractCalls, 2)
	assert.Equal(t, extractCall{start: 1, end: 2}, env.engine.extractCalls[0])
	assert.Equal(t, extractCall{start: 3, end: 5}, env.engine.extractCalls[1])

	assert.Contains(t, res.Message, "2 documents")
}

func TestSplitPDF_NoRanges(t *testing.T) {
	env := newTestEnv(5)
	tl := NewSplitPDFTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{"documentId":"d1","ranges":[]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestSplitPDF_BadRangeFailsWholeCall(t *testing.T) {
	env := newTestEnv(5)
	tl := NewSplitPDFTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","ranges":[{"start":1,"end":2},{"start":9,"end":10}]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "beyond the last page")
	assert.Empty(t, res.Documents)
}

func TestSplitPDF_UnknownDocument(t *testing.T) {
	env := newTestEnv(5)
	tl := NewSplitPDFTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"ghost","ranges":[{"start":1,"end":2}]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unknown document")
}

func TestSplitPDF_MalformedInput(t *testing.T) {
	env := newTestEnv(5)
	tl := NewSplitPDFTool(env.deps)

	_, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{"ranges":"nope"}`))
	assert.Error(t, err)
}

func TestExtractPages_ClampsEnd(t *testing.T) {
	env := newTestEnv(5)
	tl := NewExtractPagesTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","start":2,"end":99}`))
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)

	require.Len(t, res.Documents, 1)
	assert.Equal(t, "report-pages-2-5.pdf", res.Documents[0].Name)
	assert.Equal(t, "2-5", res.Documents[0].Pages)
	require.Len(t, env.engine.extractCalls, 1)
	assert.Equal(t, extractCall{start: 2, end: 5}, env.engine.extractCalls[0])
}

func TestExtractPages_StartPastEndFails(t *testing.T) {
	env := newTestEnv(5)
	tl := NewExtractPagesTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","start":4,"end":2}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, env.engine.extractCalls)
}

func TestMergePDFs_FetchesInOrder(t *testing.T) {
	env := newTestEnv(5)
	env.store.put("/files/d2.pdf", []byte("second pdf"))
	env.tcx.Documents.Append(entity.Document{
		ID: "d2", Name: "annex.pdf", URL: "/files/d2.pdf", Kind: entity.DocumentRevised,
	})

	tl := NewMergePDFsTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentIds":["d2","d1"]}`))
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)

	require.Len(t, env.engine.mergeCalls, 1)
	inputs := env.engine.mergeCalls[0]
	require.Len(t, inputs, 2)
	assert.Equal(t, []byte("second pdf"), inputs[0])
	assert.Equal(t, []byte("source pdf"), inputs[1])

	require.Len(t, res.Documents, 1)
	assert.Equal(t, "merged.pdf", res.Documents[0].Name)
}

func TestMergePDFs_NeedsTwoIds(t *testing.T) {
	env := newTestEnv(5)
	tl := NewMergePDFsTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{"documentIds":["d1"]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, env.engine.mergeCalls)
}

func TestReorderPages_DropsOutOfRangeIndices(t *testing.T) {
	env := newTestEnv(5)
	tl := NewReorderPagesTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","pageOrder":[3,99,1]}`))
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)

	require.Len(t, env.engine.reorderCalls, 1)
	assert.Equal(t, []int{3, 1}, env.engine.reorderCalls[0])
	assert.Contains(t, res.Message, "1 out-of-range")
}

func TestReorderPages_AllIndicesInvalid(t *testing.T) {
	env := newTestEnv(5)
	tl := NewReorderPagesTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","pageOrder":[0,99]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, env.engine.reorderCalls)
}

func TestReorderPages_AllowsRepeats(t *testing.T) {
	env := newTestEnv(5)
	tl := NewReorderPagesTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentId":"d1","pageOrder":[1,1,2]}`))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, []int{1, 1, 2}, env.engine.reorderCalls[0])
}
