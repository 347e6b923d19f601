package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-agent/internal/domain/entity"
)

func withRevised(env *testEnv) {
	env.tcx.Documents.Append(
		entity.Document{ID: "r1", Name: "part1.pdf", Kind: entity.DocumentRevised},
		entity.Document{ID: "r2", Name: "part2.pdf", Kind: entity.DocumentRevised},
	)
}

func TestClearRevised_UsesCallback(t *testing.T) {
	env := newTestEnv(5)
	withRevised(env)

	var gotSession string
	env.tcx.ClearRevised = func(sessionID string) (int, error) {
		gotSession = sessionID
		return 2, nil
	}

	tl := NewClearRevisedTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{}`))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "s1", gotSession)
	assert.Contains(t, res.Message, "removed 2 revised")
	assert.False(t, res.NeedsCallback)
}

func TestClearRevised_NoCallbackDryRuns(t *testing.T) {
	env := newTestEnv(5)
	withRevised(env)

	tl := NewClearRevisedTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{}`))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.NeedsCallback)
	assert.Contains(t, res.Message, "would remove 2")
}

func TestClearRevised_CallbackError(t *testing.T) {
	env := newTestEnv(5)
	env.tcx.ClearRevised = func(string) (int, error) { return 0, errors.New("session gone") }

	tl := NewClearRevisedTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "session gone")
}

func TestDeleteDocuments_SkipsOriginalsWithoutError(t *testing.T) {
	env := newTestEnv(5)
	withRevised(env)

	env.tcx.DeleteDocuments = func(_ string, ids []string) (int, int, error) {
		assert.Equal(t, []string{"r1", "d1"}, ids)
		return 1, 1, nil
	}

	tl := NewDeleteDocumentsTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentIds":["r1","d1"]}`))
	require.NoError(t, err)

	// Originals in the request are reported, never an error.
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Message, "deleted 1")
	assert.Contains(t, res.Message, "skipped 1 original")

	data, ok := res.Data.(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, data["deletedCount"])
	assert.Equal(t, 1, data["skippedOriginals"])
}

func TestDeleteDocuments_EmptyIdsFails(t *testing.T) {
	env := newTestEnv(5)
	tl := NewDeleteDocumentsTool(env.deps)

	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(`{"documentIds":[]}`))
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestDeleteDocuments_NoCallbackDryRuns(t *testing.T) {
	env := newTestEnv(5)
	withRevised(env)

	tl := NewDeleteDocumentsTool(env.deps)
	res, err := tl.Execute(context.Background(), env.tcx, json.RawMessage(
		`{"documentIds":["r1","r2","d1","ghost"]}`))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.NeedsCallback)
	assert.Contains(t, res.Message, "would delete 2")
	assert.Contains(t, res.Message, "skipping 1 original")
}
