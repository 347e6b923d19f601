package entity

import "encoding/json"

// ToolResult is the outcome of executing one ToolCall. It is serialized as
// the tool observation the model sees, so failures are data, not errors.
type ToolResult struct {
	ToolName      ToolName   `json:"tool"`
	Success       bool       `json:"success"`
	Message       string     `json:"message,omitempty"`
	Error         string     `json:"error,omitempty"`
	Documents     []Document `json:"-"`
	NeedsCallback bool       `json:"needsCallback,omitempty"`
	Degraded      bool       `json:"degradedPlacement,omitempty"`
	Data          any        `json:"data,omitempty"`
}

type toolResultDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Pages     string `json:"pages,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
}

// Observation renders the result as the JSON payload fed back to the model.
func (r *ToolResult) Observation() string {
	type alias ToolResult
	out := struct {
		*alias
		Documents []toolResultDocument `json:"documents,omitempty"`
	}{alias: (*alias)(r)}

	for _, d := range r.Documents {
		out.Documents = append(out.Documents, toolResultDocument{
			ID:        d.ID,
			Name:      d.Name,
			URL:       d.URL,
			Pages:     d.Pages,
			PageCount: d.PageCount,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		fallback, _ := json.Marshal(map[string]any{
			"tool":    r.ToolName,
			"success": false,
			"error":   "failed to serialize tool result: " + err.Error(),
		})
		return string(fallback)
	}
	return string(data)
}

func FailedResult(name ToolName, errMsg string) *ToolResult {
	return &ToolResult{ToolName: name, Success: false, Error: errMsg}
}
