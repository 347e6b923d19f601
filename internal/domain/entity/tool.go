package entity

type ToolName string

const (
	ToolSplitPDF        ToolName = "split_pdf"
	ToolExtractPages    ToolName = "extract_pages"
	ToolMergePDFs       ToolName = "merge_pdfs"
	ToolReorderPages    ToolName = "reorder_pages"
	ToolAddWatermark    ToolName = "add_watermark"
	ToolAddPageNumbers  ToolName = "add_page_numbers"
	ToolStampText       ToolName = "stamp_text"
	ToolFindWhitespace  ToolName = "find_whitespace"
	ToolCheckMargins    ToolName = "check_margins"
	ToolClearRevised    ToolName = "clear_revised_documents"
	ToolDeleteDocuments ToolName = "delete_documents"
)

// KnownToolNames is the closed set of tools the agent may dispatch.
// The registry rejects anything outside it.
var KnownToolNames = []ToolName{
	ToolSplitPDF,
	ToolExtractPages,
	ToolMergePDFs,
	ToolReorderPages,
	ToolAddWatermark,
	ToolAddPageNumbers,
	ToolStampText,
	ToolFindWhitespace,
	ToolCheckMargins,
	ToolClearRevised,
	ToolDeleteDocuments,
}

func (t ToolName) String() string {
	return string(t)
}

func (t ToolName) Known() bool {
	for _, n := range KnownToolNames {
		if t == n {
			return true
		}
	}
	return false
}
