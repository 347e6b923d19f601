package di

import (
	"context"
	"fmt"

	"pdf-agent/internal/adapter/tool"
	"pdf-agent/internal/application/port/input"
	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/application/service"
	"pdf-agent/internal/application/usecase"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/infrastructure/llm/anthropicchat"
	"pdf-agent/internal/infrastructure/llm/openaichat"
	"pdf-agent/internal/infrastructure/logger"
	"pdf-agent/internal/infrastructure/pdf"
	"pdf-agent/internal/infrastructure/prompts"
	"pdf-agent/internal/infrastructure/session"
	"pdf-agent/internal/infrastructure/storage/local"
)

type Container struct {
	LLM          output.LLMPort
	Logger       output.LoggerPort
	Tools        output.ToolRegistry
	Storage      *local.Store
	Engine       output.PDFEngine
	Sessions     *session.Store
	TurnExecutor input.TurnExecutor
}

type Config struct {
	// Provider selects the chat backend: "anthropic" or "openai".
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the OpenAI-compatible endpoint; ignored for
	// the anthropic provider.
	BaseURL string

	DataDir       string
	PublicBaseURL string
	LogName       string
}

func NewContainer(cfg Config) (*Container, error) {
	logName := cfg.LogName
	if logName == "" {
		logName = "pdf-agent"
	}
	log, err := logger.NewLoggerAdapter(logName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	storage, err := local.NewStore(dataDir, cfg.PublicBaseURL)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	llm, err := newLLM(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	engine := pdf.NewEngine()
	rasterizer := pdf.NewFitzRasterizer()

	tools := service.NewToolRegistry()
	registerPDFTools(tools, tool.Deps{
		Engine:     engine,
		Rasterizer: rasterizer,
		Storage:    storage,
		Logger:     log,
	})

	uc := usecase.NewRunTurnUseCase(llm, tools, log, prompts.BuildSystemPrompt)

	return &Container{
		LLM:          llm,
		Logger:       log,
		Tools:        tools,
		Storage:      storage,
		Engine:       engine,
		Sessions:     session.NewStore(),
		TurnExecutor: uc,
	}, nil
}

func newLLM(cfg Config, log output.LoggerPort) (output.LLMPort, error) {
	switch cfg.Provider {
	case "anthropic":
		return anthropicchat.NewAdapter(anthropicchat.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Logger: log,
		})
	case "openai", "":
		llmCfg := openaichat.DefaultConfig(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			llmCfg.BaseURL = cfg.BaseURL
		}
		llmCfg.Logger = log
		return openaichat.NewAdapter(llmCfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

func registerPDFTools(registry *service.ToolRegistryImpl, deps tool.Deps) {
	registry.Register(tool.NewSplitPDFTool(deps))
	registry.Register(tool.NewExtractPagesTool(deps))
	registry.Register(tool.NewMergePDFsTool(deps))
	registry.Register(tool.NewReorderPagesTool(deps))
	registry.Register(tool.NewAddWatermarkTool(deps))
	registry.Register(tool.NewAddPageNumbersTool(deps))
	registry.Register(tool.NewStampTextTool(deps))
	registry.Register(tool.NewFindWhitespaceTool(deps))
	registry.Register(tool.NewCheckMarginsTool(deps))
	registry.Register(tool.NewClearRevisedTool(deps))
	registry.Register(tool.NewDeleteDocumentsTool(deps))
}

// Chat runs one turn against the stored session state and persists the
// turn's messages and produced documents back into the session.
func (c *Container) Chat(ctx context.Context, sessionID, userText string, onEvent func(entity.AgentLogEvent)) *input.TurnResult {
	result := c.TurnExecutor.RunTurn(ctx, input.TurnRequest{
		SessionID:       sessionID,
		UserText:        userText,
		History:         c.Sessions.History(sessionID),
		Documents:       c.Sessions.Documents(sessionID),
		OnLogEvent:      onEvent,
		ClearRevised:    c.Sessions.ClearRevised,
		DeleteDocuments: c.Sessions.DeleteDocuments,
	})

	c.Sessions.AppendHistory(sessionID, result.Messages...)
	c.Sessions.AddDocuments(sessionID, result.Documents...)
	return result
}

// UploadOriginal stores a user-provided PDF and registers it in the
// session as an original upload.
func (c *Container) UploadOriginal(ctx context.Context, sessionID, name string, data []byte) (entity.Document, error) {
	id, url, err := c.Storage.Upload(ctx, sessionID, data, "application/pdf")
	if err != nil {
		return entity.Document{}, fmt.Errorf("upload %s: %w", name, err)
	}

	pageCount, err := c.Engine.PageCount(ctx, data)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	doc := entity.Document{
		ID:        id,
		Name:      name,
		URL:       url,
		Kind:      entity.DocumentOriginal,
		PageCount: pageCount,
		Pages:     fmt.Sprintf("1-%d", pageCount),
	}
	c.Sessions.AddDocuments(sessionID, doc)
	return doc, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
