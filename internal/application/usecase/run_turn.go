package usecase

import (
	"context"
	"fmt"
	"time"

	"pdf-agent/internal/application/port/input"
	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

const (
	maxIterations     = 20
	maxObservationLen = 20000
)

// Canned responses. Fixed strings so callers and logs can tell them apart
// from genuine model answers.
const (
	LimitReachedText = "I reached the step limit for this request before finishing. The operations completed so far have been applied; ask me to continue if you need more."
	TurnFailedText   = "Sorry, something went wrong while processing your request. Any operations that completed before the failure are listed."
)

var _ input.TurnExecutor = (*RunTurnUseCase)(nil)

// RunTurnUseCase drives one chat turn: call the model, execute requested
// tools in order, feed results back, repeat until a plain answer or the
// iteration ceiling.
type RunTurnUseCase struct {
	llm         output.LLMPort
	tools       output.ToolRegistry
	logger      output.LoggerPort
	buildSystem SystemPromptFunc
	temperature float32
}

func NewRunTurnUseCase(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	buildSystem SystemPromptFunc,
) *RunTurnUseCase {
	return &RunTurnUseCase{
		llm:         llm,
		tools:       tools,
		logger:      logger,
		buildSystem: buildSystem,
		temperature: 0.0,
	}
}

// RunTurn never propagates a failure to the caller: the chat surface has
// no sane retry once tool side effects may have happened, so every path
// folds into a structured TurnResult.
func (uc *RunTurnUseCase) RunTurn(ctx context.Context, req input.TurnRequest) (result *input.TurnResult) {
	result = &input.TurnResult{}

	emit := func(ev entity.AgentLogEvent) {
		ev.Timestamp = time.Now()
		if req.OnLogEvent != nil {
			req.OnLogEvent(ev)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Agent turn panicked", "panic", fmt.Sprintf("%v", r))
			emit(entity.AgentLogEvent{Kind: entity.EventError, Error: fmt.Sprintf("internal error: %v", r)})
			result.FinalText = TurnFailedText
		}
	}()

	docs := entity.NewDocumentSet(req.Documents)

	system, err := uc.buildSystem(docs.All())
	if err != nil {
		uc.logger.Error("System prompt build failed", "error", err)
		emit(entity.AgentLogEvent{Kind: entity.EventError, Error: err.Error()})
		result.FinalText = TurnFailedText
		return result
	}

	conv := NewConversation(system, req.History, req.UserText)
	defer func() {
		result.Messages = conv.TurnMessages()
		result.Documents = docs.Added()
	}()

	toolDefs := uc.tools.Definitions()
	tcx := &output.ToolContext{
		SessionID:       req.SessionID,
		Documents:       docs,
		ClearRevised:    req.ClearRevised,
		DeleteDocuments: req.DeleteDocuments,
	}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		result.Iterations = iteration
		uc.logger.Debug("Starting iteration", "iteration", iteration, "messages", len(conv.Messages()))

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			System:      conv.System(),
			Messages:    conv.Messages(),
			Tools:       toolDefs,
			Temperature: uc.temperature,
		})
		if err != nil {
			uc.logger.Error("LLM request failed", "iteration", iteration, "error", err)
			emit(entity.AgentLogEvent{Kind: entity.EventError, Error: err.Error()})
			result.FinalText = TurnFailedText
			return result
		}

		conv.RecordAssistant(resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			result.FinalText = resp.Message.Content
			emit(entity.AgentLogEvent{Kind: entity.EventMessage, Text: resp.Message.Content})
			uc.logger.Info("Turn completed", "iterations", iteration, "operations", len(result.Operations))
			return result
		}

		// Sequential on purpose: later calls in the same round may
		// reference documents minted by earlier ones.
		for _, call := range resp.Message.ToolCalls {
			name := entity.ToolName(call.Name)
			emit(entity.AgentLogEvent{Kind: entity.EventToolUse, ToolName: name, Input: call.Input})

			res := uc.executeCall(ctx, tcx, call)
			docs.Append(res.Documents...)

			obs := res.Observation()
			if len(obs) > maxObservationLen {
				obs = obs[:maxObservationLen] + "\n... (truncated)"
			}

			if res.Success {
				emit(entity.AgentLogEvent{Kind: entity.EventToolResult, ToolName: name, Output: obs})
			} else {
				emit(entity.AgentLogEvent{Kind: entity.EventError, ToolName: name, Error: res.Error})
			}

			if err := conv.RecordToolResult(call, obs); err != nil {
				uc.logger.Warn("Dropping unpaired tool result", "tool", call.Name, "error", err)
			}

			result.Operations = append(result.Operations, input.Operation{
				ToolName: name,
				Success:  res.Success,
			})
		}
	}

	uc.logger.Warn("Iteration ceiling reached", "iterations", maxIterations)
	emit(entity.AgentLogEvent{Kind: entity.EventError, Error: fmt.Sprintf("iteration ceiling (%d) reached", maxIterations)})
	result.FinalText = LimitReachedText
	result.LimitReached = true
	return result
}

// executeCall contains tool failures: whatever goes wrong becomes a
// failed ToolResult the model can read and adapt to.
func (uc *RunTurnUseCase) executeCall(ctx context.Context, tcx *output.ToolContext, call entity.ToolCall) *entity.ToolResult {
	name := entity.ToolName(call.Name)

	tool, ok := uc.tools.Get(name)
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", call.Name)
		return entity.FailedResult(name, fmt.Sprintf("unknown tool %q", call.Name))
	}

	uc.logger.Info("Executing tool", "name", call.Name, "input", string(call.Input))

	res, err := tool.Execute(ctx, tcx, call.Input)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", call.Name, "error", err)
		return entity.FailedResult(name, err.Error())
	}
	if res == nil {
		return entity.FailedResult(name, "tool produced no result")
	}

	uc.logger.Debug("Tool completed", "name", call.Name, "success", res.Success)
	return res
}
