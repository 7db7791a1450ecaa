// Package queryengine turns natural-language questions about the
// financial dataset into generated Go code, executes that code in a
// sandboxed interpreter, and returns verified answers. Every number in
// an answer is computed from the actual rows, never quoted by the
// model.
package queryengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/dataset"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/logger"
)

// Answer is the normalized envelope returned for every question.
// Success is true iff Error is empty and the generated code executed
// and bound a result; Answer is always populated either way.
type Answer struct {
	Answer      string
	Code        string
	Explanation string
	Success     bool
	Error       string
}

// Fixed user-visible messages for the two non-execution failure modes.
const (
	noCodeAnswer      = "I couldn't generate code to answer that question."
	serviceDownAnswer = "The data assistant is unavailable right now. Please try again."
)

// Engine composes the dataset, the completion service and the
// sandboxed executor. The dataset handle is injected at construction
// so multiple datasets and test fixtures are straightforward.
type Engine struct {
	ds         *dataset.Dataset
	completion CompletionService
	executor   *Executor
	maxTokens  int32
}

// New creates an engine over the given dataset and completion service.
func New(ds *dataset.Dataset, completion CompletionService) *Engine {
	return &Engine{
		ds:         ds,
		completion: completion,
		executor:   NewExecutor(DefaultExecTimeout),
		maxTokens:  DefaultMaxOutputTokens,
	}
}

// AnswerQuestion runs one question through the full path: snapshot the
// data, compose the prompt, generate code, extract it, execute it,
// normalize the outcome. Generation and execution failures never
// escape as errors; every question yields an envelope.
func (e *Engine) AnswerQuestion(ctx context.Context, question string) Answer {
	log := logger.FromContext(ctx)
	queryID := uuid.NewString()
	log.Info().Str("query_id", queryID).Str("question", question).Msg("Answering question")

	// 1. Snapshot the data and compose the user turn.
	summary := dataset.Summarize(e.ds)
	prompt := buildUserPrompt(summary, question)

	// 2. Generate code.
	raw, err := e.completion.Complete(ctx, SystemPrompt, prompt, e.maxTokens)
	if err != nil {
		svcErr := &ServiceError{Err: err}
		log.Error().Err(svcErr).Str("query_id", queryID).Msg("Completion service failed")
		return Answer{Answer: serviceDownAnswer, Error: svcErr.Error()}
	}

	// 3. Extract the code block and trailing explanation.
	code, ok := ExtractCode(raw)
	if !ok {
		log.Warn().Str("query_id", queryID).Msg("No code block in model response")
		return Answer{
			Answer:      noCodeAnswer,
			Explanation: strings.TrimSpace(raw),
			Error:       ErrNoCode.Error(),
		}
	}
	explanation := ExtractExplanation(raw)

	// 4. Execute against the dataset.
	res := e.executor.Execute(ctx, code, e.ds)
	if !res.Success {
		log.Warn().Str("query_id", queryID).Str("exec_error", res.Err).Msg("Generated code failed")
		return Answer{
			Answer:      fmt.Sprintf("I wrote code but it had an error: %s", res.Err),
			Code:        code,
			Explanation: explanation,
			Error:       res.Err,
		}
	}

	log.Info().Str("query_id", queryID).Msg("Question answered")
	return Answer{
		Answer:      res.Value,
		Code:        code,
		Explanation: explanation,
		Success:     true,
	}
}
