package queryengine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/dataset"
)

// stubCompletion is a deterministic CompletionService for tests.
type stubCompletion struct {
	response string
	err      error
	calls    int
}

func (s *stubCompletion) Complete(ctx context.Context, system, prompt string, maxTokens int32) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const revenueResponse = `Here is the code:
<code>
total := 0.0
for _, t := range rows {
	if t.Type == "Revenue" {
		total += t.Amount
	}
}
result = "Total revenue was " + findata.Dollars(total)
</code>
This sums all revenue transactions.`

func TestAnswerQuestion_EndToEnd(t *testing.T) {
	stub := &stubCompletion{response: revenueResponse}
	engine := New(testDataset(), stub)

	ans := engine.AnswerQuestion(context.Background(), "What was total revenue?")

	if !ans.Success {
		t.Fatalf("expected success, got error: %s", ans.Error)
	}
	if !strings.Contains(ans.Answer, "$100.00") {
		t.Errorf("answer = %q, want it to contain $100.00", ans.Answer)
	}
	if ans.Code == "" {
		t.Error("expected the generated code in the envelope")
	}
	if ans.Explanation != "This sums all revenue transactions." {
		t.Errorf("explanation = %q", ans.Explanation)
	}
	if ans.Error != "" {
		t.Errorf("error = %q, want empty", ans.Error)
	}
}

func TestAnswerQuestion_NoCodeBlock(t *testing.T) {
	stub := &stubCompletion{response: "I am not able to help with that request."}
	engine := New(testDataset(), stub)

	ans := engine.AnswerQuestion(context.Background(), "What was total revenue?")

	if ans.Success {
		t.Fatal("expected failure when no code block is present")
	}
	if ans.Answer != noCodeAnswer {
		t.Errorf("answer = %q, want fixed fallback %q", ans.Answer, noCodeAnswer)
	}
	if !strings.Contains(ans.Error, "no code block found") {
		t.Errorf("error = %q, want no-code marker", ans.Error)
	}
	if ans.Explanation != "I am not able to help with that request." {
		t.Errorf("explanation = %q, want raw response", ans.Explanation)
	}
	if ans.Code != "" {
		t.Errorf("code = %q, want empty", ans.Code)
	}
}

func TestAnswerQuestion_ExecutionFault(t *testing.T) {
	stub := &stubCompletion{response: "<code>\nresult = rows[99].Amount\n</code>\nLooks up a row."}
	engine := New(testDataset(), stub)

	ans := engine.AnswerQuestion(context.Background(), "What is row 100?")

	if ans.Success {
		t.Fatal("expected failure for faulting code")
	}
	if !strings.Contains(ans.Answer, "I wrote code but it had an error:") {
		t.Errorf("answer = %q, want embedded execution error", ans.Answer)
	}
	if ans.Error == "" {
		t.Error("expected non-empty error detail")
	}
	if ans.Code == "" {
		t.Error("the faulting code should still be returned for auditability")
	}
}

func TestAnswerQuestion_ServiceError(t *testing.T) {
	stub := &stubCompletion{err: errors.New("connection refused")}
	engine := New(testDataset(), stub)

	ans := engine.AnswerQuestion(context.Background(), "What was total revenue?")

	if ans.Success {
		t.Fatal("expected failure when the service is down")
	}
	if ans.Answer != serviceDownAnswer {
		t.Errorf("answer = %q, want fixed service message", ans.Answer)
	}
	if !strings.Contains(ans.Error, "completion service:") {
		t.Errorf("error = %q, want completion-service prefix distinguishing it from no-code", ans.Error)
	}
}

func TestAnswerQuestion_Idempotent(t *testing.T) {
	stub := &stubCompletion{response: revenueResponse}
	engine := New(testDataset(), stub)

	first := engine.AnswerQuestion(context.Background(), "What was total revenue?")
	second := engine.AnswerQuestion(context.Background(), "What was total revenue?")

	if first != second {
		t.Errorf("envelopes differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if stub.calls != 2 {
		t.Errorf("completion called %d times, want 2", stub.calls)
	}
}

func TestAnswerQuestion_RefusalStillExecutes(t *testing.T) {
	stub := &stubCompletion{response: "<code>\nresult = \"I cannot answer this because the dataset only covers financial transactions.\"\n</code>\nOut of scope."}
	engine := New(testDataset(), stub)

	ans := engine.AnswerQuestion(context.Background(), "What's the weather like?")

	if !ans.Success {
		t.Fatalf("refusal code should execute cleanly, got error: %s", ans.Error)
	}
	if !strings.Contains(ans.Answer, "I cannot answer this") {
		t.Errorf("answer = %q", ans.Answer)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt(dataset.Summarize(testDataset()), "What was total revenue?")

	for _, want := range []string{
		"CURRENT DATA SNAPSHOT:",
		"Total Revenue: $100.00",
		"USER QUESTION: What was total revenue?",
		"store your final answer in the result variable",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
