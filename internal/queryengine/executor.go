package queryengine

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/dataset"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/money"
)

// NoResultMessage is the sentinel answer when generated code ran to
// completion without ever assigning the result variable. Not a failure.
const NoResultMessage = "Code executed but no result was set."

// Stdlib packages generated code may use. Everything else - os,
// os/exec, net, net/http, syscall, unsafe, io, reflect - is never
// loaded into the interpreter, so even an import that slips past
// validation cannot resolve.
var allowedImports = map[string]bool{
	"fmt":     true,
	"math":    true,
	"sort":    true,
	"strconv": true,
	"strings": true,
	"time":    true,
	"findata": true,
}

// preludeSrc prepares the per-call binding environment: the imports
// the prompt promises, the rows binding, and the unset result slot.
const preludeSrc = `
import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"findata"
)

var result interface{}
var rows = findata.Rows()
`

// ExecutionResult is the outcome of one sandboxed run: either a
// stringified result value, or a fault description. Faults are data,
// never propagated as Go errors.
type ExecutionResult struct {
	Success bool
	Value   string
	Err     string
}

// Executor evaluates generated Go snippets in a fresh yaegi
// interpreter per call. Containment comes from three sides: only the
// allowlisted stdlib symbols are loaded, the dataset is exposed as a
// defensive copy, and a wall-clock ceiling bounds each run.
//
// The ceiling bounds how long the caller waits, not the interpreter
// goroutine itself: yaegi cannot preempt a hot loop, so a timed-out
// evaluation is abandoned, not killed. There is likewise no memory
// ceiling. These are known residual gaps of in-process interpretation.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an executor with the given per-call timeout.
// Non-positive means DefaultExecTimeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultExecTimeout
	}
	return &Executor{timeout: timeout}
}

// Execute runs code against a copy of the dataset and captures the
// result slot. Any fault - rejected import, parse error, runtime
// panic, timeout - comes back as a failed ExecutionResult.
func (e *Executor) Execute(ctx context.Context, code string, ds *dataset.Dataset) ExecutionResult {
	if err := validateImports(code); err != nil {
		return ExecutionResult{Err: err.Error()}
	}

	rows := ds.CopyRows()

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic in generated code: %v", r)}
			}
		}()
		value, err := evalInSandbox(code, rows)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return ExecutionResult{Err: out.err.Error()}
		}
		return ExecutionResult{Success: true, Value: out.value}
	case <-ctx.Done():
		return ExecutionResult{Err: fmt.Sprintf("execution canceled: %v", ctx.Err())}
	case <-time.After(e.timeout):
		return ExecutionResult{Err: fmt.Sprintf("execution exceeded the %s time limit", e.timeout)}
	}
}

// evalInSandbox builds the interpreter, binds the environment, runs
// the snippet and reads back the result slot. Must run on a single
// goroutine; yaegi interpreters are not concurrency-safe.
func evalInSandbox(code string, rows []domain.Transaction) (string, error) {
	i := interp.New(interp.Options{})

	if err := i.Use(sandboxSymbols()); err != nil {
		return "", fmt.Errorf("load sandbox symbols: %w", err)
	}
	if err := i.Use(findataExports(rows)); err != nil {
		return "", fmt.Errorf("load dataset bindings: %w", err)
	}
	if _, err := i.Eval(preludeSrc); err != nil {
		return "", fmt.Errorf("prepare sandbox: %w", err)
	}

	if _, err := i.Eval(code); err != nil {
		return "", err
	}

	v, err := i.Eval("result")
	if err != nil {
		return "", fmt.Errorf("read result: %w", err)
	}
	if !v.IsValid() {
		return NoResultMessage, nil
	}
	value := v.Interface()
	if value == nil {
		return NoResultMessage, nil
	}
	return fmt.Sprintf("%v", value), nil
}

// sandboxSymbols returns only the allowlisted slice of the stdlib.
func sandboxSymbols() interp.Exports {
	out := interp.Exports{}
	for pkg := range allowedImports {
		key := pkg + "/" + pkg
		if syms, ok := stdlib.Symbols[key]; ok {
			out[key] = syms
		}
	}
	return out
}

// findataExports exposes the dataset rows and the money formatter to
// generated code under the findata package.
func findataExports(rows []domain.Transaction) interp.Exports {
	return interp.Exports{
		"findata/findata": {
			"Tx":      reflect.ValueOf((*domain.Transaction)(nil)),
			"Rows":    reflect.ValueOf(func() []domain.Transaction { return rows }),
			"Dollars": reflect.ValueOf(money.Format),
		},
	}
}

// validateImports rejects code importing anything outside the
// allowlist before it reaches the interpreter.
func validateImports(code string) error {
	var forbidden []string

	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock:
			if pkg := importPath(trimmed); pkg != "" && !allowedImports[pkg] {
				forbidden = append(forbidden, pkg)
			}
		case strings.HasPrefix(trimmed, "import "):
			if pkg := importPath(strings.TrimPrefix(trimmed, "import ")); pkg != "" && !allowedImports[pkg] {
				forbidden = append(forbidden, pkg)
			}
		}
	}

	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %s", strings.Join(forbidden, ", "))
	}
	return nil
}

// importPath strips an optional alias and quotes from one import line.
func importPath(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], `"`)
}
