package queryengine

import "time"

// Default values for question answering.
// These can be overridden via configuration or environment variables in the future.
const (
	// DefaultModelName is the default Gemini model used for code generation.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultMaxOutputTokens bounds the length of a generated completion.
	DefaultMaxOutputTokens = 1024

	// DefaultExecTimeout is the wall-clock ceiling for one sandboxed execution.
	DefaultExecTimeout = 5 * time.Second
)
