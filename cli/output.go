package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BasharSaadi/RA-Query-Processor/batch"
	"github.com/BasharSaadi/RA-Query-Processor/render"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A query failed (with --strict, or the single query of `query`)
	ExitCommandError = 2 // Input could not be read or flags are invalid
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure for errors that are not ExitErrors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// jsonResult is one query outcome in JSON output.
type jsonResult struct {
	Index  int                  `json:"index"`
	Query  string               `json:"query"`
	Status string               `json:"status"` // "ok" or "error"
	Result *render.JSONRelation `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// writeResults renders batch results in the given format.
func writeResults(w io.Writer, format string, results []batch.Result) error {
	switch format {
	case render.FormatJSON:
		out := make([]jsonResult, len(results))
		for i, r := range results {
			out[i] = jsonResult{Index: r.Index, Query: r.Query, Status: "ok"}
			if r.Err != nil {
				out[i].Status = "error"
				out[i].Error = r.Err.Error()
				continue
			}
			rel := render.ToJSON("", r.Relation)
			out[i].Result = &rel
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case render.FormatTable:
		for _, r := range results {
			fmt.Fprintf(w, "Query %d: %s\n%s\n", r.Index, r.Query, render.Separator)
			if r.Err != nil {
				fmt.Fprintf(w, "Error: Could not execute query '%s': %v\n\n", r.Query, r.Err)
				continue
			}
			if err := render.Table(w, r.Relation); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		return nil
	default:
		return batch.WriteReport(w, results)
	}
}
