package review

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	InvalidInput Kind = iota + 1
	UpstreamTimeout
	UpstreamError
	NetworkError
	ServerError
	BudgetExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case UpstreamTimeout:
		return "upstream_timeout"
	case UpstreamError:
		return "upstream_error"
	case NetworkError:
		return "network_error"
	case BudgetExceeded:
		return "budget_exceeded"
	default:
		return "server_error"
	}
}

// Status is the HTTP status reported to the client.
func (k Kind) Status() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case BudgetExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-facing text for the kind.
func (k Kind) Message() string {
	switch k {
	case InvalidInput:
		return "No text provided."
	case UpstreamTimeout:
		return "AI service timed out."
	case UpstreamError:
		return "AI service error."
	case NetworkError:
		return "Error contacting the AI service."
	case BudgetExceeded:
		return "Review budget exhausted. Try again later."
	default:
		return "Server error."
	}
}

type Stage string

const (
	StageValidating    Stage = "validating"
	StagePrompting     Stage = "prompting"
	StageAwaitingModel Stage = "awaiting_model"
	StageFormatting    Stage = "formatting"
	StageResponding    Stage = "responding"
	StageFailed        Stage = "failed"
)

var (
	ErrEmptyText    = errors.New("text is empty")
	ErrTextTooLarge = errors.New("text exceeds size limit")
	ErrBadBody      = errors.New("request body is not valid JSON")
)

// Error is a failed review. Err carries the internal cause and is only
// logged; clients see Message().
type Error struct {
	Kind  Kind
	Stage Stage
	Err   error
	// Public overrides Kind.Message() when set.
	Public string
}

func (e *Error) Error() string {
	return fmt.Sprintf("review %s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Message() string {
	if e.Public != "" {
		return e.Public
	}
	return e.Kind.Message()
}

func (e *Error) StatusCode() int { return e.Kind.Status() }

// InvalidInputError builds the 400 error for a rejected submission.
func InvalidInputError(err error) *Error {
	e := &Error{Kind: InvalidInput, Stage: StageValidating, Err: err}
	switch {
	case errors.Is(err, ErrTextTooLarge):
		e.Public = "Text too large."
	case errors.Is(err, ErrBadBody):
		e.Public = "Invalid request body."
	}
	return e
}

// Failure converts any error into the status and body sent to the client.
// Errors that are not *Error are reported as ServerError.
func Failure(err error) (int, Result) {
	var re *Error
	if !errors.As(err, &re) {
		re = &Error{Kind: ServerError, Stage: StageFailed, Err: err}
	}
	return re.StatusCode(), Result{Error: re.Message()}
}
